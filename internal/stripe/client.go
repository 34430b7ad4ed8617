// Package stripe is a minimal client for the hosted-checkout endpoints of a
// Stripe-compatible payment API. Only the two calls the helpdesk needs are
// implemented: creating a checkout session and fetching its status.
package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/helpdesk-portal/helpdesk-service/internal/errs"
)

type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

// NewClient returns a client. An empty secretKey means Configured() is false
// and every call fails with errs.ErrStripeNotConfigured.
func NewClient(baseURL, secretKey string) *Client {
	return &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

func (c *Client) Configured() bool {
	return c.secretKey != ""
}

// LineItem is one priced line of a checkout session.
type LineItem struct {
	Name        string
	Description string
	AmountCents int64
	Currency    string
	Quantity    int64
}

// CheckoutSession is the id/url pair the frontend redirects through.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Session is the status view of an existing checkout session.
type Session struct {
	ID            string `json:"id"`
	Status        string `json:"status"`         // open | complete | expired
	PaymentStatus string `json:"payment_status"` // paid | unpaid | no_payment_required
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// CreateCheckoutSession creates a hosted checkout session in payment mode.
func (c *Client) CreateCheckoutSession(ctx context.Context, items []LineItem, successURL, cancelURL string) (*CheckoutSession, error) {
	if !c.Configured() {
		return nil, errs.ErrStripeNotConfigured
	}
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", successURL)
	form.Set("cancel_url", cancelURL)
	for i, item := range items {
		p := fmt.Sprintf("line_items[%d]", i)
		form.Set(p+"[quantity]", strconv.FormatInt(item.Quantity, 10))
		form.Set(p+"[price_data][currency]", item.Currency)
		form.Set(p+"[price_data][unit_amount]", strconv.FormatInt(item.AmountCents, 10))
		form.Set(p+"[price_data][product_data][name]", item.Name)
		if item.Description != "" {
			form.Set(p+"[price_data][product_data][description]", item.Description)
		}
	}
	var out CheckoutSession
	if err := c.post(ctx, "/v1/checkout/sessions", form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSession fetches an existing checkout session by id.
func (c *Client) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	if !c.Configured() {
		return nil, errs.ErrStripeNotConfigured
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/v1/checkout/sessions/"+url.PathEscape(sessionID), nil)
	if err != nil {
		return nil, err
	}
	var out Session
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) post(ctx context.Context, path string, form url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	req.SetBasicAuth(c.secretKey, "")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("stripe: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("stripe: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("stripe: %s (status %d)", apiErr.Error.Message, resp.StatusCode)
		}
		return fmt.Errorf("stripe: status %d", resp.StatusCode)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("stripe: decode response: %w", err)
	}
	return nil
}
