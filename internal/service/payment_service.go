package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/helpdesk-portal/helpdesk-service/internal/errs"
	"github.com/helpdesk-portal/helpdesk-service/internal/model"
	"github.com/helpdesk-portal/helpdesk-service/internal/stripe"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SessionState is the pending/completed/failed view of a checkout session.
type SessionState struct {
	SessionID string              `json:"session_id"`
	Status    model.PaymentStatus `json:"status"`
	Detail    string              `json:"detail,omitempty"`
}

// Checkouter is the slice of the stripe client the payment service needs.
type Checkouter interface {
	Configured() bool
	CreateCheckoutSession(ctx context.Context, items []stripe.LineItem, successURL, cancelURL string) (*stripe.CheckoutSession, error)
	GetSession(ctx context.Context, sessionID string) (*stripe.Session, error)
}

// PaymentServicer — handler-facing interface, mocked in tests.
type PaymentServicer interface {
	GetToggle(ctx context.Context, ticketID uint64, caller string) (*model.PaymentToggle, error)
	SetToggle(ctx context.Context, ticketID uint64, caller string, enabled, requested bool, sessionID string) (*model.PaymentToggle, error)
	ToggleStatus(ctx context.Context, ticketID uint64, caller string) (model.ToggleStatus, error)
	IsConfigured() bool
	CreateCheckoutSession(ctx context.Context, items []model.ShoppingItem, successURL, cancelURL string) (*stripe.CheckoutSession, error)
	CreateSupportCheckoutSession(ctx context.Context, successURL, cancelURL string) (*stripe.CheckoutSession, error)
	SessionStatus(ctx context.Context, sessionID string) (*SessionState, error)
	CreateRecord(ctx context.Context, customer, paymentID string, amountCents int64, currency string) (*model.PaymentRecord, error)
	GetRecord(ctx context.Context, paymentID string) (*model.PaymentRecord, error)
	UpdateRecordStatus(ctx context.Context, paymentID string, status model.PaymentStatus) (*model.PaymentRecord, error)
}

type PaymentService struct {
	db       *gorm.DB
	checkout Checkouter

	supportFeeCents int64
	currency        string
}

func NewPaymentService(db *gorm.DB, checkout Checkouter, supportFeeCents int64, currency string) *PaymentService {
	return &PaymentService{
		db:              db,
		checkout:        checkout,
		supportFeeCents: supportFeeCents,
		currency:        currency,
	}
}

func (s *PaymentService) loadTicket(ctx context.Context, ticketID uint64) (*model.SupportTicket, error) {
	var t model.SupportTicket
	if err := s.db.WithContext(ctx).First(&t, ticketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrTicketNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (s *PaymentService) GetToggle(ctx context.Context, ticketID uint64, caller string) (*model.PaymentToggle, error) {
	t, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !t.IsParticipant(caller) {
		return nil, errs.ErrForbidden
	}
	var toggle model.PaymentToggle
	if err := s.db.WithContext(ctx).First(&toggle, "ticket_id = ?", ticketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrToggleNotFound
		}
		return nil, err
	}
	return &toggle, nil
}

// SetToggle writes the full toggle record. Only the ticket's technician may
// write it. Clearing the payment request also clears the session id, so a
// later re-request starts from a clean slate (which is what lets the customer
// side re-show a previously dismissed prompt).
func (s *PaymentService) SetToggle(ctx context.Context, ticketID uint64, caller string, enabled, requested bool, sessionID string) (*model.PaymentToggle, error) {
	t, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if t.Technician != caller {
		return nil, errs.ErrForbidden
	}
	if !requested {
		sessionID = ""
	}
	toggle := &model.PaymentToggle{
		TicketID:         ticketID,
		Customer:         t.Customer,
		Technician:       t.Technician,
		ToggleEnabled:    enabled,
		PaymentRequested: requested,
		Active:           enabled && requested,
		StripeSessionID:  sessionID,
	}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "ticket_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"toggle_enabled", "payment_requested", "active", "stripe_session_id", "updated_at",
		}),
	}).Create(toggle).Error
	if err != nil {
		return nil, err
	}
	return toggle, nil
}

func (s *PaymentService) ToggleStatus(ctx context.Context, ticketID uint64, caller string) (model.ToggleStatus, error) {
	toggle, err := s.GetToggle(ctx, ticketID, caller)
	if err != nil {
		if errors.Is(err, errs.ErrToggleNotFound) {
			return model.DeriveToggleStatus(nil), nil
		}
		return "", err
	}
	return model.DeriveToggleStatus(toggle), nil
}

func (s *PaymentService) IsConfigured() bool {
	return s.checkout.Configured()
}

func (s *PaymentService) CreateCheckoutSession(ctx context.Context, items []model.ShoppingItem, successURL, cancelURL string) (*stripe.CheckoutSession, error) {
	lines := make([]stripe.LineItem, len(items))
	for i, item := range items {
		lines[i] = stripe.LineItem{
			Name:        item.ProductName,
			Description: item.ProductDescription,
			AmountCents: item.PriceInCents,
			Currency:    item.Currency,
			Quantity:    item.Quantity,
		}
	}
	return s.checkout.CreateCheckoutSession(ctx, lines, successURL, cancelURL)
}

// CreateSupportCheckoutSession is the one-click variant with the fixed
// support fee from configuration.
func (s *PaymentService) CreateSupportCheckoutSession(ctx context.Context, successURL, cancelURL string) (*stripe.CheckoutSession, error) {
	item := stripe.LineItem{
		Name:        "Technical Support Session",
		Description: "Remote technical support session",
		AmountCents: s.supportFeeCents,
		Currency:    s.currency,
		Quantity:    1,
	}
	return s.checkout.CreateCheckoutSession(ctx, []stripe.LineItem{item}, successURL, cancelURL)
}

func (s *PaymentService) SessionStatus(ctx context.Context, sessionID string) (*SessionState, error) {
	sess, err := s.checkout.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	state := &SessionState{SessionID: sess.ID}
	switch sess.Status {
	case "complete":
		state.Status = model.PaymentCompleted
	case "expired":
		state.Status = model.PaymentFailed
		state.Detail = "checkout session expired"
	default:
		state.Status = model.PaymentPending
	}
	return state, nil
}

func (s *PaymentService) CreateRecord(ctx context.Context, customer, paymentID string, amountCents int64, currency string) (*model.PaymentRecord, error) {
	if paymentID == "" {
		paymentID = uuid.NewString()
	}
	rec := &model.PaymentRecord{
		PaymentID:   paymentID,
		Customer:    customer,
		AmountCents: amountCents,
		Currency:    currency,
		Status:      model.PaymentPending,
	}
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *PaymentService) GetRecord(ctx context.Context, paymentID string) (*model.PaymentRecord, error) {
	var rec model.PaymentRecord
	if err := s.db.WithContext(ctx).First(&rec, "payment_id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrPaymentNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (s *PaymentService) UpdateRecordStatus(ctx context.Context, paymentID string, status model.PaymentStatus) (*model.PaymentRecord, error) {
	rec, err := s.GetRecord(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(rec).Update("status", status).Error; err != nil {
		return nil, err
	}
	return rec, nil
}
