package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/helpdesk-portal/helpdesk-service/internal/kafka"
	"github.com/helpdesk-portal/helpdesk-service/internal/model"
	"github.com/helpdesk-portal/helpdesk-service/internal/service"
)

type PaymentHandler struct {
	svc      service.PaymentServicer
	producer kafka.SupportEventProducer
}

func NewPaymentHandler(svc service.PaymentServicer, producer kafka.SupportEventProducer) *PaymentHandler {
	return &PaymentHandler{svc: svc, producer: producer}
}

func (h *PaymentHandler) GetToggle(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	toggle, err := h.svc.GetToggle(c.Request.Context(), id, Caller(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toggle)
}

type setToggleRequest struct {
	ToggleEnabled    *bool  `json:"toggle_enabled" binding:"required"`
	PaymentRequested *bool  `json:"payment_requested" binding:"required"`
	StripeSessionID  string `json:"stripe_session_id"`
}

func (h *PaymentHandler) SetToggle(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req setToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "toggle_enabled and payment_requested are required"})
		return
	}
	toggle, err := h.svc.SetToggle(c.Request.Context(), id, Caller(c),
		*req.ToggleEnabled, *req.PaymentRequested, req.StripeSessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	if h.producer != nil {
		payload := map[string]interface{}{
			"ticket_id":         toggle.TicketID,
			"toggle_enabled":    toggle.ToggleEnabled,
			"payment_requested": toggle.PaymentRequested,
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			h.producer.ProduceSupportEvent(ctx, kafka.EventPaymentToggleSet, payload)
		}()
	}
	c.JSON(http.StatusOK, toggle)
}

func (h *PaymentHandler) ToggleStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	status, err := h.svc.ToggleStatus(c.Request.Context(), id, Caller(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

func (h *PaymentHandler) Configured(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"configured": h.svc.IsConfigured()})
}

type createCheckoutRequest struct {
	Items      []model.ShoppingItem `json:"items" binding:"required,min=1,dive"`
	SuccessURL string               `json:"success_url" binding:"required,url"`
	CancelURL  string               `json:"cancel_url" binding:"required,url"`
}

func (h *PaymentHandler) CreateCheckoutSession(c *gin.Context) {
	var req createCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "items, success_url and cancel_url are required"})
		return
	}
	sess, err := h.svc.CreateCheckoutSession(c.Request.Context(), req.Items, req.SuccessURL, req.CancelURL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sess)
}

type supportCheckoutRequest struct {
	SuccessURL string `json:"success_url" binding:"required,url"`
	CancelURL  string `json:"cancel_url" binding:"required,url"`
}

func (h *PaymentHandler) CreateSupportCheckoutSession(c *gin.Context) {
	var req supportCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "success_url and cancel_url are required"})
		return
	}
	sess, err := h.svc.CreateSupportCheckoutSession(c.Request.Context(), req.SuccessURL, req.CancelURL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sess)
}

func (h *PaymentHandler) SessionStatus(c *gin.Context) {
	state, err := h.svc.SessionStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

type createPaymentRequest struct {
	PaymentID string `json:"payment_id"`
	Amount    int64  `json:"amount" binding:"required,min=1"`
	Currency  string `json:"currency" binding:"required,len=3"`
}

func (h *PaymentHandler) CreateRecord(c *gin.Context) {
	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount and a 3-letter currency are required"})
		return
	}
	rec, err := h.svc.CreateRecord(c.Request.Context(), Caller(c), req.PaymentID, req.Amount, req.Currency)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (h *PaymentHandler) GetRecord(c *gin.Context) {
	rec, err := h.svc.GetRecord(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

type updatePaymentStatusRequest struct {
	Status model.PaymentStatus `json:"status" binding:"required"`
}

func (h *PaymentHandler) UpdateRecordStatus(c *gin.Context) {
	var req updatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be 'pending', 'completed', or 'failed'"})
		return
	}
	rec, err := h.svc.UpdateRecordStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}
