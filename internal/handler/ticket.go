package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/helpdesk-portal/helpdesk-service/internal/kafka"
	"github.com/helpdesk-portal/helpdesk-service/internal/model"
	"github.com/helpdesk-portal/helpdesk-service/internal/service"
)

type TicketHandler struct {
	svc      service.TicketServicer
	producer kafka.SupportEventProducer
}

func NewTicketHandler(svc service.TicketServicer, producer kafka.SupportEventProducer) *TicketHandler {
	return &TicketHandler{svc: svc, producer: producer}
}

func ticketEventPayload(t *model.SupportTicket) map[string]interface{} {
	if t == nil {
		return nil
	}
	return map[string]interface{}{
		"ticket_id":  t.ID,
		"customer":   t.Customer,
		"technician": t.Technician,
		"status":     string(t.Status),
	}
}

// emit fires the event detached from the request context: it must go out even
// if the client hangs up, but with a bounded timeout.
func (h *TicketHandler) emit(event string, payload map[string]interface{}) {
	if h.producer == nil || payload == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		h.producer.ProduceSupportEvent(ctx, event, payload)
	}()
}

func parseID(c *gin.Context, param string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

type createTicketRequest struct {
	Technician string `json:"technician" binding:"required"`
}

func (h *TicketHandler) Create(c *gin.Context) {
	var req createTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "technician is required"})
		return
	}
	t, err := h.svc.Create(c.Request.Context(), Caller(c), req.Technician)
	if err != nil {
		respondError(c, err)
		return
	}
	h.emit(kafka.EventTicketCreated, ticketEventPayload(t))
	c.JSON(http.StatusCreated, t)
}

func (h *TicketHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !t.IsParticipant(Caller(c)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "caller is not a participant of this ticket"})
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TicketHandler) ListMine(c *gin.Context) {
	items, err := h.svc.ListForUser(c.Request.Context(), Caller(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tickets": items, "total": len(items)})
}

func (h *TicketHandler) ListAll(c *gin.Context) {
	items, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tickets": items, "total": len(items)})
}

type updateStatusRequest struct {
	Status model.TicketStatus `json:"status" binding:"required"`
}

func (h *TicketHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be 'open', 'inProgress', or 'resolved'"})
		return
	}
	t, err := h.svc.UpdateStatus(c.Request.Context(), id, Caller(c), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	h.emit(kafka.EventTicketStatusChanged, ticketEventPayload(t))
	c.JSON(http.StatusOK, t)
}

type feedbackRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

func (h *TicketHandler) AddFeedback(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 1 and 5"})
		return
	}
	t, err := h.svc.AddFeedback(c.Request.Context(), id, Caller(c), req.Rating, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}
	h.emit(kafka.EventTicketFeedbackAdded, ticketEventPayload(t))
	c.JSON(http.StatusOK, t)
}

func (h *TicketHandler) Analytics(c *gin.Context) {
	m, err := h.svc.Analytics(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}
