package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/helpdesk-portal/helpdesk-service/internal/kafka"
	"github.com/helpdesk-portal/helpdesk-service/internal/service"
)

type MessageHandler struct {
	svc      service.MessageServicer
	producer kafka.SupportEventProducer
}

func NewMessageHandler(svc service.MessageServicer, producer kafka.SupportEventProducer) *MessageHandler {
	return &MessageHandler{svc: svc, producer: producer}
}

type sendMessageRequest struct {
	Content       string `json:"content" binding:"required,max=4000"`
	AttachmentURL string `json:"attachment_url"`
}

func (h *MessageHandler) Send(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required (max 4000 chars)"})
		return
	}
	m, err := h.svc.Send(c.Request.Context(), id, Caller(c), req.Content, req.AttachmentURL)
	if err != nil {
		respondError(c, err)
		return
	}
	if h.producer != nil {
		payload := map[string]interface{}{
			"message_id": m.ID,
			"ticket_id":  m.TicketID,
			"sender":     m.Sender,
			"recipient":  m.Recipient,
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			h.producer.ProduceSupportEvent(ctx, kafka.EventMessageSent, payload)
		}()
	}
	c.JSON(http.StatusCreated, m)
}

func (h *MessageHandler) ListForTicket(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	msgs, err := h.svc.ListForTicket(c.Request.Context(), id, Caller(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs, "total": len(msgs)})
}

func (h *MessageHandler) ListMine(c *gin.Context) {
	msgs, err := h.svc.ListForUser(c.Request.Context(), Caller(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs, "total": len(msgs)})
}

// MarkRead flips the caller's unread messages on the thread. Polling clients
// call this on every mount; repeated calls are harmless and report zero.
func (h *MessageHandler) MarkRead(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	n, err := h.svc.MarkRead(c.Request.Context(), id, Caller(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"marked_read": n})
}

func (h *MessageHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id, Caller(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
