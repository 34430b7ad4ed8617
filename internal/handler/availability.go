package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/helpdesk-portal/helpdesk-service/internal/service"
)

type AvailabilityHandler struct {
	svc service.AvailabilityServicer
}

func NewAvailabilityHandler(svc service.AvailabilityServicer) *AvailabilityHandler {
	return &AvailabilityHandler{svc: svc}
}

type setAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}

// SetMine sets the caller's own availability record.
func (h *AvailabilityHandler) SetMine(c *gin.Context) {
	var req setAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "is_available is required"})
		return
	}
	a, err := h.svc.Set(c.Request.Context(), Caller(c), *req.IsAvailable)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *AvailabilityHandler) Get(c *gin.Context) {
	a, err := h.svc.Get(c.Request.Context(), c.Param("principal"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *AvailabilityHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"technicians": items, "total": len(items)})
}

func (h *AvailabilityHandler) AllOffline(c *gin.Context) {
	n, err := h.svc.AllOffline(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"taken_offline": n})
}
