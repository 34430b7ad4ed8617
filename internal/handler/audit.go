package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/helpdesk-portal/helpdesk-service/internal/service"
)

type AuditHandler struct {
	svc service.AuditServicer
}

func NewAuditHandler(svc service.AuditServicer) *AuditHandler {
	return &AuditHandler{svc: svc}
}

type recordLoginRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Role  string `json:"role" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// RecordLogin is called by the shell once per login.
func (h *AuditHandler) RecordLogin(c *gin.Context) {
	var req recordLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, role and a valid email are required"})
		return
	}
	e, err := h.svc.Record(c.Request.Context(), Caller(c), req.Name, req.Role, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (h *AuditHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": items, "total": len(items)})
}

// ExportCSV streams the login history in the fixed column order
// name,role,email,timestamp,principal.
func (h *AuditHandler) ExportCSV(c *gin.Context) {
	out, err := h.svc.ExportCSV(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="login-tracking.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(out))
}
