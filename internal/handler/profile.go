package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/helpdesk-portal/helpdesk-service/internal/model"
	"github.com/helpdesk-portal/helpdesk-service/internal/service"
)

type ProfileHandler struct {
	svc service.ProfileServicer
}

func NewProfileHandler(svc service.ProfileServicer) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

type saveProfileRequest struct {
	DisplayName  string `json:"display_name" binding:"required,max=100"`
	IsTechnician bool   `json:"is_technician"`
	AvatarURL    string `json:"avatar_url"`
}

// GetCaller returns the caller's own profile, 404 before first setup.
func (h *ProfileHandler) GetCaller(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), Caller(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) SaveCaller(c *gin.Context) {
	var req saveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	p, err := h.svc.Save(c.Request.Context(), Caller(c), req.DisplayName, req.IsTechnician, req.AvatarURL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) GetByPrincipal(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("principal"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) InitAccessControl(c *gin.Context) {
	role, err := h.svc.InitializeAccessControl(c.Request.Context(), Caller(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"role": role})
}

func (h *ProfileHandler) GetRole(c *gin.Context) {
	role, err := h.svc.Role(c.Request.Context(), Caller(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"role": role})
}

type assignRoleRequest struct {
	Role model.UserRole `json:"role" binding:"required"`
}

func (h *ProfileHandler) AssignRole(c *gin.Context) {
	var req assignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Role.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role must be 'admin', 'user', or 'guest'"})
		return
	}
	if err := h.svc.AssignRole(c.Request.Context(), c.Param("principal"), req.Role); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"principal": c.Param("principal"), "role": req.Role})
}

func (h *ProfileHandler) IsAdmin(c *gin.Context) {
	ok, err := h.svc.IsAdmin(c.Request.Context(), Caller(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_admin": ok})
}
