package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/helpdesk-portal/helpdesk-service/internal/model"
	"github.com/helpdesk-portal/helpdesk-service/internal/service"
)

type KnowledgeHandler struct {
	svc service.KnowledgeServicer
}

func NewKnowledgeHandler(svc service.KnowledgeServicer) *KnowledgeHandler {
	return &KnowledgeHandler{svc: svc}
}

// List handles browse, search and category filter. Search and category are
// mutually exclusive selection modes; asking for both is a client bug.
func (h *KnowledgeHandler) List(c *gin.Context) {
	search := c.Query("search")
	category := c.Query("category")
	if search != "" && category != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "search and category are mutually exclusive"})
		return
	}
	var (
		items []model.KBArticle
		err   error
	)
	switch {
	case search != "":
		items, err = h.svc.Search(c.Request.Context(), search)
	case category != "":
		cat := model.KnowledgeCategory(category)
		if !cat.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
			return
		}
		items, err = h.svc.ByCategory(c.Request.Context(), cat)
	default:
		items, err = h.svc.List(c.Request.Context())
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"articles": items, "total": len(items)})
}

func (h *KnowledgeHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	a, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// IncrementViews bumps the view counter. Fired by the detail view on mount.
func (h *KnowledgeHandler) IncrementViews(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.IncrementViewCount(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type articleRequest struct {
	Title    string                  `json:"title" binding:"required,max=200"`
	Category model.KnowledgeCategory `json:"category" binding:"required"`
	Body     string                  `json:"body" binding:"required"`
	Tags     []string                `json:"tags"`
}

func (h *KnowledgeHandler) Create(c *gin.Context) {
	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Category.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title, body and a valid category are required"})
		return
	}
	a, err := h.svc.Create(c.Request.Context(), req.Title, req.Category, req.Body, req.Tags)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *KnowledgeHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Category.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title, body and a valid category are required"})
		return
	}
	a, err := h.svc.Update(c.Request.Context(), id, req.Title, req.Category, req.Body, req.Tags)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *KnowledgeHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
