package handler

import (
	"github.com/gin-gonic/gin"

	tradeapp "github.com/dishankgupta/milk-subs-sub005/internal/application/trade"
)

// ModificationHandler handles temporary subscription modification endpoints
type ModificationHandler struct {
	BaseHandler
	modificationService *tradeapp.ModificationService
}

// NewModificationHandler creates a new ModificationHandler
func NewModificationHandler(modificationService *tradeapp.ModificationService) *ModificationHandler {
	return &ModificationHandler{modificationService: modificationService}
}

// Create handles POST /modifications
func (h *ModificationHandler) Create(c *gin.Context) {
	var req tradeapp.CreateModificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.modificationService.CreateModification(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /modifications/:id
func (h *ModificationHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid modification ID")
		return
	}

	resp, err := h.modificationService.GetModification(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Cancel handles POST /modifications/:id/cancel
func (h *ModificationHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid modification ID")
		return
	}

	if err := h.modificationService.CancelModification(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// List handles GET /modifications
func (h *ModificationHandler) List(c *gin.Context) {
	var filter tradeapp.ModificationListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	mods, total, err := h.modificationService.ListModifications(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := pageMeta(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, mods, total, page, pageSize)
}
