package handler

import (
	"github.com/gin-gonic/gin"

	subscriptionapp "github.com/dishankgupta/milk-subs-sub005/internal/application/subscription"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared/format"
)

// SubscriptionHandler handles subscription API endpoints
type SubscriptionHandler struct {
	BaseHandler
	subscriptionService *subscriptionapp.Service
}

// NewSubscriptionHandler creates a new SubscriptionHandler
func NewSubscriptionHandler(subscriptionService *subscriptionapp.Service) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

// Create handles POST /subscriptions
func (h *SubscriptionHandler) Create(c *gin.Context) {
	var req subscriptionapp.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.subscriptionService.CreateSubscription(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /subscriptions/:id
func (h *SubscriptionHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid subscription ID")
		return
	}

	resp, err := h.subscriptionService.GetSubscription(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update handles PUT /subscriptions/:id
func (h *SubscriptionHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid subscription ID")
		return
	}

	var req subscriptionapp.UpdateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.subscriptionService.UpdateSubscription(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Activate handles POST /subscriptions/:id/activate
func (h *SubscriptionHandler) Activate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid subscription ID")
		return
	}

	if err := h.subscriptionService.ActivateSubscription(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Deactivate handles POST /subscriptions/:id/deactivate
func (h *SubscriptionHandler) Deactivate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid subscription ID")
		return
	}

	if err := h.subscriptionService.DeactivateSubscription(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Delete handles DELETE /subscriptions/:id
func (h *SubscriptionHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid subscription ID")
		return
	}

	if err := h.subscriptionService.DeleteSubscription(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// List handles GET /subscriptions
func (h *SubscriptionHandler) List(c *gin.Context) {
	var filter subscriptionapp.SubscriptionListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	subs, total, err := h.subscriptionService.ListSubscriptions(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := pageMeta(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, subs, total, page, pageSize)
}

// PreviewPattern handles GET /subscriptions/:id/pattern-preview
func (h *SubscriptionHandler) PreviewPattern(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid subscription ID")
		return
	}

	var req subscriptionapp.PatternPreviewRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entries, err := h.subscriptionService.PreviewPattern(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// QuantityOn handles GET /subscriptions/:id/quantity
func (h *SubscriptionHandler) QuantityOn(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid subscription ID")
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		h.BadRequest(c, "Query parameter date is required")
		return
	}
	date, err := format.ParseDate(dateStr)
	if err != nil {
		h.BadRequest(c, "Date must be in YYYY-MM-DD format")
		return
	}

	qty, err := h.subscriptionService.QuantityOn(c.Request.Context(), id, date)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"date": dateStr, "quantity": qty})
}
