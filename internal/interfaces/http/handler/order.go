package handler

import (
	"github.com/gin-gonic/gin"

	deliveryapp "github.com/dishankgupta/milk-subs-sub005/internal/application/delivery"
)

// OrderHandler handles daily order API endpoints
type OrderHandler struct {
	BaseHandler
	orderService *deliveryapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *deliveryapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Generate handles POST /orders/generate
func (h *OrderHandler) Generate(c *gin.Context) {
	var req deliveryapp.GenerateOrdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.orderService.GenerateOrders(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	resp, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ConfirmDelivery handles POST /orders/:id/deliver
func (h *OrderHandler) ConfirmDelivery(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req deliveryapp.ConfirmDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.orderService.ConfirmDelivery(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// BulkConfirm handles POST /orders/bulk-deliver
func (h *OrderHandler) BulkConfirm(c *gin.Context) {
	var req deliveryapp.BulkConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.orderService.BulkConfirm(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Cancel handles POST /orders/:id/cancel
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.orderService.CancelOrder(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// List handles GET /orders
func (h *OrderHandler) List(c *gin.Context) {
	var filter deliveryapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	orders, total, err := h.orderService.ListOrders(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := pageMeta(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, orders, total, page, pageSize)
}
