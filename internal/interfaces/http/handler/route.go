package handler

import (
	"github.com/gin-gonic/gin"

	partnerapp "github.com/dishankgupta/milk-subs-sub005/internal/application/partner"
)

// RouteHandler handles delivery route API endpoints
type RouteHandler struct {
	BaseHandler
	routeService *partnerapp.RouteService
}

// NewRouteHandler creates a new RouteHandler
func NewRouteHandler(routeService *partnerapp.RouteService) *RouteHandler {
	return &RouteHandler{routeService: routeService}
}

// Create handles POST /routes
func (h *RouteHandler) Create(c *gin.Context) {
	var req partnerapp.CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.routeService.CreateRoute(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /routes/:id
func (h *RouteHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid route ID")
		return
	}

	resp, err := h.routeService.GetRoute(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update handles PUT /routes/:id
func (h *RouteHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid route ID")
		return
	}

	var req partnerapp.UpdateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.routeService.UpdateRoute(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Activate handles POST /routes/:id/activate
func (h *RouteHandler) Activate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid route ID")
		return
	}

	if err := h.routeService.ActivateRoute(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Deactivate handles POST /routes/:id/deactivate
func (h *RouteHandler) Deactivate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid route ID")
		return
	}

	if err := h.routeService.DeactivateRoute(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Delete handles DELETE /routes/:id
func (h *RouteHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid route ID")
		return
	}

	if err := h.routeService.DeleteRoute(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// List handles GET /routes
func (h *RouteHandler) List(c *gin.Context) {
	var filter partnerapp.RouteListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	routes, total, err := h.routeService.ListRoutes(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := pageMeta(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, routes, total, page, pageSize)
}
