package handler

import (
	"github.com/gin-gonic/gin"

	reportapp "github.com/dishankgupta/milk-subs-sub005/internal/application/report"
)

// ReportHandler handles dashboard and report API endpoints
type ReportHandler struct {
	BaseHandler
	dashboardService *reportapp.DashboardService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(dashboardService *reportapp.DashboardService) *ReportHandler {
	return &ReportHandler{dashboardService: dashboardService}
}

// Dashboard handles GET /reports/dashboard
func (h *ReportHandler) Dashboard(c *gin.Context) {
	stats, err := h.dashboardService.GetDashboard(c.Request.Context(), c.Query("date"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// RouteDelivery handles GET /reports/route-delivery
func (h *ReportHandler) RouteDelivery(c *gin.Context) {
	summaries, err := h.dashboardService.GetRouteDeliverySummaries(c.Request.Context(), c.Query("date"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summaries)
}

// Production handles GET /reports/production
func (h *ReportHandler) Production(c *gin.Context) {
	rows, err := h.dashboardService.GetProductionSummary(c.Request.Context(), c.Query("date"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// Outstanding handles GET /reports/outstanding
func (h *ReportHandler) Outstanding(c *gin.Context) {
	rows, err := h.dashboardService.GetOutstandingReport(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// RevenueTrend handles GET /reports/revenue-trend
func (h *ReportHandler) RevenueTrend(c *gin.Context) {
	points, err := h.dashboardService.GetRevenueTrend(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, points)
}
