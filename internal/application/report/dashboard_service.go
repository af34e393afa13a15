// Package report exposes the read-side dashboard and operational
// reports. Queries run against a dedicated read repository instead of
// the aggregates.
package report

import (
	"context"
	"time"

	"github.com/dishankgupta/milk-subs-sub005/internal/domain/report"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared/format"
)

// DashboardService serves the back-office dashboard and reports
type DashboardService struct {
	dashboardRepo report.DashboardRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(dashboardRepo report.DashboardRepository) *DashboardService {
	return &DashboardService{dashboardRepo: dashboardRepo}
}

// GetDashboard returns the landing dashboard for a date. An empty date
// means today.
func (s *DashboardService) GetDashboard(ctx context.Context, date string) (*report.DashboardStats, error) {
	day, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}
	return s.dashboardRepo.GetDashboardStats(ctx, day)
}

// GetRouteDeliverySummaries returns per-route delivery progress for a date
func (s *DashboardService) GetRouteDeliverySummaries(ctx context.Context, date string) ([]report.RouteDeliverySummary, error) {
	day, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}
	return s.dashboardRepo.GetRouteDeliverySummaries(ctx, day)
}

// GetProductionSummary returns per-product quantities needed for a
// date's deliveries
func (s *DashboardService) GetProductionSummary(ctx context.Context, date string) ([]report.ProductionSummaryRow, error) {
	day, err := s.resolveDate(date)
	if err != nil {
		return nil, err
	}
	return s.dashboardRepo.GetProductionSummary(ctx, day)
}

// GetOutstandingReport returns every customer's dues position
func (s *DashboardService) GetOutstandingReport(ctx context.Context) ([]report.OutstandingRow, error) {
	return s.dashboardRepo.GetOutstandingReport(ctx)
}

// GetRevenueTrend returns the daily revenue trend over a date range.
// Defaults to the last 30 days.
func (s *DashboardService) GetRevenueTrend(ctx context.Context, fromDate, toDate string) ([]report.RevenueTrendPoint, error) {
	to := time.Now()
	if toDate != "" {
		var err error
		to, err = format.ParseDate(toDate)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_DATE", "To date must be in YYYY-MM-DD format")
		}
	}
	from := to.AddDate(0, 0, -29)
	if fromDate != "" {
		var err error
		from, err = format.ParseDate(fromDate)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_DATE", "From date must be in YYYY-MM-DD format")
		}
	}
	if to.Before(from) {
		return nil, shared.NewDomainError("INVALID_DATE_RANGE", "To date cannot be before from date")
	}
	return s.dashboardRepo.GetRevenueTrend(ctx, from, to)
}

func (s *DashboardService) resolveDate(date string) (time.Time, error) {
	if date == "" {
		return time.Now(), nil
	}
	day, err := format.ParseDate(date)
	if err != nil {
		return time.Time{}, shared.NewDomainError("INVALID_DATE", "Date must be in YYYY-MM-DD format")
	}
	return day, nil
}
