package persistence

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dishankgupta/milk-subs-sub005/internal/domain/report"
)

// GormDashboardRepository implements DashboardRepository with aggregate
// SQL over the write-side tables
type GormDashboardRepository struct {
	db *gorm.DB
}

var _ report.DashboardRepository = (*GormDashboardRepository)(nil)

// NewGormDashboardRepository creates a new GormDashboardRepository
func NewGormDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// GetDashboardStats returns the landing dashboard numbers for a date
func (r *GormDashboardRepository) GetDashboardStats(ctx context.Context, date time.Time) (*report.DashboardStats, error) {
	stats := &report.DashboardStats{Date: date}
	db := r.db.WithContext(ctx)

	if err := db.Table("customers").
		Where("status = ?", "active").
		Count(&stats.ActiveCustomers).Error; err != nil {
		return nil, err
	}

	if err := db.Table("base_subscriptions").
		Where("status = ?", "active").
		Count(&stats.ActiveSubscriptions).Error; err != nil {
		return nil, err
	}

	type orderCounts struct {
		Generated int64
		Delivered int64
	}
	var oc orderCounts
	if err := db.Table("daily_orders").
		Select(`
			COUNT(*) as generated,
			COUNT(*) FILTER (WHERE status = 'delivered') as delivered
		`).
		Where("order_date = ?", date).
		Scan(&oc).Error; err != nil {
		return nil, err
	}
	stats.OrdersGenerated = oc.Generated
	stats.OrdersDelivered = oc.Delivered

	type amountRow struct {
		Total decimal.Decimal
	}
	var saleAmount amountRow
	if err := db.Table("sales").
		Select("COALESCE(SUM(total_amount), 0) as total").
		Where("sale_date = ? AND status <> ?", date, "cancelled").
		Scan(&saleAmount).Error; err != nil {
		return nil, err
	}
	stats.TodaysSaleAmount = saleAmount.Total

	var paymentAmount amountRow
	if err := db.Table("payments").
		Select("COALESCE(SUM(amount), 0) as total").
		Where("payment_date = ? AND status = ?", date, "active").
		Scan(&paymentAmount).Error; err != nil {
		return nil, err
	}
	stats.TodaysPaymentAmount = paymentAmount.Total

	var outstanding amountRow
	if err := db.Table("invoices").
		Select("COALESCE(SUM(total_amount - amount_paid), 0) as total").
		Where("status IN ?", []string{"pending", "partial"}).
		Scan(&outstanding).Error; err != nil {
		return nil, err
	}
	stats.TotalOutstanding = outstanding.Total

	monthStart := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	var monthRevenue amountRow
	if err := db.Table("daily_orders").
		Select("COALESCE(SUM(total_amount), 0) as total").
		Where("status = ? AND order_date BETWEEN ? AND ?", "delivered", monthStart, date).
		Scan(&monthRevenue).Error; err != nil {
		return nil, err
	}
	var monthSales amountRow
	if err := db.Table("sales").
		Select("COALESCE(SUM(total_amount), 0) as total").
		Where("status <> ? AND sale_date BETWEEN ? AND ?", "cancelled", monthStart, date).
		Scan(&monthSales).Error; err != nil {
		return nil, err
	}
	stats.MonthRevenue = monthRevenue.Total.Add(monthSales.Total)

	return stats, nil
}

// GetRouteDeliverySummaries returns per-route delivery progress for a date
func (r *GormDashboardRepository) GetRouteDeliverySummaries(ctx context.Context, date time.Time) ([]report.RouteDeliverySummary, error) {
	var rows []report.RouteDeliverySummary
	if err := r.db.WithContext(ctx).
		Table("routes rt").
		Select(`
			rt.id as route_id,
			rt.name as route_name,
			rt.personnel_name,
			COUNT(o.id) as order_count,
			COUNT(o.id) FILTER (WHERE o.status = 'delivered') as delivered_count,
			COALESCE(SUM(o.planned_quantity), 0) as total_quantity,
			COALESCE(SUM(o.total_amount) FILTER (WHERE o.status = 'delivered'), 0) as total_amount
		`).
		Joins("LEFT JOIN daily_orders o ON o.route_id = rt.id AND o.order_date = ? AND o.status <> 'cancelled'", date).
		Where("rt.status = ?", "active").
		Group("rt.id, rt.name, rt.personnel_name, rt.sort_order").
		Order("rt.sort_order ASC, rt.name ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetProductionSummary returns the per-product quantity plan for a date,
// split by delivery time
func (r *GormDashboardRepository) GetProductionSummary(ctx context.Context, date time.Time) ([]report.ProductionSummaryRow, error) {
	var rows []report.ProductionSummaryRow
	if err := r.db.WithContext(ctx).
		Table("daily_orders o").
		Select(`
			p.id as product_id,
			p.code as product_code,
			p.name as product_name,
			o.delivery_time,
			SUM(o.planned_quantity) as total_quantity,
			p.unit_of_measure
		`).
		Joins("JOIN products p ON p.id = o.product_id").
		Where("o.order_date = ? AND o.status <> ?", date, "cancelled").
		Group("p.id, p.code, p.name, o.delivery_time, p.unit_of_measure, p.sort_order").
		Order("p.sort_order ASC, p.code ASC, o.delivery_time ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetOutstandingReport returns every customer's dues position. Net
// outstanding is opening balance plus open invoice remainder minus any
// unallocated payments.
func (r *GormDashboardRepository) GetOutstandingReport(ctx context.Context) ([]report.OutstandingRow, error) {
	var rows []report.OutstandingRow
	if err := r.db.WithContext(ctx).
		Table("customers c").
		Select(`
			c.id as customer_id,
			c.billing_name,
			c.phone_primary,
			rt.name as route_name,
			c.opening_balance,
			COALESCE(inv.outstanding, 0) as invoice_outstanding,
			COALESCE(pay.unallocated, 0) as unallocated_paid,
			c.opening_balance + COALESCE(inv.outstanding, 0) - COALESCE(pay.unallocated, 0) as net_outstanding
		`).
		Joins("JOIN routes rt ON rt.id = c.route_id").
		Joins(`LEFT JOIN (
			SELECT customer_id, SUM(total_amount - amount_paid) as outstanding
			FROM invoices
			WHERE status IN ('pending', 'partial')
			GROUP BY customer_id
		) inv ON inv.customer_id = c.id`).
		Joins(`LEFT JOIN (
			SELECT p.customer_id,
			       SUM(p.amount) - COALESCE(SUM(alloc.allocated), 0) as unallocated
			FROM payments p
			LEFT JOIN LATERAL (
				SELECT SUM((a->>'amount')::numeric) as allocated
				FROM jsonb_array_elements(p.allocations) a
			) alloc ON true
			WHERE p.status = 'active'
			GROUP BY p.customer_id
		) pay ON pay.customer_id = c.id`).
		Where("c.status = ?", "active").
		Order("net_outstanding DESC, c.billing_name ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetRevenueTrend returns per-day delivery, sale and payment totals for
// the inclusive window
func (r *GormDashboardRepository) GetRevenueTrend(ctx context.Context, from, to time.Time) ([]report.RevenueTrendPoint, error) {
	var rows []report.RevenueTrendPoint
	if err := r.db.WithContext(ctx).Raw(`
		SELECT d.date,
		       COALESCE(o.amount, 0) as delivery_amount,
		       COALESCE(s.amount, 0) as sale_amount,
		       COALESCE(p.amount, 0) as payment_amount
		FROM generate_series(?::date, ?::date, '1 day') as d(date)
		LEFT JOIN (
			SELECT order_date, SUM(total_amount) as amount
			FROM daily_orders WHERE status = 'delivered'
			GROUP BY order_date
		) o ON o.order_date = d.date
		LEFT JOIN (
			SELECT sale_date, SUM(total_amount) as amount
			FROM sales WHERE status <> 'cancelled'
			GROUP BY sale_date
		) s ON s.sale_date = d.date
		LEFT JOIN (
			SELECT payment_date, SUM(amount) as amount
			FROM payments WHERE status = 'active'
			GROUP BY payment_date
		) p ON p.payment_date = d.date
		ORDER BY d.date
	`, from, to).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
