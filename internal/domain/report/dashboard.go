package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DashboardStats is a read model for the landing dashboard
// This is a CQRS read model optimized for querying
type DashboardStats struct {
	Date                time.Time       `json:"date"`
	ActiveCustomers     int64           `json:"active_customers"`
	ActiveSubscriptions int64           `json:"active_subscriptions"`
	OrdersGenerated     int64           `json:"orders_generated"`
	OrdersDelivered     int64           `json:"orders_delivered"`
	TodaysSaleAmount    decimal.Decimal `json:"todays_sale_amount"`
	TodaysPaymentAmount decimal.Decimal `json:"todays_payment_amount"`
	TotalOutstanding    decimal.Decimal `json:"total_outstanding"`
	MonthRevenue        decimal.Decimal `json:"month_revenue"`
}

// RouteDeliverySummary summarizes one route's deliveries for a date
type RouteDeliverySummary struct {
	RouteID        uuid.UUID       `json:"route_id"`
	RouteName      string          `json:"route_name"`
	PersonnelName  string          `json:"personnel_name"`
	OrderCount     int64           `json:"order_count"`
	DeliveredCount int64           `json:"delivered_count"`
	TotalQuantity  decimal.Decimal `json:"total_quantity"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
}

// ProductionSummaryRow totals the quantity needed per product for a
// date, for the morning production plan
type ProductionSummaryRow struct {
	ProductID     uuid.UUID       `json:"product_id"`
	ProductCode   string          `json:"product_code"`
	ProductName   string          `json:"product_name"`
	DeliveryTime  string          `json:"delivery_time"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	UnitOfMeasure string          `json:"unit_of_measure"`
}

// OutstandingRow is one customer's dues position
type OutstandingRow struct {
	CustomerID         uuid.UUID       `json:"customer_id"`
	BillingName        string          `json:"billing_name"`
	PhonePrimary       string          `json:"phone_primary"`
	RouteName          string          `json:"route_name"`
	OpeningBalance     decimal.Decimal `json:"opening_balance"`
	InvoiceOutstanding decimal.Decimal `json:"invoice_outstanding"`
	UnallocatedPaid    decimal.Decimal `json:"unallocated_paid"`
	NetOutstanding     decimal.Decimal `json:"net_outstanding"`
}

// RevenueTrendPoint is one day of the revenue trend
type RevenueTrendPoint struct {
	Date           time.Time       `json:"date"`
	DeliveryAmount decimal.Decimal `json:"delivery_amount"`
	SaleAmount     decimal.Decimal `json:"sale_amount"`
	PaymentAmount  decimal.Decimal `json:"payment_amount"`
}

// DashboardRepository provides the read-side queries for reports.
// Implementations run aggregate SQL directly rather than loading
// aggregates.
type DashboardRepository interface {
	GetDashboardStats(ctx context.Context, date time.Time) (*DashboardStats, error)
	GetRouteDeliverySummaries(ctx context.Context, date time.Time) ([]RouteDeliverySummary, error)
	GetProductionSummary(ctx context.Context, date time.Time) ([]ProductionSummaryRow, error)
	GetOutstandingReport(ctx context.Context) ([]OutstandingRow, error)
	GetRevenueTrend(ctx context.Context, from, to time.Time) ([]RevenueTrendPoint, error)
}
