package delivery

import (
	"context"
	"time"

	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderRepository defines the persistence interface for daily orders
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)
	FindByDate(ctx context.Context, date time.Time, filter shared.Filter) ([]Order, error)
	FindByRouteAndDate(ctx context.Context, routeID uuid.UUID, date time.Time, filter shared.Filter) ([]Order, error)
	FindByCustomerAndDateRange(ctx context.Context, customerID uuid.UUID, from, to time.Time) ([]Order, error)
	FindDeliveredUnbilled(ctx context.Context, customerID uuid.UUID, from, to time.Time) ([]Order, error)
	ExistsForDate(ctx context.Context, date time.Time) (bool, error)
	Save(ctx context.Context, order *Order) error
	SaveBatch(ctx context.Context, orders []*Order) error
	DeleteGeneratedByDate(ctx context.Context, date time.Time) (int64, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByStatusAndDate(ctx context.Context, status OrderStatus, date time.Time) (int64, error)
	SumDeliveredAmountByDateRange(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
}
