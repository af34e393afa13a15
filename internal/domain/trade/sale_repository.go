package trade

import (
	"context"
	"time"

	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleRepository defines the persistence interface for manual sales
type SaleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Sale, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Sale, error)
	FindByDateRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]Sale, error)
	FindUnbilledCredit(ctx context.Context, customerID uuid.UUID, upTo time.Time) ([]Sale, error)
	Save(ctx context.Context, sale *Sale) error
	SaveBatch(ctx context.Context, sales []*Sale) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	SumByTypeAndDateRange(ctx context.Context, saleType SaleType, from, to time.Time) (decimal.Decimal, error)
}

// ModificationRepository defines the persistence interface for subscription modifications
type ModificationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Modification, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Modification, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Modification, error)
	FindActiveForDate(ctx context.Context, date time.Time) ([]Modification, error)
	FindActiveForCustomerAndDate(ctx context.Context, customerID uuid.UUID, date time.Time) ([]Modification, error)
	FindOverlapping(ctx context.Context, customerID, productID uuid.UUID, start, end time.Time) ([]Modification, error)
	Save(ctx context.Context, mod *Modification) error
	SaveBatch(ctx context.Context, mods []*Modification) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
