package partner

import (
	"context"

	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerRepository defines the persistence interface for customers
type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Customer, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)
	FindByRoute(ctx context.Context, routeID uuid.UUID, filter shared.Filter) ([]Customer, error)
	FindByStatus(ctx context.Context, status CustomerStatus, filter shared.Filter) ([]Customer, error)
	FindActive(ctx context.Context, filter shared.Filter) ([]Customer, error)
	Save(ctx context.Context, customer *Customer) error
	SaveWithLock(ctx context.Context, customer *Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByStatus(ctx context.Context, status CustomerStatus) (int64, error)
	CountByRoute(ctx context.Context, routeID uuid.UUID) (int64, error)
	ExistsByBillingName(ctx context.Context, billingName string) (bool, error)
}
