package partner

import (
	"context"

	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared"
	"github.com/google/uuid"
)

// RouteRepository defines the persistence interface for delivery routes
type RouteRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Route, error)
	FindByName(ctx context.Context, name string) (*Route, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Route, error)
	FindActive(ctx context.Context, filter shared.Filter) ([]Route, error)
	Save(ctx context.Context, route *Route) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}
