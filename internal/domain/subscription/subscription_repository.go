package subscription

import (
	"context"

	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines the persistence interface for subscriptions
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Subscription, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Subscription, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Subscription, error)
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]Subscription, error)
	FindActive(ctx context.Context, filter shared.Filter) ([]Subscription, error)
	FindByCustomerAndProduct(ctx context.Context, customerID, productID uuid.UUID) (*Subscription, error)
	Save(ctx context.Context, sub *Subscription) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByStatus(ctx context.Context, status Status) (int64, error)
}
