package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/subscription"
)

// GormSubscriptionRepository implements subscription.Repository using GORM
type GormSubscriptionRepository struct {
	db *gorm.DB
}

var _ subscription.Repository = (*GormSubscriptionRepository)(nil)

// NewGormSubscriptionRepository creates a new GormSubscriptionRepository
func NewGormSubscriptionRepository(db *gorm.DB) *GormSubscriptionRepository {
	return &GormSubscriptionRepository{db: db}
}

// FindByID finds a subscription by its ID
func (r *GormSubscriptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*subscription.Subscription, error) {
	var sub subscription.Subscription
	if err := r.db.WithContext(ctx).First(&sub, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// FindAll finds all subscriptions matching the filter
func (r *GormSubscriptionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]subscription.Subscription, error) {
	var subs []subscription.Subscription
	query := r.applyFilter(r.db.WithContext(ctx).Model(&subscription.Subscription{}), filter)

	if err := query.Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// FindByCustomer finds subscriptions belonging to a customer
func (r *GormSubscriptionRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]subscription.Subscription, error) {
	var subs []subscription.Subscription
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&subscription.Subscription{}).Where("customer_id = ?", customerID),
		filter,
	)

	if err := query.Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// FindByProduct finds subscriptions for a product
func (r *GormSubscriptionRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]subscription.Subscription, error) {
	var subs []subscription.Subscription
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&subscription.Subscription{}).Where("product_id = ?", productID),
		filter,
	)

	if err := query.Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// FindActive finds all active subscriptions
func (r *GormSubscriptionRepository) FindActive(ctx context.Context, filter shared.Filter) ([]subscription.Subscription, error) {
	var subs []subscription.Subscription
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&subscription.Subscription{}).Where("status = ?", subscription.StatusActive),
		filter,
	)

	if err := query.Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// FindByCustomerAndProduct finds the subscription a customer holds for a product
func (r *GormSubscriptionRepository) FindByCustomerAndProduct(ctx context.Context, customerID, productID uuid.UUID) (*subscription.Subscription, error) {
	var sub subscription.Subscription
	if err := r.db.WithContext(ctx).
		Where("customer_id = ? AND product_id = ?", customerID, productID).
		First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// Save creates or updates a subscription
func (r *GormSubscriptionRepository) Save(ctx context.Context, sub *subscription.Subscription) error {
	return r.db.WithContext(ctx).Save(sub).Error
}

// Delete deletes a subscription
func (r *GormSubscriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&subscription.Subscription{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts subscriptions matching the filter
func (r *GormSubscriptionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&subscription.Subscription{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts subscriptions with the given status
func (r *GormSubscriptionRepository) CountByStatus(ctx context.Context, status subscription.Status) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&subscription.Subscription{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormSubscriptionRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)
	query = applySort(query, filter, SubscriptionSortFields, "created_at")
	return applyPagination(query, filter)
}

func (r *GormSubscriptionRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "type":
			query = query.Where("type = ?", value)
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		case "product_id":
			query = query.Where("product_id = ?", value)
		}
	}
	return query
}
