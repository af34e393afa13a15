package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/trade"
)

// GormModificationRepository implements ModificationRepository using GORM
type GormModificationRepository struct {
	db *gorm.DB
}

var _ trade.ModificationRepository = (*GormModificationRepository)(nil)

// NewGormModificationRepository creates a new GormModificationRepository
func NewGormModificationRepository(db *gorm.DB) *GormModificationRepository {
	return &GormModificationRepository{db: db}
}

// FindByID finds a modification by its ID
func (r *GormModificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Modification, error) {
	var mod trade.Modification
	if err := r.db.WithContext(ctx).First(&mod, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &mod, nil
}

// FindAll finds all modifications matching the filter
func (r *GormModificationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Modification, error) {
	var mods []trade.Modification
	query := r.applyFilter(r.db.WithContext(ctx).Model(&trade.Modification{}), filter)

	if err := query.Find(&mods).Error; err != nil {
		return nil, err
	}
	return mods, nil
}

// FindByCustomer finds modifications for a customer
func (r *GormModificationRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]trade.Modification, error) {
	var mods []trade.Modification
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&trade.Modification{}).Where("customer_id = ?", customerID),
		filter,
	)

	if err := query.Find(&mods).Error; err != nil {
		return nil, err
	}
	return mods, nil
}

// FindActiveForDate finds active modifications whose window covers the date
func (r *GormModificationRepository) FindActiveForDate(ctx context.Context, date time.Time) ([]trade.Modification, error) {
	var mods []trade.Modification
	if err := r.db.WithContext(ctx).
		Where("status = ? AND start_date <= ? AND end_date >= ?", trade.ModificationStatusActive, date, date).
		Find(&mods).Error; err != nil {
		return nil, err
	}
	return mods, nil
}

// FindActiveForCustomerAndDate finds a customer's active modifications covering the date
func (r *GormModificationRepository) FindActiveForCustomerAndDate(ctx context.Context, customerID uuid.UUID, date time.Time) ([]trade.Modification, error) {
	var mods []trade.Modification
	if err := r.db.WithContext(ctx).
		Where("customer_id = ? AND status = ? AND start_date <= ? AND end_date >= ?",
			customerID, trade.ModificationStatusActive, date, date).
		Find(&mods).Error; err != nil {
		return nil, err
	}
	return mods, nil
}

// FindOverlapping finds a customer's active modifications for a product
// whose window intersects [start, end]
func (r *GormModificationRepository) FindOverlapping(ctx context.Context, customerID, productID uuid.UUID, start, end time.Time) ([]trade.Modification, error) {
	var mods []trade.Modification
	if err := r.db.WithContext(ctx).
		Where("customer_id = ? AND product_id = ? AND status = ? AND start_date <= ? AND end_date >= ?",
			customerID, productID, trade.ModificationStatusActive, end, start).
		Find(&mods).Error; err != nil {
		return nil, err
	}
	return mods, nil
}

// Save creates or updates a modification
func (r *GormModificationRepository) Save(ctx context.Context, mod *trade.Modification) error {
	return r.db.WithContext(ctx).Save(mod).Error
}

// SaveBatch creates or updates multiple modifications
func (r *GormModificationRepository) SaveBatch(ctx context.Context, mods []*trade.Modification) error {
	if len(mods) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Save(mods).Error
}

// Delete deletes a modification
func (r *GormModificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&trade.Modification{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts modifications matching the filter
func (r *GormModificationRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&trade.Modification{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormModificationRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)
	query = applySort(query, filter, ModificationSortFields, "start_date")
	return applyPagination(query, filter)
}

func (r *GormModificationRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
