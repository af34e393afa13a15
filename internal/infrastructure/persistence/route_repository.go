package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dishankgupta/milk-subs-sub005/internal/domain/partner"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared"
)

// GormRouteRepository implements RouteRepository using GORM
type GormRouteRepository struct {
	db *gorm.DB
}

var _ partner.RouteRepository = (*GormRouteRepository)(nil)

// NewGormRouteRepository creates a new GormRouteRepository
func NewGormRouteRepository(db *gorm.DB) *GormRouteRepository {
	return &GormRouteRepository{db: db}
}

// FindByID finds a route by its ID
func (r *GormRouteRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Route, error) {
	var route partner.Route
	if err := r.db.WithContext(ctx).First(&route, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &route, nil
}

// FindByName finds a route by its name
func (r *GormRouteRepository) FindByName(ctx context.Context, name string) (*partner.Route, error) {
	var route partner.Route
	if err := r.db.WithContext(ctx).First(&route, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &route, nil
}

// FindAll finds all routes matching the filter
func (r *GormRouteRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Route, error) {
	var routes []partner.Route
	query := r.applyFilter(r.db.WithContext(ctx).Model(&partner.Route{}), filter)

	if err := query.Find(&routes).Error; err != nil {
		return nil, err
	}
	return routes, nil
}

// FindActive finds all active routes
func (r *GormRouteRepository) FindActive(ctx context.Context, filter shared.Filter) ([]partner.Route, error) {
	var routes []partner.Route
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&partner.Route{}).Where("status = ?", partner.RouteStatusActive),
		filter,
	)

	if err := query.Find(&routes).Error; err != nil {
		return nil, err
	}
	return routes, nil
}

// Save creates or updates a route
func (r *GormRouteRepository) Save(ctx context.Context, route *partner.Route) error {
	return r.db.WithContext(ctx).Save(route).Error
}

// Delete deletes a route
func (r *GormRouteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&partner.Route{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts routes matching the filter
func (r *GormRouteRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&partner.Route{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByName checks if a route with the given name exists
func (r *GormRouteRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&partner.Route{}).
		Where("name = ?", name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRouteRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)
	query = applySort(query, filter, RouteSortFields, "sort_order")
	return applyPagination(query, filter)
}

func (r *GormRouteRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR personnel_name ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		}
	}

	return query
}
