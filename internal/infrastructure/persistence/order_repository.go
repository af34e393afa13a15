package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dishankgupta/milk-subs-sub005/internal/domain/delivery"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

var _ delivery.OrderRepository = (*GormOrderRepository)(nil)

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*delivery.Order, error) {
	var order delivery.Order
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll finds all orders matching the filter
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]delivery.Order, error) {
	var orders []delivery.Order
	query := r.applyFilter(r.db.WithContext(ctx).Model(&delivery.Order{}), filter)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByDate finds orders for a delivery date
func (r *GormOrderRepository) FindByDate(ctx context.Context, date time.Time, filter shared.Filter) ([]delivery.Order, error) {
	var orders []delivery.Order
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&delivery.Order{}).Where("order_date = ?", date),
		filter,
	)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByRouteAndDate finds orders on a route for a delivery date
func (r *GormOrderRepository) FindByRouteAndDate(ctx context.Context, routeID uuid.UUID, date time.Time, filter shared.Filter) ([]delivery.Order, error) {
	var orders []delivery.Order
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&delivery.Order{}).
			Where("route_id = ? AND order_date = ?", routeID, date),
		filter,
	)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByCustomerAndDateRange finds a customer's orders within the inclusive window
func (r *GormOrderRepository) FindByCustomerAndDateRange(ctx context.Context, customerID uuid.UUID, from, to time.Time) ([]delivery.Order, error) {
	var orders []delivery.Order
	if err := r.db.WithContext(ctx).
		Where("customer_id = ? AND order_date BETWEEN ? AND ?", customerID, from, to).
		Order("order_date ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindDeliveredUnbilled finds a customer's delivered orders in the
// window that have not yet been attached to an invoice
func (r *GormOrderRepository) FindDeliveredUnbilled(ctx context.Context, customerID uuid.UUID, from, to time.Time) ([]delivery.Order, error) {
	var orders []delivery.Order
	if err := r.db.WithContext(ctx).
		Where("customer_id = ? AND status = ? AND invoice_id IS NULL AND order_date BETWEEN ? AND ?",
			customerID, delivery.OrderStatusDelivered, from, to).
		Order("order_date ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// ExistsForDate reports whether any orders exist for the date
func (r *GormOrderRepository) ExistsForDate(ctx context.Context, date time.Time) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&delivery.Order{}).
		Where("order_date = ?", date).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates an order
func (r *GormOrderRepository) Save(ctx context.Context, order *delivery.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

// SaveBatch creates or updates multiple orders
func (r *GormOrderRepository) SaveBatch(ctx context.Context, orders []*delivery.Order) error {
	if len(orders) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Save(orders).Error
}

// DeleteGeneratedByDate removes not-yet-delivered orders for a date,
// for regeneration. Delivered and cancelled orders are left alone.
func (r *GormOrderRepository) DeleteGeneratedByDate(ctx context.Context, date time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("order_date = ? AND status = ?", date, delivery.OrderStatusGenerated).
		Delete(&delivery.Order{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&delivery.Order{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatusAndDate counts orders with the given status for a date
func (r *GormOrderRepository) CountByStatusAndDate(ctx context.Context, status delivery.OrderStatus, date time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&delivery.Order{}).
		Where("status = ? AND order_date = ?", status, date).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumDeliveredAmountByDateRange totals delivered order amounts within the window
func (r *GormOrderRepository) SumDeliveredAmountByDateRange(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Model(&delivery.Order{}).
		Select("SUM(total_amount)").
		Where("status = ? AND order_date BETWEEN ? AND ?", delivery.OrderStatusDelivered, from, to).
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)
	query = applySort(query, filter, OrderSortFields, "order_date")
	return applyPagination(query, filter)
}

func (r *GormOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		case "product_id":
			query = query.Where("product_id = ?", value)
		case "route_id":
			query = query.Where("route_id = ?", value)
		case "delivery_time":
			query = query.Where("delivery_time = ?", value)
		}
	}
	return query
}
