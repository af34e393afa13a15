package delivery

import (
	"context"
	"fmt"
	"time"

	"github.com/dishankgupta/milk-subs-sub005/internal/domain/catalog"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/delivery"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/partner"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared/format"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/subscription"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService handles daily order generation and delivery confirmation
type OrderService struct {
	orderRepo        delivery.OrderRepository
	subscriptionRepo subscription.Repository
	modificationRepo trade.ModificationRepository
	customerRepo     partner.CustomerRepository
	productRepo      catalog.ProductRepository
	logger           *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo delivery.OrderRepository,
	subscriptionRepo subscription.Repository,
	modificationRepo trade.ModificationRepository,
	customerRepo partner.CustomerRepository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:        orderRepo,
		subscriptionRepo: subscriptionRepo,
		modificationRepo: modificationRepo,
		customerRepo:     customerRepo,
		productRepo:      productRepo,
		logger:           logger,
	}
}

// GenerateOrders produces the daily orders for a date from active
// subscriptions, applying any active modifications covering that date.
// Generation is idempotent per date: it refuses to run twice unless
// Force is set, which replaces still-undelivered orders.
func (s *OrderService) GenerateOrders(ctx context.Context, req GenerateOrdersRequest) (*GenerateOrdersResponse, error) {
	date, err := format.ParseDate(req.Date)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_DATE", "Date must be in YYYY-MM-DD format")
	}

	exists, err := s.orderRepo.ExistsForDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing orders: %w", err)
	}

	var replaced int64
	if exists {
		if !req.Force {
			return nil, shared.NewDomainError("ORDERS_EXIST", "Orders for this date already exist; use force to regenerate")
		}
		replaced, err = s.orderRepo.DeleteGeneratedByDate(ctx, date)
		if err != nil {
			return nil, fmt.Errorf("failed to delete generated orders: %w", err)
		}
	}

	subs, err := s.subscriptionRepo.FindActive(ctx, shared.Filter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load active subscriptions: %w", err)
	}

	mods, err := s.modificationRepo.FindActiveForDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load modifications: %w", err)
	}
	modIndex := indexModifications(mods)

	customers, products, err := s.loadLookups(ctx, subs)
	if err != nil {
		return nil, err
	}

	orders := make([]*delivery.Order, 0, len(subs))
	skipped := 0
	for i := range subs {
		sub := &subs[i]

		customer, ok := customers[sub.CustomerID]
		if !ok || !customer.IsActive() {
			skipped++
			continue
		}
		product, ok := products[sub.ProductID]
		if !ok || !product.IsActive() {
			skipped++
			continue
		}

		qty := sub.QuantityFor(date)
		for _, mod := range modIndex[modKey{sub.CustomerID, sub.ProductID}] {
			qty = mod.Apply(qty)
		}
		if qty.IsZero() {
			skipped++
			continue
		}

		order, err := delivery.NewOrder(sub.CustomerID, sub.ProductID, customer.RouteID, date, string(customer.DeliveryTime), qty, product.CurrentPrice)
		if err != nil {
			s.logger.Warn("skipping order",
				zap.String("customer_id", sub.CustomerID.String()),
				zap.String("product_id", sub.ProductID.String()),
				zap.Error(err))
			skipped++
			continue
		}
		orders = append(orders, order)
	}

	if len(orders) > 0 {
		if err := s.orderRepo.SaveBatch(ctx, orders); err != nil {
			return nil, fmt.Errorf("failed to save orders: %w", err)
		}
	}

	s.logger.Info("generated daily orders",
		zap.String("date", req.Date),
		zap.Int("created", len(orders)),
		zap.Int("skipped", skipped),
		zap.Int64("replaced", replaced))

	return &GenerateOrdersResponse{
		Date:          req.Date,
		OrdersCreated: len(orders),
		Skipped:       skipped,
		Replaced:      replaced,
	}, nil
}

type modKey struct {
	customerID uuid.UUID
	productID  uuid.UUID
}

func indexModifications(mods []trade.Modification) map[modKey][]*trade.Modification {
	index := make(map[modKey][]*trade.Modification, len(mods))
	for i := range mods {
		key := modKey{mods[i].CustomerID, mods[i].ProductID}
		index[key] = append(index[key], &mods[i])
	}
	return index
}

func (s *OrderService) loadLookups(ctx context.Context, subs []subscription.Subscription) (map[uuid.UUID]*partner.Customer, map[uuid.UUID]*catalog.Product, error) {
	customerIDs := make([]uuid.UUID, 0, len(subs))
	productIDs := make([]uuid.UUID, 0, len(subs))
	seenCustomers := make(map[uuid.UUID]bool, len(subs))
	seenProducts := make(map[uuid.UUID]bool, len(subs))
	for i := range subs {
		if !seenCustomers[subs[i].CustomerID] {
			seenCustomers[subs[i].CustomerID] = true
			customerIDs = append(customerIDs, subs[i].CustomerID)
		}
		if !seenProducts[subs[i].ProductID] {
			seenProducts[subs[i].ProductID] = true
			productIDs = append(productIDs, subs[i].ProductID)
		}
	}

	customers := make(map[uuid.UUID]*partner.Customer, len(customerIDs))
	if len(customerIDs) > 0 {
		found, err := s.customerRepo.FindByIDs(ctx, customerIDs)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load customers: %w", err)
		}
		for i := range found {
			customers[found[i].ID] = &found[i]
		}
	}

	products := make(map[uuid.UUID]*catalog.Product, len(productIDs))
	if len(productIDs) > 0 {
		found, err := s.productRepo.FindByIDs(ctx, productIDs)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load products: %w", err)
		}
		for i := range found {
			products[found[i].ID] = &found[i]
		}
	}

	return customers, products, nil
}

// GetOrder retrieves an order by ID
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// ConfirmDelivery confirms an order with the actually delivered quantity
func (s *OrderService) ConfirmDelivery(ctx context.Context, id uuid.UUID, req ConfirmDeliveryRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	deliveredAt := time.Time{}
	if req.DeliveredAt != nil {
		deliveredAt = *req.DeliveredAt
	}
	if err := order.MarkDelivered(req.ActualQuantity, deliveredAt, req.DeliveryPerson, req.Notes); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// BulkConfirm marks many orders as delivered with their planned
// quantities. Failures are collected per order; the rest proceed.
func (s *OrderService) BulkConfirm(ctx context.Context, req BulkConfirmRequest) (*BulkConfirmResult, error) {
	result := &BulkConfirmResult{}
	now := time.Now()

	for _, id := range req.OrderIDs {
		order, err := s.orderRepo.FindByID(ctx, id)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, BulkOrderError{OrderID: id, Error: err.Error()})
			continue
		}
		if err := order.MarkDelivered(order.PlannedQuantity, now, req.DeliveryPerson, ""); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, BulkOrderError{OrderID: id, Error: err.Error()})
			continue
		}
		if err := s.orderRepo.Save(ctx, order); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, BulkOrderError{OrderID: id, Error: err.Error()})
			continue
		}
		result.Confirmed++
	}

	return result, nil
}

// CancelOrder voids a generated order before delivery
func (s *OrderService) CancelOrder(ctx context.Context, id uuid.UUID) error {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := order.Cancel(); err != nil {
		return err
	}
	return s.orderRepo.Save(ctx, order)
}

// ListOrders returns orders matching the filter
func (s *OrderService) ListOrders(ctx context.Context, filter OrderListFilter) ([]OrderResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Filters:  make(map[string]interface{}),
	}
	if filter.CustomerID != "" {
		domainFilter.Filters["customer_id"] = filter.CustomerID
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.DeliveryTime != "" {
		domainFilter.Filters["delivery_time"] = filter.DeliveryTime
	}

	if filter.Date != "" {
		date, err := format.ParseDate(filter.Date)
		if err != nil {
			return nil, 0, shared.NewDomainError("INVALID_DATE", "Date must be in YYYY-MM-DD format")
		}
		var orders []delivery.Order
		if filter.RouteID != "" {
			routeID, err := uuid.Parse(filter.RouteID)
			if err != nil {
				return nil, 0, shared.NewDomainError("INVALID_ROUTE", "Route must be a valid UUID")
			}
			orders, err = s.orderRepo.FindByRouteAndDate(ctx, routeID, date, domainFilter)
			if err != nil {
				return nil, 0, fmt.Errorf("failed to list orders: %w", err)
			}
		} else {
			orders, err = s.orderRepo.FindByDate(ctx, date, domainFilter)
			if err != nil {
				return nil, 0, fmt.Errorf("failed to list orders: %w", err)
			}
		}
		return ToOrderResponses(orders), int64(len(orders)), nil
	}

	if filter.RouteID != "" {
		domainFilter.Filters["route_id"] = filter.RouteID
	}
	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	return ToOrderResponses(orders), total, nil
}
