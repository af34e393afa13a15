package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dishankgupta/milk-subs-sub005/internal/domain/catalog"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/partner"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared/format"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/subscription"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service handles subscription business logic
type Service struct {
	subscriptionRepo subscription.Repository
	customerRepo     partner.CustomerRepository
	productRepo      catalog.ProductRepository
}

// NewService creates a new subscription service
func NewService(subscriptionRepo subscription.Repository, customerRepo partner.CustomerRepository, productRepo catalog.ProductRepository) *Service {
	return &Service{
		subscriptionRepo: subscriptionRepo,
		customerRepo:     customerRepo,
		productRepo:      productRepo,
	}
}

// CreateSubscription creates a new daily or pattern subscription
func (s *Service) CreateSubscription(ctx context.Context, req CreateSubscriptionRequest) (*SubscriptionResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	if !customer.IsActive() {
		return nil, shared.NewDomainError("CUSTOMER_INACTIVE", "Cannot create a subscription for an inactive customer")
	}

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	if !product.IsActive() {
		return nil, shared.NewDomainError("PRODUCT_INACTIVE", "Cannot subscribe to an inactive product")
	}
	if !product.SubscriptionEligible {
		return nil, shared.NewDomainError("PRODUCT_NOT_ELIGIBLE", "Product is not available for subscription")
	}

	existing, err := s.subscriptionRepo.FindByCustomerAndProduct(ctx, req.CustomerID, req.ProductID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing subscription: %w", err)
	}
	if existing != nil {
		return nil, shared.NewDomainError("DUPLICATE_SUBSCRIPTION", "Customer already has a subscription for this product")
	}

	var sub *subscription.Subscription
	switch subscription.Type(req.Type) {
	case subscription.TypeDaily:
		if req.DailyQuantity == nil {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Daily quantity is required for daily subscriptions")
		}
		sub, err = subscription.NewDailySubscription(req.CustomerID, req.ProductID, *req.DailyQuantity)
	case subscription.TypePattern:
		if req.PatternDay1Qty == nil || req.PatternDay2Qty == nil {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Both pattern day quantities are required for pattern subscriptions")
		}
		if req.PatternStartDate == "" {
			return nil, shared.NewDomainError("INVALID_START_DATE", "Pattern start date is required")
		}
		var startDate time.Time
		startDate, err = format.ParseDate(req.PatternStartDate)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_START_DATE", "Pattern start date must be in YYYY-MM-DD format")
		}
		sub, err = subscription.NewPatternSubscription(req.CustomerID, req.ProductID, *req.PatternDay1Qty, *req.PatternDay2Qty, startDate)
	default:
		return nil, shared.NewDomainError("INVALID_TYPE", "Subscription type must be daily or pattern")
	}
	if err != nil {
		return nil, err
	}

	if err := s.subscriptionRepo.Save(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to save subscription: %w", err)
	}

	response := ToSubscriptionResponse(sub)
	return &response, nil
}

// GetSubscription retrieves a subscription by ID
func (s *Service) GetSubscription(ctx context.Context, id uuid.UUID) (*SubscriptionResponse, error) {
	sub, err := s.subscriptionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToSubscriptionResponse(sub)
	return &response, nil
}

// UpdateSubscription updates a subscription's quantities
func (s *Service) UpdateSubscription(ctx context.Context, id uuid.UUID, req UpdateSubscriptionRequest) (*SubscriptionResponse, error) {
	sub, err := s.subscriptionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch sub.Type {
	case subscription.TypeDaily:
		if req.DailyQuantity != nil {
			if err := sub.UpdateDailyQuantity(*req.DailyQuantity); err != nil {
				return nil, err
			}
		}
	case subscription.TypePattern:
		if req.PatternDay1Qty != nil || req.PatternDay2Qty != nil || req.PatternStartDate != nil {
			day1 := sub.PatternDay1Qty
			day2 := sub.PatternDay2Qty
			startDate := time.Time{}
			if sub.PatternStartDate != nil {
				startDate = *sub.PatternStartDate
			}
			if req.PatternDay1Qty != nil {
				day1 = *req.PatternDay1Qty
			}
			if req.PatternDay2Qty != nil {
				day2 = *req.PatternDay2Qty
			}
			if req.PatternStartDate != nil {
				startDate, err = format.ParseDate(*req.PatternStartDate)
				if err != nil {
					return nil, shared.NewDomainError("INVALID_START_DATE", "Pattern start date must be in YYYY-MM-DD format")
				}
			}
			if err := sub.UpdatePattern(day1, day2, startDate); err != nil {
				return nil, err
			}
		}
	}

	if err := s.subscriptionRepo.Save(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to save subscription: %w", err)
	}

	response := ToSubscriptionResponse(sub)
	return &response, nil
}

// ActivateSubscription resumes a paused subscription
func (s *Service) ActivateSubscription(ctx context.Context, id uuid.UUID) error {
	sub, err := s.subscriptionRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := sub.Activate(); err != nil {
		return err
	}
	return s.subscriptionRepo.Save(ctx, sub)
}

// DeactivateSubscription pauses a subscription
func (s *Service) DeactivateSubscription(ctx context.Context, id uuid.UUID) error {
	sub, err := s.subscriptionRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := sub.Deactivate(); err != nil {
		return err
	}
	return s.subscriptionRepo.Save(ctx, sub)
}

// DeleteSubscription removes a subscription
func (s *Service) DeleteSubscription(ctx context.Context, id uuid.UUID) error {
	if _, err := s.subscriptionRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.subscriptionRepo.Delete(ctx, id)
}

// ListSubscriptions returns subscriptions matching the filter
func (s *Service) ListSubscriptions(ctx context.Context, filter SubscriptionListFilter) ([]SubscriptionResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Filters:  make(map[string]interface{}),
	}
	if filter.CustomerID != "" {
		domainFilter.Filters["customer_id"] = filter.CustomerID
	}
	if filter.ProductID != "" {
		domainFilter.Filters["product_id"] = filter.ProductID
	}
	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	subs, err := s.subscriptionRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	total, err := s.subscriptionRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count subscriptions: %w", err)
	}

	return ToSubscriptionResponses(subs), total, nil
}

// PreviewPattern returns the upcoming deliveries for a pattern subscription
func (s *Service) PreviewPattern(ctx context.Context, id uuid.UUID, req PatternPreviewRequest) ([]PatternPreviewEntryResponse, error) {
	sub, err := s.subscriptionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.Type != subscription.TypePattern || sub.PatternStartDate == nil {
		return nil, shared.NewDomainError("INVALID_TYPE", "Subscription is not a pattern subscription")
	}

	from := time.Now()
	if req.From != "" {
		from, err = format.ParseDate(req.From)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_DATE", "From date must be in YYYY-MM-DD format")
		}
	}
	days := req.Days
	if days <= 0 {
		days = 14
	}

	entries := subscription.PreviewPattern(*sub.PatternStartDate, from, days, sub.PatternDay1Qty, sub.PatternDay2Qty)
	return ToPatternPreviewResponses(entries), nil
}

// QuantityOn returns the quantity a subscription delivers on a given date
func (s *Service) QuantityOn(ctx context.Context, id uuid.UUID, date time.Time) (decimal.Decimal, error) {
	sub, err := s.subscriptionRepo.FindByID(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	return sub.QuantityFor(date), nil
}
