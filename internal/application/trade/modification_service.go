package trade

import (
	"context"
	"errors"
	"fmt"

	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared/format"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/subscription"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ModificationService handles temporary subscription change business logic
type ModificationService struct {
	modificationRepo trade.ModificationRepository
	subscriptionRepo subscription.Repository
}

// NewModificationService creates a new modification service
func NewModificationService(modificationRepo trade.ModificationRepository, subscriptionRepo subscription.Repository) *ModificationService {
	return &ModificationService{
		modificationRepo: modificationRepo,
		subscriptionRepo: subscriptionRepo,
	}
}

// CreateModification creates a temporary change against an existing
// subscription for the customer and product pair
func (s *ModificationService) CreateModification(ctx context.Context, req CreateModificationRequest) (*ModificationResponse, error) {
	sub, err := s.subscriptionRepo.FindByCustomerAndProduct(ctx, req.CustomerID, req.ProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("SUBSCRIPTION_NOT_FOUND", "Customer has no subscription for this product")
		}
		return nil, fmt.Errorf("failed to find subscription: %w", err)
	}
	if !sub.IsActive() {
		return nil, shared.NewDomainError("SUBSCRIPTION_INACTIVE", "Cannot modify an inactive subscription")
	}

	startDate, err := format.ParseDate(req.StartDate)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_DATE", "Start date must be in YYYY-MM-DD format")
	}
	endDate, err := format.ParseDate(req.EndDate)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_DATE", "End date must be in YYYY-MM-DD format")
	}

	quantityChange := decimal.Zero
	if req.QuantityChange != nil {
		quantityChange = *req.QuantityChange
	}

	mod, err := trade.NewModification(req.CustomerID, req.ProductID, trade.ModificationType(req.Type), startDate, endDate, quantityChange, req.Reason)
	if err != nil {
		return nil, err
	}

	overlapping, err := s.modificationRepo.FindOverlapping(ctx, req.CustomerID, req.ProductID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to check for overlapping modifications: %w", err)
	}
	if len(overlapping) > 0 {
		return nil, shared.NewDomainError("MODIFICATION_OVERLAP", "An active modification already covers part of this date range")
	}

	if err := s.modificationRepo.Save(ctx, mod); err != nil {
		return nil, fmt.Errorf("failed to save modification: %w", err)
	}

	response := ToModificationResponse(mod)
	return &response, nil
}

// GetModification retrieves a modification by ID
func (s *ModificationService) GetModification(ctx context.Context, id uuid.UUID) (*ModificationResponse, error) {
	mod, err := s.modificationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToModificationResponse(mod)
	return &response, nil
}

// CancelModification deactivates a modification for its remaining dates
func (s *ModificationService) CancelModification(ctx context.Context, id uuid.UUID) error {
	mod, err := s.modificationRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := mod.Cancel(); err != nil {
		return err
	}
	return s.modificationRepo.Save(ctx, mod)
}

// ListModifications returns modifications matching the filter
func (s *ModificationService) ListModifications(ctx context.Context, filter ModificationListFilter) ([]ModificationResponse, int64, error) {
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

	mods, err := s.modificationRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list modifications: %w", err)
	}
	total, err := s.modificationRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count modifications: %w", err)
	}

	return ToModificationResponses(mods), total, nil
}
