package trade

import (
	"context"
	"fmt"
	"time"

	"github.com/dishankgupta/milk-subs-sub005/internal/domain/catalog"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/partner"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared/format"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/trade"
	"github.com/google/uuid"
)

// SaleService handles manual sale business logic
type SaleService struct {
	saleRepo     trade.SaleRepository
	customerRepo partner.CustomerRepository
	productRepo  catalog.ProductRepository
}

// NewSaleService creates a new sale service
func NewSaleService(saleRepo trade.SaleRepository, customerRepo partner.CustomerRepository, productRepo catalog.ProductRepository) *SaleService {
	return &SaleService{
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
	}
}

// RecordSale records a manual sale. Unit price defaults to the product's
// current price; the sale keeps the price it was recorded at.
func (s *SaleService) RecordSale(ctx context.Context, req CreateSaleRequest) (*SaleResponse, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	if !product.IsActive() {
		return nil, shared.NewDomainError("PRODUCT_INACTIVE", "Cannot sell an inactive product")
	}

	if trade.SaleType(req.Type) == trade.SaleTypeCredit {
		if req.CustomerID == nil || *req.CustomerID == uuid.Nil {
			return nil, shared.NewDomainError("CUSTOMER_REQUIRED", "Credit sales require a customer")
		}
		customer, err := s.customerRepo.FindByID(ctx, *req.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("failed to find customer: %w", err)
		}
		if !customer.IsActive() {
			return nil, shared.NewDomainError("CUSTOMER_INACTIVE", "Cannot record a credit sale for an inactive customer")
		}
	}

	unitPrice := product.CurrentPrice
	if req.UnitPrice != nil {
		unitPrice = *req.UnitPrice
	}

	saleDate := time.Now()
	if req.SaleDate != "" {
		saleDate, err = format.ParseDate(req.SaleDate)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_DATE", "Sale date must be in YYYY-MM-DD format")
		}
	}

	sale, err := trade.NewSale(req.CustomerID, req.ProductID, trade.SaleType(req.Type), req.Quantity, unitPrice, product.GSTRate, product.GSTInclusive, saleDate, req.Notes)
	if err != nil {
		return nil, err
	}

	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, fmt.Errorf("failed to save sale: %w", err)
	}

	response := ToSaleResponse(sale)
	return &response, nil
}

// GetSale retrieves a sale by ID
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

// CancelSale voids a sale. Billed sales cannot be cancelled.
func (s *SaleService) CancelSale(ctx context.Context, id uuid.UUID) error {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := sale.Cancel(); err != nil {
		return err
	}
	return s.saleRepo.Save(ctx, sale)
}

// ListSales returns sales matching the filter
func (s *SaleService) ListSales(ctx context.Context, filter SaleListFilter) ([]SaleResponse, int64, error) {
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

	if filter.FromDate != "" && filter.ToDate != "" {
		from, err := format.ParseDate(filter.FromDate)
		if err != nil {
			return nil, 0, shared.NewDomainError("INVALID_DATE", "From date must be in YYYY-MM-DD format")
		}
		to, err := format.ParseDate(filter.ToDate)
		if err != nil {
			return nil, 0, shared.NewDomainError("INVALID_DATE", "To date must be in YYYY-MM-DD format")
		}
		sales, err := s.saleRepo.FindByDateRange(ctx, from, to, domainFilter)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to list sales: %w", err)
		}
		total, err := s.saleRepo.Count(ctx, domainFilter)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to count sales: %w", err)
		}
		return ToSaleResponses(sales), total, nil
	}

	sales, err := s.saleRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list sales: %w", err)
	}
	total, err := s.saleRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count sales: %w", err)
	}

	return ToSaleResponses(sales), total, nil
}
