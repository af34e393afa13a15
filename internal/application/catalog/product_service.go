package catalog

import (
	"context"
	"fmt"

	"github.com/dishankgupta/milk-subs-sub005/internal/domain/catalog"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductService handles product catalog business logic
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	exists, err := s.productRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to check product code: %w", err)
	}
	if exists {
		return nil, shared.NewDomainError("DUPLICATE_PRODUCT_CODE", "A product with this code already exists")
	}

	product, err := catalog.NewProduct(req.Code, req.Name, req.CurrentPrice, req.UnitOfMeasure, req.GSTRate)
	if err != nil {
		return nil, err
	}

	if req.GSTInclusive != nil && !*req.GSTInclusive {
		if err := product.SetGST(req.GSTRate, false); err != nil {
			return nil, err
		}
	}
	if req.SubscriptionEligible {
		product.SetSubscriptionEligible(true)
	}
	if req.SortOrder != 0 {
		product.SetSortOrder(req.SortOrder)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// GetProductByCode retrieves a product by its short code
func (s *ProductService) GetProductByCode(ctx context.Context, code string) (*ProductResponse, error) {
	product, err := s.productRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// UpdateProduct updates an existing product
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.UnitOfMeasure != nil {
		name := product.Name
		uom := product.UnitOfMeasure
		if req.Name != nil {
			name = *req.Name
		}
		if req.UnitOfMeasure != nil {
			uom = *req.UnitOfMeasure
		}
		if err := product.Update(name, uom); err != nil {
			return nil, err
		}
	}

	if req.CurrentPrice != nil {
		if err := product.SetPrice(*req.CurrentPrice); err != nil {
			return nil, err
		}
	}

	if req.GSTRate != nil || req.GSTInclusive != nil {
		rate := product.GSTRate
		inclusive := product.GSTInclusive
		if req.GSTRate != nil {
			rate = *req.GSTRate
		}
		if req.GSTInclusive != nil {
			inclusive = *req.GSTInclusive
		}
		if err := product.SetGST(rate, inclusive); err != nil {
			return nil, err
		}
	}

	if req.SubscriptionEligible != nil {
		product.SetSubscriptionEligible(*req.SubscriptionEligible)
	}
	if req.SortOrder != nil {
		product.SetSortOrder(*req.SortOrder)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	response := ToProductResponse(product)
	return &response, nil
}

// ActivateProduct activates a product
func (s *ProductService) ActivateProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := product.Activate(); err != nil {
		return err
	}
	return s.productRepo.Save(ctx, product)
}

// DeactivateProduct deactivates a product
func (s *ProductService) DeactivateProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := product.Deactivate(); err != nil {
		return err
	}
	return s.productRepo.Save(ctx, product)
}

// ListProducts returns products matching the filter
func (s *ProductService) ListProducts(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Search:   filter.Search,
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Filters:  make(map[string]interface{}),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.SubscriptionEligible != nil {
		domainFilter.Filters["subscription_eligible"] = *filter.SubscriptionEligible
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	return ToProductResponses(products), total, nil
}
