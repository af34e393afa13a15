package catalog

import (
	"time"

	"github.com/dishankgupta/milk-subs-sub005/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Code                 string          `json:"code" binding:"required,min=1,max=20"`
	Name                 string          `json:"name" binding:"required,min=1,max=200"`
	CurrentPrice         decimal.Decimal `json:"current_price" binding:"required"`
	UnitOfMeasure        string          `json:"unit_of_measure" binding:"required,max=20"`
	GSTRate              decimal.Decimal `json:"gst_rate"`
	GSTInclusive         *bool           `json:"gst_inclusive"`
	SubscriptionEligible bool            `json:"subscription_eligible"`
	SortOrder            int             `json:"sort_order"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name                 *string          `json:"name" binding:"omitempty,min=1,max=200"`
	UnitOfMeasure        *string          `json:"unit_of_measure" binding:"omitempty,max=20"`
	CurrentPrice         *decimal.Decimal `json:"current_price"`
	GSTRate              *decimal.Decimal `json:"gst_rate"`
	GSTInclusive         *bool            `json:"gst_inclusive"`
	SubscriptionEligible *bool            `json:"subscription_eligible"`
	SortOrder            *int             `json:"sort_order"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID                   uuid.UUID       `json:"id"`
	Code                 string          `json:"code"`
	Name                 string          `json:"name"`
	CurrentPrice         decimal.Decimal `json:"current_price"`
	UnitOfMeasure        string          `json:"unit_of_measure"`
	GSTRate              decimal.Decimal `json:"gst_rate"`
	GSTInclusive         bool            `json:"gst_inclusive"`
	SubscriptionEligible bool            `json:"subscription_eligible"`
	Status               string          `json:"status"`
	SortOrder            int             `json:"sort_order"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
	Version              int             `json:"version"`
}

// ProductListFilter represents filter options for product list
type ProductListFilter struct {
	Search               string `form:"search"`
	Status               string `form:"status" binding:"omitempty,oneof=active inactive"`
	SubscriptionEligible *bool  `form:"subscription_eligible"`
	Page                 int    `form:"page" binding:"omitempty,min=1"`
	PageSize             int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy              string `form:"order_by"`
	OrderDir             string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:                   p.ID,
		Code:                 p.Code,
		Name:                 p.Name,
		CurrentPrice:         p.CurrentPrice,
		UnitOfMeasure:        p.UnitOfMeasure,
		GSTRate:              p.GSTRate,
		GSTInclusive:         p.GSTInclusive,
		SubscriptionEligible: p.SubscriptionEligible,
		Status:               string(p.Status),
		SortOrder:            p.SortOrder,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
		Version:              p.Version,
	}
}

// ToProductResponses converts a slice of domain Products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
