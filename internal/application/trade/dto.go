package trade

import (
	"time"

	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared/format"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Sale DTOs
// =============================================================================

// CreateSaleRequest represents a request to record a manual sale
type CreateSaleRequest struct {
	CustomerID *uuid.UUID       `json:"customer_id"` // Required for credit sales
	ProductID  uuid.UUID        `json:"product_id" binding:"required"`
	Type       string           `json:"type" binding:"required,oneof=cash credit qr"`
	Quantity   decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPrice  *decimal.Decimal `json:"unit_price"` // Defaults to the product's current price
	SaleDate   string           `json:"sale_date"`  // YYYY-MM-DD, defaults to today
	Notes      string           `json:"notes"`
}

// SaleResponse represents a sale in API responses
type SaleResponse struct {
	ID          uuid.UUID       `json:"id"`
	CustomerID  *uuid.UUID      `json:"customer_id,omitempty"`
	ProductID   uuid.UUID       `json:"product_id"`
	Type        string          `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	BaseAmount  decimal.Decimal `json:"base_amount"`
	GSTAmount   decimal.Decimal `json:"gst_amount"`
	GSTRate     decimal.Decimal `json:"gst_rate"`
	SaleDate    string          `json:"sale_date"`
	Status      string          `json:"status"`
	InvoiceID   *uuid.UUID      `json:"invoice_id,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// SaleListFilter represents filter options for sale list
type SaleListFilter struct {
	CustomerID string `form:"customer_id" binding:"omitempty,uuid"`
	ProductID  string `form:"product_id" binding:"omitempty,uuid"`
	Type       string `form:"type" binding:"omitempty,oneof=cash credit qr"`
	Status     string `form:"status" binding:"omitempty,oneof=completed billed cancelled"`
	FromDate   string `form:"from_date"`
	ToDate     string `form:"to_date"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ToSaleResponse converts a domain Sale to SaleResponse
func ToSaleResponse(s *trade.Sale) SaleResponse {
	return SaleResponse{
		ID:          s.ID,
		CustomerID:  s.CustomerID,
		ProductID:   s.ProductID,
		Type:        string(s.Type),
		Quantity:    s.Quantity,
		UnitPrice:   s.UnitPrice,
		TotalAmount: s.TotalAmount,
		BaseAmount:  s.BaseAmount,
		GSTAmount:   s.GSTAmount,
		GSTRate:     s.GSTRate,
		SaleDate:    format.Date(s.SaleDate),
		Status:      string(s.Status),
		InvoiceID:   s.InvoiceID,
		Notes:       s.Notes,
		CreatedAt:   s.CreatedAt,
	}
}

// ToSaleResponses converts a slice of domain Sales
func ToSaleResponses(sales []trade.Sale) []SaleResponse {
	responses := make([]SaleResponse, len(sales))
	for i := range sales {
		responses[i] = ToSaleResponse(&sales[i])
	}
	return responses
}

// =============================================================================
// Modification DTOs
// =============================================================================

// CreateModificationRequest represents a request to create a temporary
// subscription change
type CreateModificationRequest struct {
	CustomerID     uuid.UUID        `json:"customer_id" binding:"required"`
	ProductID      uuid.UUID        `json:"product_id" binding:"required"`
	Type           string           `json:"type" binding:"required,oneof=skip increase decrease"`
	StartDate      string           `json:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate        string           `json:"end_date" binding:"required"`   // YYYY-MM-DD
	QuantityChange *decimal.Decimal `json:"quantity_change"`               // Ignored for skip
	Reason         string           `json:"reason"`
}

// ModificationResponse represents a modification in API responses
type ModificationResponse struct {
	ID             uuid.UUID       `json:"id"`
	CustomerID     uuid.UUID       `json:"customer_id"`
	ProductID      uuid.UUID       `json:"product_id"`
	Type           string          `json:"type"`
	StartDate      string          `json:"start_date"`
	EndDate        string          `json:"end_date"`
	QuantityChange decimal.Decimal `json:"quantity_change"`
	Status         string          `json:"status"`
	Reason         string          `json:"reason,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ModificationListFilter represents filter options for modification list
type ModificationListFilter struct {
	CustomerID string `form:"customer_id" binding:"omitempty,uuid"`
	ProductID  string `form:"product_id" binding:"omitempty,uuid"`
	Type       string `form:"type" binding:"omitempty,oneof=skip increase decrease"`
	Status     string `form:"status" binding:"omitempty,oneof=active cancelled"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ToModificationResponse converts a domain Modification to ModificationResponse
func ToModificationResponse(m *trade.Modification) ModificationResponse {
	return ModificationResponse{
		ID:             m.ID,
		CustomerID:     m.CustomerID,
		ProductID:      m.ProductID,
		Type:           string(m.Type),
		StartDate:      format.Date(m.StartDate),
		EndDate:        format.Date(m.EndDate),
		QuantityChange: m.QuantityChange,
		Status:         string(m.Status),
		Reason:         m.Reason,
		CreatedAt:      m.CreatedAt,
	}
}

// ToModificationResponses converts a slice of domain Modifications
func ToModificationResponses(mods []trade.Modification) []ModificationResponse {
	responses := make([]ModificationResponse, len(mods))
	for i := range mods {
		responses[i] = ToModificationResponse(&mods[i])
	}
	return responses
}
