package bulk

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleRowRequest is one sale row in a bulk submission
type SaleRowRequest struct {
	CustomerID *uuid.UUID       `json:"customer_id"`
	ProductID  uuid.UUID        `json:"product_id" binding:"required"`
	Type       string           `json:"type" binding:"required,oneof=cash credit qr"`
	Quantity   decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPrice  *decimal.Decimal `json:"unit_price"` // Defaults to the product's current price
	SaleDate   string           `json:"sale_date"`  // YYYY-MM-DD, defaults to today
	Notes      string           `json:"notes" binding:"max=500"`
}

// SubmitSalesRequest carries a batch of sale rows
type SubmitSalesRequest struct {
	Rows []SaleRowRequest `json:"rows" binding:"required,min=1,max=500,dive"`
}

// ModificationRowRequest is one modification row in a bulk submission
type ModificationRowRequest struct {
	CustomerID     uuid.UUID        `json:"customer_id" binding:"required"`
	ProductID      uuid.UUID        `json:"product_id" binding:"required"`
	Type           string           `json:"type" binding:"required,oneof=skip increase decrease"`
	StartDate      string           `json:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate        string           `json:"end_date" binding:"required"`   // YYYY-MM-DD
	QuantityChange *decimal.Decimal `json:"quantity_change"`
	Reason         string           `json:"reason" binding:"max=500"`
}

// SubmitModificationsRequest carries a batch of modification rows
type SubmitModificationsRequest struct {
	Rows []ModificationRowRequest `json:"rows" binding:"required,min=1,max=500,dive"`
}

// RowResult reports the outcome of one row. A row either produced an
// aggregate (ID set) or failed (Error set); the batch never rolls back.
type RowResult struct {
	Index int        `json:"index"`
	ID    *uuid.UUID `json:"id,omitempty"`
	Error string     `json:"error,omitempty"`
}

// SubmitResult reports a whole batch, one result per input row
type SubmitResult struct {
	Total     int         `json:"total"`
	Submitted int         `json:"submitted"`
	Failed    int         `json:"failed"`
	Results   []RowResult `json:"results"`
}

// SaleSummaryResponse is the pre-submission review of a sale batch.
// Rows missing a customer, product or type count toward row_count only.
type SaleSummaryResponse struct {
	RowCount      int                        `json:"row_count"`
	ValidRows     int                        `json:"valid_rows"`
	CustomerCount int                        `json:"customer_count"`
	ProductCount  int                        `json:"product_count"`
	TotalQuantity decimal.Decimal            `json:"total_quantity"`
	BaseAmount    decimal.Decimal            `json:"base_amount"`
	GSTAmount     decimal.Decimal            `json:"gst_amount"`
	TotalAmount   decimal.Decimal            `json:"total_amount"`
	AmountByType  map[string]decimal.Decimal `json:"amount_by_type"`
	EarliestSale  *string                    `json:"earliest_sale,omitempty"`
	LatestSale    *string                    `json:"latest_sale,omitempty"`
}

// ModificationSummaryResponse is the pre-submission review of a modification batch
type ModificationSummaryResponse struct {
	RowCount            int             `json:"row_count"`
	ValidRows           int             `json:"valid_rows"`
	CustomerCount       int             `json:"customer_count"`
	ProductCount        int             `json:"product_count"`
	CountByType         map[string]int  `json:"count_by_type"`
	TotalQuantityChange decimal.Decimal `json:"total_quantity_change"`
	TotalDays           int             `json:"total_days"`
	EarliestStart       *string         `json:"earliest_start,omitempty"`
	LatestEnd           *string         `json:"latest_end,omitempty"`
}
