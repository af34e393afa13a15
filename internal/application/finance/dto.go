package finance

import (
	"time"

	"github.com/dishankgupta/milk-subs-sub005/internal/domain/finance"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared/format"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Invoice DTOs
// =============================================================================

// GenerateInvoiceRequest asks for an invoice covering a billing period
// for one customer
type GenerateInvoiceRequest struct {
	CustomerID  uuid.UUID `json:"customer_id" binding:"required"`
	PeriodStart string    `json:"period_start" binding:"required"` // YYYY-MM-DD
	PeriodEnd   string    `json:"period_end" binding:"required"`   // YYYY-MM-DD
	Notes       string    `json:"notes"`
}

// BulkGenerateInvoicesRequest asks for invoices for many customers at once
type BulkGenerateInvoicesRequest struct {
	CustomerIDs []uuid.UUID `json:"customer_ids" binding:"required,min=1"`
	PeriodStart string      `json:"period_start" binding:"required"`
	PeriodEnd   string      `json:"period_end" binding:"required"`
}

// BulkGenerateInvoicesResult reports per-customer outcomes
type BulkGenerateInvoicesResult struct {
	Generated int                 `json:"generated"`
	Skipped   int                 `json:"skipped"` // Customers with nothing to bill
	Failed    int                 `json:"failed"`
	Errors    []BulkCustomerError `json:"errors,omitempty"`
}

// BulkCustomerError describes one failed customer in a bulk generation
type BulkCustomerError struct {
	CustomerID uuid.UUID `json:"customer_id"`
	Error      string    `json:"error"`
}

// LineItemResponse represents one invoice line in API responses
type LineItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	Source      string          `json:"source"`
	SourceID    uuid.UUID       `json:"source_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	BaseAmount  decimal.Decimal `json:"base_amount"`
	GSTAmount   decimal.Decimal `json:"gst_amount"`
	GSTRate     decimal.Decimal `json:"gst_rate"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID            uuid.UUID          `json:"id"`
	InvoiceNumber string             `json:"invoice_number"`
	CustomerID    uuid.UUID          `json:"customer_id"`
	PeriodStart   string             `json:"period_start"`
	PeriodEnd     string             `json:"period_end"`
	LineItems     []LineItemResponse `json:"line_items"`
	BaseAmount    decimal.Decimal    `json:"base_amount"`
	GSTAmount     decimal.Decimal    `json:"gst_amount"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	AmountPaid    decimal.Decimal    `json:"amount_paid"`
	Outstanding   decimal.Decimal    `json:"outstanding"`
	Status        string             `json:"status"`
	IssuedAt      time.Time          `json:"issued_at"`
	Notes         string             `json:"notes,omitempty"`
}

// InvoiceListFilter represents filter options for invoice list
type InvoiceListFilter struct {
	CustomerID string `form:"customer_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=pending partial paid cancelled"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ToInvoiceResponse converts a domain Invoice to InvoiceResponse
func ToInvoiceResponse(inv *finance.Invoice) InvoiceResponse {
	lines := make([]LineItemResponse, len(inv.LineItems))
	for i, line := range inv.LineItems {
		lines[i] = LineItemResponse{
			ID:          line.ID,
			Source:      string(line.Source),
			SourceID:    line.SourceID,
			ProductID:   line.ProductID,
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			BaseAmount:  line.BaseAmount,
			GSTAmount:   line.GSTAmount,
			GSTRate:     line.GSTRate,
			TotalAmount: line.TotalAmount,
		}
	}
	return InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		CustomerID:    inv.CustomerID,
		PeriodStart:   format.Date(inv.PeriodStart),
		PeriodEnd:     format.Date(inv.PeriodEnd),
		LineItems:     lines,
		BaseAmount:    inv.BaseAmount,
		GSTAmount:     inv.GSTAmount,
		TotalAmount:   inv.TotalAmount,
		AmountPaid:    inv.AmountPaid,
		Outstanding:   inv.Outstanding(),
		Status:        string(inv.Status),
		IssuedAt:      inv.IssuedAt,
		Notes:         inv.Notes,
	}
}

// ToInvoiceResponses converts a slice of domain Invoices
func ToInvoiceResponses(invoices []finance.Invoice) []InvoiceResponse {
	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToInvoiceResponse(&invoices[i])
	}
	return responses
}

// =============================================================================
// Payment DTOs
// =============================================================================

// RecordPaymentRequest records money received from a customer.
// Without explicit allocations the payment is applied to the customer's
// outstanding invoices oldest first.
type RecordPaymentRequest struct {
	CustomerID  uuid.UUID           `json:"customer_id" binding:"required"`
	Amount      decimal.Decimal     `json:"amount" binding:"required"`
	Mode        string              `json:"mode" binding:"required,oneof=cash upi cheque bank_transfer"`
	PaymentDate string              `json:"payment_date"` // YYYY-MM-DD, defaults to today
	Reference   string              `json:"reference" binding:"max=100"`
	Allocations []AllocationRequest `json:"allocations"` // Optional explicit split
	Notes       string              `json:"notes"`
}

// AllocationRequest applies part of a payment to a specific invoice
type AllocationRequest struct {
	InvoiceID uuid.UUID       `json:"invoice_id" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
}

// AllocationResponse represents one allocation in API responses
type AllocationResponse struct {
	ID        uuid.UUID       `json:"id"`
	InvoiceID uuid.UUID       `json:"invoice_id"`
	Amount    decimal.Decimal `json:"amount"`
	AppliedAt time.Time       `json:"applied_at"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID          uuid.UUID            `json:"id"`
	CustomerID  uuid.UUID            `json:"customer_id"`
	Amount      decimal.Decimal      `json:"amount"`
	Mode        string               `json:"mode"`
	PaymentDate string               `json:"payment_date"`
	Reference   string               `json:"reference,omitempty"`
	Allocations []AllocationResponse `json:"allocations"`
	Unallocated decimal.Decimal      `json:"unallocated"`
	Status      string               `json:"status"`
	Notes       string               `json:"notes,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}

// PaymentListFilter represents filter options for payment list
type PaymentListFilter struct {
	CustomerID string `form:"customer_id" binding:"omitempty,uuid"`
	Mode       string `form:"mode" binding:"omitempty,oneof=cash upi cheque bank_transfer"`
	Status     string `form:"status" binding:"omitempty,oneof=active voided"`
	FromDate   string `form:"from_date"`
	ToDate     string `form:"to_date"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// VoidPaymentRequest voids a payment with a reason
type VoidPaymentRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ToPaymentResponse converts a domain Payment to PaymentResponse
func ToPaymentResponse(p *finance.Payment) PaymentResponse {
	allocations := make([]AllocationResponse, len(p.Allocations))
	for i, a := range p.Allocations {
		allocations[i] = AllocationResponse{
			ID:        a.ID,
			InvoiceID: a.InvoiceID,
			Amount:    a.Amount,
			AppliedAt: a.AppliedAt,
		}
	}
	return PaymentResponse{
		ID:          p.ID,
		CustomerID:  p.CustomerID,
		Amount:      p.Amount,
		Mode:        string(p.Mode),
		PaymentDate: format.Date(p.PaymentDate),
		Reference:   p.Reference,
		Allocations: allocations,
		Unallocated: p.UnallocatedAmount(),
		Status:      string(p.Status),
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
	}
}

// ToPaymentResponses converts a slice of domain Payments
func ToPaymentResponses(payments []finance.Payment) []PaymentResponse {
	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i])
	}
	return responses
}
