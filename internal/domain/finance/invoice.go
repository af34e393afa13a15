package finance

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the payment status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "pending"   // Unpaid
	InvoiceStatusPartial   InvoiceStatus = "partial"   // Partially paid
	InvoiceStatusPaid      InvoiceStatus = "paid"      // Fully settled
	InvoiceStatusCancelled InvoiceStatus = "cancelled" // Voided before payment
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusPartial, InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}

// CanApplyPayment returns true if payments can be applied in this status
func (s InvoiceStatus) CanApplyPayment() bool {
	return s == InvoiceStatusPending || s == InvoiceStatusPartial
}

// LineSource represents what a line item bills
type LineSource string

const (
	LineSourceSubscription LineSource = "subscription" // Delivered daily orders
	LineSourceSale         LineSource = "sale"         // Credit sales
)

// LineItem is one billed line within an invoice.
// It is a value object stored as JSONB inside the aggregate.
type LineItem struct {
	ID          uuid.UUID       `json:"id"`
	Source      LineSource      `json:"source"`
	SourceID    uuid.UUID       `json:"source_id"` // Daily order or sale that produced the line
	ProductID   uuid.UUID       `json:"product_id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	BaseAmount  decimal.Decimal `json:"base_amount"`
	GSTAmount   decimal.Decimal `json:"gst_amount"`
	GSTRate     decimal.Decimal `json:"gst_rate"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// LineItems is a slice of LineItem that implements GORM Scanner/Valuer for JSONB storage
type LineItems []LineItem

// Value implements driver.Valuer for JSONB storage
func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for JSONB retrieval
func (l *LineItems) Scan(value interface{}) error {
	if value == nil {
		*l = LineItems{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into LineItems", value)
	}
	return json.Unmarshal(bytes, l)
}

// Invoice bills a customer for one period: delivered subscription
// orders plus unbilled credit sales. Invoice numbers follow the
// INV-YYYYMM-SEQ format with a per-month sequence.
type Invoice struct {
	shared.BaseAggregateRoot
	InvoiceNumber string          `gorm:"type:varchar(30);not null;uniqueIndex"`
	CustomerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	PeriodStart   time.Time       `gorm:"type:date;not null"`
	PeriodEnd     time.Time       `gorm:"type:date;not null"`
	LineItems     LineItems       `gorm:"type:jsonb;not null"`
	BaseAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null"` // Sum of line bases
	GSTAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	AmountPaid    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Status        InvoiceStatus   `gorm:"type:varchar(20);not null;default:'pending'"`
	IssuedAt      time.Time       `gorm:"not null"`
	Notes         string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// FormatInvoiceNumber builds the canonical invoice number for a period
// month and per-month sequence, e.g. INV-202506-0042.
func FormatInvoiceNumber(period time.Time, sequence int) string {
	return fmt.Sprintf("INV-%s-%04d", period.Format("200601"), sequence)
}

// NewInvoice creates an invoice from billed line items.
// Totals are derived from the lines; at least one line is required.
func NewInvoice(invoiceNumber string, customerID uuid.UUID, periodStart, periodEnd time.Time, lines []LineItem) (*Invoice, error) {
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer is required")
	}
	if periodStart.IsZero() || periodEnd.IsZero() {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Billing period is required")
	}
	if periodEnd.Before(periodStart) {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Period end cannot be before period start")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_INVOICE", "Invoice must have at least one line item")
	}

	base, gst, total := decimal.Zero, decimal.Zero, decimal.Zero
	for i, line := range lines {
		if line.TotalAmount.IsNegative() {
			return nil, shared.NewDomainError("INVALID_LINE_ITEM", fmt.Sprintf("Line %d has a negative amount", i+1))
		}
		base = base.Add(line.BaseAmount)
		gst = gst.Add(line.GSTAmount)
		total = total.Add(line.TotalAmount)
	}

	invoice := &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvoiceNumber:     invoiceNumber,
		CustomerID:        customerID,
		PeriodStart:       periodStart,
		PeriodEnd:         periodEnd,
		LineItems:         lines,
		BaseAmount:        base.Round(2),
		GSTAmount:         gst.Round(2),
		TotalAmount:       total.Round(2),
		AmountPaid:        decimal.Zero,
		Status:            InvoiceStatusPending,
		IssuedAt:          time.Now(),
	}

	invoice.AddDomainEvent(NewInvoiceIssuedEvent(invoice))

	return invoice, nil
}

// Outstanding returns the amount still owed on the invoice
func (i *Invoice) Outstanding() decimal.Decimal {
	if i.Status == InvoiceStatusCancelled {
		return decimal.Zero
	}
	return i.TotalAmount.Sub(i.AmountPaid)
}

// ApplyPayment records a payment against the invoice.
// Overpayment is rejected; the caller should leave the excess
// unallocated on the payment instead.
func (i *Invoice) ApplyPayment(amount decimal.Decimal) error {
	if !i.Status.CanApplyPayment() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot apply payment to %s invoice", i.Status))
	}
	if amount.IsNegative() || amount.IsZero() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if amount.GreaterThan(i.Outstanding()) {
		return shared.NewDomainError("OVERPAYMENT", "Payment exceeds the outstanding amount")
	}

	i.AmountPaid = i.AmountPaid.Add(amount)
	if i.AmountPaid.Equal(i.TotalAmount) {
		i.Status = InvoiceStatusPaid
	} else {
		i.Status = InvoiceStatusPartial
	}
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	if i.Status == InvoiceStatusPaid {
		i.AddDomainEvent(NewInvoicePaidEvent(i))
	}

	return nil
}

// ReversePayment backs out a previously applied amount, e.g. when a
// payment is voided.
func (i *Invoice) ReversePayment(amount decimal.Decimal) error {
	if i.Status == InvoiceStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cannot reverse payment on a cancelled invoice")
	}
	if amount.IsNegative() || amount.IsZero() {
		return shared.NewDomainError("INVALID_AMOUNT", "Reversal amount must be positive")
	}
	if amount.GreaterThan(i.AmountPaid) {
		return shared.NewDomainError("INVALID_AMOUNT", "Reversal exceeds the amount paid")
	}

	i.AmountPaid = i.AmountPaid.Sub(amount)
	if i.AmountPaid.IsZero() {
		i.Status = InvoiceStatusPending
	} else {
		i.Status = InvoiceStatusPartial
	}
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// Cancel voids an invoice that has received no payment
func (i *Invoice) Cancel() error {
	if i.Status == InvoiceStatusCancelled {
		return shared.NewDomainError("ALREADY_CANCELLED", "Invoice is already cancelled")
	}
	if !i.AmountPaid.IsZero() {
		return shared.NewDomainError("INVALID_STATE", "Invoices with payments cannot be cancelled")
	}

	i.Status = InvoiceStatusCancelled
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// IsPaid returns true if the invoice is fully settled
func (i *Invoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid
}
