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

// PaymentMode represents how a payment was received
type PaymentMode string

const (
	PaymentModeCash   PaymentMode = "cash"
	PaymentModeUPI    PaymentMode = "upi"
	PaymentModeCheque PaymentMode = "cheque"
	PaymentModeBank   PaymentMode = "bank_transfer"
)

// IsValid checks if the mode is a valid PaymentMode
func (m PaymentMode) IsValid() bool {
	switch m {
	case PaymentModeCash, PaymentModeUPI, PaymentModeCheque, PaymentModeBank:
		return true
	}
	return false
}

// PaymentStatus represents whether a payment stands or has been voided
type PaymentStatus string

const (
	PaymentStatusActive PaymentStatus = "active"
	PaymentStatusVoided PaymentStatus = "voided"
)

// Allocation records part of a payment applied to one invoice.
// It is a value object stored as JSONB inside the aggregate.
type Allocation struct {
	ID        uuid.UUID       `json:"id"`
	InvoiceID uuid.UUID       `json:"invoice_id"`
	Amount    decimal.Decimal `json:"amount"`
	AppliedAt time.Time       `json:"applied_at"`
}

// Allocations is a slice of Allocation that implements GORM Scanner/Valuer for JSONB storage
type Allocations []Allocation

// Value implements driver.Valuer for JSONB storage
func (a Allocations) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner for JSONB retrieval
func (a *Allocations) Scan(value interface{}) error {
	if value == nil {
		*a = Allocations{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Allocations", value)
	}
	return json.Unmarshal(bytes, a)
}

// Payment represents money received from a customer. A payment may be
// allocated across multiple invoices; any unallocated remainder counts
// as an advance and reduces the customer's effective outstanding.
type Payment struct {
	shared.BaseAggregateRoot
	CustomerID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Mode        PaymentMode     `gorm:"type:varchar(20);not null"`
	PaymentDate time.Time       `gorm:"type:date;not null;index"`
	Reference   string          `gorm:"type:varchar(100)"` // UPI txn id, cheque number
	Allocations Allocations     `gorm:"type:jsonb;not null"`
	Status      PaymentStatus   `gorm:"type:varchar(20);not null;default:'active'"`
	Notes       string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// NewPayment records a payment received from a customer
func NewPayment(customerID uuid.UUID, amount decimal.Decimal, mode PaymentMode, paymentDate time.Time, reference, notes string) (*Payment, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer is required")
	}
	if amount.IsNegative() || amount.IsZero() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !mode.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_MODE", "Payment mode must be 'cash', 'upi', 'cheque', or 'bank_transfer'")
	}
	if paymentDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Payment date is required")
	}

	payment := &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		Amount:            amount,
		Mode:              mode,
		PaymentDate:       paymentDate,
		Reference:         reference,
		Allocations:       Allocations{},
		Status:            PaymentStatusActive,
		Notes:             notes,
	}

	payment.AddDomainEvent(NewPaymentReceivedEvent(payment))

	return payment, nil
}

// AllocatedAmount returns the total applied to invoices
func (p *Payment) AllocatedAmount() decimal.Decimal {
	total := decimal.Zero
	for _, a := range p.Allocations {
		total = total.Add(a.Amount)
	}
	return total
}

// UnallocatedAmount returns the advance portion not yet applied to any invoice
func (p *Payment) UnallocatedAmount() decimal.Decimal {
	if p.Status == PaymentStatusVoided {
		return decimal.Zero
	}
	return p.Amount.Sub(p.AllocatedAmount())
}

// Allocate applies part of the payment to an invoice
func (p *Payment) Allocate(invoiceID uuid.UUID, amount decimal.Decimal) error {
	if p.Status == PaymentStatusVoided {
		return shared.NewDomainError("INVALID_STATE", "Voided payments cannot be allocated")
	}
	if invoiceID == uuid.Nil {
		return shared.NewDomainError("INVALID_INVOICE", "Invoice is required")
	}
	if amount.IsNegative() || amount.IsZero() {
		return shared.NewDomainError("INVALID_AMOUNT", "Allocation amount must be positive")
	}
	if amount.GreaterThan(p.UnallocatedAmount()) {
		return shared.NewDomainError("INSUFFICIENT_UNALLOCATED", "Allocation exceeds the unallocated amount")
	}

	p.Allocations = append(p.Allocations, Allocation{
		ID:        uuid.New(),
		InvoiceID: invoiceID,
		Amount:    amount,
		AppliedAt: time.Now(),
	})
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Void cancels the payment. Allocations must be reversed on their
// invoices by the caller before voiding.
func (p *Payment) Void(reason string) error {
	if p.Status == PaymentStatusVoided {
		return shared.NewDomainError("ALREADY_VOIDED", "Payment is already voided")
	}

	p.Status = PaymentStatusVoided
	if reason != "" {
		p.Notes = reason
	}
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewPaymentVoidedEvent(p))

	return nil
}

// IsActive returns true if the payment has not been voided
func (p *Payment) IsActive() bool {
	return p.Status == PaymentStatusActive
}
