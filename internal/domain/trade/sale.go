package trade

import (
	"time"

	"github.com/dishankgupta/milk-subs-sub005/internal/domain/billing"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleType represents how a manual sale is settled
type SaleType string

const (
	SaleTypeCash   SaleType = "cash"   // Settled immediately in cash
	SaleTypeCredit SaleType = "credit" // Added to the customer's outstanding
	SaleTypeQR     SaleType = "qr"     // Settled immediately via UPI/QR
)

// SaleStatus represents the lifecycle status of a sale
type SaleStatus string

const (
	SaleStatusCompleted SaleStatus = "completed"
	SaleStatusBilled    SaleStatus = "billed"    // Credit sale included in an invoice
	SaleStatusCancelled SaleStatus = "cancelled"
)

// Sale represents a manual product sale outside the subscription flow.
// Cash and QR sales settle immediately and need no customer. Credit
// sales require a customer and accrue to their outstanding until billed.
type Sale struct {
	shared.BaseAggregateRoot
	CustomerID  *uuid.UUID      `gorm:"type:uuid;index"` // Required for credit sales
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type        SaleType        `gorm:"type:varchar(20);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(8,3);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"` // Price at time of sale
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	BaseAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null"` // GST-exclusive portion of the total
	GSTAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	GSTRate     decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	SaleDate    time.Time       `gorm:"type:date;not null;index"`
	Status      SaleStatus      `gorm:"type:varchar(20);not null;default:'completed'"`
	InvoiceID   *uuid.UUID      `gorm:"type:uuid;index"` // Set when a credit sale is billed
	Notes       string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// NewSale records a manual sale. The total is decomposed into base and
// GST using the product's rate; gstInclusive says whether unitPrice
// already carries GST.
func NewSale(customerID *uuid.UUID, productID uuid.UUID, saleType SaleType, quantity, unitPrice, gstRate decimal.Decimal, gstInclusive bool, saleDate time.Time, notes string) (*Sale, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product is required")
	}
	if err := validateSaleType(saleType); err != nil {
		return nil, err
	}
	if saleType == SaleTypeCredit && (customerID == nil || *customerID == uuid.Nil) {
		return nil, shared.NewDomainError("CUSTOMER_REQUIRED", "Credit sales require a customer")
	}
	if quantity.IsNegative() || quantity.IsZero() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if saleDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Sale date is required")
	}

	gross := unitPrice.Mul(quantity)
	breakdown, err := billing.Decompose(gross, gstRate, gstInclusive)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_GST_RATE", err.Error())
	}

	sale := &Sale{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		ProductID:         productID,
		Type:              saleType,
		Quantity:          quantity,
		UnitPrice:         unitPrice,
		TotalAmount:       breakdown.Total,
		BaseAmount:        breakdown.Base,
		GSTAmount:         breakdown.Tax,
		GSTRate:           gstRate,
		SaleDate:          saleDate,
		Status:            SaleStatusCompleted,
		Notes:             notes,
	}

	sale.AddDomainEvent(NewSaleRecordedEvent(sale))

	return sale, nil
}

// MarkBilled links a credit sale to the invoice that bills it
func (s *Sale) MarkBilled(invoiceID uuid.UUID) error {
	if s.Type != SaleTypeCredit {
		return shared.NewDomainError("INVALID_STATE", "Only credit sales can be billed")
	}
	if s.Status == SaleStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cancelled sales cannot be billed")
	}
	if s.Status == SaleStatusBilled {
		return shared.NewDomainError("ALREADY_BILLED", "Sale is already billed")
	}
	if invoiceID == uuid.Nil {
		return shared.NewDomainError("INVALID_INVOICE", "Invoice is required")
	}

	s.Status = SaleStatusBilled
	s.InvoiceID = &invoiceID
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// Cancel voids the sale. Billed sales cannot be cancelled; the invoice
// must be dealt with first.
func (s *Sale) Cancel() error {
	if s.Status == SaleStatusCancelled {
		return shared.NewDomainError("ALREADY_CANCELLED", "Sale is already cancelled")
	}
	if s.Status == SaleStatusBilled {
		return shared.NewDomainError("INVALID_STATE", "Billed sales cannot be cancelled")
	}

	s.Status = SaleStatusCancelled
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewSaleCancelledEvent(s))

	return nil
}

// IsCredit returns true if the sale accrues to a customer's outstanding
func (s *Sale) IsCredit() bool {
	return s.Type == SaleTypeCredit
}

func validateSaleType(t SaleType) error {
	switch t {
	case SaleTypeCash, SaleTypeCredit, SaleTypeQR:
		return nil
	default:
		return shared.NewDomainError("INVALID_SALE_TYPE", "Sale type must be 'cash', 'credit', or 'qr'")
	}
}
