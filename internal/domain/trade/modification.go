package trade

import (
	"time"

	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ModificationType represents the kind of temporary subscription change
type ModificationType string

const (
	ModificationTypeSkip     ModificationType = "skip"     // No delivery in the window
	ModificationTypeIncrease ModificationType = "increase" // Add to the scheduled quantity
	ModificationTypeDecrease ModificationType = "decrease" // Subtract from the scheduled quantity
)

// ModificationStatus represents whether a modification still applies
type ModificationStatus string

const (
	ModificationStatusActive    ModificationStatus = "active"
	ModificationStatusCancelled ModificationStatus = "cancelled"
)

// Modification represents a temporary, date-bounded change to a
// customer's subscription deliveries. During order generation for a
// date, active modifications covering that date adjust or skip the
// subscription quantity.
type Modification struct {
	shared.BaseAggregateRoot
	CustomerID     uuid.UUID          `gorm:"type:uuid;not null;index"`
	ProductID      uuid.UUID          `gorm:"type:uuid;not null;index"`
	Type           ModificationType   `gorm:"type:varchar(20);not null"`
	StartDate      time.Time          `gorm:"type:date;not null;index"`
	EndDate        time.Time          `gorm:"type:date;not null;index"`
	QuantityChange decimal.Decimal    `gorm:"type:decimal(8,3);not null;default:0"` // Unused for skip
	Status         ModificationStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Reason         string             `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Modification) TableName() string {
	return "modifications"
}

// NewModification creates a temporary subscription change covering the
// inclusive date window [startDate, endDate].
func NewModification(customerID, productID uuid.UUID, modType ModificationType, startDate, endDate time.Time, quantityChange decimal.Decimal, reason string) (*Modification, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer is required")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product is required")
	}
	if err := validateModificationType(modType); err != nil {
		return nil, err
	}
	if startDate.IsZero() || endDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Start and end dates are required")
	}
	if endDate.Before(startDate) {
		return nil, shared.NewDomainError("INVALID_DATE_RANGE", "End date cannot be before start date")
	}
	if modType == ModificationTypeSkip {
		quantityChange = decimal.Zero
	} else {
		if quantityChange.IsNegative() || quantityChange.IsZero() {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity change must be positive")
		}
	}

	mod := &Modification{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		ProductID:         productID,
		Type:              modType,
		StartDate:         startDate,
		EndDate:           endDate,
		QuantityChange:    quantityChange,
		Status:            ModificationStatusActive,
		Reason:            reason,
	}

	mod.AddDomainEvent(NewModificationCreatedEvent(mod))

	return mod, nil
}

// AppliesOn returns true if the modification is active and its window
// covers the given date (inclusive on both ends).
func (m *Modification) AppliesOn(date time.Time) bool {
	if m.Status != ModificationStatusActive {
		return false
	}
	d := truncateToDay(date)
	return !d.Before(truncateToDay(m.StartDate)) && !d.After(truncateToDay(m.EndDate))
}

// Apply adjusts a scheduled quantity for a date inside the window.
// Skip zeroes the quantity; decrease floors at zero.
func (m *Modification) Apply(quantity decimal.Decimal) decimal.Decimal {
	switch m.Type {
	case ModificationTypeSkip:
		return decimal.Zero
	case ModificationTypeIncrease:
		return quantity.Add(m.QuantityChange)
	case ModificationTypeDecrease:
		result := quantity.Sub(m.QuantityChange)
		if result.IsNegative() {
			return decimal.Zero
		}
		return result
	default:
		return quantity
	}
}

// Cancel deactivates the modification for all remaining dates
func (m *Modification) Cancel() error {
	if m.Status == ModificationStatusCancelled {
		return shared.NewDomainError("ALREADY_CANCELLED", "Modification is already cancelled")
	}

	m.Status = ModificationStatusCancelled
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	return nil
}

// IsActive returns true if the modification has not been cancelled
func (m *Modification) IsActive() bool {
	return m.Status == ModificationStatusActive
}

func validateModificationType(t ModificationType) error {
	switch t {
	case ModificationTypeSkip, ModificationTypeIncrease, ModificationTypeDecrease:
		return nil
	default:
		return shared.NewDomainError("INVALID_MODIFICATION_TYPE", "Modification type must be 'skip', 'increase', or 'decrease'")
	}
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
