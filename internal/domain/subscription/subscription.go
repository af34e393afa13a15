package subscription

import (
	"time"

	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type represents the subscription's quantity schedule
type Type string

const (
	TypeDaily   Type = "daily"   // Same quantity every day
	TypePattern Type = "pattern" // 2-day alternating quantities
)

// Status represents the status of a subscription
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Subscription represents a recurring daily product subscription for a
// customer. Daily subscriptions deliver a fixed quantity every day.
// Pattern subscriptions alternate between two quantities on a 2-day
// cycle anchored at PatternStartDate.
type Subscription struct {
	shared.BaseAggregateRoot
	CustomerID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_subscription_customer_product"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;index:idx_subscription_customer_product"`
	Type             Type            `gorm:"type:varchar(20);not null"`
	DailyQuantity    decimal.Decimal `gorm:"type:decimal(8,3);not null;default:0"`
	PatternDay1Qty   decimal.Decimal `gorm:"type:decimal(8,3);not null;default:0"`
	PatternDay2Qty   decimal.Decimal `gorm:"type:decimal(8,3);not null;default:0"`
	PatternStartDate *time.Time      `gorm:"type:date"` // Anchor for the 2-day cycle; nil for daily
	Status           Status          `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Subscription) TableName() string {
	return "base_subscriptions"
}

// NewDailySubscription creates a subscription delivering the same quantity every day
func NewDailySubscription(customerID, productID uuid.UUID, quantity decimal.Decimal) (*Subscription, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer is required")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product is required")
	}
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}

	sub := &Subscription{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		ProductID:         productID,
		Type:              TypeDaily,
		DailyQuantity:     quantity,
		Status:            StatusActive,
	}

	sub.AddDomainEvent(NewSubscriptionCreatedEvent(sub))

	return sub, nil
}

// NewPatternSubscription creates a subscription alternating between two
// quantities on a 2-day cycle anchored at startDate. A zero quantity on
// one day is allowed (skip days), but not on both.
func NewPatternSubscription(customerID, productID uuid.UUID, day1Qty, day2Qty decimal.Decimal, startDate time.Time) (*Subscription, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer is required")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product is required")
	}
	if day1Qty.IsNegative() || day2Qty.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	if day1Qty.IsZero() && day2Qty.IsZero() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "At least one pattern day must have a quantity")
	}
	if startDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_START_DATE", "Pattern start date is required")
	}

	anchor := startDate
	sub := &Subscription{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		ProductID:         productID,
		Type:              TypePattern,
		PatternDay1Qty:    day1Qty,
		PatternDay2Qty:    day2Qty,
		PatternStartDate:  &anchor,
		Status:            StatusActive,
	}

	sub.AddDomainEvent(NewSubscriptionCreatedEvent(sub))

	return sub, nil
}

// QuantityFor returns the quantity this subscription delivers on the
// given date. Inactive subscriptions deliver nothing.
func (s *Subscription) QuantityFor(date time.Time) decimal.Decimal {
	if s.Status != StatusActive {
		return decimal.Zero
	}
	switch s.Type {
	case TypeDaily:
		return s.DailyQuantity
	case TypePattern:
		if s.PatternStartDate == nil {
			return decimal.Zero
		}
		if PatternDay(*s.PatternStartDate, date) == 1 {
			return s.PatternDay1Qty
		}
		return s.PatternDay2Qty
	default:
		return decimal.Zero
	}
}

// UpdateDailyQuantity changes the quantity of a daily subscription
func (s *Subscription) UpdateDailyQuantity(quantity decimal.Decimal) error {
	if s.Type != TypeDaily {
		return shared.NewDomainError("INVALID_TYPE", "Subscription is not a daily subscription")
	}
	if err := validateQuantity(quantity); err != nil {
		return err
	}

	s.DailyQuantity = quantity
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// UpdatePattern changes the quantities and anchor of a pattern subscription
func (s *Subscription) UpdatePattern(day1Qty, day2Qty decimal.Decimal, startDate time.Time) error {
	if s.Type != TypePattern {
		return shared.NewDomainError("INVALID_TYPE", "Subscription is not a pattern subscription")
	}
	if day1Qty.IsNegative() || day2Qty.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	if day1Qty.IsZero() && day2Qty.IsZero() {
		return shared.NewDomainError("INVALID_QUANTITY", "At least one pattern day must have a quantity")
	}
	if startDate.IsZero() {
		return shared.NewDomainError("INVALID_START_DATE", "Pattern start date is required")
	}

	anchor := startDate
	s.PatternDay1Qty = day1Qty
	s.PatternDay2Qty = day2Qty
	s.PatternStartDate = &anchor
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// Activate resumes the subscription
func (s *Subscription) Activate() error {
	if s.Status == StatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Subscription is already active")
	}

	s.Status = StatusActive
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewSubscriptionStatusChangedEvent(s, StatusInactive, StatusActive))

	return nil
}

// Deactivate pauses the subscription; no orders are generated while inactive
func (s *Subscription) Deactivate() error {
	if s.Status == StatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Subscription is already inactive")
	}

	s.Status = StatusInactive
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewSubscriptionStatusChangedEvent(s, StatusActive, StatusInactive))

	return nil
}

// IsActive returns true if the subscription is active
func (s *Subscription) IsActive() bool {
	return s.Status == StatusActive
}

func validateQuantity(q decimal.Decimal) error {
	if q.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	if q.IsZero() {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be zero")
	}
	return nil
}
