package trade

import (
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constants
const (
	AggregateTypeSale         = "Sale"
	AggregateTypeModification = "Modification"
)

// Event type constants
const (
	EventTypeSaleRecorded        = "SaleRecorded"
	EventTypeSaleCancelled       = "SaleCancelled"
	EventTypeModificationCreated = "ModificationCreated"
)

// SaleRecordedEvent is published when a manual sale is recorded
type SaleRecordedEvent struct {
	shared.BaseDomainEvent
	SaleID      uuid.UUID       `json:"sale_id"`
	CustomerID  *uuid.UUID      `json:"customer_id,omitempty"`
	ProductID   uuid.UUID       `json:"product_id"`
	Type        SaleType        `json:"type"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewSaleRecordedEvent creates a new SaleRecordedEvent
func NewSaleRecordedEvent(sale *Sale) *SaleRecordedEvent {
	return &SaleRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleRecorded, AggregateTypeSale, sale.ID),
		SaleID:          sale.ID,
		CustomerID:      sale.CustomerID,
		ProductID:       sale.ProductID,
		Type:            sale.Type,
		TotalAmount:     sale.TotalAmount,
	}
}

// SaleCancelledEvent is published when a sale is cancelled
type SaleCancelledEvent struct {
	shared.BaseDomainEvent
	SaleID      uuid.UUID       `json:"sale_id"`
	CustomerID  *uuid.UUID      `json:"customer_id,omitempty"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewSaleCancelledEvent creates a new SaleCancelledEvent
func NewSaleCancelledEvent(sale *Sale) *SaleCancelledEvent {
	return &SaleCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleCancelled, AggregateTypeSale, sale.ID),
		SaleID:          sale.ID,
		CustomerID:      sale.CustomerID,
		TotalAmount:     sale.TotalAmount,
	}
}

// ModificationCreatedEvent is published when a subscription modification is created
type ModificationCreatedEvent struct {
	shared.BaseDomainEvent
	ModificationID uuid.UUID        `json:"modification_id"`
	CustomerID     uuid.UUID        `json:"customer_id"`
	ProductID      uuid.UUID        `json:"product_id"`
	Type           ModificationType `json:"type"`
}

// NewModificationCreatedEvent creates a new ModificationCreatedEvent
func NewModificationCreatedEvent(mod *Modification) *ModificationCreatedEvent {
	return &ModificationCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeModificationCreated, AggregateTypeModification, mod.ID),
		ModificationID:  mod.ID,
		CustomerID:      mod.CustomerID,
		ProductID:       mod.ProductID,
		Type:            mod.Type,
	}
}
