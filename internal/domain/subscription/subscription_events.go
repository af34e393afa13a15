package subscription

import (
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeSubscription = "Subscription"

// Event type constants
const (
	EventTypeSubscriptionCreated       = "SubscriptionCreated"
	EventTypeSubscriptionStatusChanged = "SubscriptionStatusChanged"
)

// SubscriptionCreatedEvent is published when a new subscription is created
type SubscriptionCreatedEvent struct {
	shared.BaseDomainEvent
	SubscriptionID uuid.UUID `json:"subscription_id"`
	CustomerID     uuid.UUID `json:"customer_id"`
	ProductID      uuid.UUID `json:"product_id"`
	Type           Type      `json:"type"`
}

// NewSubscriptionCreatedEvent creates a new SubscriptionCreatedEvent
func NewSubscriptionCreatedEvent(sub *Subscription) *SubscriptionCreatedEvent {
	return &SubscriptionCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSubscriptionCreated, AggregateTypeSubscription, sub.ID),
		SubscriptionID:  sub.ID,
		CustomerID:      sub.CustomerID,
		ProductID:       sub.ProductID,
		Type:            sub.Type,
	}
}

// SubscriptionStatusChangedEvent is published when a subscription is paused or resumed
type SubscriptionStatusChangedEvent struct {
	shared.BaseDomainEvent
	SubscriptionID uuid.UUID `json:"subscription_id"`
	CustomerID     uuid.UUID `json:"customer_id"`
	OldStatus      Status    `json:"old_status"`
	NewStatus      Status    `json:"new_status"`
}

// NewSubscriptionStatusChangedEvent creates a new SubscriptionStatusChangedEvent
func NewSubscriptionStatusChangedEvent(sub *Subscription, oldStatus, newStatus Status) *SubscriptionStatusChangedEvent {
	return &SubscriptionStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSubscriptionStatusChanged, AggregateTypeSubscription, sub.ID),
		SubscriptionID:  sub.ID,
		CustomerID:      sub.CustomerID,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}
