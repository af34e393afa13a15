package delivery

import (
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeOrder = "DailyOrder"

// Event type constants
const (
	EventTypeOrderDelivered = "OrderDelivered"
)

// OrderDeliveredEvent is published when a daily order is confirmed
type OrderDeliveredEvent struct {
	shared.BaseDomainEvent
	OrderID        uuid.UUID       `json:"order_id"`
	CustomerID     uuid.UUID       `json:"customer_id"`
	ProductID      uuid.UUID       `json:"product_id"`
	ActualQuantity decimal.Decimal `json:"actual_quantity"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
}

// NewOrderDeliveredEvent creates a new OrderDeliveredEvent
func NewOrderDeliveredEvent(order *Order) *OrderDeliveredEvent {
	actual := decimal.Zero
	if order.ActualQuantity != nil {
		actual = *order.ActualQuantity
	}
	return &OrderDeliveredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderDelivered, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		CustomerID:      order.CustomerID,
		ProductID:       order.ProductID,
		ActualQuantity:  actual,
		TotalAmount:     order.TotalAmount,
	}
}
