package delivery

import (
	"time"

	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle of a daily order
type OrderStatus string

const (
	OrderStatusGenerated OrderStatus = "generated" // Planned, not yet delivered
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order represents one planned delivery of one product to one customer
// on one date. Orders are generated from active subscriptions with any
// date-bounded modifications already applied, then confirmed with the
// actually delivered quantity.
type Order struct {
	shared.BaseAggregateRoot
	CustomerID      uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_order_customer_product_date,priority:1"`
	ProductID       uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_order_customer_product_date,priority:2"`
	RouteID         uuid.UUID        `gorm:"type:uuid;not null;index"`
	OrderDate       time.Time        `gorm:"type:date;not null;uniqueIndex:idx_order_customer_product_date,priority:3"`
	DeliveryTime    string           `gorm:"type:varchar(20);not null"` // morning or evening, snapshotted from the customer
	PlannedQuantity decimal.Decimal  `gorm:"type:decimal(8,3);not null"`
	ActualQuantity  *decimal.Decimal `gorm:"type:decimal(8,3)"` // Set on delivery; may differ from planned
	UnitPrice       decimal.Decimal  `gorm:"type:decimal(12,2);not null"` // Product price at generation time
	TotalAmount     decimal.Decimal  `gorm:"type:decimal(12,2);not null"` // Based on actual quantity once delivered
	Status          OrderStatus      `gorm:"type:varchar(20);not null;default:'generated'"`
	InvoiceID       *uuid.UUID       `gorm:"type:uuid;index"` // Set when the delivery is invoiced
	DeliveredAt     *time.Time       `gorm:""`
	DeliveryPerson  string           `gorm:"type:varchar(100)"`
	Notes           string           `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "daily_orders"
}

// NewOrder creates a generated daily order
func NewOrder(customerID, productID, routeID uuid.UUID, orderDate time.Time, deliveryTime string, quantity, unitPrice decimal.Decimal) (*Order, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer is required")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product is required")
	}
	if routeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ROUTE", "Route is required")
	}
	if orderDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Order date is required")
	}
	if quantity.IsNegative() || quantity.IsZero() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		ProductID:         productID,
		RouteID:           routeID,
		OrderDate:         orderDate,
		DeliveryTime:      deliveryTime,
		PlannedQuantity:   quantity,
		UnitPrice:         unitPrice,
		TotalAmount:       unitPrice.Mul(quantity).Round(2),
		Status:            OrderStatusGenerated,
	}, nil
}

// MarkDelivered confirms the order with the actually delivered quantity.
// The total is recomputed from the actual quantity, which may be zero
// (nobody home) or differ from the plan.
func (o *Order) MarkDelivered(actualQuantity decimal.Decimal, deliveredAt time.Time, deliveryPerson, notes string) error {
	if o.Status == OrderStatusDelivered {
		return shared.NewDomainError("ALREADY_DELIVERED", "Order is already delivered")
	}
	if o.Status == OrderStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cancelled orders cannot be delivered")
	}
	if actualQuantity.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Actual quantity cannot be negative")
	}
	if deliveredAt.IsZero() {
		deliveredAt = time.Now()
	}

	qty := actualQuantity
	o.ActualQuantity = &qty
	o.TotalAmount = o.UnitPrice.Mul(actualQuantity).Round(2)
	o.Status = OrderStatusDelivered
	o.DeliveredAt = &deliveredAt
	o.DeliveryPerson = deliveryPerson
	o.Notes = notes
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderDeliveredEvent(o))

	return nil
}

// MarkBilled links a delivered order to the invoice that bills it
func (o *Order) MarkBilled(invoiceID uuid.UUID) error {
	if o.Status != OrderStatusDelivered {
		return shared.NewDomainError("INVALID_STATE", "Only delivered orders can be billed")
	}
	if o.InvoiceID != nil {
		return shared.NewDomainError("ALREADY_BILLED", "Order is already billed")
	}
	if invoiceID == uuid.Nil {
		return shared.NewDomainError("INVALID_INVOICE", "Invoice is required")
	}

	o.InvoiceID = &invoiceID
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// Cancel voids a generated order before delivery
func (o *Order) Cancel() error {
	if o.Status != OrderStatusGenerated {
		return shared.NewDomainError("INVALID_STATE", "Only generated orders can be cancelled")
	}

	o.Status = OrderStatusCancelled
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// QuantityVariance returns actual minus planned quantity; zero until delivered
func (o *Order) QuantityVariance() decimal.Decimal {
	if o.ActualQuantity == nil {
		return decimal.Zero
	}
	return o.ActualQuantity.Sub(o.PlannedQuantity)
}

// IsDelivered returns true if the order has been confirmed
func (o *Order) IsDelivered() bool {
	return o.Status == OrderStatusDelivered
}
