package delivery

import (
	"time"

	"github.com/dishankgupta/milk-subs-sub005/internal/domain/delivery"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared/format"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GenerateOrdersRequest asks for daily order generation for a date
type GenerateOrdersRequest struct {
	Date  string `json:"date" binding:"required"` // YYYY-MM-DD
	Force bool   `json:"force"`                   // Regenerate, replacing undelivered orders
}

// GenerateOrdersResponse reports the outcome of order generation
type GenerateOrdersResponse struct {
	Date          string `json:"date"`
	OrdersCreated int    `json:"orders_created"`
	Skipped       int    `json:"skipped"` // Subscriptions producing zero quantity
	Replaced      int64  `json:"replaced,omitempty"`
}

// ConfirmDeliveryRequest confirms a single order delivery
type ConfirmDeliveryRequest struct {
	ActualQuantity decimal.Decimal `json:"actual_quantity"`
	DeliveredAt    *time.Time      `json:"delivered_at"`
	DeliveryPerson string          `json:"delivery_person" binding:"max=100"`
	Notes          string          `json:"notes"`
}

// BulkConfirmRequest confirms many orders as delivered as planned
type BulkConfirmRequest struct {
	OrderIDs       []uuid.UUID `json:"order_ids" binding:"required,min=1"`
	DeliveryPerson string      `json:"delivery_person" binding:"max=100"`
}

// BulkConfirmResult reports per-order outcomes of a bulk confirmation
type BulkConfirmResult struct {
	Confirmed int              `json:"confirmed"`
	Failed    int              `json:"failed"`
	Errors    []BulkOrderError `json:"errors,omitempty"`
}

// BulkOrderError describes one failed order in a bulk confirmation
type BulkOrderError struct {
	OrderID uuid.UUID `json:"order_id"`
	Error   string    `json:"error"`
}

// OrderResponse represents a daily order in API responses
type OrderResponse struct {
	ID              uuid.UUID        `json:"id"`
	CustomerID      uuid.UUID        `json:"customer_id"`
	ProductID       uuid.UUID        `json:"product_id"`
	RouteID         uuid.UUID        `json:"route_id"`
	OrderDate       string           `json:"order_date"`
	DeliveryTime    string           `json:"delivery_time"`
	PlannedQuantity decimal.Decimal  `json:"planned_quantity"`
	ActualQuantity  *decimal.Decimal `json:"actual_quantity,omitempty"`
	UnitPrice       decimal.Decimal  `json:"unit_price"`
	TotalAmount     decimal.Decimal  `json:"total_amount"`
	Status          string           `json:"status"`
	DeliveredAt     *time.Time       `json:"delivered_at,omitempty"`
	DeliveryPerson  string           `json:"delivery_person,omitempty"`
	Notes           string           `json:"notes,omitempty"`
}

// OrderListFilter represents filter options for order list
type OrderListFilter struct {
	Date         string `form:"date"`
	RouteID      string `form:"route_id" binding:"omitempty,uuid"`
	CustomerID   string `form:"customer_id" binding:"omitempty,uuid"`
	Status       string `form:"status" binding:"omitempty,oneof=generated delivered cancelled"`
	DeliveryTime string `form:"delivery_time" binding:"omitempty,oneof=morning evening"`
	Page         int    `form:"page" binding:"omitempty,min=1"`
	PageSize     int    `form:"page_size" binding:"omitempty,min=1,max=200"`
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *delivery.Order) OrderResponse {
	return OrderResponse{
		ID:              o.ID,
		CustomerID:      o.CustomerID,
		ProductID:       o.ProductID,
		RouteID:         o.RouteID,
		OrderDate:       format.Date(o.OrderDate),
		DeliveryTime:    o.DeliveryTime,
		PlannedQuantity: o.PlannedQuantity,
		ActualQuantity:  o.ActualQuantity,
		UnitPrice:       o.UnitPrice,
		TotalAmount:     o.TotalAmount,
		Status:          string(o.Status),
		DeliveredAt:     o.DeliveredAt,
		DeliveryPerson:  o.DeliveryPerson,
		Notes:           o.Notes,
	}
}

// ToOrderResponses converts a slice of domain Orders
func ToOrderResponses(orders []delivery.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	return responses
}
