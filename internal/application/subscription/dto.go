package subscription

import (
	"time"

	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared/format"
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/subscription"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateSubscriptionRequest represents a request to create a subscription.
// Daily subscriptions need daily_quantity; pattern subscriptions need both
// pattern quantities and a pattern_start_date.
type CreateSubscriptionRequest struct {
	CustomerID       uuid.UUID        `json:"customer_id" binding:"required"`
	ProductID        uuid.UUID        `json:"product_id" binding:"required"`
	Type             string           `json:"type" binding:"required,oneof=daily pattern"`
	DailyQuantity    *decimal.Decimal `json:"daily_quantity"`
	PatternDay1Qty   *decimal.Decimal `json:"pattern_day1_quantity"`
	PatternDay2Qty   *decimal.Decimal `json:"pattern_day2_quantity"`
	PatternStartDate string           `json:"pattern_start_date"` // YYYY-MM-DD
}

// UpdateSubscriptionRequest represents a request to update a subscription's quantities
type UpdateSubscriptionRequest struct {
	DailyQuantity    *decimal.Decimal `json:"daily_quantity"`
	PatternDay1Qty   *decimal.Decimal `json:"pattern_day1_quantity"`
	PatternDay2Qty   *decimal.Decimal `json:"pattern_day2_quantity"`
	PatternStartDate *string          `json:"pattern_start_date"` // YYYY-MM-DD
}

// SubscriptionResponse represents a subscription in API responses
type SubscriptionResponse struct {
	ID               uuid.UUID       `json:"id"`
	CustomerID       uuid.UUID       `json:"customer_id"`
	ProductID        uuid.UUID       `json:"product_id"`
	Type             string          `json:"type"`
	DailyQuantity    decimal.Decimal `json:"daily_quantity"`
	PatternDay1Qty   decimal.Decimal `json:"pattern_day1_quantity"`
	PatternDay2Qty   decimal.Decimal `json:"pattern_day2_quantity"`
	PatternStartDate string          `json:"pattern_start_date,omitempty"`
	Status           string          `json:"status"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	Version          int             `json:"version"`
}

// SubscriptionListFilter represents filter options for subscription list
type SubscriptionListFilter struct {
	CustomerID string `form:"customer_id" binding:"omitempty,uuid"`
	ProductID  string `form:"product_id" binding:"omitempty,uuid"`
	Type       string `form:"type" binding:"omitempty,oneof=daily pattern"`
	Status     string `form:"status" binding:"omitempty,oneof=active inactive"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// PatternPreviewRequest asks for a preview of pattern deliveries
type PatternPreviewRequest struct {
	From string `form:"from"`                                   // YYYY-MM-DD, defaults to today
	Days int    `form:"days" binding:"omitempty,min=1,max=100"` // defaults to 14
}

// PatternPreviewEntryResponse is one day of a pattern preview
type PatternPreviewEntryResponse struct {
	Date     string          `json:"date"`
	Day      int             `json:"pattern_day"`
	Quantity decimal.Decimal `json:"quantity"`
}

// ToSubscriptionResponse converts a domain Subscription to SubscriptionResponse
func ToSubscriptionResponse(s *subscription.Subscription) SubscriptionResponse {
	resp := SubscriptionResponse{
		ID:             s.ID,
		CustomerID:     s.CustomerID,
		ProductID:      s.ProductID,
		Type:           string(s.Type),
		DailyQuantity:  s.DailyQuantity,
		PatternDay1Qty: s.PatternDay1Qty,
		PatternDay2Qty: s.PatternDay2Qty,
		Status:         string(s.Status),
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
		Version:        s.Version,
	}
	if s.PatternStartDate != nil {
		resp.PatternStartDate = format.Date(*s.PatternStartDate)
	}
	return resp
}

// ToSubscriptionResponses converts a slice of domain Subscriptions
func ToSubscriptionResponses(subs []subscription.Subscription) []SubscriptionResponse {
	responses := make([]SubscriptionResponse, len(subs))
	for i := range subs {
		responses[i] = ToSubscriptionResponse(&subs[i])
	}
	return responses
}

// ToPatternPreviewResponses converts domain preview entries
func ToPatternPreviewResponses(entries []subscription.PatternPreviewEntry) []PatternPreviewEntryResponse {
	responses := make([]PatternPreviewEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = PatternPreviewEntryResponse{
			Date:     format.Date(e.Date),
			Day:      e.Day,
			Quantity: e.Quantity,
		}
	}
	return responses
}
