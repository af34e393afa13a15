package partner

import (
	"time"

	"github.com/dishankgupta/milk-subs-sub005/internal/domain/partner"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Customer DTOs
// =============================================================================

// CreateCustomerRequest represents a request to create a new customer
type CreateCustomerRequest struct {
	BillingName     string           `json:"billing_name" binding:"required,min=1,max=200"`
	ContactPerson   string           `json:"contact_person" binding:"required,min=1,max=100"`
	Address         string           `json:"address" binding:"required"`
	PhonePrimary    string           `json:"phone_primary" binding:"required,max=20"`
	PhoneSecondary  string           `json:"phone_secondary" binding:"max=20"`
	PhoneTertiary   string           `json:"phone_tertiary" binding:"max=20"`
	RouteID         uuid.UUID        `json:"route_id" binding:"required"`
	DeliveryTime    string           `json:"delivery_time" binding:"required,oneof=morning evening"`
	PaymentMethod   string           `json:"payment_method" binding:"omitempty,oneof=monthly prepaid"`
	BillingCycleDay *int             `json:"billing_cycle_day" binding:"omitempty,min=1,max=31"`
	OpeningBalance  *decimal.Decimal `json:"opening_balance"`
	Notes           string           `json:"notes"`
}

// UpdateCustomerRequest represents a request to update a customer
type UpdateCustomerRequest struct {
	BillingName     *string          `json:"billing_name" binding:"omitempty,min=1,max=200"`
	ContactPerson   *string          `json:"contact_person" binding:"omitempty,min=1,max=100"`
	Address         *string          `json:"address"`
	PhonePrimary    *string          `json:"phone_primary" binding:"omitempty,max=20"`
	PhoneSecondary  *string          `json:"phone_secondary" binding:"omitempty,max=20"`
	PhoneTertiary   *string          `json:"phone_tertiary" binding:"omitempty,max=20"`
	RouteID         *uuid.UUID       `json:"route_id"`
	DeliveryTime    *string          `json:"delivery_time" binding:"omitempty,oneof=morning evening"`
	PaymentMethod   *string          `json:"payment_method" binding:"omitempty,oneof=monthly prepaid"`
	BillingCycleDay *int             `json:"billing_cycle_day" binding:"omitempty,min=1,max=31"`
	OpeningBalance  *decimal.Decimal `json:"opening_balance"`
	Notes           *string          `json:"notes"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID              uuid.UUID       `json:"id"`
	BillingName     string          `json:"billing_name"`
	ContactPerson   string          `json:"contact_person"`
	Address         string          `json:"address"`
	PhonePrimary    string          `json:"phone_primary"`
	PhoneSecondary  string          `json:"phone_secondary,omitempty"`
	PhoneTertiary   string          `json:"phone_tertiary,omitempty"`
	RouteID         uuid.UUID       `json:"route_id"`
	DeliveryTime    string          `json:"delivery_time"`
	PaymentMethod   string          `json:"payment_method"`
	BillingCycleDay int             `json:"billing_cycle_day"`
	OpeningBalance  decimal.Decimal `json:"opening_balance"`
	Status          string          `json:"status"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Version         int             `json:"version"`
}

// CustomerListFilter represents filter options for customer list
type CustomerListFilter struct {
	Search       string `form:"search"`
	Status       string `form:"status" binding:"omitempty,oneof=active inactive"`
	RouteID      string `form:"route_id" binding:"omitempty,uuid"`
	DeliveryTime string `form:"delivery_time" binding:"omitempty,oneof=morning evening"`
	Page         int    `form:"page" binding:"omitempty,min=1"`
	PageSize     int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy      string `form:"order_by"`
	OrderDir     string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToCustomerResponse converts a domain Customer to CustomerResponse
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:              c.ID,
		BillingName:     c.BillingName,
		ContactPerson:   c.ContactPerson,
		Address:         c.Address,
		PhonePrimary:    c.PhonePrimary,
		PhoneSecondary:  c.PhoneSecondary,
		PhoneTertiary:   c.PhoneTertiary,
		RouteID:         c.RouteID,
		DeliveryTime:    string(c.DeliveryTime),
		PaymentMethod:   string(c.PaymentMethod),
		BillingCycleDay: c.BillingCycleDay,
		OpeningBalance:  c.OpeningBalance,
		Status:          string(c.Status),
		Notes:           c.Notes,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
		Version:         c.Version,
	}
}

// ToCustomerResponses converts a slice of domain Customers
func ToCustomerResponses(customers []partner.Customer) []CustomerResponse {
	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i])
	}
	return responses
}

// =============================================================================
// Route DTOs
// =============================================================================

// CreateRouteRequest represents a request to create a new route
type CreateRouteRequest struct {
	Name          string `json:"name" binding:"required,min=1,max=100"`
	Description   string `json:"description"`
	PersonnelName string `json:"personnel_name" binding:"max=100"`
}

// UpdateRouteRequest represents a request to update a route
type UpdateRouteRequest struct {
	Name          *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description   *string `json:"description"`
	PersonnelName *string `json:"personnel_name" binding:"omitempty,max=100"`
}

// RouteResponse represents a route in API responses
type RouteResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	PersonnelName string    `json:"personnel_name,omitempty"`
	Status        string    `json:"status"`
	CustomerCount int64     `json:"customer_count,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// RouteListFilter represents filter options for route list
type RouteListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ToRouteResponse converts a domain Route to RouteResponse
func ToRouteResponse(r *partner.Route) RouteResponse {
	return RouteResponse{
		ID:            r.ID,
		Name:          r.Name,
		Description:   r.Description,
		PersonnelName: r.PersonnelName,
		Status:        string(r.Status),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// ToRouteResponses converts a slice of domain Routes
func ToRouteResponses(routes []partner.Route) []RouteResponse {
	responses := make([]RouteResponse, len(routes))
	for i := range routes {
		responses[i] = ToRouteResponse(&routes[i])
	}
	return responses
}
