package partner

import (
	"time"

	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared"
)

// RouteStatus represents the status of a delivery route
type RouteStatus string

const (
	RouteStatusActive   RouteStatus = "active"
	RouteStatusInactive RouteStatus = "inactive"
)

// Route represents a delivery route served by one delivery person.
// Customers are assigned to exactly one route.
type Route struct {
	shared.BaseAggregateRoot
	Name          string      `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description   string      `gorm:"type:text"`
	PersonnelName string      `gorm:"type:varchar(100)"` // Delivery person for this route
	Status        RouteStatus `gorm:"type:varchar(20);not null;default:'active'"`
	SortOrder     int         `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Route) TableName() string {
	return "routes"
}

// NewRoute creates a new delivery route
func NewRoute(name, description, personnelName string) (*Route, error) {
	if err := validateRouteName(name); err != nil {
		return nil, err
	}
	if personnelName != "" && len(personnelName) > 100 {
		return nil, shared.NewDomainError("INVALID_PERSONNEL_NAME", "Personnel name cannot exceed 100 characters")
	}

	return &Route{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
		PersonnelName:     personnelName,
		Status:            RouteStatusActive,
	}, nil
}

// Update updates the route's information
func (r *Route) Update(name, description, personnelName string) error {
	if err := validateRouteName(name); err != nil {
		return err
	}
	if personnelName != "" && len(personnelName) > 100 {
		return shared.NewDomainError("INVALID_PERSONNEL_NAME", "Personnel name cannot exceed 100 characters")
	}

	r.Name = name
	r.Description = description
	r.PersonnelName = personnelName
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// SetSortOrder sets the display order
func (r *Route) SetSortOrder(order int) {
	r.SortOrder = order
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// Activate activates the route
func (r *Route) Activate() error {
	if r.Status == RouteStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Route is already active")
	}
	r.Status = RouteStatusActive
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// Deactivate deactivates the route
func (r *Route) Deactivate() error {
	if r.Status == RouteStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Route is already inactive")
	}
	r.Status = RouteStatusInactive
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// IsActive returns true if the route is active
func (r *Route) IsActive() bool {
	return r.Status == RouteStatusActive
}

func validateRouteName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Route name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Route name cannot exceed 100 characters")
	}
	return nil
}
