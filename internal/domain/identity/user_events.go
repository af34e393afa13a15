package identity

import (
	"github.com/dishankgupta/milk-subs-sub005/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeUser = "User"

// Event type constants
const (
	EventTypeUserCreated     = "UserCreated"
	EventTypeUserTOTPEnabled = "UserTOTPEnabled"
)

// UserCreatedEvent is published when a new user is created
type UserCreatedEvent struct {
	shared.BaseDomainEvent
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Role     Role      `json:"role"`
}

// NewUserCreatedEvent creates a new UserCreatedEvent
func NewUserCreatedEvent(user *User) *UserCreatedEvent {
	return &UserCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserCreated, AggregateTypeUser, user.ID),
		UserID:          user.ID,
		Username:        user.Username,
		Role:            user.Role,
	}
}

// UserTOTPEnabledEvent is published when a user completes TOTP enrollment
type UserTOTPEnabledEvent struct {
	shared.BaseDomainEvent
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
}

// NewUserTOTPEnabledEvent creates a new UserTOTPEnabledEvent
func NewUserTOTPEnabledEvent(user *User) *UserTOTPEnabledEvent {
	return &UserTOTPEnabledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserTOTPEnabled, AggregateTypeUser, user.ID),
		UserID:          user.ID,
		Username:        user.Username,
	}
}
