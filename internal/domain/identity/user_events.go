package identity

import (
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Event types for the identity context
const (
	EventTypeUserRegistered = "identity.user.registered"
)

// UserRegisteredEvent is published when a new account is created
type UserRegisteredEvent struct {
	shared.BaseDomainEvent
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   Role      `json:"role"`
}

// NewUserRegisteredEvent creates a new UserRegisteredEvent
func NewUserRegisteredEvent(user *User) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserRegistered, "User", user.ID),
		UserID:          user.ID,
		Email:           user.Email,
		Role:            user.Role,
	}
}
