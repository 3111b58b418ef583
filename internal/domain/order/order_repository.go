package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// OrderRepository defines the persistence interface for orders
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Order, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)
	Save(ctx context.Context, order *Order) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// NextOrderNumber atomically increments and returns the order number
	// counter. Numbers are strictly increasing across concurrent callers.
	NextOrderNumber(ctx context.Context) (int64, error)
}
