package order

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// Event types for the order context
const (
	EventTypeOrderCreated          = "order.created"
	EventTypeOrderStatusChanged    = "order.status_changed"
	EventTypeCancellationRequested = "order.cancellation_requested"
	EventTypeCancellationResolved  = "order.cancellation_resolved"
)

// OrderCreatedEvent is published when a new order is placed
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID       `json:"order_id"`
	UserID      uuid.UUID       `json:"user_id"`
	ItemCount   int             `json:"item_count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(o *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, "Order", o.ID),
		OrderID:         o.ID,
		UserID:          o.UserID,
		ItemCount:       o.ItemCount(),
		TotalAmount:     o.TotalAmount,
	}
}

// OrderStatusChangedEvent is published when an admin changes the status
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID        uuid.UUID   `json:"order_id"`
	PreviousStatus OrderStatus `json:"previous_status"`
	NewStatus      OrderStatus `json:"new_status"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(o *Order, previous OrderStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, "Order", o.ID),
		OrderID:         o.ID,
		PreviousStatus:  previous,
		NewStatus:       o.Status,
	}
}

// CancellationRequestedEvent is published when the owner opens a
// cancellation request
type CancellationRequestedEvent struct {
	shared.BaseDomainEvent
	OrderID uuid.UUID `json:"order_id"`
	UserID  uuid.UUID `json:"user_id"`
	Reason  string    `json:"reason"`
}

// NewCancellationRequestedEvent creates a new CancellationRequestedEvent
func NewCancellationRequestedEvent(o *Order) *CancellationRequestedEvent {
	return &CancellationRequestedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCancellationRequested, "Order", o.ID),
		OrderID:         o.ID,
		UserID:          o.UserID,
		Reason:          o.CancellationReason,
	}
}

// CancellationResolvedEvent is published when an admin resolves a request
type CancellationResolvedEvent struct {
	shared.BaseDomainEvent
	OrderID  uuid.UUID          `json:"order_id"`
	Decision CancellationStatus `json:"decision"`
}

// NewCancellationResolvedEvent creates a new CancellationResolvedEvent
func NewCancellationResolvedEvent(o *Order, decision CancellationStatus) *CancellationResolvedEvent {
	return &CancellationResolvedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCancellationResolved, "Order", o.ID),
		OrderID:         o.ID,
		Decision:        decision,
	}
}
