package order

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// OrderStatus represents the fulfilment status of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// PaymentMethod represents how the customer pays for the order
type PaymentMethod string

const (
	PaymentMethodCOD  PaymentMethod = "cod"
	PaymentMethodCard PaymentMethod = "card"
)

// IsValid checks if the method is a valid PaymentMethod
func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodCOD || m == PaymentMethodCard
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// PaymentStatus represents the payment state of an order
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// CancellationStatus tracks the customer/admin cancellation handshake
type CancellationStatus string

const (
	CancellationStatusNone      CancellationStatus = "none"
	CancellationStatusRequested CancellationStatus = "requested"
	CancellationStatusAccepted  CancellationStatus = "accepted"
	CancellationStatusRejected  CancellationStatus = "rejected"
)

// IsValid checks if the status is a valid CancellationStatus
func (s CancellationStatus) IsValid() bool {
	switch s {
	case CancellationStatusNone, CancellationStatusRequested, CancellationStatusAccepted, CancellationStatusRejected:
		return true
	}
	return false
}

// String returns the string representation of CancellationStatus
func (s CancellationStatus) String() string {
	return string(s)
}

// OrderItem is an immutable snapshot of a product at purchase time.
// Prices are captured from the request as-is and never revalidated
// against the catalog afterwards.
type OrderItem struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Size      string          `json:"size"`
	Color     string          `json:"color"`
	Image     string          `json:"image"`
}

// Subtotal returns Price * Quantity for the line
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// OrderItemList is stored as a single JSON column
type OrderItemList []OrderItem

// Value implements driver.Valuer for JSON column storage
func (l OrderItemList) Value() (driver.Value, error) {
	if l == nil {
		l = OrderItemList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for JSON column storage
func (l *OrderItemList) Scan(value interface{}) error {
	if value == nil {
		*l = OrderItemList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return fmt.Errorf("unsupported type for OrderItemList: %T", value)
}

// ShippingAddress is the delivery address captured with the order
type ShippingAddress struct {
	FullName   string `json:"full_name"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
}

// Value implements driver.Valuer for JSON column storage
func (a ShippingAddress) Value() (driver.Value, error) {
	return json.Marshal(a)
}

// Scan implements sql.Scanner for JSON column storage
func (a *ShippingAddress) Scan(value interface{}) error {
	if value == nil {
		*a = ShippingAddress{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	}
	return fmt.Errorf("unsupported type for ShippingAddress: %T", value)
}

// Order represents a customer order aggregate root.
//
// OrderNumber is assigned by the persistence layer from an atomic counter,
// after the aggregate is constructed and before the first save. Status has
// no transition table: an admin may set any valid status at any time.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber           int64              `gorm:"uniqueIndex;not null;default:0"`
	UserID                uuid.UUID          `gorm:"type:uuid;index;not null"`
	Items                 OrderItemList      `gorm:"type:jsonb"`
	ShippingAddress       ShippingAddress    `gorm:"type:jsonb"`
	TotalAmount           decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0"`
	Status                OrderStatus        `gorm:"type:varchar(20);not null;default:'pending'"`
	PaymentMethod         PaymentMethod      `gorm:"type:varchar(20);not null"`
	PaymentStatus         PaymentStatus      `gorm:"type:varchar(20);not null;default:'pending'"`
	CancellationRequested bool               `gorm:"not null;default:false"`
	CancellationStatus    CancellationStatus `gorm:"type:varchar(20);not null;default:'none'"`
	CancellationReason    string             `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new order in pending status.
//
// A non-nil empty items slice is rejected; a nil slice is not. Callers that
// omit the items field entirely pass through this check, which mirrors the
// storefront's historical request handling.
func NewOrder(userID uuid.UUID, items OrderItemList, address ShippingAddress, method PaymentMethod) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if items != nil && len(items) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Order must contain at least one item")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method: "+string(method))
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}

	order := &Order{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		UserID:             userID,
		Items:              items,
		ShippingAddress:    address,
		TotalAmount:        total,
		Status:             OrderStatusPending,
		PaymentMethod:      method,
		PaymentStatus:      PaymentStatusPending,
		CancellationStatus: CancellationStatusNone,
	}

	order.AddDomainEvent(NewOrderCreatedEvent(order))

	return order, nil
}

// AssignOrderNumber sets the sequence number obtained from the counter.
// It may only be assigned once.
func (o *Order) AssignOrderNumber(number int64) error {
	if number <= 0 {
		return shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number must be positive")
	}
	if o.OrderNumber != 0 {
		return shared.NewDomainError("INVALID_STATE", "Order number is already assigned")
	}

	o.OrderNumber = number
	o.UpdatedAt = time.Now()

	return nil
}

// SetStatus sets the fulfilment status. Any valid status is accepted.
func (o *Order) SetStatus(status OrderStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status: "+string(status))
	}

	previous := o.Status
	o.Status = status
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, previous))

	return nil
}

// SetPaymentStatus sets the payment status
func (o *Order) SetPaymentStatus(status PaymentStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_STATUS", "Unknown payment status: "+string(status))
	}

	o.PaymentStatus = status
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// RequestCancellation opens the cancellation handshake on behalf of the
// order's owner. Delivered and already-cancelled orders cannot be targeted.
// Ownership of the caller is checked by the application layer.
func (o *Order) RequestCancellation(reason string) error {
	if o.Status == OrderStatusDelivered || o.Status == OrderStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot request cancellation for a %s order", o.Status))
	}

	o.CancellationRequested = true
	o.CancellationStatus = CancellationStatusRequested
	o.CancellationReason = reason
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewCancellationRequestedEvent(o))

	return nil
}

// RespondToCancellation resolves a pending cancellation request and clears
// the requested flag.
//
// Accepting cancels the order. For cash-on-delivery orders the payment
// status is reset to pending on acceptance; card payments are left as they
// are and any refund is handled out of band.
func (o *Order) RespondToCancellation(decision CancellationStatus) error {
	if decision != CancellationStatusAccepted && decision != CancellationStatusRejected {
		return shared.NewDomainError("INVALID_DECISION", "Decision must be accepted or rejected")
	}
	if o.CancellationStatus != CancellationStatusRequested {
		return shared.NewDomainError("INVALID_STATE", "No pending cancellation request on this order")
	}

	o.CancellationRequested = false
	o.CancellationStatus = decision
	if decision == CancellationStatusAccepted {
		o.Status = OrderStatusCancelled
		if o.PaymentMethod == PaymentMethodCOD {
			o.PaymentStatus = PaymentStatusPending
		}
	}
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewCancellationResolvedEvent(o, decision))

	return nil
}

// IsOwnedBy returns true if the order belongs to the given user
func (o *Order) IsOwnedBy(userID uuid.UUID) bool {
	return o.UserID == userID
}

// IsCancelled returns true if the order is cancelled
func (o *Order) IsCancelled() bool {
	return o.Status == OrderStatusCancelled
}

// ItemCount returns the number of line items
func (o *Order) ItemCount() int {
	return len(o.Items)
}

// TotalQuantity returns the sum of all line item quantities
func (o *Order) TotalQuantity() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}
