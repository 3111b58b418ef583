package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	appcatalog "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/domain/order"
)

// OrderItemRequest is one line of an order payload
type OrderItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Name      string          `json:"name" binding:"required,max=200"`
	Price     decimal.Decimal `json:"price" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,min=1"`
	Size      string          `json:"size" binding:"max=20"`
	Color     string          `json:"color" binding:"max=50"`
	Image     string          `json:"image" binding:"max=500"`
}

// ShippingAddressRequest is the delivery address of an order payload
type ShippingAddressRequest struct {
	FullName   string `json:"full_name" binding:"required,max=200"`
	Line1      string `json:"line1" binding:"required,max=200"`
	Line2      string `json:"line2" binding:"max=200"`
	City       string `json:"city" binding:"required,max=100"`
	State      string `json:"state" binding:"max=100"`
	PostalCode string `json:"postal_code" binding:"required,max=20"`
	Country    string `json:"country" binding:"required,max=100"`
	Phone      string `json:"phone" binding:"max=50"`
}

// CreateOrderRequest represents a request to place an order.
// Items stays nil when the field is absent from the payload; an explicitly
// empty array arrives as a non-nil empty slice.
type CreateOrderRequest struct {
	Items           []OrderItemRequest     `json:"items"`
	ShippingAddress ShippingAddressRequest `json:"shipping_address" binding:"required"`
	PaymentMethod   string                 `json:"payment_method" binding:"required,oneof=cod card"`
}

// UpdateOrderStatusRequest sets a new fulfilment status
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdatePaymentStatusRequest sets a new payment status
type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// CancellationRequest opens a cancellation request on an order
type CancellationRequest struct {
	Reason string `json:"reason" binding:"max=1000"`
}

// CancellationDecisionRequest resolves a pending cancellation request
type CancellationDecisionRequest struct {
	Decision string `json:"decision" binding:"required,oneof=accepted rejected"`
}

// OrderListFilter represents filter options for order lists
type OrderListFilter struct {
	Status   string `form:"status"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// OrderItemResponse is one order line in API responses
type OrderItemResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Size      string          `json:"size"`
	Color     string          `json:"color"`
	Image     string          `json:"image"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID                    uuid.UUID             `json:"id"`
	OrderNumber           int64                 `json:"order_number"`
	UserID                uuid.UUID             `json:"user_id"`
	Items                 []OrderItemResponse   `json:"items"`
	ShippingAddress       order.ShippingAddress `json:"shipping_address"`
	TotalAmount           decimal.Decimal       `json:"total_amount"`
	Status                string                `json:"status"`
	PaymentMethod         string                `json:"payment_method"`
	PaymentStatus         string                `json:"payment_status"`
	CancellationRequested bool                  `json:"cancellation_requested"`
	CancellationStatus    string                `json:"cancellation_status"`
	CancellationReason    string                `json:"cancellation_reason,omitempty"`
	CreatedAt             time.Time             `json:"created_at"`
	UpdatedAt             time.Time             `json:"updated_at"`
}

// CreateOrderResponse pairs the placed order with its consumption report
type CreateOrderResponse struct {
	Order       OrderResponse                `json:"order"`
	Consumption appcatalog.ConsumptionReport `json:"consumption"`
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Size:      item.Size,
			Color:     item.Color,
			Image:     item.Image,
		})
	}

	return OrderResponse{
		ID:                    o.ID,
		OrderNumber:           o.OrderNumber,
		UserID:                o.UserID,
		Items:                 items,
		ShippingAddress:       o.ShippingAddress,
		TotalAmount:           o.TotalAmount,
		Status:                o.Status.String(),
		PaymentMethod:         o.PaymentMethod.String(),
		PaymentStatus:         o.PaymentStatus.String(),
		CancellationRequested: o.CancellationRequested,
		CancellationStatus:    o.CancellationStatus.String(),
		CancellationReason:    o.CancellationReason,
		CreatedAt:             o.CreatedAt,
		UpdatedAt:             o.UpdatedAt,
	}
}
