package catalog

import (
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Event types for the catalog context
const (
	EventTypeProductCreated = "catalog.product.created"
	EventTypeProductUpdated = "catalog.product.updated"
	EventTypeProductDeleted = "catalog.product.deleted"
	EventTypeStockAdjusted  = "catalog.product.stock_adjusted"
)

// ProductCreatedEvent is published when a new product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID  uuid.UUID `json:"product_id"`
	Name       string    `json:"name"`
	TotalStock int       `json:"total_stock"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(product *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, "Product", product.ID),
		ProductID:       product.ID,
		Name:            product.Name,
		TotalStock:      product.TotalStock,
	}
}

// ProductUpdatedEvent is published when a product's details change
type ProductUpdatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
}

// NewProductUpdatedEvent creates a new ProductUpdatedEvent
func NewProductUpdatedEvent(product *Product) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductUpdated, "Product", product.ID),
		ProductID:       product.ID,
		Name:            product.Name,
	}
}

// StockAdjustedEvent is published after a direct stock action runs
type StockAdjustedEvent struct {
	shared.BaseDomainEvent
	ProductID      uuid.UUID   `json:"product_id"`
	Action         StockAction `json:"action"`
	Quantity       int         `json:"quantity"`
	TotalStock     int         `json:"total_stock"`
	AvailableStock int         `json:"available_stock"`
}

// NewStockAdjustedEvent creates a new StockAdjustedEvent
func NewStockAdjustedEvent(product *Product, action StockAction, quantity int) *StockAdjustedEvent {
	return &StockAdjustedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockAdjusted, "Product", product.ID),
		ProductID:       product.ID,
		Action:          action,
		Quantity:        quantity,
		TotalStock:      product.TotalStock,
		AvailableStock:  product.AvailableStock,
	}
}
