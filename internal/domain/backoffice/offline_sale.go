package backoffice

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// OfflineSale is an append-only record of a sale made outside the online
// store. Exactly one record is written per offline_sale stock action and
// records are never mutated afterwards.
type OfflineSale struct {
	shared.BaseEntity
	ProductID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    int             `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Total       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Color       string          `gorm:"type:varchar(50)"`
	Size        string          `gorm:"type:varchar(20)"`
	SoldAt      time.Time       `gorm:"index;not null"`
	AddedBy     uuid.UUID       `gorm:"type:uuid;not null"`
	Notes       string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (OfflineSale) TableName() string {
	return "offline_sales"
}

// NewOfflineSale creates a new offline sale record.
// Total is always derived as Price * Quantity.
func NewOfflineSale(productID uuid.UUID, productName string, quantity int, price decimal.Decimal, color, size string, addedBy uuid.UUID, notes string) (*OfflineSale, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if addedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "AddedBy cannot be empty")
	}

	return &OfflineSale{
		BaseEntity:  shared.NewBaseEntity(),
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		Price:       price,
		Total:       price.Mul(decimal.NewFromInt(int64(quantity))),
		Color:       color,
		Size:        size,
		SoldAt:      time.Now(),
		AddedBy:     addedBy,
		Notes:       notes,
	}, nil
}
