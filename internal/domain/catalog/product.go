package catalog

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// Product represents a storefront product with its stock ledger counters.
// It is the aggregate root for catalog and stock operations.
//
// AvailableStock is derived: TotalStock - OnlineSales - OfflineSales. It is
// recomputed after every mutation and is allowed to go negative so oversell
// stays visible in reports instead of being silently clamped.
type Product struct {
	shared.BaseAggregateRoot
	Name           string          `gorm:"type:varchar(200);not null"`
	Description    string          `gorm:"type:text"`
	Category       string          `gorm:"type:varchar(100);index"`
	Image          string          `gorm:"type:varchar(500)"`
	Price          decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Discount       int             `gorm:"not null;default:0"` // percent, 0-100
	TotalStock     int             `gorm:"not null;default:0"`
	OnlineSales    int             `gorm:"not null;default:0"`
	OfflineSales   int             `gorm:"not null;default:0"`
	AvailableStock int             `gorm:"not null;default:0"`
	Variants       VariantList     `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product with zeroed stock counters
func NewProduct(name string, price decimal.Decimal) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Price:             price,
		Variants:          VariantList{},
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// UpdateDetails updates the product's descriptive fields
func (p *Product) UpdateDetails(name, description, category, image string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.Category = category
	p.Image = image
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetPrice sets the product's list price
func (p *Product) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	p.Price = price
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetDiscount sets the discount percentage
func (p *Product) SetDiscount(discount int) error {
	if discount < 0 || discount > 100 {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount must be between 0 and 100")
	}

	p.Discount = discount
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetVariants replaces the product's color/size variants
func (p *Product) SetVariants(variants VariantList) {
	if variants == nil {
		variants = VariantList{}
	}
	p.Variants = variants
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// DiscountedPrice returns the effective selling price after discount
func (p *Product) DiscountedPrice() decimal.Decimal {
	if p.Discount == 0 {
		return p.Price
	}
	factor := decimal.NewFromInt(int64(100 - p.Discount)).Div(decimal.NewFromInt(100))
	return p.Price.Mul(factor).Round(2)
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
