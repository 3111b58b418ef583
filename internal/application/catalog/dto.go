package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
)

// VariantRequest represents one color variant in a product payload
type VariantRequest struct {
	Color string             `json:"color" binding:"required,min=1,max=50"`
	Sizes []SizeStockRequest `json:"sizes" binding:"required,dive"`
}

// SizeStockRequest represents one size entry of a variant
type SizeStockRequest struct {
	Size  string `json:"size" binding:"required,min=1,max=20"`
	Stock int    `json:"stock"`
}

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name        string           `json:"name" binding:"required,min=1,max=200"`
	Description string           `json:"description" binding:"max=5000"`
	Category    string           `json:"category" binding:"max=100"`
	Image       string           `json:"image" binding:"max=500"`
	Price       decimal.Decimal  `json:"price" binding:"required"`
	Discount    *int             `json:"discount" binding:"omitempty,min=0,max=100"`
	TotalStock  int              `json:"total_stock" binding:"min=0"`
	Variants    []VariantRequest `json:"variants" binding:"omitempty,dive"`
}

// UpdateProductRequest carries the allow-listed mutable fields of a product.
// Only non-nil fields are applied.
type UpdateProductRequest struct {
	Name        *string           `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string           `json:"description" binding:"omitempty,max=5000"`
	Category    *string           `json:"category" binding:"omitempty,max=100"`
	Image       *string           `json:"image" binding:"omitempty,max=500"`
	Price       *decimal.Decimal  `json:"price"`
	Discount    *int              `json:"discount" binding:"omitempty,min=0,max=100"`
	TotalStock  *int              `json:"total_stock" binding:"omitempty,min=0"`
	Variants    *[]VariantRequest `json:"variants" binding:"omitempty,dive"`
}

// StockActionRequest represents a direct stock mutation request
type StockActionRequest struct {
	Action   string           `json:"action" binding:"required"`
	Quantity int              `json:"quantity" binding:"required"`
	Price    *decimal.Decimal `json:"price"`
	Color    string           `json:"color" binding:"max=50"`
	Size     string           `json:"size" binding:"max=20"`
	Notes    string           `json:"notes" binding:"max=1000"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// VariantResponse represents one color variant in API responses
type VariantResponse struct {
	Color string              `json:"color"`
	Sizes []SizeStockResponse `json:"sizes"`
}

// SizeStockResponse represents one size entry in API responses
type SizeStockResponse struct {
	Size  string `json:"size"`
	Stock int    `json:"stock"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID              uuid.UUID         `json:"id"`
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	Category        string            `json:"category"`
	Image           string            `json:"image"`
	Price           decimal.Decimal   `json:"price"`
	Discount        int               `json:"discount"`
	DiscountedPrice decimal.Decimal   `json:"discounted_price"`
	TotalStock      int               `json:"total_stock"`
	OnlineSales     int               `json:"online_sales"`
	OfflineSales    int               `json:"offline_sales"`
	AvailableStock  int               `json:"available_stock"`
	Variants        []VariantResponse `json:"variants"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	Version         int               `json:"version"`
}

// ConsumptionFailure tags one order item whose stock consumption failed
type ConsumptionFailure struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Reason    string    `json:"reason"`
}

// ConsumptionReport summarizes per-item stock consumption for an order.
// Failures never abort the order; they are reported here and logged.
type ConsumptionReport struct {
	Consumed int                  `json:"consumed"`
	Failures []ConsumptionFailure `json:"failures,omitempty"`
}

// AllSucceeded returns true when no item failed
func (r ConsumptionReport) AllSucceeded() bool {
	return len(r.Failures) == 0
}

// ConsumeItem is one order line submitted for stock consumption
type ConsumeItem struct {
	ProductID uuid.UUID
	Quantity  int
}

// ToVariantList converts request variants to the domain representation
func ToVariantList(variants []VariantRequest) catalog.VariantList {
	list := make(catalog.VariantList, 0, len(variants))
	for _, v := range variants {
		sizes := make([]catalog.SizeStock, 0, len(v.Sizes))
		for _, s := range v.Sizes {
			sizes = append(sizes, catalog.SizeStock{Size: s.Size, Stock: s.Stock})
		}
		list = append(list, catalog.Variant{Color: v.Color, Sizes: sizes})
	}
	return list
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	variants := make([]VariantResponse, 0, len(p.Variants))
	for _, v := range p.Variants {
		sizes := make([]SizeStockResponse, 0, len(v.Sizes))
		for _, s := range v.Sizes {
			sizes = append(sizes, SizeStockResponse{Size: s.Size, Stock: s.Stock})
		}
		variants = append(variants, VariantResponse{Color: v.Color, Sizes: sizes})
	}

	return ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Category:        p.Category,
		Image:           p.Image,
		Price:           p.Price,
		Discount:        p.Discount,
		DiscountedPrice: p.DiscountedPrice(),
		TotalStock:      p.TotalStock,
		OnlineSales:     p.OnlineSales,
		OfflineSales:    p.OfflineSales,
		AvailableStock:  p.AvailableStock,
		Variants:        variants,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		Version:         p.Version,
	}
}
