package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/cache"
)

const productCacheTTL = 5 * time.Minute

// ProductService handles catalog business operations
type ProductService struct {
	productRepo catalog.ProductRepository
	cache       cache.Store
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// WithCache enables read-through caching of product detail lookups.
// Cache failures are ignored; the repository is the source of truth.
func (s *ProductService) WithCache(store cache.Store) *ProductService {
	s.cache = store
	return s
}

func (s *ProductService) cacheKey(productID uuid.UUID) string {
	return "product:" + productID.String()
}

func (s *ProductService) invalidate(ctx context.Context, productID uuid.UUID) {
	if s.cache != nil {
		_ = s.cache.Delete(ctx, s.cacheKey(productID))
	}
}

// Create creates a new product. When variants are present, the total stock
// is positive and no variant carries stock, the even distribution rule runs
// inside InitializeStock.
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.Name, req.Price)
	if err != nil {
		return nil, err
	}

	if req.Description != "" || req.Category != "" || req.Image != "" {
		if err := product.UpdateDetails(req.Name, req.Description, req.Category, req.Image); err != nil {
			return nil, err
		}
	}
	if req.Discount != nil {
		if err := product.SetDiscount(*req.Discount); err != nil {
			return nil, err
		}
	}
	if len(req.Variants) > 0 {
		product.SetVariants(ToVariantList(req.Variants))
	}

	product.InitializeStock(req.TotalStock, 0, 0)

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Update applies the allow-listed fields of the request to the product.
// Unknown fields in the payload are never merged.
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	name := product.Name
	description := product.Description
	category := product.Category
	image := product.Image
	if req.Name != nil {
		name = *req.Name
	}
	if req.Description != nil {
		description = *req.Description
	}
	if req.Category != nil {
		category = *req.Category
	}
	if req.Image != nil {
		image = *req.Image
	}
	if err := product.UpdateDetails(name, description, category, image); err != nil {
		return nil, err
	}

	if req.Price != nil {
		if err := product.SetPrice(*req.Price); err != nil {
			return nil, err
		}
	}
	if req.Discount != nil {
		if err := product.SetDiscount(*req.Discount); err != nil {
			return nil, err
		}
	}
	if req.Variants != nil {
		product.SetVariants(ToVariantList(*req.Variants))
	}
	if req.TotalStock != nil {
		product.SyncTotalStock(*req.TotalStock)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.invalidate(ctx, product.ID)

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	if s.cache != nil {
		if data, ok, err := s.cache.Get(ctx, s.cacheKey(productID)); err == nil && ok {
			var cached ProductResponse
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	if s.cache != nil {
		if data, err := json.Marshal(response); err == nil {
			_ = s.cache.Set(ctx, s.cacheKey(productID), data, productCacheTTL)
		}
	}
	return &response, nil
}

// List retrieves products with pagination, search and category filter
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search

	var (
		products []catalog.Product
		err      error
	)
	if filter.Category != "" {
		products, err = s.productRepo.FindByCategory(ctx, filter.Category, domainFilter)
	} else {
		products, err = s.productRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductResponse(&products[i]))
	}

	return responses, total, nil
}

// Delete removes a product permanently. Ledger counters of historical
// orders are not corrected.
func (s *ProductService) Delete(ctx context.Context, productID uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return err
	}
	s.invalidate(ctx, productID)
	return nil
}
