package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/backoffice"
	"github.com/storefront/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormOfflineSaleRepository implements OfflineSaleRepository using GORM.
// Records are append-only; no update or delete is exposed.
type GormOfflineSaleRepository struct {
	db *gorm.DB
}

// NewGormOfflineSaleRepository creates a new GormOfflineSaleRepository
func NewGormOfflineSaleRepository(db *gorm.DB) *GormOfflineSaleRepository {
	return &GormOfflineSaleRepository{db: db}
}

// FindByID finds an offline sale by its ID
func (r *GormOfflineSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*backoffice.OfflineSale, error) {
	var sale backoffice.OfflineSale
	if err := r.db.WithContext(ctx).First(&sale, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindAll finds all offline sales matching the filter
func (r *GormOfflineSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]backoffice.OfflineSale, error) {
	var sales []backoffice.OfflineSale
	query := applyPagination(r.db.WithContext(ctx).Model(&backoffice.OfflineSale{}), filter)

	if err := query.Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// FindByProduct finds all offline sales of a product
func (r *GormOfflineSaleRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]backoffice.OfflineSale, error) {
	var sales []backoffice.OfflineSale
	query := r.db.WithContext(ctx).Model(&backoffice.OfflineSale{}).Where("product_id = ?", productID)
	query = applyPagination(query, filter)

	if err := query.Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// Append inserts a new offline sale record
func (r *GormOfflineSaleRepository) Append(ctx context.Context, sale *backoffice.OfflineSale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

// Count counts offline sales matching the filter
func (r *GormOfflineSaleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&backoffice.OfflineSale{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// TotalRevenue sums sale totals inside the period
func (r *GormOfflineSaleRepository) TotalRevenue(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&backoffice.OfflineSale{}).
		Where("sold_at BETWEEN ? AND ?", from, to).
		Select("COALESCE(SUM(total), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

var _ backoffice.OfflineSaleRepository = (*GormOfflineSaleRepository)(nil)
