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

// GormExpenseRepository implements ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByID finds an expense by its ID
func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*backoffice.Expense, error) {
	var expense backoffice.Expense
	if err := r.db.WithContext(ctx).First(&expense, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &expense, nil
}

// FindAll finds all expenses matching the filter
func (r *GormExpenseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]backoffice.Expense, error) {
	var expenses []backoffice.Expense
	query := applyPagination(r.db.WithContext(ctx).Model(&backoffice.Expense{}), filter)

	if err := query.Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// FindByCategory finds all expenses in a category
func (r *GormExpenseRepository) FindByCategory(ctx context.Context, category string, filter shared.Filter) ([]backoffice.Expense, error) {
	var expenses []backoffice.Expense
	query := r.db.WithContext(ctx).Model(&backoffice.Expense{}).Where("category = ?", category)
	query = applyPagination(query, filter)

	if err := query.Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// Save creates or updates an expense
func (r *GormExpenseRepository) Save(ctx context.Context, expense *backoffice.Expense) error {
	return r.db.WithContext(ctx).Save(expense).Error
}

// Delete deletes an expense
func (r *GormExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&backoffice.Expense{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// TotalAmount sums expense amounts inside the period
func (r *GormExpenseRepository) TotalAmount(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&backoffice.Expense{}).
		Where("spent_at BETWEEN ? AND ?", from, to).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

var _ backoffice.ExpenseRepository = (*GormExpenseRepository)(nil)
