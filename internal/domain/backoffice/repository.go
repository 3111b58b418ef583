package backoffice

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// OfflineSaleRepository defines the persistence interface for offline sales.
// Records are append-only: there is no update or delete.
type OfflineSaleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OfflineSale, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]OfflineSale, error)
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]OfflineSale, error)
	Append(ctx context.Context, sale *OfflineSale) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	TotalRevenue(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
}

// EmployeeRepository defines the persistence interface for employees
type EmployeeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Employee, error)
	Save(ctx context.Context, employee *Employee) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ExpenseRepository defines the persistence interface for expenses
type ExpenseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Expense, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Expense, error)
	FindByCategory(ctx context.Context, category string, filter shared.Filter) ([]Expense, error)
	Save(ctx context.Context, expense *Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
	TotalAmount(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
}
