package backoffice

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// Expense is an operating expense tracked by the back office
type Expense struct {
	shared.BaseAggregateRoot
	Category    string          `gorm:"type:varchar(100);index;not null"`
	Description string          `gorm:"type:text"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	SpentAt     time.Time       `gorm:"index;not null"`
	AddedBy     uuid.UUID       `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (Expense) TableName() string {
	return "expenses"
}

// NewExpense creates a new expense record
func NewExpense(category, description string, amount decimal.Decimal, spentAt time.Time, addedBy uuid.UUID) (*Expense, error) {
	if category == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Expense category cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}
	if addedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "AddedBy cannot be empty")
	}
	if spentAt.IsZero() {
		spentAt = time.Now()
	}

	return &Expense{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Category:          category,
		Description:       description,
		Amount:            amount,
		SpentAt:           spentAt,
		AddedBy:           addedBy,
	}, nil
}

// Update changes the expense's details
func (e *Expense) Update(category, description string, amount decimal.Decimal, spentAt time.Time) error {
	if category == "" {
		return shared.NewDomainError("INVALID_CATEGORY", "Expense category cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}

	e.Category = category
	e.Description = description
	e.Amount = amount
	if !spentAt.IsZero() {
		e.SpentAt = spentAt
	}
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}
