package backoffice

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// Employee is a staff record kept by the back office
type Employee struct {
	shared.BaseAggregateRoot
	Name     string          `gorm:"type:varchar(100);not null"`
	Email    string          `gorm:"type:varchar(200)"`
	Phone    string          `gorm:"type:varchar(50)"`
	Position string          `gorm:"type:varchar(100)"`
	Salary   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	HiredAt  time.Time       `gorm:"not null"`
	Active   bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Employee) TableName() string {
	return "employees"
}

// NewEmployee creates a new active employee record
func NewEmployee(name, email, phone, position string, salary decimal.Decimal, hiredAt time.Time) (*Employee, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Employee name cannot be empty")
	}
	if salary.IsNegative() {
		return nil, shared.NewDomainError("INVALID_SALARY", "Salary cannot be negative")
	}
	if hiredAt.IsZero() {
		hiredAt = time.Now()
	}

	return &Employee{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             email,
		Phone:             phone,
		Position:          position,
		Salary:            salary,
		HiredAt:           hiredAt,
		Active:            true,
	}, nil
}

// Update changes the employee's details
func (e *Employee) Update(name, email, phone, position string, salary decimal.Decimal) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Employee name cannot be empty")
	}
	if salary.IsNegative() {
		return shared.NewDomainError("INVALID_SALARY", "Salary cannot be negative")
	}

	e.Name = name
	e.Email = email
	e.Phone = phone
	e.Position = position
	e.Salary = salary
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}

// Deactivate marks the employee as no longer active
func (e *Employee) Deactivate() {
	e.Active = false
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
}
