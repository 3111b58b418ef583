package backoffice

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/backoffice"
	"github.com/storefront/backend/internal/domain/shared"
)

// EmployeeRequest carries employee fields for create and update
type EmployeeRequest struct {
	Name     string          `json:"name" binding:"required,min=1,max=100"`
	Email    string          `json:"email" binding:"omitempty,email,max=200"`
	Phone    string          `json:"phone" binding:"max=50"`
	Position string          `json:"position" binding:"max=100"`
	Salary   decimal.Decimal `json:"salary"`
	HiredAt  *time.Time      `json:"hired_at"`
}

// ExpenseRequest carries expense fields for create and update
type ExpenseRequest struct {
	Category    string          `json:"category" binding:"required,min=1,max=100"`
	Description string          `json:"description" binding:"max=2000"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	SpentAt     *time.Time      `json:"spent_at"`
}

// OfflineSaleResponse represents an offline sale in API responses
type OfflineSaleResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Total       decimal.Decimal `json:"total"`
	Color       string          `json:"color,omitempty"`
	Size        string          `json:"size,omitempty"`
	SoldAt      time.Time       `json:"sold_at"`
	AddedBy     uuid.UUID       `json:"added_by"`
	Notes       string          `json:"notes,omitempty"`
}

// EmployeeResponse represents an employee in API responses
type EmployeeResponse struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Phone    string          `json:"phone"`
	Position string          `json:"position"`
	Salary   decimal.Decimal `json:"salary"`
	HiredAt  time.Time       `json:"hired_at"`
	Active   bool            `json:"active"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID          uuid.UUID       `json:"id"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	SpentAt     time.Time       `json:"spent_at"`
	AddedBy     uuid.UUID       `json:"added_by"`
}

func toOfflineSaleResponse(s *backoffice.OfflineSale) OfflineSaleResponse {
	return OfflineSaleResponse{
		ID:          s.ID,
		ProductID:   s.ProductID,
		ProductName: s.ProductName,
		Quantity:    s.Quantity,
		Price:       s.Price,
		Total:       s.Total,
		Color:       s.Color,
		Size:        s.Size,
		SoldAt:      s.SoldAt,
		AddedBy:     s.AddedBy,
		Notes:       s.Notes,
	}
}

func toEmployeeResponse(e *backoffice.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:       e.ID,
		Name:     e.Name,
		Email:    e.Email,
		Phone:    e.Phone,
		Position: e.Position,
		Salary:   e.Salary,
		HiredAt:  e.HiredAt,
		Active:   e.Active,
	}
}

func toExpenseResponse(e *backoffice.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		Category:    e.Category,
		Description: e.Description,
		Amount:      e.Amount,
		SpentAt:     e.SpentAt,
		AddedBy:     e.AddedBy,
	}
}

// BackofficeService handles offline sales, employees and expenses
type BackofficeService struct {
	offlineSaleRepo backoffice.OfflineSaleRepository
	employeeRepo    backoffice.EmployeeRepository
	expenseRepo     backoffice.ExpenseRepository
}

// NewBackofficeService creates a new BackofficeService
func NewBackofficeService(
	offlineSaleRepo backoffice.OfflineSaleRepository,
	employeeRepo backoffice.EmployeeRepository,
	expenseRepo backoffice.ExpenseRepository,
) *BackofficeService {
	return &BackofficeService{
		offlineSaleRepo: offlineSaleRepo,
		employeeRepo:    employeeRepo,
		expenseRepo:     expenseRepo,
	}
}

// ListOfflineSales returns offline sales, optionally filtered by product
func (s *BackofficeService) ListOfflineSales(ctx context.Context, productID *uuid.UUID, filter shared.Filter) ([]OfflineSaleResponse, int64, error) {
	var (
		sales []backoffice.OfflineSale
		err   error
	)
	if productID != nil {
		sales, err = s.offlineSaleRepo.FindByProduct(ctx, *productID, filter)
	} else {
		sales, err = s.offlineSaleRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.offlineSaleRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]OfflineSaleResponse, 0, len(sales))
	for i := range sales {
		responses = append(responses, toOfflineSaleResponse(&sales[i]))
	}
	return responses, total, nil
}

// OfflineRevenue sums offline sale totals in a period
func (s *BackofficeService) OfflineRevenue(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	return s.offlineSaleRepo.TotalRevenue(ctx, from, to)
}

// CreateEmployee adds a staff record
func (s *BackofficeService) CreateEmployee(ctx context.Context, req EmployeeRequest) (*EmployeeResponse, error) {
	hiredAt := time.Time{}
	if req.HiredAt != nil {
		hiredAt = *req.HiredAt
	}

	employee, err := backoffice.NewEmployee(req.Name, req.Email, req.Phone, req.Position, req.Salary, hiredAt)
	if err != nil {
		return nil, err
	}
	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return nil, err
	}

	response := toEmployeeResponse(employee)
	return &response, nil
}

// UpdateEmployee changes a staff record
func (s *BackofficeService) UpdateEmployee(ctx context.Context, id uuid.UUID, req EmployeeRequest) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := employee.Update(req.Name, req.Email, req.Phone, req.Position, req.Salary); err != nil {
		return nil, err
	}
	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return nil, err
	}

	response := toEmployeeResponse(employee)
	return &response, nil
}

// ListEmployees returns all staff records
func (s *BackofficeService) ListEmployees(ctx context.Context, filter shared.Filter) ([]EmployeeResponse, error) {
	employees, err := s.employeeRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]EmployeeResponse, 0, len(employees))
	for i := range employees {
		responses = append(responses, toEmployeeResponse(&employees[i]))
	}
	return responses, nil
}

// DeactivateEmployee marks an employee inactive without removing history
func (s *BackofficeService) DeactivateEmployee(ctx context.Context, id uuid.UUID) (*EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	employee.Deactivate()
	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return nil, err
	}

	response := toEmployeeResponse(employee)
	return &response, nil
}

// DeleteEmployee removes a staff record
func (s *BackofficeService) DeleteEmployee(ctx context.Context, id uuid.UUID) error {
	if _, err := s.employeeRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.employeeRepo.Delete(ctx, id)
}

// CreateExpense adds an expense record on behalf of the caller
func (s *BackofficeService) CreateExpense(ctx context.Context, addedBy uuid.UUID, req ExpenseRequest) (*ExpenseResponse, error) {
	spentAt := time.Time{}
	if req.SpentAt != nil {
		spentAt = *req.SpentAt
	}

	expense, err := backoffice.NewExpense(req.Category, req.Description, req.Amount, spentAt, addedBy)
	if err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}

	response := toExpenseResponse(expense)
	return &response, nil
}

// UpdateExpense changes an expense record
func (s *BackofficeService) UpdateExpense(ctx context.Context, id uuid.UUID, req ExpenseRequest) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	spentAt := time.Time{}
	if req.SpentAt != nil {
		spentAt = *req.SpentAt
	}
	if err := expense.Update(req.Category, req.Description, req.Amount, spentAt); err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}

	response := toExpenseResponse(expense)
	return &response, nil
}

// ListExpenses returns expenses, optionally filtered by category
func (s *BackofficeService) ListExpenses(ctx context.Context, category string, filter shared.Filter) ([]ExpenseResponse, error) {
	var (
		expenses []backoffice.Expense
		err      error
	)
	if category != "" {
		expenses, err = s.expenseRepo.FindByCategory(ctx, category, filter)
	} else {
		expenses, err = s.expenseRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		responses = append(responses, toExpenseResponse(&expenses[i]))
	}
	return responses, nil
}

// DeleteExpense removes an expense record
func (s *BackofficeService) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	if _, err := s.expenseRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.expenseRepo.Delete(ctx, id)
}

// TotalExpenses sums expense amounts in a period
func (s *BackofficeService) TotalExpenses(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	return s.expenseRepo.TotalAmount(ctx, from, to)
}
