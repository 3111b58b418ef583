package backoffice

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/backoffice"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOfflineSaleRepository struct {
	sales []backoffice.OfflineSale
}

func (f *fakeOfflineSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*backoffice.OfflineSale, error) {
	for i := range f.sales {
		if f.sales[i].ID == id {
			return &f.sales[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeOfflineSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]backoffice.OfflineSale, error) {
	return f.sales, nil
}

func (f *fakeOfflineSaleRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]backoffice.OfflineSale, error) {
	var out []backoffice.OfflineSale
	for _, s := range f.sales {
		if s.ProductID == productID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeOfflineSaleRepository) Append(ctx context.Context, sale *backoffice.OfflineSale) error {
	f.sales = append(f.sales, *sale)
	return nil
}

func (f *fakeOfflineSaleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return int64(len(f.sales)), nil
}

func (f *fakeOfflineSaleRepository) TotalRevenue(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, s := range f.sales {
		if s.SoldAt.Before(from) || s.SoldAt.After(to) {
			continue
		}
		total = total.Add(s.Total)
	}
	return total, nil
}

type fakeEmployeeRepository struct {
	employees map[uuid.UUID]*backoffice.Employee
}

func newFakeEmployeeRepository() *fakeEmployeeRepository {
	return &fakeEmployeeRepository{employees: make(map[uuid.UUID]*backoffice.Employee)}
}

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*backoffice.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]backoffice.Employee, error) {
	out := make([]backoffice.Employee, 0, len(f.employees))
	for _, e := range f.employees {
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeEmployeeRepository) Save(ctx context.Context, employee *backoffice.Employee) error {
	f.employees[employee.ID] = employee
	return nil
}

func (f *fakeEmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.employees, id)
	return nil
}

type fakeExpenseRepository struct {
	expenses map[uuid.UUID]*backoffice.Expense
}

func newFakeExpenseRepository() *fakeExpenseRepository {
	return &fakeExpenseRepository{expenses: make(map[uuid.UUID]*backoffice.Expense)}
}

func (f *fakeExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*backoffice.Expense, error) {
	e, ok := f.expenses[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return e, nil
}

func (f *fakeExpenseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]backoffice.Expense, error) {
	out := make([]backoffice.Expense, 0, len(f.expenses))
	for _, e := range f.expenses {
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeExpenseRepository) FindByCategory(ctx context.Context, category string, filter shared.Filter) ([]backoffice.Expense, error) {
	var out []backoffice.Expense
	for _, e := range f.expenses {
		if e.Category == category {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeExpenseRepository) Save(ctx context.Context, expense *backoffice.Expense) error {
	f.expenses[expense.ID] = expense
	return nil
}

func (f *fakeExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.expenses, id)
	return nil
}

func (f *fakeExpenseRepository) TotalAmount(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, e := range f.expenses {
		if e.SpentAt.Before(from) || e.SpentAt.After(to) {
			continue
		}
		total = total.Add(e.Amount)
	}
	return total, nil
}

func newTestBackofficeService() (*BackofficeService, *fakeOfflineSaleRepository, *fakeEmployeeRepository, *fakeExpenseRepository) {
	saleRepo := &fakeOfflineSaleRepository{}
	employeeRepo := newFakeEmployeeRepository()
	expenseRepo := newFakeExpenseRepository()
	return NewBackofficeService(saleRepo, employeeRepo, expenseRepo), saleRepo, employeeRepo, expenseRepo
}

func TestListOfflineSales(t *testing.T) {
	service, saleRepo, _, _ := newTestBackofficeService()
	productID := uuid.New()
	otherID := uuid.New()

	sale1, err := backoffice.NewOfflineSale(productID, "Linen Shirt", 2, decimal.NewFromInt(30), "white", "M", uuid.New(), "")
	require.NoError(t, err)
	sale2, err := backoffice.NewOfflineSale(otherID, "Wool Scarf", 1, decimal.NewFromInt(15), "", "", uuid.New(), "")
	require.NoError(t, err)
	require.NoError(t, saleRepo.Append(context.Background(), sale1))
	require.NoError(t, saleRepo.Append(context.Background(), sale2))

	t.Run("lists all sales", func(t *testing.T) {
		sales, total, err := service.ListOfflineSales(context.Background(), nil, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Len(t, sales, 2)
		assert.Equal(t, int64(2), total)
	})

	t.Run("filters by product", func(t *testing.T) {
		sales, _, err := service.ListOfflineSales(context.Background(), &productID, shared.DefaultFilter())
		require.NoError(t, err)
		require.Len(t, sales, 1)
		assert.Equal(t, "Linen Shirt", sales[0].ProductName)
		assert.True(t, sales[0].Total.Equal(decimal.NewFromInt(60)))
	})

	t.Run("sums revenue over a period", func(t *testing.T) {
		revenue, err := service.OfflineRevenue(context.Background(), time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
		require.NoError(t, err)
		assert.True(t, revenue.Equal(decimal.NewFromInt(75)))
	})
}

func TestEmployeeLifecycle(t *testing.T) {
	service, _, employeeRepo, _ := newTestBackofficeService()

	created, err := service.CreateEmployee(context.Background(), EmployeeRequest{
		Name:     "Grace",
		Email:    "grace@example.com",
		Position: "cashier",
		Salary:   decimal.NewFromInt(2400),
	})
	require.NoError(t, err)
	assert.True(t, created.Active)
	assert.False(t, created.HiredAt.IsZero())

	t.Run("rejects a nameless employee", func(t *testing.T) {
		_, err := service.CreateEmployee(context.Background(), EmployeeRequest{Name: ""})
		require.Error(t, err)
		assert.Len(t, employeeRepo.employees, 1)
	})

	t.Run("updates fields", func(t *testing.T) {
		updated, err := service.UpdateEmployee(context.Background(), created.ID, EmployeeRequest{
			Name:     "Grace H",
			Email:    "grace@example.com",
			Position: "manager",
			Salary:   decimal.NewFromInt(3100),
		})
		require.NoError(t, err)
		assert.Equal(t, "manager", updated.Position)
		assert.True(t, updated.Salary.Equal(decimal.NewFromInt(3100)))
	})

	t.Run("deactivates without deleting", func(t *testing.T) {
		deactivated, err := service.DeactivateEmployee(context.Background(), created.ID)
		require.NoError(t, err)
		assert.False(t, deactivated.Active)

		employees, err := service.ListEmployees(context.Background(), shared.DefaultFilter())
		require.NoError(t, err)
		assert.Len(t, employees, 1)
	})

	t.Run("deletes a record", func(t *testing.T) {
		require.NoError(t, service.DeleteEmployee(context.Background(), created.ID))
		err := service.DeleteEmployee(context.Background(), created.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestExpenseLifecycle(t *testing.T) {
	service, _, _, expenseRepo := newTestBackofficeService()
	addedBy := uuid.New()

	created, err := service.CreateExpense(context.Background(), addedBy, ExpenseRequest{
		Category: "rent",
		Amount:   decimal.NewFromInt(1200),
	})
	require.NoError(t, err)
	assert.Equal(t, addedBy, created.AddedBy)

	t.Run("rejects a non-positive amount", func(t *testing.T) {
		_, err := service.CreateExpense(context.Background(), addedBy, ExpenseRequest{
			Category: "rent",
			Amount:   decimal.Zero,
		})
		require.Error(t, err)
		assert.Len(t, expenseRepo.expenses, 1)
	})

	t.Run("filters by category", func(t *testing.T) {
		_, err := service.CreateExpense(context.Background(), addedBy, ExpenseRequest{
			Category: "utilities",
			Amount:   decimal.NewFromInt(90),
		})
		require.NoError(t, err)

		rent, err := service.ListExpenses(context.Background(), "rent", shared.DefaultFilter())
		require.NoError(t, err)
		assert.Len(t, rent, 1)

		all, err := service.ListExpenses(context.Background(), "", shared.DefaultFilter())
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("updates and keeps the original date when zero is passed", func(t *testing.T) {
		before, err := expenseRepo.FindByID(context.Background(), created.ID)
		require.NoError(t, err)
		spentAt := before.SpentAt

		updated, err := service.UpdateExpense(context.Background(), created.ID, ExpenseRequest{
			Category: "rent",
			Amount:   decimal.NewFromInt(1250),
		})
		require.NoError(t, err)
		assert.True(t, updated.Amount.Equal(decimal.NewFromInt(1250)))
		assert.Equal(t, spentAt, updated.SpentAt)
	})

	t.Run("sums amounts over a period", func(t *testing.T) {
		total, err := service.TotalExpenses(context.Background(), time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
		require.NoError(t, err)
		assert.True(t, total.Equal(decimal.NewFromInt(1340)))
	})

	t.Run("deletes a record", func(t *testing.T) {
		require.NoError(t, service.DeleteExpense(context.Background(), created.ID))
		err := service.DeleteExpense(context.Background(), created.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
