package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/backoffice"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeProductRepository is a map-backed repository so state survives
// across the multiple saves a consumption run performs.
type fakeProductRepository struct {
	products map[uuid.UUID]*catalog.Product
	saveErr  map[uuid.UUID]error
}

func newFakeProductRepository() *fakeProductRepository {
	return &fakeProductRepository{
		products: make(map[uuid.UUID]*catalog.Product),
		saveErr:  make(map[uuid.UUID]error),
	}
}

func (f *fakeProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func (f *fakeProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	out := make([]catalog.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProductRepository) FindByCategory(ctx context.Context, category string, filter shared.Filter) ([]catalog.Product, error) {
	return f.FindAll(ctx, filter)
}

func (f *fakeProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	if err := f.saveErr[product.ID]; err != nil {
		return err
	}
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return int64(len(f.products)), nil
}

// fakeOfflineSaleRepository records appended sales in order
type fakeOfflineSaleRepository struct {
	sales []*backoffice.OfflineSale
}

func (f *fakeOfflineSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*backoffice.OfflineSale, error) {
	for _, s := range f.sales {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeOfflineSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]backoffice.OfflineSale, error) {
	out := make([]backoffice.OfflineSale, 0, len(f.sales))
	for _, s := range f.sales {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeOfflineSaleRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]backoffice.OfflineSale, error) {
	out := make([]backoffice.OfflineSale, 0)
	for _, s := range f.sales {
		if s.ProductID == productID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeOfflineSaleRepository) Append(ctx context.Context, sale *backoffice.OfflineSale) error {
	f.sales = append(f.sales, sale)
	return nil
}

func (f *fakeOfflineSaleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return int64(len(f.sales)), nil
}

func (f *fakeOfflineSaleRepository) TotalRevenue(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, s := range f.sales {
		total = total.Add(s.Total)
	}
	return total, nil
}

func seedProduct(t *testing.T, repo *fakeProductRepository, totalStock, onlineSales, offlineSales int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct("Linen Shirt", decimal.NewFromInt(40))
	require.NoError(t, err)
	p.InitializeStock(totalStock, onlineSales, offlineSales)
	repo.products[p.ID] = p
	return p
}

func seedVariantProduct(t *testing.T, repo *fakeProductRepository, totalStock int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct("Wool Socks", decimal.NewFromInt(10))
	require.NoError(t, err)
	p.Variants = catalog.VariantList{
		{Color: "gray", Sizes: []catalog.SizeStock{{Size: "S"}, {Size: "M"}}},
		{Color: "black", Sizes: []catalog.SizeStock{{Size: "M"}}},
	}
	p.InitializeStock(totalStock, 0, 0)
	repo.products[p.ID] = p
	return p
}

func TestStockServiceAdjustStock(t *testing.T) {
	t.Run("add raises total and available stock", func(t *testing.T) {
		productRepo := newFakeProductRepository()
		saleRepo := &fakeOfflineSaleRepository{}
		service := NewStockService(productRepo, saleRepo, zap.NewNop())
		product := seedProduct(t, productRepo, 100, 10, 5)

		resp, err := service.AdjustStock(context.Background(), product.ID, uuid.New(), StockActionRequest{
			Action:   "add",
			Quantity: 10,
		})
		require.NoError(t, err)

		assert.Equal(t, 110, resp.TotalStock)
		assert.Equal(t, 95, resp.AvailableStock)
		assert.Empty(t, saleRepo.sales)
	})

	t.Run("offline sale appends exactly one record with derived total", func(t *testing.T) {
		productRepo := newFakeProductRepository()
		saleRepo := &fakeOfflineSaleRepository{}
		service := NewStockService(productRepo, saleRepo, zap.NewNop())
		product := seedProduct(t, productRepo, 100, 0, 0)
		actor := uuid.New()

		resp, err := service.AdjustStock(context.Background(), product.ID, actor, StockActionRequest{
			Action:   "offline_sale",
			Quantity: 3,
			Color:    "red",
			Size:     "M",
		})
		require.NoError(t, err)

		assert.Equal(t, 100, resp.TotalStock)
		assert.Equal(t, 3, resp.OfflineSales)
		assert.Equal(t, 97, resp.AvailableStock)

		require.Len(t, saleRepo.sales, 1)
		sale := saleRepo.sales[0]
		assert.Equal(t, product.ID, sale.ProductID)
		assert.Equal(t, 3, sale.Quantity)
		// price defaults to the product list price
		assert.True(t, sale.Price.Equal(decimal.NewFromInt(40)))
		assert.True(t, sale.Total.Equal(decimal.NewFromInt(120)))
		assert.Equal(t, actor, sale.AddedBy)
	})

	t.Run("offline sale honors explicit price", func(t *testing.T) {
		productRepo := newFakeProductRepository()
		saleRepo := &fakeOfflineSaleRepository{}
		service := NewStockService(productRepo, saleRepo, zap.NewNop())
		product := seedProduct(t, productRepo, 100, 0, 0)
		price := decimal.NewFromInt(35)

		_, err := service.AdjustStock(context.Background(), product.ID, uuid.New(), StockActionRequest{
			Action:   "offline_sale",
			Quantity: 2,
			Price:    &price,
		})
		require.NoError(t, err)

		require.Len(t, saleRepo.sales, 1)
		assert.True(t, saleRepo.sales[0].Total.Equal(decimal.NewFromInt(70)))
	})

	t.Run("offline sale with non-positive quantity fails before persisting", func(t *testing.T) {
		productRepo := newFakeProductRepository()
		saleRepo := &fakeOfflineSaleRepository{}
		service := NewStockService(productRepo, saleRepo, zap.NewNop())
		product := seedProduct(t, productRepo, 100, 0, 0)

		_, err := service.AdjustStock(context.Background(), product.ID, uuid.New(), StockActionRequest{
			Action:   "offline_sale",
			Quantity: 0,
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_QUANTITY", domainErr.Code)
		assert.Empty(t, saleRepo.sales)
	})

	t.Run("offline sale for an unknown variant still records", func(t *testing.T) {
		productRepo := newFakeProductRepository()
		saleRepo := &fakeOfflineSaleRepository{}
		service := NewStockService(productRepo, saleRepo, zap.NewNop())
		product := seedVariantProduct(t, productRepo, 30)

		resp, err := service.AdjustStock(context.Background(), product.ID, uuid.New(), StockActionRequest{
			Action:   "offline_sale",
			Quantity: 1,
			Color:    "blue",
			Size:     "XL",
		})
		require.NoError(t, err)

		assert.Equal(t, 1, resp.OfflineSales)
		require.Len(t, saleRepo.sales, 1)
		assert.Equal(t, "blue", saleRepo.sales[0].Color)
		assert.Equal(t, "XL", saleRepo.sales[0].Size)
	})

	t.Run("unknown action fails before loading the product", func(t *testing.T) {
		productRepo := newFakeProductRepository()
		service := NewStockService(productRepo, &fakeOfflineSaleRepository{}, zap.NewNop())

		_, err := service.AdjustStock(context.Background(), uuid.New(), uuid.New(), StockActionRequest{
			Action:   "restock",
			Quantity: 5,
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_ACTION", domainErr.Code)
	})

	t.Run("missing product fails", func(t *testing.T) {
		productRepo := newFakeProductRepository()
		service := NewStockService(productRepo, &fakeOfflineSaleRepository{}, zap.NewNop())

		_, err := service.AdjustStock(context.Background(), uuid.New(), uuid.New(), StockActionRequest{
			Action:   "add",
			Quantity: 5,
		})
		require.Error(t, err)
	})
}

func TestStockServiceConsumeForOrder(t *testing.T) {
	t.Run("consumes every item and reports no failures", func(t *testing.T) {
		productRepo := newFakeProductRepository()
		service := NewStockService(productRepo, &fakeOfflineSaleRepository{}, zap.NewNop())
		first := seedProduct(t, productRepo, 100, 0, 0)
		second := seedProduct(t, productRepo, 50, 0, 0)

		report := service.ConsumeForOrder(context.Background(), []ConsumeItem{
			{ProductID: first.ID, Quantity: 2},
			{ProductID: second.ID, Quantity: 1},
		})

		assert.True(t, report.AllSucceeded())
		assert.Equal(t, 2, report.Consumed)
		assert.Equal(t, 2, productRepo.products[first.ID].OnlineSales)
		assert.Equal(t, 98, productRepo.products[first.ID].AvailableStock)
		assert.Equal(t, 1, productRepo.products[second.ID].OnlineSales)
	})

	t.Run("missing product is tagged but does not stop the run", func(t *testing.T) {
		productRepo := newFakeProductRepository()
		service := NewStockService(productRepo, &fakeOfflineSaleRepository{}, zap.NewNop())
		known := seedProduct(t, productRepo, 100, 0, 0)
		missing := uuid.New()

		report := service.ConsumeForOrder(context.Background(), []ConsumeItem{
			{ProductID: missing, Quantity: 2},
			{ProductID: known.ID, Quantity: 3},
		})

		assert.Equal(t, 1, report.Consumed)
		require.Len(t, report.Failures, 1)
		assert.Equal(t, missing, report.Failures[0].ProductID)
		assert.Equal(t, 2, report.Failures[0].Quantity)
		// the surviving item was still consumed
		assert.Equal(t, 3, productRepo.products[known.ID].OnlineSales)
	})

	t.Run("consumption has no sufficiency check", func(t *testing.T) {
		productRepo := newFakeProductRepository()
		service := NewStockService(productRepo, &fakeOfflineSaleRepository{}, zap.NewNop())
		product := seedProduct(t, productRepo, 5, 0, 0)

		report := service.ConsumeForOrder(context.Background(), []ConsumeItem{
			{ProductID: product.ID, Quantity: 8},
		})

		assert.True(t, report.AllSucceeded())
		assert.Equal(t, -3, productRepo.products[product.ID].AvailableStock)
	})

	t.Run("save failure is tagged", func(t *testing.T) {
		productRepo := newFakeProductRepository()
		service := NewStockService(productRepo, &fakeOfflineSaleRepository{}, zap.NewNop())
		product := seedProduct(t, productRepo, 100, 0, 0)
		productRepo.saveErr[product.ID] = shared.NewDomainError("CONFLICT", "version conflict")

		report := service.ConsumeForOrder(context.Background(), []ConsumeItem{
			{ProductID: product.ID, Quantity: 1},
		})

		assert.Equal(t, 0, report.Consumed)
		require.Len(t, report.Failures, 1)
	})
}

func TestStockServiceSummary(t *testing.T) {
	productRepo := newFakeProductRepository()
	service := NewStockService(productRepo, &fakeOfflineSaleRepository{}, zap.NewNop())
	seedProduct(t, productRepo, 100, 10, 5)
	seedProduct(t, productRepo, 50, 0, 0)
	seedVariantProduct(t, productRepo, 30)

	summary, err := service.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), summary.Products)
	assert.Equal(t, 3, summary.SizeEntries)
	assert.Equal(t, 180, summary.TotalStock)
	assert.Equal(t, 10, summary.OnlineSales)
	assert.Equal(t, 5, summary.OfflineSales)
	assert.Equal(t, 165, summary.AvailableStock)
	// 150 units at 40 each plus 30 units at 10 each
	assert.True(t, summary.RetailValue.Equal(decimal.NewFromInt(6300)))
}
