package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/backoffice"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// StockService handles direct stock actions and order stock consumption
type StockService struct {
	productRepo     catalog.ProductRepository
	offlineSaleRepo backoffice.OfflineSaleRepository
	logger          *zap.Logger
}

// NewStockService creates a new StockService
func NewStockService(
	productRepo catalog.ProductRepository,
	offlineSaleRepo backoffice.OfflineSaleRepository,
	logger *zap.Logger,
) *StockService {
	return &StockService{
		productRepo:     productRepo,
		offlineSaleRepo: offlineSaleRepo,
		logger:          logger,
	}
}

// AdjustStock runs a direct stock action against a product.
//
// An offline_sale action additionally appends exactly one OfflineSale
// record; the sale price defaults to the product's list price when the
// request does not carry one.
func (s *StockService) AdjustStock(ctx context.Context, productID uuid.UUID, actorID uuid.UUID, req StockActionRequest) (*ProductResponse, error) {
	action := catalog.StockAction(req.Action)
	if !action.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACTION", "Unknown stock action: "+req.Action)
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := product.ApplyStockAction(action, req.Quantity); err != nil {
		return nil, err
	}

	if action == catalog.StockActionOfflineSale {
		if (req.Color != "" || req.Size != "") && product.Variants.FindSize(req.Color, req.Size) == nil {
			// The sale is recorded anyway; the ledger only tracks counters.
			s.logger.Warn("offline sale references an unknown variant",
				zap.String("product_id", product.ID.String()),
				zap.String("color", req.Color),
				zap.String("size", req.Size),
			)
		}
		price := product.Price
		if req.Price != nil {
			price = *req.Price
		}
		sale, err := backoffice.NewOfflineSale(product.ID, product.Name, req.Quantity, price, req.Color, req.Size, actorID, req.Notes)
		if err != nil {
			return nil, err
		}
		if err := s.offlineSaleRepo.Append(ctx, sale); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("stock action applied",
		zap.String("product_id", product.ID.String()),
		zap.String("action", action.String()),
		zap.Int("quantity", req.Quantity),
		zap.Int("total_stock", product.TotalStock),
		zap.Int("available_stock", product.AvailableStock),
	)

	response := ToProductResponse(product)
	return &response, nil
}

// ConsumeForOrder accrues online sales for each order line.
//
// There is no sufficiency check and variant-level stock is untouched. A
// failing item is tagged in the report and logged at warn; it never aborts
// the remaining items or the order itself.
func (s *StockService) ConsumeForOrder(ctx context.Context, items []ConsumeItem) ConsumptionReport {
	report := ConsumptionReport{}

	for _, item := range items {
		product, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			report.Failures = append(report.Failures, ConsumptionFailure{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Reason:    err.Error(),
			})
			s.logger.Warn("stock consumption skipped",
				zap.String("product_id", item.ProductID.String()),
				zap.Int("quantity", item.Quantity),
				zap.Error(err),
			)
			continue
		}

		product.RecordOnlineSale(item.Quantity)

		if err := s.productRepo.Save(ctx, product); err != nil {
			report.Failures = append(report.Failures, ConsumptionFailure{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Reason:    err.Error(),
			})
			s.logger.Warn("stock consumption save failed",
				zap.String("product_id", item.ProductID.String()),
				zap.Int("quantity", item.Quantity),
				zap.Error(err),
			)
			continue
		}

		report.Consumed++
	}

	return report
}

// StockSummary aggregates ledger counters across the whole catalog
type StockSummary struct {
	Products       int64           `json:"products"`
	SizeEntries    int             `json:"size_entries"`
	TotalStock     int             `json:"total_stock"`
	OnlineSales    int             `json:"online_sales"`
	OfflineSales   int             `json:"offline_sales"`
	AvailableStock int             `json:"available_stock"`
	RetailValue    decimal.Decimal `json:"retail_value"`
}

// Summary reports catalog-wide stock totals for the back office
func (s *StockService) Summary(ctx context.Context) (*StockSummary, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = 1000

	summary := &StockSummary{RetailValue: decimal.Zero}

	for {
		products, err := s.productRepo.FindAll(ctx, filter)
		if err != nil {
			return nil, err
		}
		for i := range products {
			p := &products[i]
			summary.Products++
			summary.SizeEntries += p.Variants.SizeCount()
			summary.TotalStock += p.TotalStock
			summary.OnlineSales += p.OnlineSales
			summary.OfflineSales += p.OfflineSales
			summary.AvailableStock += p.AvailableStock
			summary.RetailValue = summary.RetailValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.TotalStock))))
		}
		if len(products) < filter.PageSize {
			break
		}
		filter.Page++
	}

	return summary, nil
}
