package order

import (
	"context"

	"github.com/google/uuid"
	appcatalog "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// StockConsumer accrues online sales for placed order lines
type StockConsumer interface {
	ConsumeForOrder(ctx context.Context, items []appcatalog.ConsumeItem) appcatalog.ConsumptionReport
}

// OrderService handles order lifecycle operations
type OrderService struct {
	orderRepo     order.OrderRepository
	stockConsumer StockConsumer
	logger        *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo order.OrderRepository, stockConsumer StockConsumer, logger *zap.Logger) *OrderService {
	return &OrderService{
		orderRepo:     orderRepo,
		stockConsumer: stockConsumer,
		logger:        logger,
	}
}

// Create places a new order for the given user.
//
// Item prices are snapshotted from the request without catalog validation.
// Stock consumption runs per item after the number is assigned; failures
// are reported and logged but the order is persisted regardless.
func (s *OrderService) Create(ctx context.Context, userID uuid.UUID, req CreateOrderRequest) (*CreateOrderResponse, error) {
	var items order.OrderItemList
	if req.Items != nil {
		items = make(order.OrderItemList, 0, len(req.Items))
		for _, item := range req.Items {
			items = append(items, order.OrderItem{
				ProductID: item.ProductID,
				Name:      item.Name,
				Price:     item.Price,
				Quantity:  item.Quantity,
				Size:      item.Size,
				Color:     item.Color,
				Image:     item.Image,
			})
		}
	}

	address := order.ShippingAddress{
		FullName:   req.ShippingAddress.FullName,
		Line1:      req.ShippingAddress.Line1,
		Line2:      req.ShippingAddress.Line2,
		City:       req.ShippingAddress.City,
		State:      req.ShippingAddress.State,
		PostalCode: req.ShippingAddress.PostalCode,
		Country:    req.ShippingAddress.Country,
		Phone:      req.ShippingAddress.Phone,
	}

	o, err := order.NewOrder(userID, items, address, order.PaymentMethod(req.PaymentMethod))
	if err != nil {
		return nil, err
	}

	number, err := s.orderRepo.NextOrderNumber(ctx)
	if err != nil {
		return nil, err
	}
	if err := o.AssignOrderNumber(number); err != nil {
		return nil, err
	}

	consumeItems := make([]appcatalog.ConsumeItem, 0, len(o.Items))
	for _, item := range o.Items {
		consumeItems = append(consumeItems, appcatalog.ConsumeItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	report := s.stockConsumer.ConsumeForOrder(ctx, consumeItems)
	if !report.AllSucceeded() {
		s.logger.Warn("order placed with partial stock consumption",
			zap.Int64("order_number", o.OrderNumber),
			zap.Int("consumed", report.Consumed),
			zap.Int("failed", len(report.Failures)),
		)
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	return &CreateOrderResponse{
		Order:       ToOrderResponse(o),
		Consumption: report,
	}, nil
}

// GetByID retrieves an order visible to the caller: the owner or an admin
func (s *OrderService) GetByID(ctx context.Context, callerID uuid.UUID, isAdmin bool, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && !o.IsOwnedBy(callerID) {
		return nil, shared.ErrForbidden
	}

	response := ToOrderResponse(o)
	return &response, nil
}

// ListMine retrieves the caller's own orders
func (s *OrderService) ListMine(ctx context.Context, userID uuid.UUID, filter OrderListFilter) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindByUser(ctx, userID, toDomainFilter(filter))
	if err != nil {
		return nil, err
	}
	return toOrderResponses(orders), nil
}

// ListAll retrieves all orders for the back office
func (s *OrderService) ListAll(ctx context.Context, filter OrderListFilter) ([]OrderResponse, int64, error) {
	domainFilter := toDomainFilter(filter)
	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return toOrderResponses(orders), total, nil
}

// UpdateStatus sets any valid fulfilment status, no transition checks
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, req UpdateOrderStatusRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.SetStatus(order.OrderStatus(req.Status)); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	response := ToOrderResponse(o)
	return &response, nil
}

// UpdatePaymentStatus sets the payment status
func (s *OrderService) UpdatePaymentStatus(ctx context.Context, orderID uuid.UUID, req UpdatePaymentStatusRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.SetPaymentStatus(order.PaymentStatus(req.PaymentStatus)); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	response := ToOrderResponse(o)
	return &response, nil
}

// RequestCancellation opens the handshake on behalf of the order's owner
func (s *OrderService) RequestCancellation(ctx context.Context, callerID uuid.UUID, orderID uuid.UUID, req CancellationRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.IsOwnedBy(callerID) {
		return nil, shared.ErrForbidden
	}
	if err := o.RequestCancellation(req.Reason); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	response := ToOrderResponse(o)
	return &response, nil
}

// RespondToCancellation resolves a pending request (admin only, enforced
// by the route guard)
func (s *OrderService) RespondToCancellation(ctx context.Context, orderID uuid.UUID, req CancellationDecisionRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.RespondToCancellation(order.CancellationStatus(req.Decision)); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	response := ToOrderResponse(o)
	return &response, nil
}

func toDomainFilter(filter OrderListFilter) shared.Filter {
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
	if filter.Status != "" {
		domainFilter.Filters = map[string]interface{}{"status": filter.Status}
	}
	return domainFilter
}

func toOrderResponses(orders []order.Order) []OrderResponse {
	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToOrderResponse(&orders[i]))
	}
	return responses
}
