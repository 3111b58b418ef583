package order

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	appcatalog "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeOrderRepository is a map-backed repository with a local counter
type fakeOrderRepository struct {
	orders  map[uuid.UUID]*order.Order
	counter int64
}

func newFakeOrderRepository() *fakeOrderRepository {
	return &fakeOrderRepository{orders: make(map[uuid.UUID]*order.Order)}
}

func (f *fakeOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return o, nil
}

func (f *fakeOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	out := make([]order.Order, 0)
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	out := make([]order.Order, 0, len(f.orders))
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (f *fakeOrderRepository) Save(ctx context.Context, o *order.Order) error {
	f.orders[o.ID] = o
	return nil
}

func (f *fakeOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return int64(len(f.orders)), nil
}

func (f *fakeOrderRepository) NextOrderNumber(ctx context.Context) (int64, error) {
	f.counter++
	return f.counter, nil
}

// fakeConsumer records submitted items and returns a canned report
type fakeConsumer struct {
	received [][]appcatalog.ConsumeItem
	report   appcatalog.ConsumptionReport
}

func (f *fakeConsumer) ConsumeForOrder(ctx context.Context, items []appcatalog.ConsumeItem) appcatalog.ConsumptionReport {
	f.received = append(f.received, items)
	if f.report.Consumed == 0 && f.report.Failures == nil {
		return appcatalog.ConsumptionReport{Consumed: len(items)}
	}
	return f.report
}

func validCreateRequest() CreateOrderRequest {
	return CreateOrderRequest{
		Items: []OrderItemRequest{
			{ProductID: uuid.New(), Name: "Linen Shirt", Price: decimal.NewFromInt(40), Quantity: 2},
		},
		ShippingAddress: ShippingAddressRequest{
			FullName:   "Ada Lovelace",
			Line1:      "12 Analytical St",
			City:       "London",
			PostalCode: "EC1A",
			Country:    "UK",
		},
		PaymentMethod: "cod",
	}
}

func TestOrderServiceCreate(t *testing.T) {
	t.Run("places order and consumes stock", func(t *testing.T) {
		repo := newFakeOrderRepository()
		consumer := &fakeConsumer{}
		service := NewOrderService(repo, consumer, zap.NewNop())

		resp, err := service.Create(context.Background(), uuid.New(), validCreateRequest())
		require.NoError(t, err)

		assert.Equal(t, int64(1), resp.Order.OrderNumber)
		assert.Equal(t, "pending", resp.Order.Status)
		assert.Equal(t, "pending", resp.Order.PaymentStatus)
		assert.True(t, resp.Order.TotalAmount.Equal(decimal.NewFromInt(80)))
		assert.True(t, resp.Consumption.AllSucceeded())
		require.Len(t, consumer.received, 1)
		assert.Equal(t, 2, consumer.received[0][0].Quantity)
		assert.Len(t, repo.orders, 1)
	})

	t.Run("order numbers increase sequentially", func(t *testing.T) {
		repo := newFakeOrderRepository()
		service := NewOrderService(repo, &fakeConsumer{}, zap.NewNop())

		for want := int64(1); want <= 3; want++ {
			resp, err := service.Create(context.Background(), uuid.New(), validCreateRequest())
			require.NoError(t, err)
			assert.Equal(t, want, resp.Order.OrderNumber)
		}
	})

	t.Run("rejects explicitly empty items", func(t *testing.T) {
		repo := newFakeOrderRepository()
		consumer := &fakeConsumer{}
		service := NewOrderService(repo, consumer, zap.NewNop())

		req := validCreateRequest()
		req.Items = []OrderItemRequest{}
		_, err := service.Create(context.Background(), uuid.New(), req)
		require.Error(t, err)
		assert.Empty(t, repo.orders)
		assert.Empty(t, consumer.received)
	})

	t.Run("absent items field passes the emptiness check", func(t *testing.T) {
		repo := newFakeOrderRepository()
		service := NewOrderService(repo, &fakeConsumer{}, zap.NewNop())

		req := validCreateRequest()
		req.Items = nil
		resp, err := service.Create(context.Background(), uuid.New(), req)
		require.NoError(t, err)
		assert.Empty(t, resp.Order.Items)
	})

	t.Run("order persists despite consumption failures", func(t *testing.T) {
		repo := newFakeOrderRepository()
		consumer := &fakeConsumer{report: appcatalog.ConsumptionReport{
			Failures: []appcatalog.ConsumptionFailure{{ProductID: uuid.New(), Quantity: 2, Reason: "NOT_FOUND"}},
		}}
		service := NewOrderService(repo, consumer, zap.NewNop())

		resp, err := service.Create(context.Background(), uuid.New(), validCreateRequest())
		require.NoError(t, err)

		assert.False(t, resp.Consumption.AllSucceeded())
		assert.Len(t, repo.orders, 1)
	})
}

func TestOrderServiceAccess(t *testing.T) {
	repo := newFakeOrderRepository()
	service := NewOrderService(repo, &fakeConsumer{}, zap.NewNop())
	owner := uuid.New()
	resp, err := service.Create(context.Background(), owner, validCreateRequest())
	require.NoError(t, err)
	orderID := resp.Order.ID

	t.Run("owner can read the order", func(t *testing.T) {
		got, err := service.GetByID(context.Background(), owner, false, orderID)
		require.NoError(t, err)
		assert.Equal(t, orderID, got.ID)
	})

	t.Run("admin can read any order", func(t *testing.T) {
		_, err := service.GetByID(context.Background(), uuid.New(), true, orderID)
		require.NoError(t, err)
	})

	t.Run("stranger is rejected", func(t *testing.T) {
		_, err := service.GetByID(context.Background(), uuid.New(), false, orderID)
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestOrderServiceCancellation(t *testing.T) {
	setup := func(t *testing.T) (*OrderService, uuid.UUID, uuid.UUID) {
		t.Helper()
		repo := newFakeOrderRepository()
		service := NewOrderService(repo, &fakeConsumer{}, zap.NewNop())
		owner := uuid.New()
		resp, err := service.Create(context.Background(), owner, validCreateRequest())
		require.NoError(t, err)
		return service, owner, resp.Order.ID
	}

	t.Run("owner requests and admin accepts", func(t *testing.T) {
		service, owner, orderID := setup(t)

		requested, err := service.RequestCancellation(context.Background(), owner, orderID, CancellationRequest{Reason: "changed my mind"})
		require.NoError(t, err)
		assert.Equal(t, "requested", requested.CancellationStatus)

		resolved, err := service.RespondToCancellation(context.Background(), orderID, CancellationDecisionRequest{Decision: "accepted"})
		require.NoError(t, err)
		assert.Equal(t, "cancelled", resolved.Status)
		assert.Equal(t, "accepted", resolved.CancellationStatus)
		// COD payment resets to pending on acceptance
		assert.Equal(t, "pending", resolved.PaymentStatus)
	})

	t.Run("non-owner cannot request", func(t *testing.T) {
		service, _, orderID := setup(t)

		_, err := service.RequestCancellation(context.Background(), uuid.New(), orderID, CancellationRequest{})
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("delivered order cannot be targeted", func(t *testing.T) {
		service, owner, orderID := setup(t)
		_, err := service.UpdateStatus(context.Background(), orderID, UpdateOrderStatusRequest{Status: "delivered"})
		require.NoError(t, err)

		_, err = service.RequestCancellation(context.Background(), owner, orderID, CancellationRequest{})
		require.Error(t, err)
	})

	t.Run("rejection keeps order active", func(t *testing.T) {
		service, owner, orderID := setup(t)
		_, err := service.RequestCancellation(context.Background(), owner, orderID, CancellationRequest{Reason: "x"})
		require.NoError(t, err)

		resolved, err := service.RespondToCancellation(context.Background(), orderID, CancellationDecisionRequest{Decision: "rejected"})
		require.NoError(t, err)
		assert.Equal(t, "pending", resolved.Status)
		assert.Equal(t, "rejected", resolved.CancellationStatus)
	})
}

func TestOrderServiceUpdateStatus(t *testing.T) {
	repo := newFakeOrderRepository()
	service := NewOrderService(repo, &fakeConsumer{}, zap.NewNop())
	resp, err := service.Create(context.Background(), uuid.New(), validCreateRequest())
	require.NoError(t, err)

	t.Run("any valid status is accepted", func(t *testing.T) {
		updated, err := service.UpdateStatus(context.Background(), resp.Order.ID, UpdateOrderStatusRequest{Status: "shipped"})
		require.NoError(t, err)
		assert.Equal(t, "shipped", updated.Status)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		_, err := service.UpdateStatus(context.Background(), resp.Order.ID, UpdateOrderStatusRequest{Status: "lost"})
		require.Error(t, err)
	})
}
