package order

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems() OrderItemList {
	return OrderItemList{
		{ProductID: uuid.New(), Name: "Linen Shirt", Price: decimal.NewFromInt(40), Quantity: 2, Size: "M", Color: "red"},
		{ProductID: uuid.New(), Name: "Wool Scarf", Price: decimal.NewFromInt(15), Quantity: 1, Size: "one", Color: "grey"},
	}
}

func testAddress() ShippingAddress {
	return ShippingAddress{
		FullName:   "Ada Lovelace",
		Line1:      "12 Analytical St",
		City:       "London",
		PostalCode: "EC1A",
		Country:    "UK",
	}
}

func newTestOrder(t *testing.T) *Order {
	t.Helper()
	o, err := NewOrder(uuid.New(), testItems(), testAddress(), PaymentMethodCOD)
	require.NoError(t, err)
	o.ClearDomainEvents()
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("creates pending order with item snapshot", func(t *testing.T) {
		userID := uuid.New()
		o, err := NewOrder(userID, testItems(), testAddress(), PaymentMethodCard)
		require.NoError(t, err)

		assert.Equal(t, userID, o.UserID)
		assert.Equal(t, OrderStatusPending, o.Status)
		assert.Equal(t, PaymentStatusPending, o.PaymentStatus)
		assert.Equal(t, CancellationStatusNone, o.CancellationStatus)
		assert.False(t, o.CancellationRequested)
		assert.Equal(t, 2, o.ItemCount())
		assert.Equal(t, 3, o.TotalQuantity())
		// 2 * 40 + 1 * 15
		assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(95)))
		assert.Zero(t, o.OrderNumber)
	})

	t.Run("publishes OrderCreated event", func(t *testing.T) {
		o, err := NewOrder(uuid.New(), testItems(), testAddress(), PaymentMethodCOD)
		require.NoError(t, err)

		events := o.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeOrderCreated, events[0].EventType())
	})

	t.Run("rejects explicitly empty items", func(t *testing.T) {
		_, err := NewOrder(uuid.New(), OrderItemList{}, testAddress(), PaymentMethodCOD)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EMPTY_ORDER", domainErr.Code)
	})

	t.Run("accepts nil items", func(t *testing.T) {
		o, err := NewOrder(uuid.New(), nil, testAddress(), PaymentMethodCOD)
		require.NoError(t, err)
		assert.Zero(t, o.ItemCount())
		assert.True(t, o.TotalAmount.IsZero())
	})

	t.Run("rejects unknown payment method", func(t *testing.T) {
		_, err := NewOrder(uuid.New(), testItems(), testAddress(), PaymentMethod("cheque"))
		require.Error(t, err)
	})

	t.Run("rejects empty user", func(t *testing.T) {
		_, err := NewOrder(uuid.Nil, testItems(), testAddress(), PaymentMethodCOD)
		require.Error(t, err)
	})
}

func TestAssignOrderNumber(t *testing.T) {
	t.Run("assigns once", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AssignOrderNumber(1001))
		assert.Equal(t, int64(1001), o.OrderNumber)
	})

	t.Run("rejects reassignment", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AssignOrderNumber(1001))
		require.Error(t, o.AssignOrderNumber(1002))
		assert.Equal(t, int64(1001), o.OrderNumber)
	})

	t.Run("rejects non-positive numbers", func(t *testing.T) {
		o := newTestOrder(t)
		require.Error(t, o.AssignOrderNumber(0))
	})
}

func TestSetStatus(t *testing.T) {
	t.Run("accepts any valid status without transition checks", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.SetStatus(OrderStatusDelivered))
		assert.Equal(t, OrderStatusDelivered, o.Status)

		// moving backwards is allowed too
		require.NoError(t, o.SetStatus(OrderStatusProcessing))
		assert.Equal(t, OrderStatusProcessing, o.Status)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		o := newTestOrder(t)
		require.Error(t, o.SetStatus(OrderStatus("returned")))
		assert.Equal(t, OrderStatusPending, o.Status)
	})

	t.Run("publishes status change event", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.SetStatus(OrderStatusShipped))

		events := o.GetDomainEvents()
		require.Len(t, events, 1)
		event, ok := events[0].(*OrderStatusChangedEvent)
		require.True(t, ok)
		assert.Equal(t, OrderStatusPending, event.PreviousStatus)
		assert.Equal(t, OrderStatusShipped, event.NewStatus)
	})
}

func TestRequestCancellation(t *testing.T) {
	t.Run("opens the handshake on an active order", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.RequestCancellation("changed my mind"))

		assert.True(t, o.CancellationRequested)
		assert.Equal(t, CancellationStatusRequested, o.CancellationStatus)
		assert.Equal(t, "changed my mind", o.CancellationReason)
		assert.Equal(t, OrderStatusPending, o.Status)
	})

	t.Run("rejected for delivered order", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.SetStatus(OrderStatusDelivered))

		err := o.RequestCancellation("too late")
		require.Error(t, err)
		assert.False(t, o.CancellationRequested)
	})

	t.Run("rejected for cancelled order", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.SetStatus(OrderStatusCancelled))

		require.Error(t, o.RequestCancellation("again"))
	})

	t.Run("allowed for shipped order", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.SetStatus(OrderStatusShipped))

		require.NoError(t, o.RequestCancellation("wrong size"))
		assert.Equal(t, CancellationStatusRequested, o.CancellationStatus)
	})
}

func TestRespondToCancellation(t *testing.T) {
	t.Run("acceptance cancels the order and resets COD payment", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.SetPaymentStatus(PaymentStatusPaid))
		require.NoError(t, o.RequestCancellation("changed my mind"))

		require.NoError(t, o.RespondToCancellation(CancellationStatusAccepted))

		assert.Equal(t, OrderStatusCancelled, o.Status)
		assert.Equal(t, CancellationStatusAccepted, o.CancellationStatus)
		assert.False(t, o.CancellationRequested)
		assert.Equal(t, PaymentStatusPending, o.PaymentStatus)
	})

	t.Run("acceptance leaves card payment status untouched", func(t *testing.T) {
		o, err := NewOrder(uuid.New(), testItems(), testAddress(), PaymentMethodCard)
		require.NoError(t, err)
		require.NoError(t, o.SetPaymentStatus(PaymentStatusPaid))
		require.NoError(t, o.RequestCancellation("changed my mind"))

		require.NoError(t, o.RespondToCancellation(CancellationStatusAccepted))

		assert.Equal(t, OrderStatusCancelled, o.Status)
		assert.Equal(t, PaymentStatusPaid, o.PaymentStatus)
	})

	t.Run("rejection keeps the order active", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.RequestCancellation("changed my mind"))

		require.NoError(t, o.RespondToCancellation(CancellationStatusRejected))

		assert.Equal(t, OrderStatusPending, o.Status)
		assert.Equal(t, CancellationStatusRejected, o.CancellationStatus)
		assert.False(t, o.CancellationRequested)
	})

	t.Run("rejects decisions other than accepted or rejected", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.RequestCancellation("changed my mind"))

		require.Error(t, o.RespondToCancellation(CancellationStatusNone))
		require.Error(t, o.RespondToCancellation(CancellationStatus("maybe")))
	})

	t.Run("fails without a pending request", func(t *testing.T) {
		o := newTestOrder(t)
		require.Error(t, o.RespondToCancellation(CancellationStatusAccepted))
	})
}

func TestIsOwnedBy(t *testing.T) {
	userID := uuid.New()
	o, err := NewOrder(userID, testItems(), testAddress(), PaymentMethodCOD)
	require.NoError(t, err)

	assert.True(t, o.IsOwnedBy(userID))
	assert.False(t, o.IsOwnedBy(uuid.New()))
}
