package order_test

import (
	"testing"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderedAt = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newItem(t *testing.T, quantity int, price string) *order.Item {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), quantity, "Dish", decimal.RequireFromString(price))
	require.NoError(t, err)
	return item
}

func newAddress(t *testing.T) kernel.DeliveryAddress {
	t.Helper()
	address, err := kernel.NewDeliveryAddress("221B Baker Street")
	require.NoError(t, err)
	return address
}

func newOrder(t *testing.T, items ...*order.Item) *order.Order {
	t.Helper()
	if len(items) == 0 {
		items = []*order.Item{newItem(t, 1, "10.00")}
	}
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), newAddress(t), items, orderedAt)
	require.NoError(t, err)
	return o
}

func moveTo(t *testing.T, o *order.Order, path ...order.Status) {
	t.Helper()
	for _, status := range path {
		require.NoError(t, o.ChangeStatus(status, orderedAt.Add(time.Hour)))
	}
}

func TestNewOrder(t *testing.T) {
	t.Run("should create pending order with computed total", func(t *testing.T) {
		id := kernel.NewUUID()
		userID := kernel.NewUUID()
		restaurantID := kernel.NewUUID()
		items := []*order.Item{newItem(t, 2, "5.00"), newItem(t, 1, "3.50")}

		o, err := order.NewOrder(id, userID, restaurantID, newAddress(t), items, orderedAt)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.True(t, o.UserID().IsEqual(userID))
		assert.True(t, o.RestaurantID().IsEqual(restaurantID))
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, orderedAt, o.OrderedAt())
		assert.Nil(t, o.ActualDeliveryTime())
		assert.Nil(t, o.DeliveryFee())
		assert.Equal(t, 1, o.Version())
		assert.True(t, decimal.RequireFromString("13.50").Equal(o.TotalAmount()))
		for _, item := range o.Items() {
			require.NotNil(t, item.OrderID())
			assert.True(t, item.OrderID().IsEqual(id))
		}
	})

	t.Run("should fail without items", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), newAddress(t), nil, orderedAt)

		require.Error(t, err)
		assert.Nil(t, o)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "items")
	})

	t.Run("should fail with unconstructed item", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), newAddress(t),
			[]*order.Item{{}}, orderedAt)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "items[0]")
	})

	t.Run("should join every validation error", func(t *testing.T) {
		var zero kernel.UUID
		var address kernel.DeliveryAddress

		o, err := order.NewOrder(zero, zero, zero, address, nil, time.Time{})

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "userId")
		assert.Contains(t, err.Error(), "restaurantId")
		assert.Contains(t, err.Error(), "orderDate")
		assert.Contains(t, err.Error(), "delivery address must be created")
		assert.Contains(t, err.Error(), "items")
		assert.True(t, errs.IsValidation(err))
	})
}

func TestOrder_TotalAmount(t *testing.T) {
	t.Run("should add delivery fee to item subtotals", func(t *testing.T) {
		o := newOrder(t, newItem(t, 2, "5.00"), newItem(t, 1, "3.50"))
		fee := decimal.RequireFromString("2.00")

		require.NoError(t, o.SetDeliveryFee(&fee))

		assert.True(t, decimal.RequireFromString("15.50").Equal(o.TotalAmount()),
			"got %s", o.TotalAmount())
	})

	t.Run("should treat missing fee as zero", func(t *testing.T) {
		o := newOrder(t, newItem(t, 2, "5.00"))
		fee := decimal.RequireFromString("2.00")
		require.NoError(t, o.SetDeliveryFee(&fee))

		require.NoError(t, o.SetDeliveryFee(nil))

		assert.True(t, decimal.RequireFromString("10.00").Equal(o.TotalAmount()))
	})

	t.Run("should accept zero fee and reject negative fee", func(t *testing.T) {
		o := newOrder(t)
		zero := decimal.Zero
		negative := decimal.RequireFromString("-1")

		require.NoError(t, o.SetDeliveryFee(&zero))
		err := o.SetDeliveryFee(&negative)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "deliveryFee")
		assert.True(t, decimal.Zero.Equal(*o.DeliveryFee()))
	})

	t.Run("should recompute total when items are replaced", func(t *testing.T) {
		o := newOrder(t, newItem(t, 2, "5.00"))
		fee := decimal.RequireFromString("1.25")
		require.NoError(t, o.SetDeliveryFee(&fee))

		require.NoError(t, o.ReplaceItems([]*order.Item{newItem(t, 3, "2.00")}))

		require.Len(t, o.Items(), 1)
		assert.True(t, decimal.RequireFromString("7.25").Equal(o.TotalAmount()))
	})

	t.Run("should refuse to replace items with an empty list", func(t *testing.T) {
		o := newOrder(t, newItem(t, 2, "5.00"))

		err := o.ReplaceItems([]*order.Item{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Len(t, o.Items(), 1)
		assert.True(t, decimal.RequireFromString("10.00").Equal(o.TotalAmount()))
	})

	t.Run("should round fee and total to cents", func(t *testing.T) {
		o := newOrder(t, newItem(t, 1, "10.00"))
		fee := decimal.RequireFromString("1.005")

		require.NoError(t, o.SetDeliveryFee(&fee))

		assert.Equal(t, "1.01", o.DeliveryFee().StringFixed(2))
		assert.True(t, decimal.RequireFromString("11.01").Equal(o.TotalAmount()))
	})

	t.Run("should reject items whose total exceeds the storable maximum", func(t *testing.T) {
		o := newOrder(t, newItem(t, 2, "5.00"))

		err := o.ReplaceItems([]*order.Item{newItem(t, order.MaxItemQuantity, "10000.00")})

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "totalAmount")
		assert.Len(t, o.Items(), 1)
		assert.True(t, decimal.RequireFromString("10.00").Equal(o.TotalAmount()))
	})

	t.Run("should reject a fee that pushes the total past the maximum", func(t *testing.T) {
		o := newOrder(t, newItem(t, 1, "10.00"))
		fee := kernel.MaxAmount

		err := o.SetDeliveryFee(&fee)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Nil(t, o.DeliveryFee())
		assert.True(t, decimal.RequireFromString("10.00").Equal(o.TotalAmount()))
	})

	t.Run("should accept a total equal to the maximum", func(t *testing.T) {
		o := newOrder(t, newItem(t, 1, "10.00"))
		fee := kernel.MaxAmount.Sub(decimal.RequireFromString("10.00"))

		require.NoError(t, o.SetDeliveryFee(&fee))

		assert.True(t, kernel.MaxAmount.Equal(o.TotalAmount()))
	})
}

func TestOrder_TerminalOrdersAreFrozen(t *testing.T) {
	for _, path := range [][]order.Status{
		{order.Confirmed, order.Preparing, order.OutForDelivery, order.Delivered},
		{order.Cancelled},
	} {
		terminal := path[len(path)-1]
		t.Run(terminal.String(), func(t *testing.T) {
			o := newOrder(t, newItem(t, 2, "5.00"))
			moveTo(t, o, path...)
			fee := decimal.RequireFromString("4.00")

			assert.False(t, o.IsEditable())

			err := o.SetDeliveryFee(&fee)
			require.ErrorIs(t, err, errs.ErrInvalidTransition)
			assert.Nil(t, o.DeliveryFee())

			err = o.ReplaceItems([]*order.Item{newItem(t, 1, "99.00")})
			require.ErrorIs(t, err, errs.ErrInvalidTransition)
			assert.True(t, decimal.RequireFromString("10.00").Equal(o.TotalAmount()))
		})
	}
}

func TestOrder_ChangeStatus(t *testing.T) {
	t.Run("should walk the happy path and stamp delivery time once", func(t *testing.T) {
		o := newOrder(t)
		deliveredAt := orderedAt.Add(45 * time.Minute)

		moveTo(t, o, order.Confirmed, order.Preparing, order.OutForDelivery)
		assert.Nil(t, o.ActualDeliveryTime())

		require.NoError(t, o.ChangeStatus(order.Delivered, deliveredAt))
		require.NotNil(t, o.ActualDeliveryTime())
		assert.Equal(t, deliveredAt, *o.ActualDeliveryTime())

		require.NoError(t, o.ChangeStatus(order.Delivered, deliveredAt.Add(time.Hour)))
		assert.Equal(t, order.Delivered, o.Status())
		assert.Equal(t, deliveredAt, *o.ActualDeliveryTime())
	})

	t.Run("should reject skipping a step", func(t *testing.T) {
		o := newOrder(t)

		err := o.ChangeStatus(order.Delivered, orderedAt)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.Pending, o.Status())
		assert.Nil(t, o.ActualDeliveryTime())
	})

	t.Run("should reject repeating a non-terminal status", func(t *testing.T) {
		o := newOrder(t)
		moveTo(t, o, order.Confirmed)

		err := o.ChangeStatus(order.Confirmed, orderedAt)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("should not leave a cancelled order", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.Cancel(orderedAt))

		err := o.ChangeStatus(order.Confirmed, orderedAt)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.Cancelled, o.Status())
	})
}

func TestOrder_Cancel(t *testing.T) {
	nonTerminal := [][]order.Status{
		{},
		{order.Confirmed},
		{order.Confirmed, order.Preparing},
		{order.Confirmed, order.Preparing, order.OutForDelivery},
	}

	for _, path := range nonTerminal {
		o := newOrder(t)
		moveTo(t, o, path...)

		require.NoError(t, o.Cancel(orderedAt))
		assert.Equal(t, order.Cancelled, o.Status())
		assert.Nil(t, o.ActualDeliveryTime())
	}

	t.Run("should be idempotent", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.Cancel(orderedAt))

		require.NoError(t, o.Cancel(orderedAt))
		assert.Equal(t, order.Cancelled, o.Status())
	})

	t.Run("should refuse to cancel a delivered order", func(t *testing.T) {
		o := newOrder(t)
		moveTo(t, o, order.Confirmed, order.Preparing, order.OutForDelivery, order.Delivered)

		err := o.Cancel(orderedAt)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.Delivered, o.Status())
	})
}

func TestOrder_Details(t *testing.T) {
	o := newOrder(t)

	t.Run("should trim and clear special instructions", func(t *testing.T) {
		note := "  ring twice "
		o.SetSpecialInstructions(&note)
		require.NotNil(t, o.SpecialInstructions())
		assert.Equal(t, "ring twice", *o.SpecialInstructions())

		blank := "   "
		o.SetSpecialInstructions(&blank)
		assert.Nil(t, o.SpecialInstructions())
	})

	t.Run("should set and clear estimated delivery time", func(t *testing.T) {
		eta := orderedAt.Add(30 * time.Minute)
		require.NoError(t, o.SetEstimatedDeliveryTime(&eta))
		assert.Equal(t, eta, *o.EstimatedDeliveryTime())

		zero := time.Time{}
		require.ErrorIs(t, o.SetEstimatedDeliveryTime(&zero), errs.ErrValueIsInvalid)

		require.NoError(t, o.SetEstimatedDeliveryTime(nil))
		assert.Nil(t, o.EstimatedDeliveryTime())
	})

	t.Run("should change delivery address", func(t *testing.T) {
		address, err := kernel.NewDeliveryAddress("10 Downing Street")
		require.NoError(t, err)

		require.NoError(t, o.ChangeDeliveryAddress(address))
		assert.Equal(t, "10 Downing Street", o.DeliveryAddress().String())

		require.Error(t, o.ChangeDeliveryAddress(kernel.DeliveryAddress{}))
		assert.Equal(t, "10 Downing Street", o.DeliveryAddress().String())
	})

	t.Run("should not expose internal item slice", func(t *testing.T) {
		items := o.Items()
		items[0] = nil

		assert.NotNil(t, o.Items()[0])
	})
}

func TestOrder_SnapshotIsImmutable(t *testing.T) {
	item := newItem(t, 2, "5.00")
	o := newOrder(t, item)
	fee := decimal.RequireFromString("2.00")
	require.NoError(t, o.SetDeliveryFee(&fee))

	moveTo(t, o, order.Confirmed, order.Preparing)
	note := "no onions"
	o.SetSpecialInstructions(&note)

	got := o.Items()[0]
	assert.Equal(t, "Dish", got.NameAtOrderTime())
	assert.True(t, decimal.RequireFromString("5.00").Equal(got.PriceAtOrderTime()))
	assert.True(t, decimal.RequireFromString("12.00").Equal(o.TotalAmount()))
}

func TestRestoreOrder(t *testing.T) {
	id := kernel.NewUUID()
	deliveredAt := orderedAt.Add(time.Hour)
	fee := decimal.RequireFromString("1.50")
	item, err := order.RestoreItem(kernel.NewUUID(), id, kernel.NewUUID(), 2, "Ramen", decimal.RequireFromString("8.00"))
	require.NoError(t, err)

	t.Run("should restore state without replaying lifecycle", func(t *testing.T) {
		o, err := order.RestoreOrder(order.RestoreParams{
			ID:                 id,
			UserID:             kernel.NewUUID(),
			RestaurantID:       kernel.NewUUID(),
			OrderedAt:          orderedAt,
			ActualDeliveryTime: &deliveredAt,
			Status:             order.Delivered,
			DeliveryAddress:    "1 Main St",
			DeliveryFee:        &fee,
			Items:              []*order.Item{item},
			Version:            7,
		})

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.Delivered, o.Status())
		assert.Equal(t, deliveredAt, *o.ActualDeliveryTime())
		assert.Equal(t, 7, o.Version())
		assert.True(t, decimal.RequireFromString("17.50").Equal(o.TotalAmount()))

		o.AdvanceVersion()
		assert.Equal(t, 8, o.Version())
	})

	t.Run("should reject items of another order", func(t *testing.T) {
		o, err := order.RestoreOrder(order.RestoreParams{
			ID:              kernel.NewUUID(),
			UserID:          kernel.NewUUID(),
			RestaurantID:    kernel.NewUUID(),
			OrderedAt:       orderedAt,
			Status:          order.Pending,
			DeliveryAddress: "1 Main St",
			Items:           []*order.Item{item},
		})

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "already belongs to order")
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		o, err := order.RestoreOrder(order.RestoreParams{
			ID:              id,
			UserID:          kernel.NewUUID(),
			RestaurantID:    kernel.NewUUID(),
			OrderedAt:       orderedAt,
			DeliveryAddress: "1 Main St",
			Items:           []*order.Item{item},
		})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Nil(t, o)
	})
}
