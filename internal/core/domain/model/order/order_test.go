package order_test

import (
	"testing"
	"time"

	"homeoffice/internal/core/domain/model/order"
	"homeoffice/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	placedAt    = time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	completedAt = time.Date(2024, 1, 1, 8, 4, 30, 0, time.UTC)
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func breakfastItems() []*order.LineItem {
	return []*order.LineItem{
		order.NewLineItem("Latte", price("4.50"), "Alice", nil),
		order.NewLineItem("Muffin", price("2.25"), "Alice", nil),
	}
}

func newBreakfastOrder(t *testing.T, items []*order.LineItem) *order.Order {
	t.Helper()
	o, err := order.NewOrder("order-1", items, order.Mobile, order.Store1, nil, placedAt, completedAt)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("should compute total for the breakfast scenario", func(t *testing.T) {
		o := newBreakfastOrder(t, breakfastItems())

		require.NoError(t, o.Validate())
		assert.Equal(t, "order-1", o.ID())
		assert.True(t, o.Total().Equal(price("6.75")), o.Total().String())
		assert.Len(t, o.LineItems(), 2)
		assert.Equal(t, order.Mobile, o.OrderSource())
		assert.Equal(t, order.Store1, o.LocationID())
		assert.Nil(t, o.CustomerLoyaltyID())
		assert.True(t, o.OrderPlacedTimestamp().Equal(placedAt))
		assert.True(t, o.OrderCompletedTimestamp().Equal(completedAt))
	})

	t.Run("should sum prices exactly", func(t *testing.T) {
		items := make([]*order.LineItem, 0, 10)
		for range 10 {
			items = append(items, order.NewLineItem("Espresso shot", price("0.10"), "", nil))
		}

		o := newBreakfastOrder(t, items)

		assert.Equal(t, "1", o.Total().String())
		assert.True(t, o.Total().Equal(price("1.00")))
	})

	t.Run("should accept an empty line item list with zero total", func(t *testing.T) {
		o := newBreakfastOrder(t, []*order.LineItem{})

		assert.True(t, o.Total().IsZero())
		assert.Empty(t, o.LineItems())
	})

	t.Run("should accept negative prices", func(t *testing.T) {
		items := []*order.LineItem{
			order.NewLineItem("Cold brew", price("5.00"), "Bob", nil),
			order.NewLineItem("Refund", price("-1.25"), "", nil),
		}

		o := newBreakfastOrder(t, items)

		assert.True(t, o.Total().Equal(price("3.75")))
	})

	t.Run("should rebind line items to the new order", func(t *testing.T) {
		other := newBreakfastOrder(t, []*order.LineItem{})
		input := []*order.LineItem{
			order.NewLineItem("Latte", price("4.50"), "Alice", other),
			order.NewLineItem("Muffin", price("2.25"), "Alice", nil),
		}

		o := newBreakfastOrder(t, input)

		for i, item := range o.LineItems() {
			assert.Same(t, o, item.Order())
			assert.NotSame(t, input[i], item)
			assert.True(t, input[i].Equal(item))
		}
		assert.Same(t, other, input[0].Order(), "caller items are left untouched")
	})

	t.Run("should preserve insertion order", func(t *testing.T) {
		o := newBreakfastOrder(t, breakfastItems())

		items := o.LineItems()
		assert.Equal(t, "Latte", items[0].Item())
		assert.Equal(t, "Muffin", items[1].Item())
	})

	t.Run("should copy the loyalty id", func(t *testing.T) {
		loyaltyID := "member-42"
		o, err := order.NewOrder("order-2", breakfastItems(), order.InStore, order.Store2, &loyaltyID, placedAt, completedAt)
		require.NoError(t, err)

		loyaltyID = "changed"

		require.NotNil(t, o.CustomerLoyaltyID())
		assert.Equal(t, "member-42", *o.CustomerLoyaltyID())
	})

	t.Run("should normalize timestamps to UTC", func(t *testing.T) {
		zone := time.FixedZone("EST", -5*60*60)
		local := time.Date(2024, 1, 1, 3, 0, 0, 0, zone)

		o, err := order.NewOrder("order-3", breakfastItems(), order.Web, order.Store1, nil, local, local)
		require.NoError(t, err)

		assert.Equal(t, time.UTC, o.OrderPlacedTimestamp().Location())
		assert.True(t, o.OrderPlacedTimestamp().Equal(placedAt))
	})

	t.Run("should not enforce placed before completed", func(t *testing.T) {
		_, err := order.NewOrder("order-4", breakfastItems(), order.Kiosk, order.Store3, nil, completedAt, placedAt)

		require.NoError(t, err)
	})
}

func TestNewOrder_Validation(t *testing.T) {
	t.Run("should fail with nil line items", func(t *testing.T) {
		o, err := order.NewOrder("order-1", nil, order.Mobile, order.Store1, nil, placedAt, completedAt)

		require.Error(t, err)
		assert.Nil(t, o)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "lineItems")
	})

	t.Run("should fail with a nil line item element", func(t *testing.T) {
		items := []*order.LineItem{order.NewLineItem("Latte", price("4.50"), "Alice", nil), nil}

		o, err := order.NewOrder("order-1", items, order.Mobile, order.Store1, nil, placedAt, completedAt)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "lineItems[1]")
	})

	t.Run("should fail with empty id", func(t *testing.T) {
		o, err := order.NewOrder("  ", breakfastItems(), order.Mobile, order.Store1, nil, placedAt, completedAt)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "id")
	})

	t.Run("should fail with unknown enumeration values", func(t *testing.T) {
		o, err := order.NewOrder("order-1", breakfastItems(), order.OrderSourceUnknown, order.StoreLocation(99), nil, placedAt, completedAt)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "orderSource")
		assert.Contains(t, err.Error(), "locationId")
	})

	t.Run("should join every validation error", func(t *testing.T) {
		o, err := order.NewOrder("", nil, order.OrderSourceUnknown, order.StoreLocationUnknown, nil, placedAt, completedAt)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "value is required: id")
		assert.Contains(t, err.Error(), "value is required: lineItems")
		assert.Contains(t, err.Error(), "orderSource")
		assert.Contains(t, err.Error(), "locationId")
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should keep the persisted total", func(t *testing.T) {
		o, err := order.RestoreOrder("order-1", breakfastItems(), price("9.99"), order.Mobile, order.Store1, nil, placedAt, completedAt)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.Total().Equal(price("9.99")))
		for _, item := range o.LineItems() {
			assert.Same(t, o, item.Order())
		}
	})

	t.Run("should fail with nil line items", func(t *testing.T) {
		_, err := order.RestoreOrder("order-1", nil, decimal.Zero, order.Mobile, order.Store1, nil, placedAt, completedAt)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should fail validation for nil order", func(t *testing.T) {
		var o *order.Order

		assert.Equal(t, order.ErrOrderIsNotConstructed, o.Validate())
	})

	t.Run("should fail validation for zero value order", func(t *testing.T) {
		var o order.Order

		assert.Equal(t, order.ErrOrderIsNotConstructed, o.Validate())
	})
}

func TestOrder_AddLineItem(t *testing.T) {
	t.Run("should append and re-parent without recomputing total", func(t *testing.T) {
		o := newBreakfastOrder(t, breakfastItems())
		previousOwner := newBreakfastOrder(t, []*order.LineItem{})
		extra := order.NewLineItem("Scone", price("3.10"), "Bob", previousOwner)

		require.NoError(t, o.AddLineItem(extra))

		items := o.LineItems()
		require.Len(t, items, 3)
		assert.Equal(t, "Scone", items[2].Item())
		assert.Same(t, o, items[2].Order())
		assert.Same(t, previousOwner, extra.Order())
		assert.True(t, o.Total().Equal(price("6.75")), "total is only computed at construction")
	})

	t.Run("should initialize the collection on a zero value order", func(t *testing.T) {
		var o order.Order

		require.NoError(t, o.AddLineItem(order.NewLineItem("Tea", price("2.00"), "", nil)))

		require.Len(t, o.LineItems(), 1)
		assert.Same(t, &o, o.LineItems()[0].Order())
	})

	t.Run("should reject nil items", func(t *testing.T) {
		o := newBreakfastOrder(t, breakfastItems())

		require.ErrorIs(t, o.AddLineItem(nil), errs.ErrValueIsRequired)
		assert.Len(t, o.LineItems(), 2)
	})
}

func TestOrder_SetLineItems(t *testing.T) {
	o := newBreakfastOrder(t, breakfastItems())
	replacement := []*order.LineItem{order.NewLineItem("Mocha", price("5.25"), "Carol", nil)}

	require.NoError(t, o.SetLineItems(replacement))

	items := o.LineItems()
	require.Len(t, items, 1)
	assert.Same(t, o, items[0].Order())
	assert.True(t, o.Total().Equal(price("6.75")))
	require.ErrorIs(t, o.SetLineItems(nil), errs.ErrValueIsRequired)
}

func TestOrder_LineItemsIsACopy(t *testing.T) {
	o := newBreakfastOrder(t, breakfastItems())

	items := o.LineItems()
	items[0] = nil

	assert.NotNil(t, o.LineItems()[0])
}

func TestOrder_SetID(t *testing.T) {
	o := newBreakfastOrder(t, breakfastItems())

	require.NoError(t, o.SetID("order-1"))
	err := o.SetID("order-2")

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	require.ErrorIs(t, err, order.ErrOrderIDIsAlreadyAssigned)
	assert.Equal(t, "order-1", o.ID())
}

func TestOrder_Setters(t *testing.T) {
	o := newBreakfastOrder(t, breakfastItems())
	loyaltyID := "member-7"
	later := completedAt.Add(time.Hour)

	require.NoError(t, o.SetOrderSource(order.Kiosk))
	require.NoError(t, o.SetLocationID(order.Store4))
	o.SetCustomerLoyaltyID(&loyaltyID)
	o.SetOrderPlacedTimestamp(later)
	o.SetOrderCompletedTimestamp(later)

	assert.Equal(t, order.Kiosk, o.OrderSource())
	assert.Equal(t, order.Store4, o.LocationID())
	assert.Equal(t, "member-7", *o.CustomerLoyaltyID())
	assert.True(t, o.OrderPlacedTimestamp().Equal(later))
	assert.True(t, o.OrderCompletedTimestamp().Equal(later))

	require.Error(t, o.SetOrderSource(order.OrderSource(42)))
	require.Error(t, o.SetLocationID(order.StoreLocationUnknown))
	assert.Equal(t, order.Kiosk, o.OrderSource())
	assert.Equal(t, order.Store4, o.LocationID())

	o.SetCustomerLoyaltyID(nil)
	assert.Nil(t, o.CustomerLoyaltyID())
}

func TestOrder_Equal(t *testing.T) {
	t.Run("should be equal when built from identical values", func(t *testing.T) {
		o1 := newBreakfastOrder(t, breakfastItems())
		o2 := newBreakfastOrder(t, breakfastItems())

		assert.True(t, o1.Equal(o2))
		assert.True(t, o2.Equal(o1))
	})

	t.Run("should not be equal when line items are reordered", func(t *testing.T) {
		items := breakfastItems()
		reversed := []*order.LineItem{items[1], items[0]}

		o1 := newBreakfastOrder(t, items)
		o2 := newBreakfastOrder(t, reversed)

		assert.True(t, o1.Total().Equal(o2.Total()))
		assert.False(t, o1.Equal(o2))
	})

	t.Run("should compare prices by value", func(t *testing.T) {
		o1 := newBreakfastOrder(t, []*order.LineItem{order.NewLineItem("Latte", price("4.5"), "Alice", nil)})
		o2 := newBreakfastOrder(t, []*order.LineItem{order.NewLineItem("Latte", price("4.50"), "Alice", nil)})

		assert.True(t, o1.Equal(o2))
	})

	t.Run("should detect differences in every field", func(t *testing.T) {
		loyaltyID := "member-1"
		base := func() *order.Order { return newBreakfastOrder(t, breakfastItems()) }

		mutations := map[string]func(o *order.Order){
			"source":    func(o *order.Order) { _ = o.SetOrderSource(order.Web) },
			"location":  func(o *order.Order) { _ = o.SetLocationID(order.Store2) },
			"loyalty":   func(o *order.Order) { o.SetCustomerLoyaltyID(&loyaltyID) },
			"placed":    func(o *order.Order) { o.SetOrderPlacedTimestamp(placedAt.Add(time.Second)) },
			"completed": func(o *order.Order) { o.SetOrderCompletedTimestamp(completedAt.Add(time.Second)) },
			"items":     func(o *order.Order) { _ = o.AddLineItem(order.NewLineItem("Scone", price("3"), "", nil)) },
		}

		for name, mutate := range mutations {
			t.Run(name, func(t *testing.T) {
				changed := base()
				mutate(changed)

				assert.False(t, base().Equal(changed))
			})
		}
	})

	t.Run("should differ on id and total", func(t *testing.T) {
		o1 := newBreakfastOrder(t, breakfastItems())
		o2, err := order.NewOrder("order-2", breakfastItems(), order.Mobile, order.Store1, nil, placedAt, completedAt)
		require.NoError(t, err)
		o3, err := order.RestoreOrder("order-1", breakfastItems(), price("7"), order.Mobile, order.Store1, nil, placedAt, completedAt)
		require.NoError(t, err)

		assert.False(t, o1.Equal(o2))
		assert.False(t, o1.Equal(o3))
	})

	t.Run("should handle nil", func(t *testing.T) {
		var nilOrder *order.Order
		o := newBreakfastOrder(t, breakfastItems())

		assert.False(t, o.Equal(nil))
		assert.False(t, nilOrder.Equal(o))
		assert.True(t, nilOrder.Equal(nil))
	})
}

func TestOrder_String(t *testing.T) {
	o := newBreakfastOrder(t, breakfastItems())

	s := o.String()

	assert.Contains(t, s, "id='order-1'")
	assert.Contains(t, s, "LineItem[item='Latte', price=4.5, preparedBy='Alice']")
	assert.Contains(t, s, "total=6.75")
	assert.Contains(t, s, "orderSource=MOBILE")
	assert.Contains(t, s, "locationId='STORE_1'")
	assert.Contains(t, s, "orderPlacedTimestamp=2024-01-01T08:00:00Z")
}
