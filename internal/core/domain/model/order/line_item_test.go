package order_test

import (
	"testing"

	"homeoffice/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
)

func TestNewLineItem(t *testing.T) {
	item := order.NewLineItem("Flat white", price("3.80"), "Dana", nil)

	assert.Equal(t, "Flat white", item.Item())
	assert.True(t, item.Price().Equal(price("3.8")))
	assert.Equal(t, "Dana", item.PreparedBy())
	assert.Nil(t, item.Order())
}

func TestLineItem_Equal(t *testing.T) {
	owner := newBreakfastOrder(t, breakfastItems())
	base := order.NewLineItem("Latte", price("4.50"), "Alice", nil)

	testCases := []struct {
		name     string
		other    *order.LineItem
		expected bool
	}{
		{"same values", order.NewLineItem("Latte", price("4.50"), "Alice", nil), true},
		{"different owner is ignored", order.NewLineItem("Latte", price("4.5"), "Alice", owner), true},
		{"different item", order.NewLineItem("Mocha", price("4.50"), "Alice", nil), false},
		{"different price", order.NewLineItem("Latte", price("4.55"), "Alice", nil), false},
		{"different barista", order.NewLineItem("Latte", price("4.50"), "Bob", nil), false},
		{"nil", nil, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, base.Equal(tc.other))
		})
	}
}
