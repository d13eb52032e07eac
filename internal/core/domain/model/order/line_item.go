package order

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// LineItem is one purchased product inside an Order.
//
// A LineItem is immutable after construction. Its back-reference to the owning Order
// carries no ownership; the Order holds the collection and rebuilds every item it
// accepts so the reference always points at the order that contains it.
//
// No validation is applied: a negative price is accepted and pricing policy is left to
// callers.
type LineItem struct {
	// item is the product name or description
	item string

	// price is the amount charged for the item
	price decimal.Decimal

	// preparedBy identifies the staff member who made the item, empty when unknown
	preparedBy string

	// order points at the Order holding this item
	order *Order
}

// NewLineItem creates a line item. owner may be nil for items that are only used as
// input to NewOrder or AddLineItem; the order rebinds them.
//
// Example:
//
//	latte := order.NewLineItem("Latte", decimal.RequireFromString("4.50"), "Alice", nil)
func NewLineItem(item string, price decimal.Decimal, preparedBy string, owner *Order) *LineItem {
	return &LineItem{
		item:       item,
		price:      price,
		preparedBy: preparedBy,
		order:      owner,
	}
}

// Item returns the product name.
func (l *LineItem) Item() string {
	return l.item
}

// Price returns the amount charged.
func (l *LineItem) Price() decimal.Decimal {
	return l.price
}

// PreparedBy returns the staff identifier, or an empty string.
func (l *LineItem) PreparedBy() string {
	return l.preparedBy
}

// Order returns the order this item belongs to.
func (l *LineItem) Order() *Order {
	return l.order
}

// Equal compares item, price and preparedBy. Prices compare by value, so 4.5 equals
// 4.50. The owning order is not compared, which keeps Order.Equal from recursing.
func (l *LineItem) Equal(other *LineItem) bool {
	if l == nil || other == nil {
		return l == other
	}
	return l.item == other.item &&
		l.price.Equal(other.price) &&
		l.preparedBy == other.preparedBy
}

func (l *LineItem) String() string {
	return fmt.Sprintf("LineItem[item='%s', price=%s, preparedBy='%s']", l.item, l.price.String(), l.preparedBy)
}

// rebind copies the value fields into a new item owned by owner.
func (l *LineItem) rebind(owner *Order) *LineItem {
	return NewLineItem(l.item, l.price, l.preparedBy, owner)
}
