package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"homeoffice/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderIDIsAlreadyAssigned is returned by SetID when the order already carries a
	// different identifier.
	ErrOrderIDIsAlreadyAssigned = errors.New("order id is already assigned")
)

// Order is a completed coffee-shop order. It is the aggregate root owning an ordered
// collection of line items.
//
// Order follows these invariants:
//   - The id is non-empty and, once assigned, never changes
//   - Every line item points back at this order and is not shared with another order
//   - total is the sum of line-item prices at the moment the order was built
//   - orderSource and locationId are members of their closed enumerations
//
// The total is valid immediately after construction. AddLineItem and SetLineItems
// change the collection without touching it, so callers that mutate line items after
// construction own the consequences for the total.
//
// An Order is not safe for concurrent mutation; callers serialize writes to one instance.
// orderPlacedTimestamp <= orderCompletedTimestamp is expected but not enforced.
type Order struct {
	// id is the globally unique order identifier
	id string

	// lineItems preserves insertion order
	lineItems []*LineItem

	// total is derived from line-item prices at construction
	total decimal.Decimal

	// orderSource is the channel the order came through
	orderSource OrderSource

	// locationID is the store the order was placed at
	locationID StoreLocation

	// customerLoyaltyID is nil for anonymous orders
	customerLoyaltyID *string

	// orderPlacedTimestamp is when the customer placed the order, in UTC
	orderPlacedTimestamp time.Time

	// orderCompletedTimestamp is when the order was handed over, in UTC
	orderCompletedTimestamp time.Time

	// isConstructed ensures the order was created via NewOrder or RestoreOrder
	isConstructed bool
}

// NewOrder records a completed order.
//
// Every element of lineItems is rebuilt as a new LineItem bound to the returned order;
// the caller's LineItem values are never stored. The total is the exact decimal sum of
// their prices, zero when lineItems is empty.
//
// Parameters:
//   - id: globally unique identifier (must not be empty)
//   - lineItems: purchased items (must not be nil; may be empty)
//   - orderSource, locationID: members of their enumerations
//   - customerLoyaltyID: loyalty member id, nil for anonymous orders
//   - orderPlacedTimestamp, orderCompletedTimestamp: instants, stored in UTC
//
// Returns:
//   - *Order: the built order
//   - error: every validation failure joined; no partial order is returned
//
// Example:
//
//	o, err := order.NewOrder(
//	    kernel.NewUUID().String(),
//	    []*order.LineItem{
//	        order.NewLineItem("Latte", decimal.RequireFromString("4.50"), "Alice", nil),
//	        order.NewLineItem("Muffin", decimal.RequireFromString("2.25"), "Alice", nil),
//	    },
//	    order.Mobile,
//	    order.Store1,
//	    nil,
//	    placedAt,
//	    completedAt,
//	)
//	// o.Total() is 6.75
func NewOrder(
	id string,
	lineItems []*LineItem,
	orderSource OrderSource,
	locationID StoreLocation,
	customerLoyaltyID *string,
	orderPlacedTimestamp time.Time,
	orderCompletedTimestamp time.Time,
) (*Order, error) {
	if err := validateLineItems(lineItems); err != nil {
		return build(id, nil, decimal.Zero, orderSource, locationID, customerLoyaltyID,
			orderPlacedTimestamp, orderCompletedTimestamp, err)
	}

	return build(id, lineItems, sumPrices(lineItems), orderSource, locationID, customerLoyaltyID,
		orderPlacedTimestamp, orderCompletedTimestamp, nil)
}

// RestoreOrder reconstructs an Order from storage. Unlike NewOrder it keeps the
// persisted total verbatim, so an order whose line items were changed after
// construction round-trips unchanged.
//
// Example:
//
//	o, err := order.RestoreOrder(dto.ID, items, total, source, location, dto.CustomerLoyaltyID, placed, completed)
func RestoreOrder(
	id string,
	lineItems []*LineItem,
	total decimal.Decimal,
	orderSource OrderSource,
	locationID StoreLocation,
	customerLoyaltyID *string,
	orderPlacedTimestamp time.Time,
	orderCompletedTimestamp time.Time,
) (*Order, error) {
	return build(id, lineItems, total, orderSource, locationID, customerLoyaltyID,
		orderPlacedTimestamp, orderCompletedTimestamp, validateLineItems(lineItems))
}

func build(
	id string,
	lineItems []*LineItem,
	total decimal.Decimal,
	orderSource OrderSource,
	locationID StoreLocation,
	customerLoyaltyID *string,
	orderPlacedTimestamp time.Time,
	orderCompletedTimestamp time.Time,
	lineItemsErr error,
) (*Order, error) {
	o := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		o.SetID(id),
		lineItemsErr,
		o.SetOrderSource(orderSource),
		o.SetLocationID(locationID),
	); err != nil {
		return nil, err
	}

	o.lineItems = make([]*LineItem, 0, len(lineItems))
	for _, item := range lineItems {
		o.lineItems = append(o.lineItems, item.rebind(o))
	}

	o.total = total
	o.SetCustomerLoyaltyID(customerLoyaltyID)
	o.SetOrderPlacedTimestamp(orderPlacedTimestamp)
	o.SetOrderCompletedTimestamp(orderCompletedTimestamp)

	return o, nil
}

// Validate ensures the Order was built through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// ID returns the order identifier.
func (o *Order) ID() string {
	return o.id
}

// SetID assigns the identifier. It succeeds when the order has no id yet or already
// carries the same one; reassigning a different id fails with ErrOrderIDIsAlreadyAssigned.
func (o *Order) SetID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errs.NewValueIsRequiredError("id")
	}
	if o.id != "" && o.id != id {
		return errs.NewValueIsInvalidErrorWithCause("id", ErrOrderIDIsAlreadyAssigned)
	}
	o.id = id
	return nil
}

// LineItems returns the line items in insertion order. The returned slice is a copy;
// the items themselves are shared and immutable.
func (o *Order) LineItems() []*LineItem {
	items := make([]*LineItem, len(o.lineItems))
	copy(items, o.lineItems)
	return items
}

// SetLineItems replaces the collection wholesale. Items are rebound to this order.
// The total is not recomputed.
func (o *Order) SetLineItems(lineItems []*LineItem) error {
	if err := validateLineItems(lineItems); err != nil {
		return err
	}

	o.lineItems = nil
	for _, item := range lineItems {
		o.lineItems = append(o.lineItems, item.rebind(o))
	}
	return nil
}

// AddLineItem appends a copy of item bound to this order, discarding whatever order
// item pointed at before. The total is not recomputed.
func (o *Order) AddLineItem(item *LineItem) error {
	if item == nil {
		return errs.NewValueIsRequiredError("lineItem")
	}

	o.lineItems = append(o.lineItems, item.rebind(o))
	return nil
}

// Total returns the sum of line-item prices as computed when the order was built.
func (o *Order) Total() decimal.Decimal {
	return o.total
}

// OrderSource returns the channel the order came through.
func (o *Order) OrderSource() OrderSource {
	return o.orderSource
}

// SetOrderSource validates and assigns the order source.
func (o *Order) SetOrderSource(orderSource OrderSource) error {
	if err := orderSource.Validate(); err != nil {
		return err
	}
	o.orderSource = orderSource
	return nil
}

// LocationID returns the store the order was placed at.
func (o *Order) LocationID() StoreLocation {
	return o.locationID
}

// SetLocationID validates and assigns the store location.
func (o *Order) SetLocationID(locationID StoreLocation) error {
	if err := locationID.Validate(); err != nil {
		return err
	}
	o.locationID = locationID
	return nil
}

// CustomerLoyaltyID returns the loyalty member id, or nil for anonymous orders.
func (o *Order) CustomerLoyaltyID() *string {
	if o.customerLoyaltyID == nil {
		return nil
	}
	id := *o.customerLoyaltyID
	return &id
}

// SetCustomerLoyaltyID assigns the loyalty member id; nil marks the order anonymous.
func (o *Order) SetCustomerLoyaltyID(customerLoyaltyID *string) {
	if customerLoyaltyID == nil {
		o.customerLoyaltyID = nil
		return
	}
	id := *customerLoyaltyID
	o.customerLoyaltyID = &id
}

// OrderPlacedTimestamp returns when the order was placed.
func (o *Order) OrderPlacedTimestamp() time.Time {
	return o.orderPlacedTimestamp
}

// SetOrderPlacedTimestamp assigns the placement instant, normalized to UTC.
func (o *Order) SetOrderPlacedTimestamp(t time.Time) {
	o.orderPlacedTimestamp = t.UTC()
}

// OrderCompletedTimestamp returns when the order was completed.
func (o *Order) OrderCompletedTimestamp() time.Time {
	return o.orderCompletedTimestamp
}

// SetOrderCompletedTimestamp assigns the completion instant, normalized to UTC.
func (o *Order) SetOrderCompletedTimestamp(t time.Time) {
	o.orderCompletedTimestamp = t.UTC()
}

// Equal compares every field, including the line items in order. Two orders holding
// the same items in a different order are not equal. Use ID() for identity lookups.
func (o *Order) Equal(other *Order) bool {
	if o == nil || other == nil {
		return o == other
	}
	if o == other {
		return true
	}

	if o.id != other.id ||
		!o.total.Equal(other.total) ||
		o.orderSource != other.orderSource ||
		o.locationID != other.locationID ||
		!equalOptional(o.customerLoyaltyID, other.customerLoyaltyID) ||
		!o.orderPlacedTimestamp.Equal(other.orderPlacedTimestamp) ||
		!o.orderCompletedTimestamp.Equal(other.orderCompletedTimestamp) {
		return false
	}

	if len(o.lineItems) != len(other.lineItems) {
		return false
	}
	for i := range o.lineItems {
		if !o.lineItems[i].Equal(other.lineItems[i]) {
			return false
		}
	}

	return true
}

func (o *Order) String() string {
	items := make([]string, 0, len(o.lineItems))
	for _, item := range o.lineItems {
		items = append(items, item.String())
	}

	loyaltyID := "<nil>"
	if o.customerLoyaltyID != nil {
		loyaltyID = *o.customerLoyaltyID
	}

	return fmt.Sprintf(
		"Order[id='%s', lineItems=[%s], total=%s, orderSource=%s, locationId='%s', customerLoyaltyId='%s', "+
			"orderPlacedTimestamp=%s, orderCompletedTimestamp=%s]",
		o.id,
		strings.Join(items, ", "),
		o.total.String(),
		o.orderSource,
		o.locationID,
		loyaltyID,
		o.orderPlacedTimestamp.Format(time.RFC3339Nano),
		o.orderCompletedTimestamp.Format(time.RFC3339Nano),
	)
}

// validateLineItems rejects a nil collection and nil elements. An empty, non-nil
// collection is accepted.
func validateLineItems(lineItems []*LineItem) error {
	if lineItems == nil {
		return errs.NewValueIsRequiredError("lineItems")
	}

	for i, item := range lineItems {
		if item == nil {
			return errs.NewValueIsRequiredError(fmt.Sprintf("lineItems[%d]", i))
		}
	}

	return nil
}

func sumPrices(lineItems []*LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range lineItems {
		total = total.Add(item.Price())
	}
	return total
}

func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
