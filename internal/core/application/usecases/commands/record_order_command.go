package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"homeoffice/internal/core/domain/model/order"
	"homeoffice/internal/pkg/errs"
	"homeoffice/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrRecordOrderCommandIsNotConstructed = errors.New(
		"RecordOrderCommand must be created via NewRecordOrderCommand constructor",
	)
)

// RecordedLineItem is one purchased item as reported by the point of sale.
type RecordedLineItem struct {
	Item       string
	Price      decimal.Decimal
	PreparedBy string
}

// RecordOrderCommand represents a completed point-of-sale order to be stored.
// The total is never part of the command; it is derived from the line items.
//
// Example:
//
//	cmd, err := NewRecordOrderCommand(
//	    kernel.NewUUID().String(),
//	    []RecordedLineItem{{Item: "Latte", Price: decimal.RequireFromString("4.50"), PreparedBy: "Alice"}},
//	    order.Mobile,
//	    order.Store1,
//	    nil,
//	    placedAt,
//	    completedAt,
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewRecordOrderCommandHandler(uowFactory)
//	recorded, err := handler.Handle(ctx, cmd)
type RecordOrderCommand struct { //nolint:recvcheck //using for validation
	orderID                 string
	lineItems               []RecordedLineItem
	orderSource             order.OrderSource
	locationID              order.StoreLocation
	customerLoyaltyID       *string
	orderPlacedTimestamp    time.Time
	orderCompletedTimestamp time.Time

	guard guard.ConstructorGuard
}

// NewRecordOrderCommand creates a command to record a completed order.
// Validates that the id is present, line items are supplied with non-empty names,
// both enumerations are known and both timestamps are set.
// Returns every validation failure joined.
func NewRecordOrderCommand(
	orderID string,
	lineItems []RecordedLineItem,
	orderSource order.OrderSource,
	locationID order.StoreLocation,
	customerLoyaltyID *string,
	orderPlacedTimestamp time.Time,
	orderCompletedTimestamp time.Time,
) (RecordOrderCommand, error) {
	cmd := RecordOrderCommand{
		customerLoyaltyID: customerLoyaltyID,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setLineItems(lineItems),
		cmd.setOrderSource(orderSource),
		cmd.setLocationID(locationID),
		cmd.setOrderPlacedTimestamp(orderPlacedTimestamp),
		cmd.setOrderCompletedTimestamp(orderCompletedTimestamp),
	); err != nil {
		return RecordOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRecordOrderCommandIsNotConstructed if validation fails.
func (c RecordOrderCommand) Validate() error {
	return c.guard.Validate(ErrRecordOrderCommandIsNotConstructed)
}

func (c RecordOrderCommand) OrderID() string {
	return c.orderID
}

// LineItems returns a copy of the recorded line items.
func (c RecordOrderCommand) LineItems() []RecordedLineItem {
	items := make([]RecordedLineItem, len(c.lineItems))
	copy(items, c.lineItems)
	return items
}

func (c RecordOrderCommand) OrderSource() order.OrderSource {
	return c.orderSource
}

func (c RecordOrderCommand) LocationID() order.StoreLocation {
	return c.locationID
}

func (c RecordOrderCommand) CustomerLoyaltyID() *string {
	return c.customerLoyaltyID
}

func (c RecordOrderCommand) OrderPlacedTimestamp() time.Time {
	return c.orderPlacedTimestamp
}

func (c RecordOrderCommand) OrderCompletedTimestamp() time.Time {
	return c.orderCompletedTimestamp
}

func (c *RecordOrderCommand) setOrderID(orderID string) error {
	if strings.TrimSpace(orderID) == "" {
		return errs.NewValueIsRequiredError("orderID")
	}

	c.orderID = orderID
	return nil
}

func (c *RecordOrderCommand) setLineItems(lineItems []RecordedLineItem) error {
	if lineItems == nil {
		return errs.NewValueIsRequiredError("lineItems")
	}

	var err error
	for i, item := range lineItems {
		if strings.TrimSpace(item.Item) == "" {
			err = errors.Join(err, errs.NewValueIsRequiredError(fmt.Sprintf("lineItems[%d].item", i)))
		}
	}
	if err != nil {
		return err
	}

	c.lineItems = make([]RecordedLineItem, len(lineItems))
	copy(c.lineItems, lineItems)
	return nil
}

func (c *RecordOrderCommand) setOrderSource(orderSource order.OrderSource) error {
	if err := orderSource.Validate(); err != nil {
		return err
	}

	c.orderSource = orderSource
	return nil
}

func (c *RecordOrderCommand) setLocationID(locationID order.StoreLocation) error {
	if err := locationID.Validate(); err != nil {
		return err
	}

	c.locationID = locationID
	return nil
}

func (c *RecordOrderCommand) setOrderPlacedTimestamp(t time.Time) error {
	if t.IsZero() {
		return errs.NewValueIsRequiredError("orderPlacedTimestamp")
	}

	c.orderPlacedTimestamp = t
	return nil
}

func (c *RecordOrderCommand) setOrderCompletedTimestamp(t time.Time) error {
	if t.IsZero() {
		return errs.NewValueIsRequiredError("orderCompletedTimestamp")
	}

	c.orderCompletedTimestamp = t
	return nil
}
