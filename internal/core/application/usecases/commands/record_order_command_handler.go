package commands

import (
	"context"

	"homeoffice/internal/core/domain/model/order"
)

// RecordOrderCommandHandler stores completed orders.
//
// Example:
//
//	handler := NewRecordOrderCommandHandler(uowFactory)
//	recorded, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order recording failed: %w", err)
//	}
//	fmt.Printf("Order %s recorded with total %s", recorded.ID(), recorded.Total())
type RecordOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRecordOrderCommandHandler creates a handler for order recording.
// Requires an OrderUoWFactory for transactional persistence.
func NewRecordOrderCommandHandler(uowFactory OrderUoWFactory) RecordOrderCommandHandler {
	return RecordOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle builds the Order aggregate from the command, deriving its total, and persists
// it inside a transaction. Nothing is stored when any step fails.
func (h *RecordOrderCommandHandler) Handle(ctx context.Context, cmd RecordOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	lineItems := make([]*order.LineItem, 0, len(cmd.LineItems()))
	for _, item := range cmd.LineItems() {
		lineItems = append(lineItems, order.NewLineItem(item.Item, item.Price, item.PreparedBy, nil))
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		lineItems,
		cmd.OrderSource(),
		cmd.LocationID(),
		cmd.CustomerLoyaltyID(),
		cmd.OrderPlacedTimestamp(),
		cmd.OrderCompletedTimestamp(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
