package queries

import (
	"context"
	"log/slog"

	"homeoffice/internal/core/domain/model/order"
	"homeoffice/internal/core/ports"
)

// FindOrdersBetweenQueryHandler runs closed-interval range queries on placement time.
//
// Example:
//
//	handler := NewFindOrdersBetweenQueryHandler(repo, logger)
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to load orders: %w", err)
//	}
type FindOrdersBetweenQueryHandler struct {
	repo   ports.OrderRepository
	logger *slog.Logger
}

func NewFindOrdersBetweenQueryHandler(repo ports.OrderRepository, logger *slog.Logger) FindOrdersBetweenQueryHandler {
	return FindOrdersBetweenQueryHandler{
		repo:   repo,
		logger: logger.With("component", "find_orders_between"),
	}
}

// Handle returns the orders placed within the query window, an empty slice when the
// window is empty. Storage errors are returned unchanged.
func (h FindOrdersBetweenQueryHandler) Handle(ctx context.Context, query FindOrdersBetweenQuery) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	window := query.Window()
	h.logger.DebugContext(ctx, "finding orders", "window", window.String())

	if window.IsEmpty() {
		return []*order.Order{}, nil
	}

	return h.repo.FindBetween(ctx, window.Start(), window.End())
}
