package queries

import (
	"context"
	"log/slog"

	"homeoffice/internal/core/domain/model/order"
	"homeoffice/internal/core/ports"
)

// FindOrdersForLocationQueryHandler runs location-scoped range queries.
type FindOrdersForLocationQueryHandler struct {
	repo   ports.OrderRepository
	logger *slog.Logger
}

func NewFindOrdersForLocationQueryHandler(
	repo ports.OrderRepository,
	logger *slog.Logger,
) FindOrdersForLocationQueryHandler {
	return FindOrdersForLocationQueryHandler{
		repo:   repo,
		logger: logger.With("component", "find_orders_for_location"),
	}
}

// Handle returns the orders placed at the query location within its window.
func (h FindOrdersForLocationQueryHandler) Handle(
	ctx context.Context,
	query FindOrdersForLocationQuery,
) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	window := query.Window()
	h.logger.DebugContext(ctx, "finding orders",
		"location", query.Location().String(),
		"window", window.String(),
	)

	if window.IsEmpty() {
		return []*order.Order{}, nil
	}

	return h.repo.FindBetweenForLocation(ctx, query.Location(), window.Start(), window.End())
}
