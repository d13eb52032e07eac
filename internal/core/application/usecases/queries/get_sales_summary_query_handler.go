package queries

import (
	"context"
	"log/slog"

	"homeoffice/internal/core/domain/model/order"
	"homeoffice/internal/core/domain/services"
	"homeoffice/internal/core/ports"
)

// GetSalesSummaryQueryHandler loads the orders of a window and folds them into a
// services.SalesSummary.
//
// Example:
//
//	handler := NewGetSalesSummaryQueryHandler(repo, services.NewSalesReporter(), logger)
//	summary, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to build sales summary: %w", err)
//	}
type GetSalesSummaryQueryHandler struct {
	repo     ports.OrderRepository
	reporter services.SalesReporter
	logger   *slog.Logger
}

func NewGetSalesSummaryQueryHandler(
	repo ports.OrderRepository,
	reporter services.SalesReporter,
	logger *slog.Logger,
) GetSalesSummaryQueryHandler {
	return GetSalesSummaryQueryHandler{
		repo:     repo,
		reporter: reporter,
		logger:   logger.With("component", "sales_summary"),
	}
}

// Handle returns the summary of the query window. An empty window yields an empty summary.
func (h GetSalesSummaryQueryHandler) Handle(ctx context.Context, query GetSalesSummaryQuery) (services.SalesSummary, error) {
	if err := query.Validate(); err != nil {
		return services.SalesSummary{}, err
	}

	window := query.Window()
	orders := []*order.Order{}

	if !window.IsEmpty() {
		var err error
		if location, ok := query.Location(); ok {
			orders, err = h.repo.FindBetweenForLocation(ctx, location, window.Start(), window.End())
		} else {
			orders, err = h.repo.FindBetween(ctx, window.Start(), window.End())
		}
		if err != nil {
			return services.SalesSummary{}, err
		}
	}

	summary, err := h.reporter.Summarize(window, orders)
	if err != nil {
		return services.SalesSummary{}, err
	}

	h.logger.DebugContext(ctx, "sales summary built",
		"window", window.String(),
		"orders", summary.OrderCount,
		"revenue", summary.Revenue.String(),
	)

	return summary, nil
}
