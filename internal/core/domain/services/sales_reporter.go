package services

import (
	"homeoffice/internal/core/domain/model/kernel"
	"homeoffice/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// SalesFigure is a count and the revenue attached to it.
type SalesFigure struct {
	Count   int
	Revenue decimal.Decimal
}

func (f SalesFigure) add(count int, revenue decimal.Decimal) SalesFigure {
	return SalesFigure{Count: f.Count + count, Revenue: f.Revenue.Add(revenue)}
}

// SalesSummary aggregates the orders placed inside Window.
//
// Order-level breakdowns (ByLocation, BySource) count orders and sum order totals.
// Line-level breakdowns (ByItem, ByBarista) count line items and sum their prices.
// Because an order's total is fixed at construction, the two can diverge for orders
// whose line items were changed afterwards.
type SalesSummary struct {
	Window     kernel.TimeWindow
	OrderCount int
	Revenue    decimal.Decimal
	ByLocation map[order.StoreLocation]SalesFigure
	BySource   map[order.OrderSource]SalesFigure
	ByItem     map[string]SalesFigure
	ByBarista  map[string]SalesFigure
}

// AverageTicket returns revenue per order rounded to cents, zero for an empty summary.
func (s SalesSummary) AverageTicket() decimal.Decimal {
	if s.OrderCount == 0 {
		return decimal.Zero
	}
	return s.Revenue.DivRound(decimal.NewFromInt(int64(s.OrderCount)), 2)
}

// SalesReporter builds sales summaries.
//
// Example:
//
//	orders, err := repo.FindBetween(ctx, from, to)
//	if err != nil {
//	    return err
//	}
//	summary, err := services.NewSalesReporter().Summarize(kernel.NewTimeWindow(from, to), orders)
type SalesReporter struct{}

// NewSalesReporter creates a SalesReporter.
func NewSalesReporter() SalesReporter {
	return SalesReporter{}
}

// Summarize folds orders into a summary for window. The orders are taken as given;
// the reporter does not filter them by window. Items without a barista are grouped
// under the empty string.
//
// Returns an error if any order was not built through its constructor.
func (r SalesReporter) Summarize(window kernel.TimeWindow, orders []*order.Order) (SalesSummary, error) {
	summary := SalesSummary{
		Window:     window,
		Revenue:    decimal.Zero,
		ByLocation: make(map[order.StoreLocation]SalesFigure),
		BySource:   make(map[order.OrderSource]SalesFigure),
		ByItem:     make(map[string]SalesFigure),
		ByBarista:  make(map[string]SalesFigure),
	}

	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return SalesSummary{}, err
		}

		summary.OrderCount++
		summary.Revenue = summary.Revenue.Add(o.Total())
		summary.ByLocation[o.LocationID()] = summary.ByLocation[o.LocationID()].add(1, o.Total())
		summary.BySource[o.OrderSource()] = summary.BySource[o.OrderSource()].add(1, o.Total())

		for _, item := range o.LineItems() {
			summary.ByItem[item.Item()] = summary.ByItem[item.Item()].add(1, item.Price())
			summary.ByBarista[item.PreparedBy()] = summary.ByBarista[item.PreparedBy()].add(1, item.Price())
		}
	}

	return summary, nil
}
