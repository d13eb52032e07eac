package queries

import (
	"errors"
	"time"

	"homeoffice/internal/core/domain/model/kernel"
	"homeoffice/internal/core/domain/model/order"
	"homeoffice/internal/pkg/guard"
)

var (
	ErrGetSalesSummaryQueryIsNotConstructed = errors.New(
		"GetSalesSummaryQuery must be created via NewGetSalesSummaryQuery constructor",
	)
)

// GetSalesSummaryQuery requests revenue figures for a closed time window, either for
// every store or for a single one.
//
// Example:
//
//	store := order.Store2
//	query, err := NewGetSalesSummaryQuery(dayStart, dayEnd, &store)
//	if err != nil {
//	    return err
//	}
//	summary, err := handler.Handle(ctx, query)
//	fmt.Printf("%s: %d orders, %s revenue\n", store, summary.OrderCount, summary.Revenue)
type GetSalesSummaryQuery struct {
	window   kernel.TimeWindow
	location *order.StoreLocation

	guard guard.ConstructorGuard
}

// NewGetSalesSummaryQuery creates a summary query. A nil location covers every store.
func NewGetSalesSummaryQuery(start, end time.Time, location *order.StoreLocation) (GetSalesSummaryQuery, error) {
	err := validateBounds(start, end)
	if location != nil {
		err = errors.Join(err, location.Validate())
	}
	if err != nil {
		return GetSalesSummaryQuery{}, err
	}

	q := GetSalesSummaryQuery{
		window: kernel.NewTimeWindow(start, end),
		guard:  guard.NewConstructorGuard(),
	}
	if location != nil {
		l := *location
		q.location = &l
	}
	return q, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetSalesSummaryQueryIsNotConstructed if validation fails.
func (q GetSalesSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetSalesSummaryQueryIsNotConstructed)
}

func (q GetSalesSummaryQuery) Window() kernel.TimeWindow {
	return q.window
}

// Location returns the store filter, or false when the summary covers every store.
func (q GetSalesSummaryQuery) Location() (order.StoreLocation, bool) {
	if q.location == nil {
		return order.StoreLocationUnknown, false
	}
	return *q.location, true
}
