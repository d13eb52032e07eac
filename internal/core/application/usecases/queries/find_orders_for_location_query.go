package queries

import (
	"errors"
	"time"

	"homeoffice/internal/core/domain/model/kernel"
	"homeoffice/internal/core/domain/model/order"
	"homeoffice/internal/pkg/guard"
)

var (
	ErrFindOrdersForLocationQueryIsNotConstructed = errors.New(
		"FindOrdersForLocationQuery must be created via NewFindOrdersForLocationQuery constructor",
	)
)

// FindOrdersForLocationQuery selects the orders of one store placed within a closed
// time window.
type FindOrdersForLocationQuery struct {
	location order.StoreLocation
	window   kernel.TimeWindow

	guard guard.ConstructorGuard
}

// NewFindOrdersForLocationQuery creates a location-scoped range query.
// Both bounds are required and location must be a known store.
func NewFindOrdersForLocationQuery(location order.StoreLocation, start, end time.Time) (FindOrdersForLocationQuery, error) {
	if err := errors.Join(location.Validate(), validateBounds(start, end)); err != nil {
		return FindOrdersForLocationQuery{}, err
	}

	return FindOrdersForLocationQuery{
		location: location,
		window:   kernel.NewTimeWindow(start, end),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrFindOrdersForLocationQueryIsNotConstructed if validation fails.
func (q FindOrdersForLocationQuery) Validate() error {
	return q.guard.Validate(ErrFindOrdersForLocationQueryIsNotConstructed)
}

func (q FindOrdersForLocationQuery) Location() order.StoreLocation {
	return q.location
}

func (q FindOrdersForLocationQuery) Window() kernel.TimeWindow {
	return q.window
}
