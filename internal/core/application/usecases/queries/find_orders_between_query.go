package queries

import (
	"errors"
	"time"

	"homeoffice/internal/core/domain/model/kernel"
	"homeoffice/internal/pkg/errs"
	"homeoffice/internal/pkg/guard"
)

var (
	ErrFindOrdersBetweenQueryIsNotConstructed = errors.New(
		"FindOrdersBetweenQuery must be created via NewFindOrdersBetweenQuery constructor",
	)
)

// FindOrdersBetweenQuery selects every order placed within a closed time window.
// A window whose start is after its end is valid and selects nothing.
//
// Example:
//
//	query, err := NewFindOrdersBetweenQuery(openAt, closeAt)
//	if err != nil {
//	    return err
//	}
//	orders, err := handler.Handle(ctx, query)
//	fmt.Printf("%d orders between %s and %s\n", len(orders), openAt, closeAt)
type FindOrdersBetweenQuery struct {
	window kernel.TimeWindow

	guard guard.ConstructorGuard
}

// NewFindOrdersBetweenQuery creates a range query. Both bounds are required.
func NewFindOrdersBetweenQuery(start, end time.Time) (FindOrdersBetweenQuery, error) {
	if err := validateBounds(start, end); err != nil {
		return FindOrdersBetweenQuery{}, err
	}

	return FindOrdersBetweenQuery{
		window: kernel.NewTimeWindow(start, end),
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrFindOrdersBetweenQueryIsNotConstructed if validation fails.
func (q FindOrdersBetweenQuery) Validate() error {
	return q.guard.Validate(ErrFindOrdersBetweenQueryIsNotConstructed)
}

func (q FindOrdersBetweenQuery) Window() kernel.TimeWindow {
	return q.window
}

func validateBounds(start, end time.Time) error {
	var err error
	if start.IsZero() {
		err = errors.Join(err, errs.NewValueIsRequiredError("start"))
	}
	if end.IsZero() {
		err = errors.Join(err, errs.NewValueIsRequiredError("end"))
	}
	return err
}
