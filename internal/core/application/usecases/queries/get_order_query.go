package queries

import (
	"errors"
	"strings"

	"homeoffice/internal/pkg/errs"
	"homeoffice/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves a single recorded order by id.
//
// Example:
//
//	query, err := NewGetOrderQuery("9f0c2a4e-5d1b-4c55-8e0f-0a4b5b7f6c11")
//	if err != nil {
//	    return err
//	}
//	o, err := NewGetOrderQueryHandler(repo).Handle(ctx, query)
type GetOrderQuery struct {
	orderID string

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for the order with the given id.
func NewGetOrderQuery(orderID string) (GetOrderQuery, error) {
	if strings.TrimSpace(orderID) == "" {
		return GetOrderQuery{}, errs.NewValueIsRequiredError("orderID")
	}

	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() string {
	return q.orderID
}
