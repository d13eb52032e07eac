// Package ports defines the storage contracts of the order domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"homeoffice/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are recorded once and never updated, so the contract has no Update.
//
// Range queries select on orderPlacedTimestamp using a closed interval: an order placed
// exactly at start or exactly at end is included. A window whose start is after its end
// matches nothing and is not an error. Results are not paginated and their ordering is
// unspecified; implementations in this module return them by placement time, then id.
//
// Storage failures are returned unchanged.
type OrderRepository interface {
	// Add persists a new order aggregate with its line items.
	// Returns an errs.ObjectAlreadyExistsError when an order with the same id exists.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its identifier.
	// Returns an errs.ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id string) (*order.Order, error)

	// FindBetween returns every order placed within [start, end].
	//
	// Example:
	//   orders, err := repo.FindBetween(ctx, openAt, closeAt)
	//   if err != nil {
	//       return fmt.Errorf("failed to load the day's orders: %w", err)
	//   }
	FindBetween(ctx context.Context, start, end time.Time) ([]*order.Order, error)

	// FindBetweenForLocation returns every order placed within [start, end] at location.
	FindBetweenForLocation(
		ctx context.Context,
		location order.StoreLocation,
		start, end time.Time,
	) ([]*order.Order, error)
}
