package memory

import (
	"context"
	"time"

	"homeoffice/internal/core/domain/model/order"
	"homeoffice/internal/pkg/errs"
)

// Repository implements ports.OrderRepository on a Store. When bound to an active
// UnitOfWork, writes are staged until Commit and reads see staged orders too.
type Repository struct {
	store *Store
	uow   *UnitOfWork
}

// NewRepository constructs a repository that writes straight through to store.
func NewRepository(store *Store) *Repository {
	return &Repository{store: store}
}

// Add stores a copy of the order.
func (r *Repository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	stored, err := clone(aggregate)
	if err != nil {
		return err
	}

	if r.uow != nil && r.uow.active() {
		return r.uow.stage(stored)
	}
	return r.store.insert(stored)
}

// Get retrieves a copy of the order with the given id.
func (r *Repository) Get(_ context.Context, id string) (*order.Order, error) {
	if r.uow != nil {
		if o, ok := r.uow.staged(id); ok {
			return clone(o)
		}
	}

	o, ok := r.store.get(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return clone(o)
}

// FindBetween returns copies of every order placed within [start, end].
func (r *Repository) FindBetween(_ context.Context, start, end time.Time) ([]*order.Order, error) {
	return r.find(placedWithin(start, end, nil))
}

// FindBetweenForLocation returns copies of every order placed within [start, end] at location.
func (r *Repository) FindBetweenForLocation(
	_ context.Context,
	location order.StoreLocation,
	start, end time.Time,
) ([]*order.Order, error) {
	return r.find(placedWithin(start, end, &location))
}

func (r *Repository) find(match func(*order.Order) bool) ([]*order.Order, error) {
	found := r.store.find(match)
	if r.uow != nil {
		found = append(found, r.uow.stagedMatching(match)...)
	}

	sortByPlacement(found)
	return cloneAll(found)
}
