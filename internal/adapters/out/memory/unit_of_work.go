package memory

import (
	"context"
	"sync"

	"homeoffice/internal/core/domain/model/order"
	"homeoffice/internal/core/ports"
	"homeoffice/internal/pkg/errs"
)

// UnitOfWorkFactory creates UnitOfWork instances sharing one Store.
type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork stages added orders between Begin and Commit and applies them to the
// store atomically. Nested Begin calls are absorbed like the SQL implementations do.
type UnitOfWork struct {
	store *Store

	mu      sync.Mutex
	begun   bool
	pending []*order.Order
}

func (uow *UnitOfWork) Begin(_ context.Context) error {
	uow.mu.Lock()
	defer uow.mu.Unlock()

	uow.begun = true
	return nil
}

// Commit publishes every staged order or, on a duplicate id, none of them.
func (uow *UnitOfWork) Commit(_ context.Context) error {
	uow.mu.Lock()
	defer uow.mu.Unlock()

	if !uow.begun {
		return ErrNoActiveTransaction
	}

	err := uow.store.insert(uow.pending...)
	uow.begun = false
	uow.pending = nil
	return err
}

func (uow *UnitOfWork) Rollback(_ context.Context) error {
	uow.mu.Lock()
	defer uow.mu.Unlock()

	if !uow.begun {
		return ErrNoActiveTransaction
	}

	uow.begun = false
	uow.pending = nil
	return nil
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &Repository{store: uow.store, uow: uow}
}

func (uow *UnitOfWork) active() bool {
	uow.mu.Lock()
	defer uow.mu.Unlock()

	return uow.begun
}

func (uow *UnitOfWork) stage(o *order.Order) error {
	uow.mu.Lock()
	defer uow.mu.Unlock()

	if _, ok := uow.store.get(o.ID()); ok {
		return errs.NewObjectAlreadyExistsError("order", o.ID())
	}
	for _, p := range uow.pending {
		if p.ID() == o.ID() {
			return errs.NewObjectAlreadyExistsError("order", o.ID())
		}
	}

	uow.pending = append(uow.pending, o)
	return nil
}

func (uow *UnitOfWork) staged(id string) (*order.Order, bool) {
	uow.mu.Lock()
	defer uow.mu.Unlock()

	for _, p := range uow.pending {
		if p.ID() == id {
			return p, true
		}
	}
	return nil, false
}

func (uow *UnitOfWork) stagedMatching(match func(*order.Order) bool) []*order.Order {
	uow.mu.Lock()
	defer uow.mu.Unlock()

	result := make([]*order.Order, 0)
	for _, p := range uow.pending {
		if match(p) {
			result = append(result, p)
		}
	}
	return result
}
