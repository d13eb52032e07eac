package rediscache

import (
	"context"

	"homeoffice/internal/core/ports"
)

// UnitOfWorkFactory wraps another factory so that every successful commit retires
// the cached ranges of repo. Reads inside a transaction bypass the cache.
type UnitOfWorkFactory struct {
	next ports.UnitOfWorkFactory
	repo *OrderRepository
}

func NewUnitOfWorkFactory(next ports.UnitOfWorkFactory, repo *OrderRepository) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{next: next, repo: repo}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &unitOfWork{UnitOfWork: f.next.Create(), repo: f.repo}
}

type unitOfWork struct {
	ports.UnitOfWork
	repo *OrderRepository
}

func (uow *unitOfWork) Commit(ctx context.Context) error {
	if err := uow.UnitOfWork.Commit(ctx); err != nil {
		return err
	}

	uow.repo.Invalidate(ctx)
	return nil
}
