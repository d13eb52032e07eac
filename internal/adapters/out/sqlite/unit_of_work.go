package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"homeoffice/internal/core/ports"
)

var errNoActiveTransaction = errors.New("no active transaction")

// UnitOfWorkFactory creates UnitOfWork instances over one database handle.
type UnitOfWorkFactory struct {
	db *sql.DB
}

func NewUnitOfWorkFactory(db *sql.DB) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{db: db}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{db: f.db}
}

// UnitOfWork wraps a database/sql transaction. Repositories obtained before Begin
// run outside of it.
type UnitOfWork struct {
	db *sql.DB
	tx *sql.Tx
}

// Begin starts a transaction; a second call while one is active is a no-op.
func (uow *UnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx, err := uow.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	uow.tx = tx
	return nil
}

func (uow *UnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return errNoActiveTransaction
	}

	err := uow.tx.Commit()
	uow.tx = nil
	return err
}

func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return errNoActiveTransaction
	}

	err := uow.tx.Rollback()
	uow.tx = nil
	return err
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	if uow.tx != nil {
		return &Repository{q: uow.tx}
	}
	return NewRepository(uow.db)
}
