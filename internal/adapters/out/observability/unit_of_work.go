package observability

import (
	"context"

	"homeoffice/internal/core/ports"
	"homeoffice/internal/pkg/telemetry"
)

// UnitOfWorkFactory traces transaction boundaries and hands out decorated repositories.
type UnitOfWorkFactory struct {
	next    ports.UnitOfWorkFactory
	metrics *Metrics
}

func NewUnitOfWorkFactory(next ports.UnitOfWorkFactory, metrics *Metrics) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{next: next, metrics: metrics}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &unitOfWork{next: f.next.Create(), metrics: f.metrics}
}

type unitOfWork struct {
	next    ports.UnitOfWork
	metrics *Metrics
}

func (uow *unitOfWork) Begin(ctx context.Context) error {
	return uow.traced(ctx, "UnitOfWork.Begin", uow.next.Begin)
}

func (uow *unitOfWork) Commit(ctx context.Context) error {
	return uow.traced(ctx, "UnitOfWork.Commit", uow.next.Commit)
}

// Rollback is not traced: it runs deferred after every commit and fails there by contract.
func (uow *unitOfWork) Rollback(ctx context.Context) error {
	return uow.next.Rollback(ctx)
}

func (uow *unitOfWork) OrderRepository() ports.OrderRepository {
	return NewOrderRepository(uow.next.OrderRepository(), uow.metrics)
}

func (uow *unitOfWork) traced(ctx context.Context, name string, call func(context.Context) error) error {
	ctx, span := telemetry.StartSpan(ctx, name)
	defer span.End()

	if err := call(ctx); err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}
