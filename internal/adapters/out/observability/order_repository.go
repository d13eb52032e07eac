package observability

import (
	"context"
	"time"

	"homeoffice/internal/core/domain/model/order"
	"homeoffice/internal/core/ports"
	"homeoffice/internal/pkg/telemetry"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const timeAttributeLayout = time.RFC3339Nano

// OrderRepository traces and times every call to the wrapped repository.
// Results and errors pass through untouched.
type OrderRepository struct {
	next    ports.OrderRepository
	metrics *Metrics
}

func NewOrderRepository(next ports.OrderRepository, metrics *Metrics) *OrderRepository {
	return &OrderRepository{next: next, metrics: metrics}
}

func (r *OrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.Add")
	defer span.End()

	if aggregate != nil {
		telemetry.AddSpanAttributes(span,
			attribute.String("order.id", aggregate.ID()),
			attribute.String("order.location", aggregate.LocationID().String()),
			attribute.Int("order.line_items", len(aggregate.LineItems())),
		)
	}

	start := time.Now()
	err := r.next.Add(ctx, aggregate)
	r.finish(ctx, span, "add_order", start, err)

	return err
}

func (r *OrderRepository) Get(ctx context.Context, id string) (*order.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.Get")
	defer span.End()

	telemetry.AddSpanAttributes(span, attribute.String("order.id", id))

	start := time.Now()
	o, err := r.next.Get(ctx, id)
	r.finish(ctx, span, "get_order", start, err)

	return o, err
}

func (r *OrderRepository) FindBetween(ctx context.Context, start, end time.Time) ([]*order.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.FindBetween")
	defer span.End()

	telemetry.AddSpanAttributes(span, windowAttributes(start, end)...)

	began := time.Now()
	orders, err := r.next.FindBetween(ctx, start, end)
	if err == nil {
		telemetry.AddSpanAttributes(span, attribute.Int("result.count", len(orders)))
	}
	r.finish(ctx, span, "find_orders_between", began, err)

	return orders, err
}

func (r *OrderRepository) FindBetweenForLocation(
	ctx context.Context,
	location order.StoreLocation,
	start, end time.Time,
) ([]*order.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.FindBetweenForLocation")
	defer span.End()

	telemetry.AddSpanAttributes(span, append(
		windowAttributes(start, end),
		attribute.String("order.location", location.String()),
	)...)

	began := time.Now()
	orders, err := r.next.FindBetweenForLocation(ctx, location, start, end)
	if err == nil {
		telemetry.AddSpanAttributes(span, attribute.Int("result.count", len(orders)))
	}
	r.finish(ctx, span, "find_orders_for_location", began, err)

	return orders, err
}

func (r *OrderRepository) finish(ctx context.Context, span trace.Span, operation string, start time.Time, err error) {
	r.metrics.RecordQuery(ctx, operation, time.Since(start).Seconds(), err)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return
	}
	telemetry.SetSpanSuccess(span)
}

func windowAttributes(start, end time.Time) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("window.start", start.UTC().Format(timeAttributeLayout)),
		attribute.String("window.end", end.UTC().Format(timeAttributeLayout)),
	}
}
