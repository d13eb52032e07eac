// Package observability decorates the order storage ports with OpenTelemetry spans
// and query metrics. It is independent of the storage backend it wraps.
package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	queryDurationMetric = "order_store_query_duration_seconds"
	queryErrorsMetric   = "order_store_query_errors_total"
)

// Metrics holds the storage instruments shared by every decorated repository.
type Metrics struct {
	queryDuration metric.Float64Histogram
	queryErrors   metric.Int64Counter
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error
	m.queryDuration, err = meter.Float64Histogram(
		queryDurationMetric,
		metric.WithDescription("Order storage query duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s histogram: %w", queryDurationMetric, err)
	}

	m.queryErrors, err = meter.Int64Counter(
		queryErrorsMetric,
		metric.WithDescription("Order storage queries that returned an error"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s counter: %w", queryErrorsMetric, err)
	}

	return m, nil
}

func (m *Metrics) RecordQuery(ctx context.Context, operation string, durationSeconds float64, err error) {
	attrs := metric.WithAttributes(attribute.String("operation", operation))

	m.queryDuration.Record(ctx, durationSeconds, attrs)
	if err != nil {
		m.queryErrors.Add(ctx, 1, attrs)
	}
}
