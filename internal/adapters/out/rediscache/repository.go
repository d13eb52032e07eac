package rediscache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"homeoffice/internal/core/domain/model/order"
	"homeoffice/internal/core/ports"
)

const (
	opOrder      = "order"
	opRange      = "range"
	opGeneration = "generation"
)

// OrderRepository is a read-through cache in front of another ports.OrderRepository.
// Cache failures are logged and the call falls through to the wrapped repository;
// a broken cache never fails a request that storage can serve.
type OrderRepository struct {
	next   ports.OrderRepository
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
}

// NewOrderRepository wraps next. Entries expire after ttl.
func NewOrderRepository(next ports.OrderRepository, cache Cache, ttl time.Duration, logger *slog.Logger) *OrderRepository {
	return &OrderRepository{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger.With("component", "order_cache"),
	}
}

// Add writes through and retires every cached range.
func (r *OrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := r.next.Add(ctx, aggregate); err != nil {
		return err
	}

	r.Invalidate(ctx)
	return nil
}

// Get serves a single order from cache, loading and storing it on a miss.
func (r *OrderRepository) Get(ctx context.Context, id string) (*order.Order, error) {
	key := r.cache.GenerateKey(opOrder, id)

	if raw := r.lookup(ctx, key); raw != "" {
		var s orderSnapshot
		if err := json.Unmarshal([]byte(raw), &s); err == nil {
			if o, err := s.toDomain(); err == nil {
				return o, nil
			}
		}
		r.logger.WarnContext(ctx, "discarding undecodable cache entry", "key", key)
	}

	o, err := r.next.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(toSnapshot(o)); err == nil {
		r.store(ctx, key, string(raw))
	}
	return o, nil
}

func (r *OrderRepository) FindBetween(ctx context.Context, start, end time.Time) ([]*order.Order, error) {
	key := r.rangeKey(ctx, fmt.Sprintf("all:%s:%s", windowBound(start), windowBound(end)))
	return r.findCached(ctx, key, func() ([]*order.Order, error) {
		return r.next.FindBetween(ctx, start, end)
	})
}

func (r *OrderRepository) FindBetweenForLocation(
	ctx context.Context,
	location order.StoreLocation,
	start, end time.Time,
) ([]*order.Order, error) {
	key := r.rangeKey(ctx, fmt.Sprintf("%s:%s:%s", location, windowBound(start), windowBound(end)))
	return r.findCached(ctx, key, func() ([]*order.Order, error) {
		return r.next.FindBetweenForLocation(ctx, location, start, end)
	})
}

// Invalidate retires every cached range result.
func (r *OrderRepository) Invalidate(ctx context.Context) {
	if _, err := r.cache.Incr(ctx, r.cache.GenerateKey(opGeneration, "orders")); err != nil {
		r.logger.WarnContext(ctx, "failed to bump cache generation", "error", err)
	}
}

func (r *OrderRepository) findCached(
	ctx context.Context,
	key string,
	load func() ([]*order.Order, error),
) ([]*order.Order, error) {
	if raw := r.lookup(ctx, key); raw != "" {
		if orders, err := decodeOrders(raw); err == nil {
			return orders, nil
		}
		r.logger.WarnContext(ctx, "discarding undecodable cache entry", "key", key)
	}

	orders, err := load()
	if err != nil {
		return nil, err
	}

	if raw, err := encodeOrders(orders); err == nil {
		r.store(ctx, key, raw)
	}
	return orders, nil
}

// rangeKey prefixes a range key with the current generation.
func (r *OrderRepository) rangeKey(ctx context.Context, suffix string) string {
	generation := r.lookup(ctx, r.cache.GenerateKey(opGeneration, "orders"))
	if generation == "" {
		generation = "0"
	}
	return r.cache.GenerateKey(opRange, "g"+generation+":"+suffix)
}

func (r *OrderRepository) lookup(ctx context.Context, key string) string {
	raw, err := r.cache.Get(ctx, key)
	if err != nil {
		r.logger.WarnContext(ctx, "cache read failed", "key", key, "error", err)
		return ""
	}
	if raw == "" {
		r.logger.DebugContext(ctx, "cache miss", "key", key)
	}
	return raw
}

func (r *OrderRepository) store(ctx context.Context, key, raw string) {
	if err := r.cache.Set(ctx, key, raw, r.ttl); err != nil {
		r.logger.WarnContext(ctx, "cache write failed", "key", key, "error", err)
	}
}

// windowBound renders a query bound for a cache key. Every representable instant
// maps to a distinct string.
func windowBound(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
