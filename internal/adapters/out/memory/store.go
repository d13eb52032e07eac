// Package memory provides an in-process implementation of the order storage ports,
// useful for local development and tests.
//
// Orders are deep-copied on the way in and on the way out, so callers can never
// mutate stored state through a returned aggregate.
package memory

import (
	"errors"
	"sort"
	"sync"
	"time"

	"homeoffice/internal/core/domain/model/kernel"
	"homeoffice/internal/core/domain/model/order"
	"homeoffice/internal/pkg/errs"
)

var (
	// ErrNoActiveTransaction is returned by Commit and Rollback outside of Begin.
	ErrNoActiveTransaction = errors.New("no active transaction")
)

// Store is the shared, concurrency-safe order table.
type Store struct {
	mu     sync.RWMutex
	orders map[string]*order.Order
}

// NewStore constructs an empty store.
func NewStore() *Store {
	return &Store{orders: make(map[string]*order.Order)}
}

// insert stores every order of batch or none of them.
func (s *Store) insert(batch ...*order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(batch))
	for _, o := range batch {
		if _, ok := s.orders[o.ID()]; ok {
			return errs.NewObjectAlreadyExistsError("order", o.ID())
		}
		if _, ok := seen[o.ID()]; ok {
			return errs.NewObjectAlreadyExistsError("order", o.ID())
		}
		seen[o.ID()] = struct{}{}
	}

	for _, o := range batch {
		s.orders[o.ID()] = o
	}
	return nil
}

func (s *Store) get(id string) (*order.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	return o, ok
}

func (s *Store) find(match func(*order.Order) bool) []*order.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*order.Order, 0)
	for _, o := range s.orders {
		if match(o) {
			result = append(result, o)
		}
	}
	return result
}

// placedWithin matches orders placed in the closed interval [start, end], optionally
// restricted to one location.
func placedWithin(start, end time.Time, location *order.StoreLocation) func(*order.Order) bool {
	window := kernel.NewTimeWindow(start, end)
	return func(o *order.Order) bool {
		if !window.Contains(o.OrderPlacedTimestamp()) {
			return false
		}
		return location == nil || o.LocationID() == *location
	}
}

// sortByPlacement orders results by placement time, then id.
func sortByPlacement(orders []*order.Order) {
	sort.Slice(orders, func(i, j int) bool {
		a, b := orders[i].OrderPlacedTimestamp(), orders[j].OrderPlacedTimestamp()
		if !a.Equal(b) {
			return a.Before(b)
		}
		return orders[i].ID() < orders[j].ID()
	})
}

// clone rebuilds an order and its line items so the copy shares no mutable state.
func clone(o *order.Order) (*order.Order, error) {
	items := make([]*order.LineItem, 0, len(o.LineItems()))
	for _, item := range o.LineItems() {
		items = append(items, order.NewLineItem(item.Item(), item.Price(), item.PreparedBy(), nil))
	}

	return order.RestoreOrder(
		o.ID(),
		items,
		o.Total(),
		o.OrderSource(),
		o.LocationID(),
		o.CustomerLoyaltyID(),
		o.OrderPlacedTimestamp(),
		o.OrderCompletedTimestamp(),
	)
}

func cloneAll(orders []*order.Order) ([]*order.Order, error) {
	result := make([]*order.Order, 0, len(orders))
	for _, o := range orders {
		c, err := clone(o)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, nil
}
