package queries_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"homeoffice/internal/adapters/out/memory"
	"homeoffice/internal/core/domain/model/order"
	"homeoffice/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	opening = time.Date(2024, 2, 10, 7, 0, 0, 0, time.UTC)
	closing = time.Date(2024, 2, 10, 19, 0, 0, 0, time.UTC)
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id string) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) FindBetween(ctx context.Context, start, end time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, start, end)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) FindBetweenForLocation(
	ctx context.Context, location order.StoreLocation, start, end time.Time,
) ([]*order.Order, error) {
	args := m.Called(ctx, location, start, end)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

var errStorageDown = errors.New("storage unavailable")

// seededRepository returns a memory repository holding one order per (location, minute) pair.
func seededRepository(t *testing.T, seeds map[string]struct {
	location order.StoreLocation
	source   order.OrderSource
	placed   time.Time
	price    string
}) ports.OrderRepository {
	t.Helper()
	repo := memory.NewRepository(memory.NewStore())
	for id, seed := range seeds {
		o, err := order.NewOrder(
			id,
			[]*order.LineItem{order.NewLineItem("Flat White", decimal.RequireFromString(seed.price), "Sam", nil)},
			seed.source,
			seed.location,
			nil,
			seed.placed,
			seed.placed.Add(2*time.Minute),
		)
		require.NoError(t, err)
		require.NoError(t, repo.Add(t.Context(), o))
	}
	return repo
}
