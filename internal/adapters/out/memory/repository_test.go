package memory_test

import (
	"testing"
	"time"

	"homeoffice/internal/adapters/out/memory"
	"homeoffice/internal/adapters/out/repotest"
	"homeoffice/internal/core/domain/model/order"
	"homeoffice/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestMemoryOrderRepository(t *testing.T) {
	suite.Run(t, &repotest.OrderRepositorySuite{
		NewFactory: func() ports.UnitOfWorkFactory {
			return memory.NewUnitOfWorkFactory(memory.NewStore())
		},
	})
}

func TestRepository_ReturnsIsolatedCopies(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewRepository(memory.NewStore())

	o, err := repotest.NewTestOrder("copy", order.Store1, repotest.Base)
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, o))

	require.NoError(t, o.AddLineItem(order.NewLineItem("Tea", decimal.NewFromInt(2), "Eve", nil)))
	first, err := repo.Get(ctx, "copy")
	require.NoError(t, err)
	require.NoError(t, first.AddLineItem(order.NewLineItem("Tea", decimal.NewFromInt(2), "Eve", nil)))

	second, err := repo.Get(ctx, "copy")
	require.NoError(t, err)
	assert.Len(t, second.LineItems(), 2)
	assert.NotSame(t, first, second)
}

func TestUnitOfWork_StagedOrdersVisibleInsideTransaction(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()
	uow := memory.NewUnitOfWorkFactory(store).Create()
	require.NoError(t, uow.Begin(ctx))

	o, err := repotest.NewTestOrder("staged", order.Store2, repotest.Base)
	require.NoError(t, err)
	require.NoError(t, uow.OrderRepository().Add(ctx, o))

	inside, err := uow.OrderRepository().FindBetween(ctx, repotest.Base, repotest.Base.Add(time.Minute))
	require.NoError(t, err)
	assert.Len(t, inside, 1)

	outside, err := memory.NewRepository(store).FindBetween(ctx, repotest.Base, repotest.Base.Add(time.Minute))
	require.NoError(t, err)
	assert.Empty(t, outside)

	dup, err := repotest.NewTestOrder("staged", order.Store3, repotest.Base)
	require.NoError(t, err)
	require.Error(t, uow.OrderRepository().Add(ctx, dup))
}

func TestUnitOfWork_RollbackWithoutBegin(t *testing.T) {
	uow := memory.NewUnitOfWorkFactory(memory.NewStore()).Create()
	require.ErrorIs(t, uow.Rollback(t.Context()), memory.ErrNoActiveTransaction)
}

func TestRepository_ResultsSortedByPlacement(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewRepository(memory.NewStore())
	for i, id := range []string{"c", "a", "b"} {
		o, err := repotest.NewTestOrder(id, order.Store1, repotest.Base.Add(time.Duration(2-i)*time.Minute))
		require.NoError(t, err)
		require.NoError(t, repo.Add(ctx, o))
	}

	found, err := repo.FindBetween(ctx, repotest.Base, repotest.Base.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, found, 3)
	assert.Equal(t, "b", found[0].ID())
	assert.Equal(t, "a", found[1].ID())
	assert.Equal(t, "c", found[2].ID())
}
