// Package repotest holds the behavioural contract every ports.OrderRepository
// implementation in this module must satisfy. Storage adapters run it from their own
// tests against a fresh backend.
package repotest

import (
	"context"
	"time"

	"homeoffice/internal/core/domain/model/order"
	"homeoffice/internal/core/ports"
	"homeoffice/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// OrderRepositorySuite exercises Add, Get and both range queries plus the unit of
// work transaction boundary. NewFactory is called before every test and must return a
// factory over empty storage.
type OrderRepositorySuite struct {
	suite.Suite

	NewFactory func() ports.UnitOfWorkFactory

	ctx     context.Context
	factory ports.UnitOfWorkFactory
	repo    ports.OrderRepository
}

// Base is a fixed, second-aligned instant every backend can store exactly.
var Base = time.Date(2024, 5, 6, 9, 0, 0, 0, time.UTC)

func (s *OrderRepositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.factory = s.NewFactory()
	s.repo = s.factory.Create().OrderRepository()
}

// NewTestOrder builds an order placed at placedAt with two line items.
func NewTestOrder(id string, location order.StoreLocation, placedAt time.Time) (*order.Order, error) {
	loyalty := "LOYAL-" + id
	return order.NewOrder(
		id,
		[]*order.LineItem{
			order.NewLineItem("Latte", decimal.RequireFromString("4.50"), "Alice", nil),
			order.NewLineItem("Blueberry Muffin", decimal.RequireFromString("2.25"), "", nil),
		},
		order.Mobile,
		location,
		&loyalty,
		placedAt,
		placedAt.Add(3*time.Minute),
	)
}

func (s *OrderRepositorySuite) mustAdd(id string, location order.StoreLocation, placedAt time.Time) *order.Order {
	o, err := NewTestOrder(id, location, placedAt)
	s.Require().NoError(err)
	s.Require().NoError(s.repo.Add(s.ctx, o))
	return o
}

func ids(orders []*order.Order) []string {
	result := make([]string, 0, len(orders))
	for _, o := range orders {
		result = append(result, o.ID())
	}
	return result
}

func (s *OrderRepositorySuite) TestAddAndGet() {
	added := s.mustAdd("order-1", order.Store1, Base)

	got, err := s.repo.Get(s.ctx, "order-1")

	s.Require().NoError(err)
	s.True(added.Equal(got), "expected %s, got %s", added, got)
	s.True(got.Total().Equal(decimal.RequireFromString("6.75")))
	s.Require().Len(got.LineItems(), 2)
	s.Equal("Latte", got.LineItems()[0].Item())
	s.Equal("Blueberry Muffin", got.LineItems()[1].Item())
	for _, item := range got.LineItems() {
		s.Same(got, item.Order())
	}
}

func (s *OrderRepositorySuite) TestAddAnonymousOrderWithoutItems() {
	o, err := order.NewOrder("order-empty", []*order.LineItem{}, order.Kiosk, order.Store4, nil, Base, Base)
	s.Require().NoError(err)
	s.Require().NoError(s.repo.Add(s.ctx, o))

	got, err := s.repo.Get(s.ctx, "order-empty")

	s.Require().NoError(err)
	s.Nil(got.CustomerLoyaltyID())
	s.Empty(got.LineItems())
	s.True(got.Total().IsZero())
	s.True(o.Equal(got))
}

func (s *OrderRepositorySuite) TestAddKeepsTheConstructionTotal() {
	o, err := NewTestOrder("order-grown", order.Store2, Base)
	s.Require().NoError(err)
	s.Require().NoError(o.AddLineItem(order.NewLineItem("Cookie", decimal.RequireFromString("1.10"), "Bob", nil)))
	s.Require().NoError(s.repo.Add(s.ctx, o))

	got, err := s.repo.Get(s.ctx, "order-grown")

	s.Require().NoError(err)
	s.Len(got.LineItems(), 3)
	s.True(got.Total().Equal(decimal.RequireFromString("6.75")))
	s.True(o.Equal(got))
}

func (s *OrderRepositorySuite) TestGetMissing() {
	_, err := s.repo.Get(s.ctx, "does-not-exist")

	s.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *OrderRepositorySuite) TestAddDuplicate() {
	s.mustAdd("order-dup", order.Store1, Base)

	o, err := NewTestOrder("order-dup", order.Store2, Base)
	s.Require().NoError(err)

	s.Require().ErrorIs(s.repo.Add(s.ctx, o), errs.ErrObjectAlreadyExists)
}

func (s *OrderRepositorySuite) TestAddRejectsUnconstructedOrder() {
	s.Require().ErrorIs(s.repo.Add(s.ctx, &order.Order{}), order.ErrOrderIsNotConstructed)
}

func (s *OrderRepositorySuite) TestFindBetweenIsClosedInterval() {
	start := Base
	end := Base.Add(time.Hour)
	s.mustAdd("before", order.Store1, start.Add(-time.Second))
	s.mustAdd("at-start", order.Store1, start)
	s.mustAdd("inside", order.Store2, start.Add(30*time.Minute))
	s.mustAdd("at-end", order.Store3, end)
	s.mustAdd("after", order.Store1, end.Add(time.Second))

	found, err := s.repo.FindBetween(s.ctx, start, end)

	s.Require().NoError(err)
	s.ElementsMatch([]string{"at-start", "inside", "at-end"}, ids(found))
}

func (s *OrderRepositorySuite) TestFindBetweenAcceptsOtherTimeZones() {
	s.mustAdd("inside", order.Store1, Base)
	berlin := time.FixedZone("CEST", 2*60*60)

	found, err := s.repo.FindBetween(s.ctx, Base.In(berlin), Base.Add(time.Minute).In(berlin))

	s.Require().NoError(err)
	s.Equal([]string{"inside"}, ids(found))
}

func (s *OrderRepositorySuite) TestFindBetweenWithInvertedWindowIsEmpty() {
	s.mustAdd("inside", order.Store1, Base)

	found, err := s.repo.FindBetween(s.ctx, Base.Add(time.Hour), Base.Add(-time.Hour))

	s.Require().NoError(err)
	s.Empty(found)
}

func (s *OrderRepositorySuite) TestFindBetweenWithNoMatches() {
	found, err := s.repo.FindBetween(s.ctx, Base, Base.Add(time.Hour))

	s.Require().NoError(err)
	s.NotNil(found)
	s.Empty(found)
}

func (s *OrderRepositorySuite) TestFindBetweenForLocation() {
	start := Base
	end := Base.Add(time.Hour)
	s.mustAdd("s1-in", order.Store1, start)
	s.mustAdd("s2-in", order.Store2, start.Add(time.Minute))
	s.mustAdd("s1-end", order.Store1, end)
	s.mustAdd("s1-out", order.Store1, end.Add(time.Minute))

	found, err := s.repo.FindBetweenForLocation(s.ctx, order.Store1, start, end)

	s.Require().NoError(err)
	s.ElementsMatch([]string{"s1-in", "s1-end"}, ids(found))
	for _, o := range found {
		s.Equal(order.Store1, o.LocationID())
	}

	none, err := s.repo.FindBetweenForLocation(s.ctx, order.Store4, start, end)
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *OrderRepositorySuite) TestFindBetweenForUnknownLocationIsEmpty() {
	s.mustAdd("s1-in", order.Store1, Base)

	for _, location := range []order.StoreLocation{order.StoreLocationUnknown, order.StoreLocation(99)} {
		found, err := s.repo.FindBetweenForLocation(s.ctx, location, Base.Add(-time.Hour), Base.Add(time.Hour))

		s.Require().NoError(err, "location %d", int(location))
		s.Empty(found, "location %d", int(location))
	}
}

func (s *OrderRepositorySuite) TestFindBetweenWithCenturiesWideWindow() {
	past := time.Date(1650, 3, 1, 12, 0, 0, 0, time.UTC)
	future := time.Date(2300, 1, 1, 0, 0, 0, 0, time.UTC)
	s.mustAdd("past", order.Store1, past)
	s.mustAdd("present", order.Store1, Base)
	farFuture := s.mustAdd("future", order.Store2, future)

	found, err := s.repo.FindBetween(s.ctx,
		time.Date(1600, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC))
	s.Require().NoError(err)
	s.ElementsMatch([]string{"past", "present"}, ids(found))

	found, err = s.repo.FindBetweenForLocation(s.ctx, order.Store2,
		time.Date(2200, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2400, 1, 1, 0, 0, 0, 0, time.UTC))
	s.Require().NoError(err)
	s.Equal([]string{"future"}, ids(found))

	got, err := s.repo.Get(s.ctx, "future")
	s.Require().NoError(err)
	s.True(got.OrderPlacedTimestamp().Equal(future), "placed at %s", got.OrderPlacedTimestamp())
	s.True(farFuture.Equal(got))
}

func (s *OrderRepositorySuite) TestFoundOrdersKeepLineItemsInOrder() {
	added := s.mustAdd("ordered", order.Store1, Base)

	found, err := s.repo.FindBetween(s.ctx, Base, Base)

	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.True(added.Equal(found[0]))
	for _, item := range found[0].LineItems() {
		s.Same(found[0], item.Order())
	}
}

func (s *OrderRepositorySuite) TestUnitOfWorkCommit() {
	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(s.ctx))

	o, err := NewTestOrder("tx-commit", order.Store1, Base)
	s.Require().NoError(err)
	s.Require().NoError(uow.OrderRepository().Add(s.ctx, o))
	s.Require().NoError(uow.Commit(s.ctx))

	got, err := s.repo.Get(s.ctx, "tx-commit")
	s.Require().NoError(err)
	s.True(o.Equal(got))
}

func (s *OrderRepositorySuite) TestUnitOfWorkRollback() {
	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(s.ctx))

	o, err := NewTestOrder("tx-rollback", order.Store1, Base)
	s.Require().NoError(err)
	s.Require().NoError(uow.OrderRepository().Add(s.ctx, o))
	s.Require().NoError(uow.Rollback(s.ctx))

	_, err = s.repo.Get(s.ctx, "tx-rollback")
	s.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *OrderRepositorySuite) TestUnitOfWorkCommitWithoutBegin() {
	s.Require().Error(s.factory.Create().Commit(s.ctx))
}
