package queries_test

import (
	"testing"
	"time"

	"homeoffice/internal/core/application/usecases/queries"
	"homeoffice/internal/core/domain/model/order"
	"homeoffice/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewFindOrdersBetweenQuery_Valid(t *testing.T) {
	query, err := queries.NewFindOrdersBetweenQuery(opening, closing)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, query.Window().Start().Equal(opening))
	assert.True(t, query.Window().End().Equal(closing))
}

func TestNewFindOrdersBetweenQuery_MissingBounds(t *testing.T) {
	_, err := queries.NewFindOrdersBetweenQuery(time.Time{}, time.Time{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Contains(t, err.Error(), "start")
	assert.Contains(t, err.Error(), "end")
}

func TestFindOrdersBetweenQuery_NotConstructedViaConstructor(t *testing.T) {
	err := queries.FindOrdersBetweenQuery{}.Validate()
	require.ErrorIs(t, err, queries.ErrFindOrdersBetweenQueryIsNotConstructed)
}

func TestFindOrdersBetweenQueryHandler_Handle(t *testing.T) {
	repo := seededRepository(t, map[string]struct {
		location order.StoreLocation
		source   order.OrderSource
		placed   time.Time
		price    string
	}{
		"early":   {order.Store1, order.InStore, opening.Add(-time.Minute), "3.00"},
		"opening": {order.Store1, order.InStore, opening, "3.00"},
		"noon":    {order.Store2, order.Web, opening.Add(5 * time.Hour), "3.00"},
		"closing": {order.Store3, order.Kiosk, closing, "3.00"},
		"late":    {order.Store3, order.Kiosk, closing.Add(time.Nanosecond), "3.00"},
	})
	h := queries.NewFindOrdersBetweenQueryHandler(repo, discardLogger())

	t.Run("should include both window bounds", func(t *testing.T) {
		query, _ := queries.NewFindOrdersBetweenQuery(opening, closing)
		found, err := h.Handle(t.Context(), query)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"opening", "noon", "closing"}, orderIDs(found))
	})

	t.Run("should return empty for an inverted window without touching storage", func(t *testing.T) {
		untouched := new(MockOrderRepository)
		query, _ := queries.NewFindOrdersBetweenQuery(closing, opening)
		found, err := queries.NewFindOrdersBetweenQueryHandler(untouched, discardLogger()).Handle(t.Context(), query)
		require.NoError(t, err)
		assert.Empty(t, found)
		untouched.AssertNotCalled(t, "FindBetween", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should propagate storage errors unchanged", func(t *testing.T) {
		failing := new(MockOrderRepository)
		failing.On("FindBetween", mock.Anything, opening, closing).Return(nil, errStorageDown).Once()

		query, _ := queries.NewFindOrdersBetweenQuery(opening, closing)
		_, err := queries.NewFindOrdersBetweenQueryHandler(failing, discardLogger()).Handle(t.Context(), query)
		require.ErrorIs(t, err, errStorageDown)
		failing.AssertExpectations(t)
	})

	t.Run("should reject an unconstructed query", func(t *testing.T) {
		_, err := h.Handle(t.Context(), queries.FindOrdersBetweenQuery{})
		require.ErrorIs(t, err, queries.ErrFindOrdersBetweenQueryIsNotConstructed)
	})
}

func orderIDs(orders []*order.Order) []string {
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID())
	}
	return ids
}
