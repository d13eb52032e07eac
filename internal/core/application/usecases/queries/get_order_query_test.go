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

func TestNewGetOrderQuery_Valid(t *testing.T) {
	query, err := queries.NewGetOrderQuery("o-1")
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, "o-1", query.OrderID())
}

func TestNewGetOrderQuery_EmptyID(t *testing.T) {
	_, err := queries.NewGetOrderQuery("  ")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestGetOrderQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetOrderQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetOrderQueryIsNotConstructed)
}

func TestGetOrderQueryHandler_Handle(t *testing.T) {
	repo := seededRepository(t, map[string]struct {
		location order.StoreLocation
		source   order.OrderSource
		placed   time.Time
		price    string
	}{
		"o-1": {order.Store1, order.InStore, opening, "3.80"},
	})
	h := queries.NewGetOrderQueryHandler(repo)

	t.Run("should return the stored order", func(t *testing.T) {
		query, _ := queries.NewGetOrderQuery("o-1")
		o, err := h.Handle(t.Context(), query)
		require.NoError(t, err)
		assert.Equal(t, "o-1", o.ID())
		assert.Equal(t, "3.8", o.Total().String())
	})

	t.Run("should report a missing order", func(t *testing.T) {
		query, _ := queries.NewGetOrderQuery("o-404")
		_, err := h.Handle(t.Context(), query)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should propagate storage errors unchanged", func(t *testing.T) {
		failing := new(MockOrderRepository)
		failing.On("Get", mock.Anything, "o-1").Return(nil, errStorageDown).Once()

		query, _ := queries.NewGetOrderQuery("o-1")
		_, err := queries.NewGetOrderQueryHandler(failing).Handle(t.Context(), query)
		require.ErrorIs(t, err, errStorageDown)
		failing.AssertExpectations(t)
	})
}
