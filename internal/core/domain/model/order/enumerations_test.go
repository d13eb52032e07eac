package order_test

import (
	"testing"

	"homeoffice/internal/core/domain/model/order"
	"homeoffice/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderSource(t *testing.T) {
	t.Run("should round trip every member through its name", func(t *testing.T) {
		for _, source := range order.OrderSources() {
			require.NoError(t, source.Validate())

			parsed, err := order.ParseOrderSource(source.String())

			require.NoError(t, err)
			assert.Equal(t, source, parsed)
		}
	})

	t.Run("should expose the member names", func(t *testing.T) {
		names := make([]string, 0)
		for _, source := range order.OrderSources() {
			names = append(names, source.String())
		}

		assert.Equal(t, []string{"IN_STORE", "MOBILE", "WEB", "KIOSK"}, names)
	})

	t.Run("should reject unknown values", func(t *testing.T) {
		assert.Equal(t, "UNKNOWN", order.OrderSourceUnknown.String())
		require.ErrorIs(t, order.OrderSourceUnknown.Validate(), errs.ErrValueIsInvalid)
		require.ErrorIs(t, order.OrderSource(99).Validate(), errs.ErrValueIsInvalid)

		_, err := order.ParseOrderSource("mobile")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		_, err = order.ParseOrderSource("UNKNOWN")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStoreLocation(t *testing.T) {
	t.Run("should round trip every member through its name", func(t *testing.T) {
		for _, location := range order.StoreLocations() {
			require.NoError(t, location.Validate())

			parsed, err := order.ParseStoreLocation(location.String())

			require.NoError(t, err)
			assert.Equal(t, location, parsed)
		}
	})

	t.Run("should reject unknown values", func(t *testing.T) {
		require.ErrorIs(t, order.StoreLocationUnknown.Validate(), errs.ErrValueIsInvalid)

		_, err := order.ParseStoreLocation("STORE_99")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "STORE_99")
	})
}
