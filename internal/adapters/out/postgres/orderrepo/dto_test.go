package orderrepo

import (
	"testing"
	"time"

	"homeoffice/internal/core/domain/model/order"
	"homeoffice/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromDomain_NumbersLineItemPositions(t *testing.T) {
	placed := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	o, err := order.NewOrder(
		"o-1",
		[]*order.LineItem{
			order.NewLineItem("Cortado", decimal.RequireFromString("3.60"), "Kim", nil),
			order.NewLineItem("Scone", decimal.RequireFromString("2.90"), "", nil),
		},
		order.Web,
		order.Store3,
		nil,
		placed,
		placed.Add(time.Minute),
	)
	require.NoError(t, err)

	dto := fromDomain(o)

	assert.Equal(t, "WEB", dto.OrderSource)
	assert.Equal(t, "STORE_3", dto.LocationID)
	assert.Nil(t, dto.CustomerLoyaltyID)
	assert.True(t, dto.Total.Equal(decimal.RequireFromString("6.50")))
	require.Len(t, dto.LineItems, 2)
	assert.Equal(t, 0, dto.LineItems[0].Position)
	assert.Equal(t, 1, dto.LineItems[1].Position)
	assert.Equal(t, "o-1", dto.LineItems[1].OrderID)

	restored, err := toDomain(dto)
	require.NoError(t, err)
	assert.True(t, o.Equal(restored))
}

func TestToDomain_RejectsUnknownEnumerations(t *testing.T) {
	dto := OrderDTO{
		ID:          "o-2",
		Total:       decimal.Zero,
		OrderSource: "DRIVE_THRU",
		LocationID:  "STORE_9",
	}

	_, err := toDomain(dto)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
