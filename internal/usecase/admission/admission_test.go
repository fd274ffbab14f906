package admission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	marketv1 "github.com/papersim/paperbroker/internal/domain/market/v1"
	"github.com/papersim/paperbroker/internal/usecase/ledger"
	"github.com/papersim/paperbroker/pkg/errors"
)

func newTestOrder(direction marketv1.Direction, offset marketv1.Offset, orderType marketv1.OrderType, volume float64) *marketv1.Order {
	return marketv1.OrderRequest{
		Symbol:    "IF2609",
		Direction: direction,
		Offset:    offset,
		Type:      orderType,
		Price:     100,
		Volume:    volume,
	}.NewOrder()
}

func TestValidateOrderType(t *testing.T) {
	testCases := []struct {
		name          string
		orderType     marketv1.OrderType
		stopSupported bool
		expectedCode  errors.ErrorCode
	}{
		{
			name:      "limit order accepted",
			orderType: marketv1.OrderTypeLimit,
		},
		{
			name:      "market order accepted",
			orderType: marketv1.OrderTypeMarket,
		},
		{
			name:          "stop order accepted when the instrument supports it",
			orderType:     marketv1.OrderTypeStop,
			stopSupported: true,
		},
		{
			name:         "stop order rejected when the instrument lacks support",
			orderType:    marketv1.OrderTypeStop,
			expectedCode: errors.ErrUnsupportedOrderType,
		},
		{
			name:         "unknown order type rejected",
			orderType:    marketv1.OrderType("fak"),
			expectedCode: errors.ErrUnsupportedOrderType,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			validator := NewValidator(ledger.NewPositionLedger())
			order := newTestOrder(marketv1.DirectionLong, marketv1.OffsetOpen, tc.orderType, 5)
			instrument := marketv1.Instrument{
				Symbol:        "IF2609",
				Multiplier:    300,
				StopSupported: tc.stopSupported,
			}

			frozen, err := validator.Validate(order, instrument)

			if tc.expectedCode == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.ErrorCodeEquals(err, tc.expectedCode))
			assert.Equal(t, marketv1.StatusRejected, order.Status)
			assert.Nil(t, frozen)
		})
	}
}

func TestValidateNetPositionSkipsFreezing(t *testing.T) {
	positionLedger := ledger.NewPositionLedger()
	validator := NewValidator(positionLedger)
	instrument := marketv1.Instrument{Symbol: "IF2609", NetPosition: true}

	// Closing more than held is fine under net accounting.
	order := newTestOrder(marketv1.DirectionShort, marketv1.OffsetClose, marketv1.OrderTypeLimit, 999)

	frozen, err := validator.Validate(order, instrument)

	assert.NoError(t, err)
	assert.Nil(t, frozen)
}

func TestValidateOpenOrderSkipsFreezing(t *testing.T) {
	positionLedger := ledger.NewPositionLedger()
	validator := NewValidator(positionLedger)

	order := newTestOrder(marketv1.DirectionLong, marketv1.OffsetOpen, marketv1.OrderTypeLimit, 10)

	frozen, err := validator.Validate(order, marketv1.Instrument{Symbol: "IF2609"})

	assert.NoError(t, err)
	assert.Nil(t, frozen)
	assert.Zero(t, positionLedger.Get("IF2609", marketv1.DirectionShort).Frozen)
}

func TestValidateCloseOrderFreezesOpposingPosition(t *testing.T) {
	positionLedger := ledger.NewPositionLedger()
	shortPosition := positionLedger.Get("IF2609", marketv1.DirectionShort)
	shortPosition.Volume = 20
	shortPosition.Frozen = 5

	validator := NewValidator(positionLedger)

	// LONG close order reserves volume on the short side.
	order := newTestOrder(marketv1.DirectionLong, marketv1.OffsetClose, marketv1.OrderTypeLimit, 8)

	frozen, err := validator.Validate(order, marketv1.Instrument{Symbol: "IF2609"})

	require.NoError(t, err)
	require.NotNil(t, frozen)
	assert.Same(t, shortPosition, frozen)
	assert.Equal(t, 13.0, shortPosition.Frozen)
	assert.Equal(t, 7.0, shortPosition.Available())
}

func TestValidateCloseOrderRejectedBeyondAvailable(t *testing.T) {
	positionLedger := ledger.NewPositionLedger()
	shortPosition := positionLedger.Get("IF2609", marketv1.DirectionShort)
	shortPosition.Volume = 20
	shortPosition.Frozen = 15

	validator := NewValidator(positionLedger)

	order := newTestOrder(marketv1.DirectionLong, marketv1.OffsetClose, marketv1.OrderTypeLimit, 6)

	frozen, err := validator.Validate(order, marketv1.Instrument{Symbol: "IF2609"})

	require.Error(t, err)
	assert.True(t, errors.ErrorCodeEquals(err, errors.ErrInsufficientClosePosition))
	assert.Equal(t, marketv1.StatusRejected, order.Status)
	assert.Nil(t, frozen)

	// Rejection must not touch the reservation.
	assert.Equal(t, 15.0, shortPosition.Frozen)
}
