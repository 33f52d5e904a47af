package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentAmountPositiveAndMonotonic(t *testing.T) {
	spotPrice := 250.0

	for roomType := range RoomTypePrices {
		prev := 0.0
		for from := MinNightIndex; from <= MaxNightIndex; from++ {
			// Для фиксированного from сумма растет вместе с to
			prev = 0.0
			for to := from; to <= MaxNightIndex; to++ {
				amount, err := PaymentAmount(roomType, from, to, spotPrice)
				require.NoError(t, err)
				assert.Greater(t, amount, 0.0, "roomType=%s from=%d to=%d", roomType, from, to)
				assert.GreaterOrEqual(t, amount, prev, "amount must not decrease with longer stay")
				prev = amount
			}
		}
	}
}

func TestPaymentAmountFixedToFourDecimals(t *testing.T) {
	amount, err := PaymentAmount(RoomTypeDouble, 1, 2, 333.0)
	require.NoError(t, err)

	shifted := amount * 10000
	assert.InDelta(t, math.Round(shifted), shifted, 1e-9, "amount must carry at most 4 decimal places")
}

func TestPaymentAmountNeverUnderCollects(t *testing.T) {
	// Квота с эпсилоном не должна быть меньше точного значения
	exact := RoomTypePrices[RoomTypeKing] * 4 / 199.99
	amount, err := PaymentAmount(RoomTypeKing, 1, 4, 199.99)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, amount, exact)
}

func TestPaymentAmountInvalidSpotPrice(t *testing.T) {
	cases := []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1)}
	for _, spot := range cases {
		_, err := PaymentAmount(RoomTypeDouble, 1, 2, spot)
		assert.ErrorIs(t, err, ErrInvalidSpotPrice, "spot=%v", spot)
	}
}

func TestPaymentAmountUnknownRoomType(t *testing.T) {
	_, err := PaymentAmount(RoomType("penthouse"), 1, 2, 100)
	assert.ErrorIs(t, err, ErrUnknownRoomType)
}

func TestWeiPerNight(t *testing.T) {
	// 120 EUR за ночь при курсе 120 EUR/ETH = ровно 1 ether
	wei, err := WeiPerNight(RoomTypeDouble, 120)
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000", wei.String())
}

func TestWeiPerNightInvalidSpotPrice(t *testing.T) {
	_, err := WeiPerNight(RoomTypeTwin, 0)
	assert.ErrorIs(t, err, ErrInvalidSpotPrice)
}
