package domain

import (
	"errors"
	"math"
	"math/big"
)

var (
	// ErrInvalidSpotPrice is returned when the spot price is not a finite
	// positive number
	ErrInvalidSpotPrice = errors.New("domain: spot price must be a finite positive number")

	// ErrUnknownRoomType is returned for a room type outside the enumeration
	ErrUnknownRoomType = errors.New("domain: unknown room type")
)

// weiPerEther = 10^18
var weiPerEther = new(big.Float).SetFloat64(1e18)

// PaymentAmount derives the quoted payment amount for a stay:
// nightly price * nights / spot price, bumped by a small epsilon and fixed
// to 4 decimal places so the quote never under-collects on float rounding.
func PaymentAmount(roomType RoomType, from, to int, spotPrice float64) (float64, error) {
	nightly, ok := RoomTypePrices[roomType]
	if !ok {
		return 0, ErrUnknownRoomType
	}
	if err := validateSpotPrice(spotPrice); err != nil {
		return 0, err
	}

	nights := float64(to - from + 1)
	amount := nightly*nights/spotPrice + PaymentAmountEpsilon

	shift := math.Pow10(PaymentAmountDecimals)
	return math.Round(amount*shift) / shift, nil
}

// WeiPerNight converts the nightly fiat price into the chain's smallest
// currency unit at the given spot price. Used for display and quoting only.
func WeiPerNight(roomType RoomType, spotPrice float64) (*big.Int, error) {
	nightly, ok := RoomTypePrices[roomType]
	if !ok {
		return nil, ErrUnknownRoomType
	}
	if err := validateSpotPrice(spotPrice); err != nil {
		return nil, err
	}

	ether := new(big.Float).Quo(
		new(big.Float).SetFloat64(nightly),
		new(big.Float).SetFloat64(spotPrice),
	)
	wei, _ := new(big.Float).Mul(ether, weiPerEther).Int(nil)
	return wei, nil
}

func validateSpotPrice(spotPrice float64) error {
	if math.IsNaN(spotPrice) || math.IsInf(spotPrice, 0) || spotPrice <= 0 {
		return ErrInvalidSpotPrice
	}
	return nil
}
