package domain

// Day-range bounds for the proof-of-concept hotel: bookings cover day
// indexes 1..4 of the event
const (
	MinNightIndex = 1
	MaxNightIndex = 4
)

// SignatureTimeLimitMinutes validity window for client-submitted signatures
const SignatureTimeLimitMinutes = 5

// RoomTypePrices nightly price per room type, in EUR
var RoomTypePrices = map[RoomType]float64{
	RoomTypeDouble: 120,
	RoomTypeTwin:   100,
	RoomTypeQueen:  150,
	RoomTypeKing:   180,
}

// PaymentAmountEpsilon is added before rounding the quoted amount so that
// float rounding can never under-collect
const PaymentAmountEpsilon = 0.0001

// PaymentAmountDecimals number of decimal places in the quoted amount
const PaymentAmountDecimals = 4

// Time format constants
const (
	BirthDateFormat = "2006-01-02" // YYYY-MM-DD
)
