package domain

import "time"

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusPending  BookingStatus = "pending"
	StatusCanceled BookingStatus = "canceled"
	StatusApproved BookingStatus = "approved"
)

// RoomType represents one of the bookable room categories
type RoomType string

const (
	RoomTypeDouble RoomType = "double"
	RoomTypeTwin   RoomType = "twin"
	RoomTypeQueen  RoomType = "queen"
	RoomTypeKing   RoomType = "king"
)

// PaymentType represents the on-chain currency used to pay for a booking
type PaymentType string

const (
	PaymentTypeEth PaymentType = "eth"
	PaymentTypeLif PaymentType = "lif"
)

// Booking represents a room booking correlated with the on-chain contract
// by its BookingHash. The hash is generated server-side, never accepted from
// the client, and doubles as the symmetric key for EncryptedPersonalInfo.
type Booking struct {
	ID              int64
	BookingHash     string
	GuestEthAddress string
	RoomType        RoomType
	From            int // day-range index, 1..4
	To              int // day-range index, From..4
	PaymentAmount   float64
	PaymentType     PaymentType
	PaymentTx       *string

	// SignatureTimestamp is the epoch-seconds moment the guest signature is
	// anchored to. A signature older than the validity window is stale.
	SignatureTimestamp int64

	// EncryptedPersonalInfo holds the guest's personal data, decryptable
	// only with BookingHash. Losing the hash loses the data.
	EncryptedPersonalInfo string

	// ConfirmationEmailSent guards the "booking done" side effect.
	ConfirmationEmailSent bool
	// ChangesEmailSent is the epoch-seconds timestamp of the last
	// "booking changed" notification.
	ChangesEmailSent int64

	Status BookingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Nights returns the number of nights covered by the booking
func (b *Booking) Nights() int {
	return b.To - b.From + 1
}

// IsPending returns true while no terminal transition has been applied
func (b *Booking) IsPending() bool {
	return b.Status == StatusPending
}

// IsTerminal returns true for approved and canceled bookings
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusApproved || b.Status == StatusCanceled
}

// PersonalInfo is the guest's personal data. It is never persisted in
// cleartext; storage only ever sees the encrypted blob.
type PersonalInfo struct {
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
	Phone     string `json:"phone"`
	BirthDate string `json:"birthDate"` // YYYY-MM-DD
}

// IsEmpty returns true when no personal info is available,
// e.g. after a failed decryption
func (p PersonalInfo) IsEmpty() bool {
	return p == PersonalInfo{}
}

// ValidBookingStatus reports whether s is a known booking status
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case StatusPending, StatusCanceled, StatusApproved:
		return true
	}
	return false
}

// ValidRoomType reports whether rt is a known room type
func ValidRoomType(rt RoomType) bool {
	_, ok := RoomTypePrices[rt]
	return ok
}

// ValidPaymentType reports whether pt is a known payment type
func ValidPaymentType(pt PaymentType) bool {
	return pt == PaymentTypeEth || pt == PaymentTypeLif
}

// DefaultSignatureTimestamp returns the default value for
// SignatureTimestamp: now minus the signature validity window, so that a
// booking created without a fresh client signature is already stale.
func DefaultSignatureTimestamp(now time.Time) int64 {
	return now.Unix() - SignatureTimeLimitMinutes*60
}
