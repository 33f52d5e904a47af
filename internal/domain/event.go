package domain

// Chain event names emitted by the booking contract
const (
	EventBookingDone    = "BookingDone"
	EventBookingChanged = "BookingChanged"
)

// ChainEvent is an immutable record observed on the external ledger.
// BookingHash correlates the event with a Booking; NewGuest is only set for
// BookingChanged events.
type ChainEvent struct {
	Name        string
	BlockNumber uint64
	BookingHash string
	NewGuest    string
}

// IsKnown reports whether the reconciler has a handler for this event type
func (e ChainEvent) IsKnown() bool {
	return e.Name == EventBookingDone || e.Name == EventBookingChanged
}
