package models

import (
	"time"

	"github.com/m04kA/SMC-ChainBookingService/internal/domain"
)

// BookingResponse бронирование вместе с расшифрованными персональными данными.
// PersonalInfo пустой, если расшифровка не удалась
type BookingResponse struct {
	ID              int64
	BookingHash     string
	GuestEthAddress string
	RoomType        domain.RoomType
	From            int
	To              int
	PaymentAmount   float64
	PaymentType     domain.PaymentType
	PaymentTx       *string
	Status          domain.BookingStatus

	PersonalInfo domain.PersonalInfo

	ConfirmationEmailSent bool
	ChangesEmailSent      int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FromDomainBooking конвертирует domain.Booking в BookingResponse
func FromDomainBooking(b *domain.Booking, info domain.PersonalInfo) *BookingResponse {
	return &BookingResponse{
		ID:                    b.ID,
		BookingHash:           b.BookingHash,
		GuestEthAddress:       b.GuestEthAddress,
		RoomType:              b.RoomType,
		From:                  b.From,
		To:                    b.To,
		PaymentAmount:         b.PaymentAmount,
		PaymentType:           b.PaymentType,
		PaymentTx:             b.PaymentTx,
		Status:                b.Status,
		PersonalInfo:          info,
		ConfirmationEmailSent: b.ConfirmationEmailSent,
		ChangesEmailSent:      b.ChangesEmailSent,
		CreatedAt:             b.CreatedAt,
		UpdatedAt:             b.UpdatedAt,
	}
}
