package bookings

import (
	"context"

	"github.com/m04kA/SMC-ChainBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByHash(ctx context.Context, bookingHash string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, bookingHash string, status domain.BookingStatus) error
	SetPaymentTx(ctx context.Context, bookingHash string, paymentTx string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
