package get_booking

import (
	"context"

	"github.com/m04kA/SMC-ChainBookingService/internal/service/bookings/models"
)

type BookingsService interface {
	GetByHash(ctx context.Context, bookingHash string) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
