package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ChainBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// PriceFeed интерфейс источника спотовой цены
type PriceFeed interface {
	GetSpotPrice(ctx context.Context) (float64, error)
}

// HashGenerator интерфейс генератора booking hash (для тестирования)
type HashGenerator func() (string, error)

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
