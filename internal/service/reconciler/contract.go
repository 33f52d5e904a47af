package reconciler

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ChainBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByHash(ctx context.Context, bookingHash string) (*domain.Booking, error)
	SetConfirmationEmailSent(ctx context.Context, bookingHash string) error
	SetChangesEmailSent(ctx context.Context, bookingHash string, sentAt int64) error
}

// StatusMachine интерфейс переходов статуса бронирования
type StatusMachine interface {
	MarkApproved(ctx context.Context, bookingHash string) error
}

// ChainClient интерфейс клиента блокчейн-шлюза
type ChainClient interface {
	GetLatestBlock(ctx context.Context) (uint64, error)
	GetEvents(ctx context.Context, fromBlock, toBlock uint64) ([]domain.ChainEvent, error)
}

// CursorRepository интерфейс персистентного курсора обработки блоков
type CursorRepository interface {
	Load(ctx context.Context) (uint64, error)
	Save(ctx context.Context, nextBlock uint64) error
}

// Notifier интерфейс диспетчера уведомлений
type Notifier interface {
	SendConfirmation(ctx context.Context, event domain.ChainEvent, bookingHash, email string) error
	SendChangeNotice(ctx context.Context, event domain.ChainEvent, bookingHash, email string) error
}

// Metrics интерфейс метрик реконсилятора
type Metrics interface {
	IncChainEventProcessed(event string)
	IncChainEventSkipped(event, reason string)
	IncChainFetchError()
	SetChainCursor(nextBlock uint64)
	IncNotificationPublished(kind string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
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

type nopMetrics struct{}

func (nopMetrics) IncChainEventProcessed(string)       {}
func (nopMetrics) IncChainEventSkipped(string, string) {}
func (nopMetrics) IncChainFetchError()                 {}
func (nopMetrics) SetChainCursor(uint64)               {}
func (nopMetrics) IncNotificationPublished(string)     {}
