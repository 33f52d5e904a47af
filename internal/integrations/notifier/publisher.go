package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/SMC-ChainBookingService/internal/domain"
)

// Имена очередей уведомлений
const (
	ConfirmationQueue = "booking.confirmation"
	ChangesQueue      = "booking.changes"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher публикует уведомления о бронированиях в RabbitMQ.
// Очереди durable, сообщения persistent: доставка до mailer-сервиса
// переживает рестарт брокера. С точки зрения реконсилиатора отправка -
// fire-and-forget: ошибка публикации не должна блокировать продвижение
// курсора
type Publisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
	log  Logger
}

// NewPublisher подключается к брокеру и объявляет очереди уведомлений
func NewPublisher(url string, log Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: dial: %v", ErrConnect, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}

	for _, queue := range []string{ConfirmationQueue, ChangesQueue} {
		if _, err := ch.QueueDeclare(
			queue,
			true,  // durable
			false, // autoDelete
			false, // exclusive
			false, // noWait
			nil,
		); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return nil, fmt.Errorf("%w: declare queue %s: %v", ErrConnect, queue, err)
		}
	}

	return &Publisher{conn: conn, ch: ch, log: log}, nil
}

// Close закрывает канал и подключение к брокеру
func (p *Publisher) Close() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

// SendConfirmation публикует уведомление о завершенном бронировании
func (p *Publisher) SendConfirmation(ctx context.Context, event domain.ChainEvent, bookingHash, email string) error {
	msg := ConfirmationMessage{
		BookingHash: bookingHash,
		Email:       email,
		Event:       event.Name,
		BlockNumber: event.BlockNumber,
		SentAt:      time.Now().UTC().Format(time.RFC3339),
	}
	return p.publish(ctx, ConfirmationQueue, msg)
}

// SendChangeNotice публикует уведомление о смене гостя бронирования
func (p *Publisher) SendChangeNotice(ctx context.Context, event domain.ChainEvent, bookingHash, email string) error {
	msg := ChangeNoticeMessage{
		BookingHash: bookingHash,
		Email:       email,
		Event:       event.Name,
		BlockNumber: event.BlockNumber,
		NewGuest:    event.NewGuest,
		SentAt:      time.Now().UTC().Format(time.RFC3339),
	}
	return p.publish(ctx, ChangesQueue, msg)
}

func (p *Publisher) publish(ctx context.Context, queue string, msg interface{}) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: marshal message: %v", ErrPublish, err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := p.ch.PublishWithContext(ctx,
		"",    // default exchange
		queue, // routing key = queue name
		false, // mandatory
		false, // immediate
		pub,
	); err != nil {
		return fmt.Errorf("%w: queue %s: %v", ErrPublish, queue, err)
	}

	p.log.Info("notifier: published %s message for booking %s", queue, extractHash(msg))
	return nil
}

func extractHash(msg interface{}) string {
	switch m := msg.(type) {
	case ConfirmationMessage:
		return m.BookingHash
	case ChangeNoticeMessage:
		return m.BookingHash
	default:
		return "?"
	}
}
