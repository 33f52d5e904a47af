package reconciler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-ChainBookingService/internal/crypto"
	"github.com/m04kA/SMC-ChainBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ChainBookingService/internal/infra/storage/booking"
	cursorRepo "github.com/m04kA/SMC-ChainBookingService/internal/infra/storage/cursor"
)

// Причины пропуска события (лейбл reason в метриках)
const (
	skipUnknownEvent = "unknown_event"
	skipNoBooking    = "no_booking"
	skipGuestEcho    = "guest_echo"
)

// Виды публикуемых уведомлений (лейбл kind в метриках)
const (
	kindConfirmation = "confirmation"
	kindChangeNotice = "change_notice"
)

// Reconciler сверяет состояние бронирований с событиями блокчейна.
// Один экземпляр, один goroutine: пока обрабатывается пачка, новый тик
// не начинается. Курсор указывает на следующий необработанный блок и
// продвигается после каждого примененного события, поэтому при рестарте
// события доставляются повторно (at-least-once); потребители идемпотентны
type Reconciler struct {
	chain        ChainClient
	bookings     BookingRepository
	statuses     StatusMachine
	cursors      CursorRepository
	notifier     Notifier
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger

	// Начальный блок при пустом курсоре; 0 - начать с последнего блока
	startBlock uint64
	maxBackoff time.Duration

	cursor       uint64
	cursorLoaded bool
	failures     int
	retryAt      time.Time
}

// NewReconciler создает новый экземпляр реконсилятора.
// metrics может быть nil
func NewReconciler(
	chain ChainClient,
	bookings BookingRepository,
	statuses StatusMachine,
	cursors CursorRepository,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
	startBlock uint64,
	maxBackoff time.Duration,
) *Reconciler {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &Reconciler{
		chain:        chain,
		bookings:     bookings,
		statuses:     statuses,
		cursors:      cursors,
		notifier:     notifier,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		startBlock:   startBlock,
		maxBackoff:   maxBackoff,
	}
}

// Run запускает цикл опроса с заданным интервалом и блокируется до отмены
// контекста. Начатая пачка дорабатывается до конца: проверка ctx происходит
// только между тиками, чтобы не оставлять пачку примененной наполовину
func (r *Reconciler) Run(ctx context.Context, pollInterval time.Duration) {
	r.logger.Info("Reconciler: starting, pollInterval=%s, maxBackoff=%s", pollInterval, r.maxBackoff)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Reconciler: stopping: %v", ctx.Err())
			return
		case <-ticker.C:
			now := r.timeProvider.Now()
			if now.Before(r.retryAt) {
				r.logger.Debug("Reconciler: backing off until %s", r.retryAt.Format(time.RFC3339))
				continue
			}

			if err := r.ProcessBatch(ctx); err != nil {
				r.failures++
				backoff := r.computeBackoff(pollInterval)
				r.retryAt = now.Add(backoff)
				r.logger.Error("Reconciler: batch failed (attempt %d, next try in %s): %v", r.failures, backoff, err)
				continue
			}

			r.failures = 0
			r.retryAt = time.Time{}
		}
	}
}

// ProcessBatch обрабатывает один цикл сверки: [cursor, latest].
// При ошибке получения данных из шлюза курсор не трогаем - следующий тик
// повторит ту же пачку
func (r *Reconciler) ProcessBatch(ctx context.Context) error {
	latest, err := r.chain.GetLatestBlock(ctx)
	if err != nil {
		r.metrics.IncChainFetchError()
		return fmt.Errorf("%w: GetLatestBlock: %v", ErrFetchEvents, err)
	}

	if err := r.ensureCursor(ctx, latest); err != nil {
		return err
	}

	if r.cursor > latest {
		r.logger.Debug("Reconciler: cursor=%d ahead of latest=%d, idle", r.cursor, latest)
		return nil
	}

	events, err := r.chain.GetEvents(ctx, r.cursor, latest)
	if err != nil {
		r.metrics.IncChainFetchError()
		return fmt.Errorf("%w: GetEvents [%d, %d]: %v", ErrFetchEvents, r.cursor, latest, err)
	}

	// Стабильная сортировка: порядок событий внутри блока сохраняется
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].BlockNumber < events[j].BlockNumber
	})

	r.logger.Info("Reconciler: processing %d events in blocks [%d, %d]", len(events), r.cursor, latest)

	for _, event := range events {
		if err := r.applyEvent(ctx, event); err != nil {
			// Пачка прерывается, курсор остается на текущем событии -
			// следующий тик начнет с него же
			return err
		}
		r.advanceCursor(ctx, event.BlockNumber+1)
	}

	// Пустая пачка: блоки просмотрены, двигаем курсор за latest
	if len(events) == 0 {
		r.advanceCursor(ctx, latest+1)
	}

	return nil
}

// applyEvent применяет одно событие. Возвращает ошибку только если пачку
// нужно прервать без продвижения курсора; пропускаемые события (неизвестный
// тип, отсутствующее бронирование, эхо смены гостя) ошибкой не являются
func (r *Reconciler) applyEvent(ctx context.Context, event domain.ChainEvent) error {
	if !event.IsKnown() {
		r.logger.Warn("Reconciler: unknown event %q in block %d, skipping", event.Name, event.BlockNumber)
		r.metrics.IncChainEventSkipped(event.Name, skipUnknownEvent)
		return nil
	}

	booking, err := r.bookings.GetByHash(ctx, event.BookingHash)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			r.logger.Warn("Reconciler: no booking for hash=%s (event %s, block %d), skipping",
				event.BookingHash, event.Name, event.BlockNumber)
			r.metrics.IncChainEventSkipped(event.Name, skipNoBooking)
			return nil
		}
		return fmt.Errorf("%w: GetByHash %s: %v", ErrApplyEvent, event.BookingHash, err)
	}

	switch event.Name {
	case domain.EventBookingDone:
		return r.applyBookingDone(ctx, event, booking)
	case domain.EventBookingChanged:
		return r.applyBookingChanged(ctx, event, booking)
	}
	return nil
}

// applyBookingDone подтверждает бронирование и один раз отправляет
// подтверждение. Флаг confirmationEmailSent - идемпотентный барьер:
// повторная доставка того же события не приводит к повторной отправке
func (r *Reconciler) applyBookingDone(ctx context.Context, event domain.ChainEvent, booking *domain.Booking) error {
	if err := r.statuses.MarkApproved(ctx, booking.BookingHash); err != nil {
		return fmt.Errorf("%w: MarkApproved %s: %v", ErrApplyEvent, booking.BookingHash, err)
	}

	if !booking.ConfirmationEmailSent {
		r.dispatch(ctx, event, booking, kindConfirmation)

		if err := r.bookings.SetConfirmationEmailSent(ctx, booking.BookingHash); err != nil {
			return fmt.Errorf("%w: SetConfirmationEmailSent %s: %v", ErrApplyEvent, booking.BookingHash, err)
		}
	}

	r.metrics.IncChainEventProcessed(event.Name)
	r.logger.Info("Reconciler: BookingDone applied, hash=%s, block=%d", booking.BookingHash, event.BlockNumber)
	return nil
}

// applyBookingChanged отправляет уведомление о смене гостя. Событие о
// текущем госте (эхо собственной записи) пропускается
func (r *Reconciler) applyBookingChanged(ctx context.Context, event domain.ChainEvent, booking *domain.Booking) error {
	if event.NewGuest == booking.GuestEthAddress {
		r.logger.Debug("Reconciler: BookingChanged echo for hash=%s, skipping", booking.BookingHash)
		r.metrics.IncChainEventSkipped(event.Name, skipGuestEcho)
		return nil
	}

	r.dispatch(ctx, event, booking, kindChangeNotice)

	sentAt := r.timeProvider.Now().Unix()
	if err := r.bookings.SetChangesEmailSent(ctx, booking.BookingHash, sentAt); err != nil {
		return fmt.Errorf("%w: SetChangesEmailSent %s: %v", ErrApplyEvent, booking.BookingHash, err)
	}

	r.metrics.IncChainEventProcessed(event.Name)
	r.logger.Info("Reconciler: BookingChanged applied, hash=%s, block=%d, newGuest=%s",
		booking.BookingHash, event.BlockNumber, event.NewGuest)
	return nil
}

// dispatch публикует уведомление. Ошибка публикации логируется, но не
// прерывает обработку: очередь durable, а повторная публикация на каждом
// тике давала бы дубли
func (r *Reconciler) dispatch(ctx context.Context, event domain.ChainEvent, booking *domain.Booking, kind string) {
	info := crypto.DecryptPersonalInfo(booking.EncryptedPersonalInfo, booking.BookingHash)
	if info.Email == "" {
		r.logger.Warn("Reconciler: no decryptable email for hash=%s, %s not sent", booking.BookingHash, kind)
		return
	}

	var err error
	switch kind {
	case kindConfirmation:
		err = r.notifier.SendConfirmation(ctx, event, booking.BookingHash, info.Email)
	case kindChangeNotice:
		err = r.notifier.SendChangeNotice(ctx, event, booking.BookingHash, info.Email)
	}
	if err != nil {
		r.logger.Error("Reconciler: failed to publish %s for hash=%s: %v", kind, booking.BookingHash, err)
		return
	}

	r.metrics.IncNotificationPublished(kind)
}

// ensureCursor загружает курсор из хранилища один раз за время жизни.
// Пустое хранилище - первый запуск: начинаем с настроенного блока или,
// если он не задан, с последнего блока цепочки
func (r *Reconciler) ensureCursor(ctx context.Context, latest uint64) error {
	if r.cursorLoaded {
		return nil
	}

	saved, err := r.cursors.Load(ctx)
	switch {
	case err == nil:
		r.cursor = saved
	case errors.Is(err, cursorRepo.ErrCursorNotFound):
		r.cursor = r.startBlock
		if r.cursor == 0 {
			r.cursor = latest
		}
		r.logger.Info("Reconciler: no saved cursor, starting from block %d", r.cursor)
	default:
		return fmt.Errorf("%w: load cursor: %v", ErrInternal, err)
	}

	r.cursorLoaded = true
	r.metrics.SetChainCursor(r.cursor)
	return nil
}

// advanceCursor продвигает курсор вперед и сохраняет его. Ошибка сохранения
// не прерывает пачку: после рестарта события будут доставлены повторно,
// потребители это переживают
func (r *Reconciler) advanceCursor(ctx context.Context, nextBlock uint64) {
	if nextBlock <= r.cursor {
		return
	}

	r.cursor = nextBlock
	r.metrics.SetChainCursor(nextBlock)

	if err := r.cursors.Save(ctx, nextBlock); err != nil {
		r.logger.Error("Reconciler: failed to persist cursor %d: %v", nextBlock, err)
	}
}

// computeBackoff возвращает задержку перед следующей попыткой после серии
// неудач: base * 2^(failures-1), не больше maxBackoff
func (r *Reconciler) computeBackoff(base time.Duration) time.Duration {
	backoff := base
	for i := 1; i < r.failures; i++ {
		backoff *= 2
		if backoff >= r.maxBackoff {
			return r.maxBackoff
		}
	}
	if backoff > r.maxBackoff {
		return r.maxBackoff
	}
	return backoff
}
