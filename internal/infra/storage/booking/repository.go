package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ChainBookingService/internal/domain"
	"github.com/m04kA/SMC-ChainBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ChainBookingService/pkg/psqlbuilder"
)

// Код ошибки PostgreSQL для нарушения unique constraint
const pgUniqueViolation = "23505"

var bookingColumns = []string{
	"id",
	"booking_hash",
	"guest_eth_address",
	"room_type",
	"from_night",
	"to_night",
	"payment_amount",
	"payment_type",
	"payment_tx",
	"signature_timestamp",
	"encrypted_personal_info",
	"confirmation_email_sent",
	"changes_email_sent",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Уникальность booking_hash обеспечивается unique constraint в БД:
// нарушение транслируется в ErrDuplicateBooking (вызывающий код может
// повторить с новым хэшем), остальные ошибки записи - в ErrExecQuery.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"booking_hash",
			"guest_eth_address",
			"room_type",
			"from_night",
			"to_night",
			"payment_amount",
			"payment_type",
			"payment_tx",
			"signature_timestamp",
			"encrypted_personal_info",
			"confirmation_email_sent",
			"changes_email_sent",
			"status",
		).
		Values(
			booking.BookingHash,
			booking.GuestEthAddress,
			booking.RoomType,
			booking.From,
			booking.To,
			booking.PaymentAmount,
			booking.PaymentType,
			booking.PaymentTx,
			booking.SignatureTimestamp,
			booking.EncryptedPersonalInfo,
			booking.ConfirmationEmailSent,
			booking.ChangesEmailSent,
			booking.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return nil, ErrDuplicateBooking
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByHash получает бронирование по booking hash
func (r *Repository) GetByHash(ctx context.Context, bookingHash string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"booking_hash": bookingHash}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByHash - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByHash - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// UpdateStatus обновляет статус бронирования.
// Единственный путь изменения статуса: все переходы state machine
// проходят через этот метод (last-writer-wins на уровне строки)
func (r *Repository) UpdateStatus(ctx context.Context, bookingHash string, status domain.BookingStatus) error {
	if !domain.ValidBookingStatus(status) {
		return ErrInvalidStatus
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"booking_hash": bookingHash}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateStatus")
}

// SetConfirmationEmailSent взводит флаг отправки подтверждения.
// Флаг - idempotency guard: повторная доставка события BookingDone
// не приводит к повторной отправке
func (r *Repository) SetConfirmationEmailSent(ctx context.Context, bookingHash string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("confirmation_email_sent", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"booking_hash": bookingHash}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetConfirmationEmailSent - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "SetConfirmationEmailSent")
}

// SetChangesEmailSent обновляет отметку времени уведомления об изменении
func (r *Repository) SetChangesEmailSent(ctx context.Context, bookingHash string, sentAt int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("changes_email_sent", sentAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"booking_hash": bookingHash}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetChangesEmailSent - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "SetChangesEmailSent")
}

// SetPaymentTx сохраняет ссылку на транзакцию оплаты, наблюдаемую on-chain
func (r *Repository) SetPaymentTx(ctx context.Context, bookingHash string, paymentTx string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("payment_tx", paymentTx).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"booking_hash": bookingHash}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetPaymentTx - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "SetPaymentTx")
}

func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, method string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.BookingHash,
		&booking.GuestEthAddress,
		&booking.RoomType,
		&booking.From,
		&booking.To,
		&booking.PaymentAmount,
		&booking.PaymentType,
		&booking.PaymentTx,
		&booking.SignatureTimestamp,
		&booking.EncryptedPersonalInfo,
		&booking.ConfirmationEmailSent,
		&booking.ChangesEmailSent,
		&booking.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}
