package booking

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ChainBookingService/internal/domain"
)

func newTestBooking() *domain.Booking {
	return &domain.Booking{
		BookingHash:           "0xabc123",
		GuestEthAddress:       "0x00a329c0648769a73afac7f9381e08fb43dbea72",
		RoomType:              domain.RoomTypeDouble,
		From:                  1,
		To:                    3,
		PaymentAmount:         1.4401,
		PaymentType:           domain.PaymentTypeEth,
		SignatureTimestamp:    1700000000,
		EncryptedPersonalInfo: "deadbeef",
		ChangesEmailSent:      1700000000,
		Status:                domain.StatusPending,
	}
}

func TestCreateTranslatesDuplicateKey(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnError(&pq.Error{Code: pgUniqueViolation, Constraint: "bookings_booking_hash_key"})

	repo := NewRepository(db)
	_, err = repo.Create(context.Background(), newTestBooking())
	assert.ErrorIs(t, err, ErrDuplicateBooking)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReturnsGeneratedFields(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(42), now, now))

	repo := NewRepository(db)
	created, err := repo.Create(context.Background(), newTestBooking())
	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOtherWriteFailuresAreNotConflicts(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	// Нарушение типа - не конфликт уникальности
	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnError(&pq.Error{Code: "22P02"})

	repo := NewRepository(db)
	_, err = repo.Create(context.Background(), newTestBooking())
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.NotErrorIs(t, err, ErrDuplicateBooking)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByHashNotFound(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT .+ FROM bookings").
		WillReturnRows(sqlmock.NewRows(bookingColumns))

	repo := NewRepository(db)
	_, err = repo.GetByHash(context.Background(), "0xmissing")
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	err = repo.UpdateStatus(context.Background(), "0xabc123", domain.BookingStatus("archived"))
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatusNotFound(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewRepository(db)
	err = repo.UpdateStatus(context.Background(), "0xmissing", domain.StatusApproved)
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetConfirmationEmailSent(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewRepository(db)
	err = repo.SetConfirmationEmailSent(context.Background(), "0xabc123")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
