package create_booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ChainBookingService/internal/crypto"
	"github.com/m04kA/SMC-ChainBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ChainBookingService/internal/infra/storage/booking"
)

type fakeBookingRepo struct {
	created []*domain.Booking
	// очередь ошибок: по одной на каждый вызов Create
	errs []error
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if len(r.errs) > 0 {
		err := r.errs[0]
		r.errs = r.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	out := *booking
	out.ID = int64(len(r.created) + 1)
	out.CreatedAt = time.Now()
	out.UpdatedAt = out.CreatedAt
	r.created = append(r.created, &out)
	return &out, nil
}

type fakePriceFeed struct {
	price float64
	err   error
}

func (f *fakePriceFeed) GetSpotPrice(_ context.Context) (float64, error) {
	return f.price, f.err
}

type fakeTimeProvider struct {
	now time.Time
}

func (p *fakeTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(repo *fakeBookingRepo, feed *fakePriceFeed) *UseCase {
	uc := NewUseCase(repo, feed, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: time.Unix(1700000000, 0)}
	return uc
}

func TestExecuteSuccess(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, &fakePriceFeed{price: 3000})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, domain.StatusPending, resp.Status)
	assert.Len(t, resp.BookingHash, 66)
	// double, ночи 1..3 = 3 ночи по 120 EUR при 3000 EUR/ETH
	assert.InDelta(t, 0.1201, resp.PaymentAmount, 1e-9)
	assert.Equal(t, "40000000000000000", resp.WeiPerNight)
	// now - 5 минут
	assert.Equal(t, int64(1700000000-300), resp.SignatureTimestamp)

	require.Len(t, repo.created, 1)
	stored := repo.created[0]
	assert.NotEmpty(t, stored.EncryptedPersonalInfo)

	// Персональные данные восстанавливаются только по хэшу бронирования
	info := crypto.DecryptPersonalInfo(stored.EncryptedPersonalInfo, stored.BookingHash)
	assert.Equal(t, "guest@example.com", info.Email)
}

func TestExecuteHashCollisionRetries(t *testing.T) {
	repo := &fakeBookingRepo{errs: []error{bookingRepo.ErrDuplicateBooking}}
	uc := newTestUseCase(repo, &fakePriceFeed{price: 3000})

	hashes := []string{"0xaaa", "0xbbb"}
	calls := 0
	uc.generateHash = func() (string, error) {
		h := hashes[calls]
		calls++
		return h, nil
	}

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, 2, calls, "collision must trigger a fresh hash")
	assert.Equal(t, "0xbbb", resp.BookingHash)
	require.Len(t, repo.created, 1)
}

func TestExecuteHashCollisionExhausted(t *testing.T) {
	repo := &fakeBookingRepo{errs: []error{
		bookingRepo.ErrDuplicateBooking,
		bookingRepo.ErrDuplicateBooking,
		bookingRepo.ErrDuplicateBooking,
	}}
	uc := newTestUseCase(repo, &fakePriceFeed{price: 3000})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDuplicateBooking)
	assert.Empty(t, repo.created)
}

func TestExecuteValidationFailsBeforePriceFeed(t *testing.T) {
	feed := &fakePriceFeed{err: errors.New("feed must not be called")}
	uc := newTestUseCase(&fakeBookingRepo{}, feed)

	req := validRequest()
	req.PersonalInfo.Email = "broken"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidPersonalInfoEmail)
}

func TestExecutePriceFeedFailure(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakePriceFeed{err: errors.New("boom")})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecuteInvalidSpotPrice(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakePriceFeed{price: 0})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInvalidSpotPrice)
}

func TestExecuteStorageFailure(t *testing.T) {
	repo := &fakeBookingRepo{errs: []error{fmt.Errorf("%w: Create - exec", bookingRepo.ErrExecQuery)}}
	uc := newTestUseCase(repo, &fakePriceFeed{price: 3000})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
	assert.NotErrorIs(t, err, ErrDuplicateBooking)
}
