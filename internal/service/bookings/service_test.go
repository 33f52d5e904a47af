package bookings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ChainBookingService/internal/crypto"
	"github.com/m04kA/SMC-ChainBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ChainBookingService/internal/infra/storage/booking"
)

type fakeRepo struct {
	bookings map[string]*domain.Booking
	statuses map[string]domain.BookingStatus
	updErr   error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		bookings: make(map[string]*domain.Booking),
		statuses: make(map[string]domain.BookingStatus),
	}
}

func (r *fakeRepo) GetByHash(_ context.Context, hash string) (*domain.Booking, error) {
	b, ok := r.bookings[hash]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, hash string, status domain.BookingStatus) error {
	if r.updErr != nil {
		return r.updErr
	}
	if !domain.ValidBookingStatus(status) {
		return bookingRepo.ErrInvalidStatus
	}
	if _, ok := r.bookings[hash]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	r.statuses[hash] = status
	return nil
}

func (r *fakeRepo) SetPaymentTx(_ context.Context, hash string, tx string) error {
	b, ok := r.bookings[hash]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.PaymentTx = &tx
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestGetByHashDecryptsPersonalInfo(t *testing.T) {
	hash, err := crypto.GenerateBookingHash()
	require.NoError(t, err)

	info := domain.PersonalInfo{
		Email:     "guest@example.com",
		FullName:  "Jane Doe",
		Phone:     "+49301234567",
		BirthDate: "1990-04-01",
	}
	encrypted, err := crypto.EncryptPersonalInfo(info, hash)
	require.NoError(t, err)

	repo := newFakeRepo()
	repo.bookings[hash] = &domain.Booking{
		ID:                    7,
		BookingHash:           hash,
		RoomType:              domain.RoomTypeQueen,
		Status:                domain.StatusPending,
		EncryptedPersonalInfo: encrypted,
	}

	svc := NewService(repo, nopLogger{})
	resp, err := svc.GetByHash(context.Background(), hash)
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, info, resp.PersonalInfo)
}

func TestGetByHashCorruptBlobYieldsEmptyInfo(t *testing.T) {
	repo := newFakeRepo()
	repo.bookings["0xdead"] = &domain.Booking{
		BookingHash:           "0xdead",
		EncryptedPersonalInfo: "not-hex-at-all",
		Status:                domain.StatusPending,
	}

	svc := NewService(repo, nopLogger{})
	resp, err := svc.GetByHash(context.Background(), "0xdead")
	require.NoError(t, err, "decryption failure must not become an error")
	assert.True(t, resp.PersonalInfo.IsEmpty())
}

func TestGetByHashNotFound(t *testing.T) {
	svc := NewService(newFakeRepo(), nopLogger{})
	_, err := svc.GetByHash(context.Background(), "0xmissing")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestStatusTransitions(t *testing.T) {
	repo := newFakeRepo()
	repo.bookings["0x1"] = &domain.Booking{BookingHash: "0x1", Status: domain.StatusPending}
	svc := NewService(repo, nopLogger{})
	ctx := context.Background()

	require.NoError(t, svc.MarkApproved(ctx, "0x1"))
	assert.Equal(t, domain.StatusApproved, repo.statuses["0x1"])

	require.NoError(t, svc.MarkCanceled(ctx, "0x1"))
	assert.Equal(t, domain.StatusCanceled, repo.statuses["0x1"])

	require.NoError(t, svc.MarkPending(ctx, "0x1"))
	assert.Equal(t, domain.StatusPending, repo.statuses["0x1"])
}

func TestStatusTransitionNotFound(t *testing.T) {
	svc := NewService(newFakeRepo(), nopLogger{})
	assert.ErrorIs(t, svc.MarkApproved(context.Background(), "0xmissing"), ErrBookingNotFound)
}

func TestStatusTransitionRepositoryFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.updErr = errors.New("connection reset")
	svc := NewService(repo, nopLogger{})
	assert.ErrorIs(t, svc.MarkCanceled(context.Background(), "0x1"), ErrInternal)
}

func TestSetPaymentTx(t *testing.T) {
	repo := newFakeRepo()
	repo.bookings["0x1"] = &domain.Booking{BookingHash: "0x1", Status: domain.StatusPending}
	svc := NewService(repo, nopLogger{})

	require.NoError(t, svc.SetPaymentTx(context.Background(), "0x1", "0xfeed"))
	require.NotNil(t, repo.bookings["0x1"].PaymentTx)
	assert.Equal(t, "0xfeed", *repo.bookings["0x1"].PaymentTx)

	assert.ErrorIs(t, svc.SetPaymentTx(context.Background(), "0xmissing", "0xfeed"), ErrBookingNotFound)
}
