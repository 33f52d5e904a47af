package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ChainBookingService/internal/crypto"
	"github.com/m04kA/SMC-ChainBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ChainBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ChainBookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями.
// Единственная точка переходов статуса: pending -> canceled | approved
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByHash получает бронирование по booking hash.
// Персональные данные расшифровываются тем же хэшем; при неудаче
// расшифровки возвращается пустой объект, а не ошибка
func (s *Service) GetByHash(ctx context.Context, bookingHash string) (*models.BookingResponse, error) {
	s.logger.Info("GetByHash: fetching booking hash=%s", bookingHash)

	booking, err := s.bookingRepo.GetByHash(ctx, bookingHash)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByHash: booking hash=%s not found", bookingHash)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByHash: repository error for hash=%s: %v", bookingHash, err)
		return nil, fmt.Errorf("%w: GetByHash - repository error: %v", ErrInternal, err)
	}

	info := crypto.DecryptPersonalInfo(booking.EncryptedPersonalInfo, booking.BookingHash)
	if info.IsEmpty() {
		s.logger.Warn("GetByHash: personal info for hash=%s is empty or undecryptable", bookingHash)
	}

	return models.FromDomainBooking(booking, info), nil
}

// MarkPending переводит бронирование в статус pending
func (s *Service) MarkPending(ctx context.Context, bookingHash string) error {
	return s.setStatus(ctx, bookingHash, domain.StatusPending)
}

// MarkCanceled переводит бронирование в статус canceled
func (s *Service) MarkCanceled(ctx context.Context, bookingHash string) error {
	return s.setStatus(ctx, bookingHash, domain.StatusCanceled)
}

// MarkApproved переводит бронирование в статус approved
func (s *Service) MarkApproved(ctx context.Context, bookingHash string) error {
	return s.setStatus(ctx, bookingHash, domain.StatusApproved)
}

// SetPaymentTx сохраняет хэш платежной транзакции бронирования
func (s *Service) SetPaymentTx(ctx context.Context, bookingHash, paymentTx string) error {
	s.logger.Info("SetPaymentTx: hash=%s, tx=%s", bookingHash, paymentTx)

	if err := s.bookingRepo.SetPaymentTx(ctx, bookingHash, paymentTx); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("SetPaymentTx: repository error for hash=%s: %v", bookingHash, err)
		return fmt.Errorf("%w: SetPaymentTx - repository error: %v", ErrInternal, err)
	}
	return nil
}

func (s *Service) setStatus(ctx context.Context, bookingHash string, status domain.BookingStatus) error {
	s.logger.Info("setStatus: hash=%s -> %s", bookingHash, status)

	if err := s.bookingRepo.UpdateStatus(ctx, bookingHash, status); err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			s.logger.Warn("setStatus: booking hash=%s not found", bookingHash)
			return ErrBookingNotFound
		case errors.Is(err, bookingRepo.ErrInvalidStatus):
			return ErrInvalidStatus
		default:
			s.logger.Error("setStatus: repository error for hash=%s: %v", bookingHash, err)
			return fmt.Errorf("%w: setStatus - repository error: %v", ErrInternal, err)
		}
	}
	return nil
}
