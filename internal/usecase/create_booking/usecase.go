package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ChainBookingService/internal/crypto"
	"github.com/m04kA/SMC-ChainBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ChainBookingService/internal/infra/storage/booking"
)

// Количество попыток создания при коллизии booking hash.
// Коллизия keccak256 на практике означает сбой генератора, но
// конфликт уникальности - штатный повод повторить с новым хэшем
const maxHashAttempts = 3

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	priceFeed    PriceFeed
	generateHash HashGenerator
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	priceFeed PriceFeed,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		priceFeed:    priceFeed,
		generateHash: crypto.GenerateBookingHash,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования:
// валидация -> спотовая цена -> расчет суммы -> генерация хэша и
// шифрование персональных данных -> сохранение со статусом pending.
// Конфликт booking hash приводит к повторной генерации (до maxHashAttempts)
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: guest=%s, roomType=%s, from=%d, to=%d, paymentType=%s",
		req.GuestEthAddress, req.RoomType, req.From, req.To, req.PaymentType)

	// 1. Валидация входных данных (фиксированный порядок проверок)
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем спотовую цену
	spotPrice, err := uc.priceFeed.GetSpotPrice(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get spot price: %v", err)
		return nil, fmt.Errorf("%w: failed to get spot price: %v", ErrInternal, err)
	}

	// 3. Рассчитываем сумму оплаты и котировку за ночь
	amount, err := domain.PaymentAmount(req.RoomType, req.From, req.To, spotPrice)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSpotPrice) {
			uc.logger.Warn("CreateBooking: invalid spot price %f", spotPrice)
			return nil, ErrInvalidSpotPrice
		}
		return nil, fmt.Errorf("%w: failed to derive payment amount: %v", ErrInternal, err)
	}

	weiPerNight, err := domain.WeiPerNight(req.RoomType, spotPrice)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to derive wei per night: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()

	// 4. Генерируем хэш, шифруем данные и сохраняем.
	// При конфликте уникальности хэша повторяем с новым хэшем
	var created *domain.Booking
	for attempt := 1; attempt <= maxHashAttempts; attempt++ {
		hash, err := uc.generateHash()
		if err != nil {
			uc.logger.Error("CreateBooking: failed to generate booking hash: %v", err)
			return nil, fmt.Errorf("%w: failed to generate booking hash: %v", ErrInternal, err)
		}

		encrypted, err := crypto.EncryptPersonalInfo(*req.PersonalInfo, hash)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to encrypt personal info: %v", err)
			return nil, fmt.Errorf("%w: failed to encrypt personal info: %v", ErrInternal, err)
		}

		booking := &domain.Booking{
			BookingHash:           hash,
			GuestEthAddress:       req.GuestEthAddress,
			RoomType:              req.RoomType,
			From:                  req.From,
			To:                    req.To,
			PaymentAmount:         amount,
			PaymentType:           req.PaymentType,
			SignatureTimestamp:    domain.DefaultSignatureTimestamp(now),
			EncryptedPersonalInfo: encrypted,
			ChangesEmailSent:      now.Unix(),
			Status:                domain.StatusPending,
		}

		created, err = uc.bookingRepo.Create(ctx, booking)
		if err == nil {
			break
		}

		if errors.Is(err, bookingRepo.ErrDuplicateBooking) {
			uc.logger.Warn("CreateBooking: booking hash collision on attempt %d/%d", attempt, maxHashAttempts)
			if attempt == maxHashAttempts {
				return nil, ErrDuplicateBooking
			}
			continue
		}

		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, hash=%s, amount=%.4f %s",
		created.ID, created.BookingHash, created.PaymentAmount, created.PaymentType)

	return &Response{
		ID:                 created.ID,
		BookingHash:        created.BookingHash,
		GuestEthAddress:    created.GuestEthAddress,
		RoomType:           created.RoomType,
		From:               created.From,
		To:                 created.To,
		PaymentAmount:      created.PaymentAmount,
		PaymentType:        created.PaymentType,
		Status:             created.Status,
		WeiPerNight:        weiPerNight.String(),
		SignatureTimestamp: created.SignatureTimestamp,
	}, nil
}
