package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ChainBookingService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-ChainBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInfo        = "персональные данные отсутствуют или некорректны"
	msgInvalidEmail       = "некорректный email"
	msgInvalidFullName    = "не указано полное имя"
	msgInvalidPhone       = "не указан телефон"
	msgInvalidBirthDate   = "некорректная дата рождения, ожидается YYYY-MM-DD"
	msgNoGuestEthAddress  = "не указан адрес плательщика"
	msgInvalidRoomType    = "неизвестный тип комнаты"
	msgInvalidPaymentType = "неизвестный тип оплаты"
	msgFromOutOfRange     = "начало диапазона вне допустимых значений"
	msgToOutOfRange       = "конец диапазона вне допустимых значений"
	msgDuplicateBooking   = "бронирование с таким хэшем уже существует"
	msgInvalidSpotPrice   = "некорректная спотовая цена, попробуйте позже"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequestBody, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createBooking.ErrInvalidPersonalInfo):
			handlers.RespondBadRequest(w, handlers.CodeInvalidPersonalInfo, msgInvalidInfo)

		case errors.Is(err, createBooking.ErrInvalidPersonalInfoEmail):
			handlers.RespondBadRequest(w, handlers.CodeInvalidPersonalInfoEmail, msgInvalidEmail)

		case errors.Is(err, createBooking.ErrInvalidPersonalInfoFullName):
			handlers.RespondBadRequest(w, handlers.CodeInvalidPersonalInfoFullName, msgInvalidFullName)

		case errors.Is(err, createBooking.ErrInvalidPersonalInfoPhone):
			handlers.RespondBadRequest(w, handlers.CodeInvalidPersonalInfoPhone, msgInvalidPhone)

		case errors.Is(err, createBooking.ErrInvalidPersonalInfoBirthDate):
			handlers.RespondBadRequest(w, handlers.CodeInvalidPersonalInfoBirthDate, msgInvalidBirthDate)

		case errors.Is(err, createBooking.ErrNoGuestEthAddress):
			handlers.RespondBadRequest(w, handlers.CodeNoGuestEthAddress, msgNoGuestEthAddress)

		case errors.Is(err, createBooking.ErrInvalidRoomType):
			handlers.RespondBadRequest(w, handlers.CodeInvalidRoomType, msgInvalidRoomType)

		case errors.Is(err, createBooking.ErrInvalidPaymentType):
			handlers.RespondBadRequest(w, handlers.CodeInvalidPaymentType, msgInvalidPaymentType)

		case errors.Is(err, createBooking.ErrFromOutOfRange):
			handlers.RespondBadRequest(w, handlers.CodeFromOutOfRange, msgFromOutOfRange)

		case errors.Is(err, createBooking.ErrToOutOfRange):
			handlers.RespondBadRequest(w, handlers.CodeToOutOfRange, msgToOutOfRange)

		case errors.Is(err, createBooking.ErrDuplicateBooking):
			h.logger.Warn("POST /bookings - Duplicate booking hash for guest=%s", req.GuestEthAddress)
			handlers.RespondConflict(w, handlers.CodeDuplicateBooking, msgDuplicateBooking)

		case errors.Is(err, createBooking.ErrInvalidSpotPrice):
			h.logger.Warn("POST /bookings - Invalid spot price")
			handlers.RespondError(w, http.StatusServiceUnavailable, handlers.CodeInvalidSpotPrice, msgInvalidSpotPrice)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: guest=%s, error=%v", req.GuestEthAddress, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, hash=%s", result.ID, result.BookingHash)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
