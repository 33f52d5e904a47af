package get_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ChainBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ChainBookingService/internal/service/bookings"
)

const (
	msgBookingNotFound = "бронирование не найдено"
	msgNoBookingHash   = "не указан booking hash"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingHash}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingHash := mux.Vars(r)["bookingHash"]
	if bookingHash == "" {
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequestBody, msgNoBookingHash)
		return
	}

	result, err := h.service.GetByHash(r.Context(), bookingHash)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{hash} - Booking not found: hash=%s", bookingHash)
			handlers.RespondNotFound(w, handlers.CodeBookingNotFound, msgBookingNotFound)

		default:
			h.logger.Error("GET /bookings/{hash} - Failed to fetch booking: hash=%s, error=%v", bookingHash, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{hash} - Booking fetched successfully: id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
