package bookings

import "errors"

var (
	// ErrBookingNotFound бронирование не найдено
	ErrBookingNotFound = errors.New("bookings.service: booking not found")

	// ErrInvalidStatus недопустимое значение статуса бронирования
	ErrInvalidStatus = errors.New("bookings.service: invalid booking status")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("bookings.service: internal error")
)
