package create_booking

import (
	"github.com/m04kA/SMC-ChainBookingService/internal/domain"
)

// Request модель запроса на создание бронирования.
// BookingHash в запросе отсутствует намеренно: он генерируется только
// на стороне сервера
type Request struct {
	GuestEthAddress string               // Адрес плательщика
	RoomType        domain.RoomType      // Тип комнаты
	From            int                  // Начало диапазона, 1..4
	To              int                  // Конец диапазона, from..4
	PaymentType     domain.PaymentType   // Валюта оплаты (eth или lif)
	PersonalInfo    *domain.PersonalInfo // Персональные данные гостя
}

// Response модель ответа с созданным бронированием.
// Персональные данные не возвращаются: у клиента остается bookingHash -
// единственный ключ к ним
type Response struct {
	ID              int64
	BookingHash     string
	GuestEthAddress string
	RoomType        domain.RoomType
	From            int
	To              int
	PaymentAmount   float64
	PaymentType     domain.PaymentType
	Status          domain.BookingStatus

	// WeiPerNight котировка цены за ночь в wei для отображения клиенту
	WeiPerNight string

	SignatureTimestamp int64
}
