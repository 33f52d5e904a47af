package create_booking

import (
	"regexp"
	"strings"

	"github.com/m04kA/SMC-ChainBookingService/internal/domain"
)

// RFC-подобная проверка email, портирована из исходной реализации
var emailRe = regexp.MustCompile(`^(([^<>()\[\]\\.,;:\s@"]+(\.[^<>()\[\]\\.,;:\s@"]+)*)|(".+"))@((\[[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\])|(([a-zA-Z0-9-]+\.)+[a-zA-Z]{2,}))$`)

// Формат даты рождения YYYY-MM-DD
var birthDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// validateRequest валидирует входные данные запроса.
// Порядок проверок фиксирован и должен сохраняться:
// объект -> email -> fullName -> phone -> birthDate -> поля бронирования
func validateRequest(req *Request) error {
	if err := validatePersonalInfo(req.PersonalInfo); err != nil {
		return err
	}

	if strings.TrimSpace(req.GuestEthAddress) == "" {
		return ErrNoGuestEthAddress
	}

	if !domain.ValidRoomType(req.RoomType) {
		return ErrInvalidRoomType
	}

	if !domain.ValidPaymentType(req.PaymentType) {
		return ErrInvalidPaymentType
	}

	if req.From < domain.MinNightIndex || req.From > domain.MaxNightIndex {
		return ErrFromOutOfRange
	}

	if req.To < req.From || req.To > domain.MaxNightIndex {
		return ErrToOutOfRange
	}

	return nil
}

// validatePersonalInfo проверяет персональные данные гостя.
// Каждому дефекту соответствует своя ошибка; возвращается первая по порядку
func validatePersonalInfo(info *domain.PersonalInfo) error {
	if info == nil {
		return ErrInvalidPersonalInfo
	}

	if info.Email == "" || !isEmail(info.Email) {
		return ErrInvalidPersonalInfoEmail
	}

	if strings.TrimSpace(info.FullName) == "" {
		return ErrInvalidPersonalInfoFullName
	}

	if strings.TrimSpace(info.Phone) == "" {
		return ErrInvalidPersonalInfoPhone
	}

	if info.BirthDate == "" || !birthDateRe.MatchString(info.BirthDate) {
		return ErrInvalidPersonalInfoBirthDate
	}

	return nil
}

func isEmail(email string) bool {
	return emailRe.MatchString(strings.ToLower(email))
}
