package create_booking

import "errors"

// Ошибки валидации проверяются в фиксированном порядке:
// объект -> email -> fullName -> phone -> birthDate -> остальные поля.
// Первая провалившаяся проверка и есть возвращаемая ошибка -
// порядок важен для детерминированных сообщений клиенту
var (
	// ErrInvalidPersonalInfo возвращается, когда персональные данные не переданы
	ErrInvalidPersonalInfo = errors.New("create_booking: personal info must be an object")

	// ErrInvalidPersonalInfoEmail возвращается при отсутствующем или некорректном email
	ErrInvalidPersonalInfoEmail = errors.New("create_booking: personal info email is missing or invalid")

	// ErrInvalidPersonalInfoFullName возвращается при отсутствующем имени
	ErrInvalidPersonalInfoFullName = errors.New("create_booking: personal info full name is required")

	// ErrInvalidPersonalInfoPhone возвращается при отсутствующем телефоне
	ErrInvalidPersonalInfoPhone = errors.New("create_booking: personal info phone is required")

	// ErrInvalidPersonalInfoBirthDate возвращается при отсутствующей или
	// некорректной дате рождения (ожидается YYYY-MM-DD)
	ErrInvalidPersonalInfoBirthDate = errors.New("create_booking: personal info birth date is missing or invalid")

	// ErrNoGuestEthAddress возвращается при отсутствующем адресе гостя
	ErrNoGuestEthAddress = errors.New("create_booking: guest eth address is required")

	// ErrInvalidRoomType возвращается при неизвестном типе комнаты
	ErrInvalidRoomType = errors.New("create_booking: unknown room type")

	// ErrInvalidPaymentType возвращается при неизвестном типе оплаты
	ErrInvalidPaymentType = errors.New("create_booking: unknown payment type")

	// ErrFromOutOfRange возвращается, когда from вне диапазона [1,4]
	ErrFromOutOfRange = errors.New("create_booking: from must be between 1 and 4")

	// ErrToOutOfRange возвращается, когда to вне диапазона [from,4]
	ErrToOutOfRange = errors.New("create_booking: to must be between from and 4")

	// ErrDuplicateBooking возвращается, когда все попытки создать бронирование
	// завершились конфликтом booking hash
	ErrDuplicateBooking = errors.New("create_booking: duplicate booking")

	// ErrInvalidSpotPrice возвращается при некорректной спотовой цене
	ErrInvalidSpotPrice = errors.New("create_booking: invalid spot price")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
