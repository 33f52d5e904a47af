package handlers

// Машинные коды ошибок API. Каждому дефекту валидации соответствует свой
// фиксированный код; клиенты матчатся по коду, не по тексту сообщения
const (
	CodeInvalidRequestBody = "INVALID_REQUEST_BODY"

	CodeInvalidPersonalInfo          = "INVALID_PERSONAL_INFO"
	CodeInvalidPersonalInfoEmail     = "INVALID_PERSONAL_INFO_EMAIL"
	CodeInvalidPersonalInfoFullName  = "INVALID_PERSONAL_INFO_FULL_NAME"
	CodeInvalidPersonalInfoPhone     = "INVALID_PERSONAL_INFO_PHONE"
	CodeInvalidPersonalInfoBirthDate = "INVALID_PERSONAL_INFO_BIRTH_DATE"

	CodeNoGuestEthAddress  = "NO_GUEST_ETH_ADDRESS"
	CodeInvalidRoomType    = "INVALID_ROOM_TYPE"
	CodeInvalidPaymentType = "INVALID_PAYMENT_TYPE"
	CodeFromOutOfRange     = "FROM_OUT_OF_RANGE"
	CodeToOutOfRange       = "TO_OUT_OF_RANGE"

	CodeDuplicateBooking = "DUPLICATE_BOOKING"
	CodeBookingNotFound  = "BOOKING_NOT_FOUND"
	CodeInvalidSpotPrice = "INVALID_SPOT_PRICE"
	CodeInternal         = "INTERNAL_ERROR"
)
