package get_booking

import (
	"time"

	"github.com/m04kA/SMC-ChainBookingService/internal/service/bookings/models"
)

// PersonalInfoResponse расшифрованные персональные данные гостя.
// Пустые поля означают, что расшифровка не удалась
type PersonalInfoResponse struct {
	Email     string `json:"email,omitempty"`
	FullName  string `json:"fullName,omitempty"`
	Phone     string `json:"phone,omitempty"`
	BirthDate string `json:"birthDate,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                    int64                `json:"id"`
	BookingHash           string               `json:"bookingHash"`
	GuestEthAddress       string               `json:"guestEthAddress"`
	RoomType              string               `json:"roomType"`
	From                  int                  `json:"from"`
	To                    int                  `json:"to"`
	PaymentAmount         float64              `json:"paymentAmount"`
	PaymentType           string               `json:"paymentType"`
	PaymentTx             *string              `json:"paymentTx,omitempty"`
	Status                string               `json:"status"`
	PersonalInfo          PersonalInfoResponse `json:"personalInfo"`
	ConfirmationEmailSent bool                 `json:"confirmationEmailSent"`
	ChangesEmailSent      int64                `json:"changesEmailSent"`
	CreatedAt             string               `json:"createdAt"`
	UpdatedAt             string               `json:"updatedAt"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.BookingResponse) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		BookingHash:     resp.BookingHash,
		GuestEthAddress: resp.GuestEthAddress,
		RoomType:        string(resp.RoomType),
		From:            resp.From,
		To:              resp.To,
		PaymentAmount:   resp.PaymentAmount,
		PaymentType:     string(resp.PaymentType),
		PaymentTx:       resp.PaymentTx,
		Status:          string(resp.Status),
		PersonalInfo: PersonalInfoResponse{
			Email:     resp.PersonalInfo.Email,
			FullName:  resp.PersonalInfo.FullName,
			Phone:     resp.PersonalInfo.Phone,
			BirthDate: resp.PersonalInfo.BirthDate,
		},
		ConfirmationEmailSent: resp.ConfirmationEmailSent,
		ChangesEmailSent:      resp.ChangesEmailSent,
		CreatedAt:             resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:             resp.UpdatedAt.Format(time.RFC3339),
	}
}
