package create_booking

import (
	"github.com/m04kA/SMC-ChainBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-ChainBookingService/internal/usecase/create_booking"
)

// PersonalInfoRequest персональные данные гостя в HTTP запросе
type PersonalInfoRequest struct {
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
	Phone     string `json:"phone"`
	BirthDate string `json:"birthDate"` // "1990-04-01"
}

// CreateBookingRequest HTTP request model.
// bookingHash в запросе не принимается: генерируется сервером
type CreateBookingRequest struct {
	GuestEthAddress string               `json:"guestEthAddress"`
	RoomType        string               `json:"roomType"`
	From            int                  `json:"from"`
	To              int                  `json:"to"`
	PaymentType     string               `json:"paymentType"`
	PersonalInfo    *PersonalInfoRequest `json:"personalInfo"`
}

// BookingResponse HTTP response model.
// Персональные данные в ответ не попадают
type BookingResponse struct {
	ID                 int64   `json:"id"`
	BookingHash        string  `json:"bookingHash"`
	GuestEthAddress    string  `json:"guestEthAddress"`
	RoomType           string  `json:"roomType"`
	From               int     `json:"from"`
	To                 int     `json:"to"`
	PaymentAmount      float64 `json:"paymentAmount"`
	PaymentType        string  `json:"paymentType"`
	Status             string  `json:"status"`
	WeiPerNight        string  `json:"weiPerNight"`
	SignatureTimestamp int64   `json:"signatureTimestamp"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	req := &createBooking.Request{
		GuestEthAddress: r.GuestEthAddress,
		RoomType:        domain.RoomType(r.RoomType),
		From:            r.From,
		To:              r.To,
		PaymentType:     domain.PaymentType(r.PaymentType),
	}
	if r.PersonalInfo != nil {
		req.PersonalInfo = &domain.PersonalInfo{
			Email:     r.PersonalInfo.Email,
			FullName:  r.PersonalInfo.FullName,
			Phone:     r.PersonalInfo.Phone,
			BirthDate: r.PersonalInfo.BirthDate,
		}
	}
	return req
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:                 resp.ID,
		BookingHash:        resp.BookingHash,
		GuestEthAddress:    resp.GuestEthAddress,
		RoomType:           string(resp.RoomType),
		From:               resp.From,
		To:                 resp.To,
		PaymentAmount:      resp.PaymentAmount,
		PaymentType:        string(resp.PaymentType),
		Status:             string(resp.Status),
		WeiPerNight:        resp.WeiPerNight,
		SignatureTimestamp: resp.SignatureTimestamp,
	}
}
