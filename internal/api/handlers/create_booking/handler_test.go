package create_booking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ChainBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ChainBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-ChainBookingService/internal/usecase/create_booking"
)

type fakeUseCase struct {
	resp *createBooking.Response
	err  error
}

func (u *fakeUseCase) Execute(_ context.Context, _ *createBooking.Request) (*createBooking.Response, error) {
	return u.resp, u.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(t *testing.T, uc CreateBookingUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(rec, req)
	return rec
}

const validBody = `{
	"guestEthAddress": "0x00a329c0648769a73afac7f9381e08fb43dbea72",
	"roomType": "double",
	"from": 1,
	"to": 3,
	"paymentType": "eth",
	"personalInfo": {
		"email": "guest@example.com",
		"fullName": "Jane Doe",
		"phone": "+49301234567",
		"birthDate": "1990-04-01"
	}
}`

func TestHandleCreated(t *testing.T) {
	uc := &fakeUseCase{resp: &createBooking.Response{
		ID:                 1,
		BookingHash:        "0xabc",
		GuestEthAddress:    "0x00a329c0648769a73afac7f9381e08fb43dbea72",
		RoomType:           domain.RoomTypeDouble,
		From:               1,
		To:                 3,
		PaymentAmount:      0.1201,
		PaymentType:        domain.PaymentTypeEth,
		Status:             domain.StatusPending,
		WeiPerNight:        "40000000000000000",
		SignatureTimestamp: 1699999700,
	}}

	rec := doRequest(t, uc, validBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "0xabc", resp.BookingHash)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "40000000000000000", resp.WeiPerNight)
}

func TestHandleInvalidBody(t *testing.T) {
	rec := doRequest(t, &fakeUseCase{}, "{not json")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, handlers.CodeInvalidRequestBody, resp.Code)
}

// Каждому экспортируемому sentinel соответствует фиксированная пара
// (HTTP статус, машинный код)
func TestHandleErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"personal info", createBooking.ErrInvalidPersonalInfo, http.StatusBadRequest, handlers.CodeInvalidPersonalInfo},
		{"email", createBooking.ErrInvalidPersonalInfoEmail, http.StatusBadRequest, handlers.CodeInvalidPersonalInfoEmail},
		{"full name", createBooking.ErrInvalidPersonalInfoFullName, http.StatusBadRequest, handlers.CodeInvalidPersonalInfoFullName},
		{"phone", createBooking.ErrInvalidPersonalInfoPhone, http.StatusBadRequest, handlers.CodeInvalidPersonalInfoPhone},
		{"birth date", createBooking.ErrInvalidPersonalInfoBirthDate, http.StatusBadRequest, handlers.CodeInvalidPersonalInfoBirthDate},
		{"guest address", createBooking.ErrNoGuestEthAddress, http.StatusBadRequest, handlers.CodeNoGuestEthAddress},
		{"room type", createBooking.ErrInvalidRoomType, http.StatusBadRequest, handlers.CodeInvalidRoomType},
		{"payment type", createBooking.ErrInvalidPaymentType, http.StatusBadRequest, handlers.CodeInvalidPaymentType},
		{"from", createBooking.ErrFromOutOfRange, http.StatusBadRequest, handlers.CodeFromOutOfRange},
		{"to", createBooking.ErrToOutOfRange, http.StatusBadRequest, handlers.CodeToOutOfRange},
		{"duplicate", createBooking.ErrDuplicateBooking, http.StatusConflict, handlers.CodeDuplicateBooking},
		{"spot price", createBooking.ErrInvalidSpotPrice, http.StatusServiceUnavailable, handlers.CodeInvalidSpotPrice},
		{"internal", createBooking.ErrInternal, http.StatusInternalServerError, handlers.CodeInternal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, &fakeUseCase{err: tc.err}, validBody)
			assert.Equal(t, tc.wantStatus, rec.Code)

			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tc.wantCode, resp.Code)
		})
	}
}
