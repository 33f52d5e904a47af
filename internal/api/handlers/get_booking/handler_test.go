package get_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ChainBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-ChainBookingService/internal/domain"
	"github.com/m04kA/SMC-ChainBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-ChainBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ChainBookingService/pkg/ptr"
)

type fakeService struct {
	resp *models.BookingResponse
	err  error
}

func (s *fakeService) GetByHash(_ context.Context, _ string) (*models.BookingResponse, error) {
	return s.resp, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(t *testing.T, svc BookingsService, hash string) *httptest.ResponseRecorder {
	t.Helper()
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/bookings/{bookingHash}", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/"+hash, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleOK(t *testing.T) {
	svc := &fakeService{resp: &models.BookingResponse{
		ID:          3,
		BookingHash: "0xabc",
		RoomType:    domain.RoomTypeKing,
		Status:      domain.StatusApproved,
		PaymentTx:   ptr.Ptr("0xfeedbeef"),
		PersonalInfo: domain.PersonalInfo{
			Email: "guest@example.com",
		},
		ConfirmationEmailSent: true,
		CreatedAt:             time.Unix(1700000000, 0).UTC(),
		UpdatedAt:             time.Unix(1700000100, 0).UTC(),
	}}

	rec := doRequest(t, svc, "0xabc")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "0xabc", resp.BookingHash)
	assert.Equal(t, "approved", resp.Status)
	assert.Equal(t, "guest@example.com", resp.PersonalInfo.Email)
	assert.True(t, resp.ConfirmationEmailSent)
	require.NotNil(t, resp.PaymentTx)
	assert.Equal(t, "0xfeedbeef", *resp.PaymentTx)
}

func TestHandleNotFound(t *testing.T) {
	rec := doRequest(t, &fakeService{err: bookings.ErrBookingNotFound}, "0xmissing")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, handlers.CodeBookingNotFound, resp.Code)
}

func TestHandleInternalError(t *testing.T) {
	rec := doRequest(t, &fakeService{err: bookings.ErrInternal}, "0xabc")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
