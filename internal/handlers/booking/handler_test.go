package booking_test

import (
	"context"
	"encoding/json"
	"hotel/infras/otel/mocks"
	bookingMocks "hotel/internal/domains/booking/mocks"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/handlers/booking"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func newRouter(t *testing.T) (http.Handler, *bookingMocks.MockBookingService) {
	t.Helper()

	mockService := bookingMocks.NewMockBookingService(gomock.NewController(t))
	handler := booking.New(mockService, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router, mockService
}

func serve(t *testing.T, router http.Handler, method, path, body string) (int, envelope) {
	t.Helper()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(method, path, strings.NewReader(body)))

	var res envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))

	return recorder.Code, res
}

func TestHandler_CreateBooking(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		mock     func(mockService *bookingMocks.MockBookingService)
		wantCode int
		wantMsg  string
	}{
		{
			name: "created",
			body: `{"room_id":3,"check_in_date":"2030-05-01","check_out_date":"2030-05-04"}`,
			mock: func(mockService *bookingMocks.MockBookingService) {
				mockService.EXPECT().Create(gomock.Any(), dto.CreateBookingRequest{
					RoomID:       3,
					CheckInDate:  "2030-05-01",
					CheckOutDate: "2030-05-04",
				}).Return(dto.BookingResponse{ID: 11, BookingReference: "AB12CD34EF"}, nil)
			},
			wantCode: http.StatusOK,
			wantMsg:  dto.MsgBookingCreated,
		},
		{
			name:     "malformed date",
			body:     `{"room_id":3,"check_in_date":"01/05/2030","check_out_date":"2030-05-04"}`,
			mock:     func(*bookingMocks.MockBookingService) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing room",
			body:     `{"check_in_date":"2030-05-01","check_out_date":"2030-05-04"}`,
			mock:     func(*bookingMocks.MockBookingService) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "room already taken",
			body: `{"room_id":3,"check_in_date":"2030-05-01","check_out_date":"2030-05-04"}`,
			mock: func(mockService *bookingMocks.MockBookingService) {
				mockService.EXPECT().Create(gomock.Any(), gomock.Any()).
					Return(dto.BookingResponse{}, failure.InvalidState("Room not available for the selected dates"))
			},
			wantCode: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockService := newRouter(t)
			tt.mock(mockService)

			code, res := serve(t, router, http.MethodPost, "/bookings", tt.body)

			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantMsg, res.Message)
		})
	}
}

func TestHandler_UpdateBooking(t *testing.T) {
	router, mockService := newRouter(t)

	mockService.EXPECT().Update(gomock.Any(), dto.UpdateBookingRequest{
		ID:            42,
		BookingStatus: model.StatusCancelled,
	}).Return(dto.BookingResponse{ID: 42, BookingStatus: model.StatusCancelled}, nil)

	code, res := serve(t, router, http.MethodPatch, "/bookings/42", `{"id":7,"booking_status":"CANCELLED"}`)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, dto.MsgBookingUpdated, res.Message)
	assert.Contains(t, string(res.Data), model.StatusCancelled)
}

func TestHandler_GetBookingByReference(t *testing.T) {
	router, mockService := newRouter(t)

	mockService.EXPECT().FindByReference(gomock.Any(), "ZZZZZZZZZZ").
		Return(dto.BookingResponse{}, failure.NotFound("Booking with reference ZZZZZZZZZZ not found"))

	code, res := serve(t, router, http.MethodGet, "/bookings/reference/ZZZZZZZZZZ", "")

	assert.Equal(t, http.StatusNotFound, code)
	assert.NotEmpty(t, res.Error)
}

func TestHandler_GetBookingByReference_PassesCaller(t *testing.T) {
	router, mockService := newRouter(t)

	mockService.EXPECT().FindByReference(gomock.Any(), "AB12CD34EF").
		DoAndReturn(func(ctx context.Context, _ string) (dto.BookingResponse, error) {
			userID, ok := shared.UserIDFromContext(ctx)
			assert.True(t, ok)
			assert.Equal(t, int64(7), userID)
			assert.False(t, shared.IsAdmin(ctx))

			return dto.BookingResponse{}, failure.NotFound("Booking with ref=AB12CD34EF not found")
		})

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "7")
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleGuest)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequestWithContext(ctx, http.MethodGet, "/bookings/reference/AB12CD34EF", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestHandler_GetBookings(t *testing.T) {
	router, mockService := newRouter(t)

	mockService.EXPECT().GetAll(gomock.Any(), gDto.QueryParams{Page: 2, Limit: 5}).Return(dto.GetBookingsResponse{}, nil)

	code, _ := serve(t, router, http.MethodGet, "/bookings?page=2&limit=5", "")

	assert.Equal(t, http.StatusOK, code)
}
