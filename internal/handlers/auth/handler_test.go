package auth_test

import (
	"encoding/json"
	"hotel/infras/otel/mocks"
	authMocks "hotel/internal/domains/auth/mocks"
	"hotel/internal/domains/auth/model/dto"
	"hotel/internal/handlers/auth"
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

func newRouter(t *testing.T) (http.Handler, *authMocks.MockAuthService) {
	t.Helper()

	mockService := authMocks.NewMockAuthService(gomock.NewController(t))
	handler := auth.New(mockService, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router, mockService
}

func serve(t *testing.T, router http.Handler, path, body string) (int, envelope) {
	t.Helper()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, path, strings.NewReader(body)))

	var res envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))

	return recorder.Code, res
}

func TestHandler_Register(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		mock      func(mockService *authMocks.MockAuthService)
		wantCode  int
		wantMsg   string
		wantError string
	}{
		{
			name: "registered",
			body: `{"first_name":"Ada","last_name":"Lovelace","email":"ada@hotel.test","phone_number":"+621234","password":"s3cretpass"}`,
			mock: func(mockService *authMocks.MockAuthService) {
				mockService.EXPECT().Register(gomock.Any(), dto.RegisterRequest{
					FirstName:   "Ada",
					LastName:    "Lovelace",
					Email:       "ada@hotel.test",
					PhoneNumber: "+621234",
					Password:    "s3cretpass",
				}).Return(dto.RegisterResponse{ID: 1, Email: "ada@hotel.test", Role: "GUEST"}, nil)
			},
			wantCode: http.StatusCreated,
			wantMsg:  auth.MsgUserRegistered,
		},
		{
			name:      "invalid email",
			body:      `{"first_name":"Ada","last_name":"Lovelace","email":"ada","phone_number":"+621234","password":"s3cretpass"}`,
			mock:      func(*authMocks.MockAuthService) {},
			wantCode:  http.StatusBadRequest,
			wantError: "email",
		},
		{
			name:      "unknown role",
			body:      `{"first_name":"Ada","last_name":"Lovelace","email":"ada@hotel.test","phone_number":"+621234","password":"s3cretpass","role":"OWNER"}`,
			mock:      func(*authMocks.MockAuthService) {},
			wantCode:  http.StatusBadRequest,
			wantError: "role",
		},
		{
			name: "email taken",
			body: `{"first_name":"Ada","last_name":"Lovelace","email":"ada@hotel.test","phone_number":"+621234","password":"s3cretpass"}`,
			mock: func(mockService *authMocks.MockAuthService) {
				mockService.EXPECT().Register(gomock.Any(), gomock.Any()).
					Return(dto.RegisterResponse{}, failure.BadRequestFromString("email already registered"))
			},
			wantCode:  http.StatusBadRequest,
			wantError: "email already registered",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockService := newRouter(t)
			tt.mock(mockService)

			code, res := serve(t, router, "/auth/register", tt.body)

			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantMsg, res.Message)
			assert.Contains(t, res.Error, tt.wantError)
		})
	}
}

func TestHandler_Login(t *testing.T) {
	router, mockService := newRouter(t)

	mockService.EXPECT().Login(gomock.Any(), dto.LoginRequest{Email: "ada@hotel.test", Password: "wrong"}).
		Return(dto.LoginResponse{}, failure.Unauthorized("invalid email or password"))
	mockService.EXPECT().Login(gomock.Any(), dto.LoginRequest{Email: "ada@hotel.test", Password: "s3cretpass"}).
		Return(dto.LoginResponse{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer", ExpiresIn: 900, Role: "GUEST"}, nil)

	code, res := serve(t, router, "/auth/login", `{"email":"ada@hotel.test","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "invalid email or password", res.Error)

	code, res = serve(t, router, "/auth/login", `{"email":"ada@hotel.test","password":"s3cretpass"}`)
	require.Equal(t, http.StatusOK, code)

	var login dto.LoginResponse
	require.NoError(t, json.Unmarshal(res.Data, &login))
	assert.Equal(t, "access", login.AccessToken)
	assert.Equal(t, int64(900), login.ExpiresIn)
}

func TestHandler_RefreshToken_MissingToken(t *testing.T) {
	router, _ := newRouter(t)

	code, res := serve(t, router, "/auth/refresh-token", `{}`)

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, res.Error, "refresh_token")
}

func TestHandler_ChangePassword(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		mock     func(mockService *authMocks.MockAuthService)
		wantCode int
		wantMsg  string
	}{
		{
			name: "changed",
			body: `{"current_password":"old-password","new_password":"new-password"}`,
			mock: func(mockService *authMocks.MockAuthService) {
				mockService.EXPECT().ChangePassword(gomock.Any(), dto.ChangePasswordRequest{
					CurrentPassword: "old-password",
					NewPassword:     "new-password",
				}).Return(nil)
			},
			wantCode: http.StatusOK,
			wantMsg:  auth.MsgPasswordChanged,
		},
		{
			name:     "same password",
			body:     `{"current_password":"old-password","new_password":"old-password"}`,
			mock:     func(*authMocks.MockAuthService) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "wrong current password",
			body: `{"current_password":"guess-password","new_password":"new-password"}`,
			mock: func(mockService *authMocks.MockAuthService) {
				mockService.EXPECT().ChangePassword(gomock.Any(), gomock.Any()).
					Return(failure.Unauthorized("current password is incorrect"))
			},
			wantCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockService := newRouter(t)
			tt.mock(mockService)

			code, res := serve(t, router, "/auth/change-password", tt.body)

			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantMsg, res.Message)
		})
	}
}
