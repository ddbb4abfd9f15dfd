package auth

import (
	"context"
	"hotel/infras/otel"
	"hotel/internal/domains/auth/model/dto"
	"hotel/internal/domains/auth/service"
	"hotel/shared/constant"
	"hotel/shared/validator"
	"hotel/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	MsgUserRegistered  = "User registered successfully"
	MsgPasswordChanged = "Password changed successfully"
)

type Handler struct {
	service service.Auth
	otel    otel.Otel
}

func New(service service.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", handler.Register)
		r.Post("/login", handler.Login)
		r.Post("/refresh-token", handler.RefreshToken)
		r.Post("/change-password", handler.ChangePassword)
	})
}

// endpoint is one JSON-in JSON-out auth action.
type endpoint[Req any] struct {
	name    string
	call    func(ctx context.Context, req Req) (any, error)
	respond func(w http.ResponseWriter, res any)
}

func serve[Req any](handler *Handler, w http.ResponseWriter, r *http.Request, e endpoint[Req]) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+"."+e.name)
	defer scope.End()

	var req Req

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("action", e.name).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := e.call(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("action", e.name).Msg("auth request failed")

		response.WithError(w, err)

		return
	}

	scope.AddEvent(e.name + " succeeded")

	e.respond(w, res)
}

// Register creates a guest or admin account.
// @Summary Register a new user
// @Description Register a new user with the provided details.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Register Request"
// @Success 201 {object} response.MessageData[dto.RegisterResponse] "User registered successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/register [post]
func (handler *Handler) Register(w http.ResponseWriter, r *http.Request) {
	serve(handler, w, r, endpoint[dto.RegisterRequest]{
		name: "Register",
		call: func(ctx context.Context, req dto.RegisterRequest) (any, error) {
			return handler.service.Register(ctx, req) //nolint:wrapcheck
		},
		respond: func(w http.ResponseWriter, res any) {
			response.WithMessageAndJSON(w, http.StatusCreated, MsgUserRegistered, res)
		},
	})
}

// Login exchanges credentials for a token pair.
// @Summary Login a user
// @Description Login a user with the provided credentials.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} response.Data[dto.LoginResponse] "User logged in successfully"
// @Failure 401 {object} response.Error
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/login [post]
func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	serve(handler, w, r, endpoint[dto.LoginRequest]{
		name: "Login",
		call: func(ctx context.Context, req dto.LoginRequest) (any, error) {
			return handler.service.Login(ctx, req) //nolint:wrapcheck
		},
		respond: ok,
	})
}

// RefreshToken issues a new pair from a refresh token.
// @Summary Refresh user token
// @Description Refresh user token using the provided refresh token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh Token Request"
// @Success 200 {object} response.Data[dto.RefreshTokenResponse] "Token refreshed successfully"
// @Failure 401 {object} response.Error
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/refresh-token [post]
func (handler *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	serve(handler, w, r, endpoint[dto.RefreshTokenRequest]{
		name: "RefreshToken",
		call: func(ctx context.Context, req dto.RefreshTokenRequest) (any, error) {
			return handler.service.RefreshToken(ctx, req) //nolint:wrapcheck
		},
		respond: ok,
	})
}

// ChangePassword replaces the password of the authenticated user.
// @Summary Change password
// @Description Change the password of the current user after checking the current one.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "Change Password Request"
// @Success 200 {object} response.Message "Password changed successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/change-password [post]
// @Security BearerAuth
func (handler *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	serve(handler, w, r, endpoint[dto.ChangePasswordRequest]{
		name: "ChangePassword",
		call: func(ctx context.Context, req dto.ChangePasswordRequest) (any, error) {
			return nil, handler.service.ChangePassword(ctx, req) //nolint:wrapcheck
		},
		respond: func(w http.ResponseWriter, _ any) {
			response.WithMessage(w, http.StatusOK, MsgPasswordChanged)
		},
	})
}

func ok(w http.ResponseWriter, res any) {
	response.WithJSON(w, http.StatusOK, res)
}
