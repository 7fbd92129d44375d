// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yomira-auth/internal/platform/apperr"
	"github.com/taibuivan/yomira-auth/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-auth/internal/platform/middleware"
	requestutil "github.com/taibuivan/yomira-auth/internal/platform/request"
	"github.com/taibuivan/yomira-auth/internal/platform/respond"
)

// MessageRegistered is the body of a successful registration.
const MessageRegistered = "User successfully registered"

// # Definitions & Constructors

// Handler implements the account HTTP endpoints.
//
// The handler is a thin translation layer: it decodes payloads, calls [Service]
// and collapses errors that must not be distinguishable by clients.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with the account routes.
//
// # Endpoints
//   - POST /register : Creates a new account.
//   - POST /login    : Verifies credentials and returns a bearer token.
//   - GET  /getInfo  : Resolves the bearer token to the account profile.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.With(middleware.RequireBearer).Get("/getInfo", handler.getInfo)

	return router
}

// # Request Payloads

type registerRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
	Username string `json:"username" validate:"required"`
	Name     string `json:"name"     validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// # Response Payloads

type messageResponse struct {
	Message string `json:"message"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}

/*
Register handles the creation of a new user account.

POST /users/register

Request:
  - Body: registerRequest (email, password, username, name)

Response:
  - 201: messageResponse
  - 400: Malformed JSON or invalid field
  - 409: Email already registered
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeAndValidate(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err := handler.authService.Register(request.Context(), RegisterInput{
		Email:    input.Email,
		Password: input.Password,
		Username: input.Username,
		Name:     input.Name,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, messageResponse{Message: MessageRegistered})
}

/*
Login authenticates a user and issues a bearer token.

POST /users/login

Description: Unknown email and wrong password produce the same 401 body.

Request:
  - Body: loginRequest (email, password)

Response:
  - 200: loginResponse
  - 400: Malformed JSON or invalid email
  - 401: Invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeAndValidate(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) || apperr.IsKind(err, apperr.KindUnauthorized) {
			err = apperr.Unauthorized(MessageInvalidCredentials)
		}
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, loginResponse{
		Token:     result.Token,
		TokenType: TokenTypeBearer,
		ExpiresAt: result.ExpiresAt.UTC(),
	})
}

/*
GetInfo returns the profile of the token owner.

GET /users/getInfo

Request:
  - Header: Authorization: Bearer <token>

Response:
  - 200: Profile
  - 401: Missing, invalid or expired token, or the account no longer exists
*/
func (handler *Handler) getInfo(writer http.ResponseWriter, request *http.Request) {
	token, _ := ctxutil.GetBearerToken(request.Context())

	profile, err := handler.authService.ResolveSession(request.Context(), token)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) || apperr.IsKind(err, apperr.KindUnauthorized) {
			err = apperr.Unauthorized(MessageInvalidToken)
		}
		respond.Error(writer, request, err)
		return
	}

	ctxutil.GetLogger(request.Context()).DebugContext(request.Context(), "session_resolved",
		slog.String("user_id", profile.ID),
	)

	respond.OK(writer, profile)
}
