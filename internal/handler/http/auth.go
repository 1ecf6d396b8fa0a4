package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/workforce-hub/attendance-backend/internal/domain/auth"
	"github.com/workforce-hub/attendance-backend/internal/handler/http/response"
)

type AuthHandler interface {
	SignUp(w http.ResponseWriter, r *http.Request)
	SignIn(w http.ResponseWriter, r *http.Request)
	SignOut(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService auth.AuthService
}

func NewAuthHandler(authService auth.AuthService) AuthHandler {
	return &AuthHandlerImpl{
		authService: authService,
	}
}

// SignUp implements AuthHandler.
func (a *AuthHandlerImpl) SignUp(w http.ResponseWriter, r *http.Request) {
	var req auth.SignUpRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SignUp decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	tokenResponse, err := a.authService.SignUp(r.Context(), req)
	if err != nil {
		slog.Error("SignUp service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("User registered", "user_id", tokenResponse.User.ID)
	response.Created(w, "User registered successfully", tokenResponse)
}

// SignIn implements AuthHandler.
func (a *AuthHandlerImpl) SignIn(w http.ResponseWriter, r *http.Request) {
	var req auth.SignInRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SignIn decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	tokenResponse, err := a.authService.SignIn(r.Context(), req)
	if err != nil {
		slog.Error("SignIn service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("User signed in", "user_id", tokenResponse.User.ID)
	response.SuccessWithMessage(w, "User signed in successfully", tokenResponse)
}

// SignOut implements AuthHandler. The presented bearer token stays revoked until it expires.
func (a *AuthHandlerImpl) SignOut(w http.ResponseWriter, r *http.Request) {
	token, _, err := jwtauth.FromContext(r.Context())
	if err != nil || token == nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	expiresAt := token.Expiration()
	if expiresAt.IsZero() {
		expiresAt = time.Now().Add(24 * time.Hour)
	}

	err = a.authService.SignOut(r.Context(), auth.SignOutRequest{
		Token:     jwtauth.TokenFromHeader(r),
		ExpiresAt: expiresAt,
	})
	if err != nil {
		slog.Error("SignOut service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User signed out successfully", nil)
}
