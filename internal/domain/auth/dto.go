package auth

import (
	"strings"
	"time"

	"github.com/workforce-hub/attendance-backend/internal/domain/user"
	"github.com/workforce-hub/attendance-backend/internal/pkg/validator"
)

type SignUpRequest struct {
	UserName        string `json:"user_name" validate:"required,max=100"`
	Email           string `json:"email" validate:"required,email,max=255"`
	Password        string `json:"password" validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

func (r *SignUpRequest) Validate() error {
	r.UserName = strings.TrimSpace(r.UserName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	return validator.Struct(r)
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *SignInRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	return validator.Struct(r)
}

// SignOutRequest identifies the presented access token so it can be revoked until it expires.
type SignOutRequest struct {
	Token     string
	ExpiresAt time.Time
}

type UserResponse struct {
	ID              string    `json:"id"`
	UserName        string    `json:"user_name"`
	Email           string    `json:"email"`
	Role            user.Role `json:"role"`
	ProfilePhotoURL *string   `json:"profile_photo_url,omitempty"`
}

type TokenResponse struct {
	AccessToken          string       `json:"access_token"`
	AccessTokenExpiresIn int64        `json:"access_token_expires_in"`
	User                 UserResponse `json:"user"`
}
