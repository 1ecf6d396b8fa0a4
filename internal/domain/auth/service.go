package auth

import (
	"context"
)

type AuthService interface {
	SignUp(ctx context.Context, req SignUpRequest) (TokenResponse, error)
	SignIn(ctx context.Context, req SignInRequest) (TokenResponse, error)
	SignOut(ctx context.Context, req SignOutRequest) error
}
