package middleware

import (
	"context"

	"github.com/go-chi/jwtauth/v5"
)

// UserIDFromContext returns the user_id claim of the verified token, or "" when absent.
func UserIDFromContext(ctx context.Context) string {
	_, claims, _ := jwtauth.FromContext(ctx)
	userID, _ := claims["user_id"].(string)
	return userID
}
