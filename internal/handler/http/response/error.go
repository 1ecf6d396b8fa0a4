package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/workforce-hub/attendance-backend/internal/domain/attendance"
	"github.com/workforce-hub/attendance-backend/internal/domain/auth"
	"github.com/workforce-hub/attendance-backend/internal/domain/user"
	"github.com/workforce-hub/attendance-backend/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrAccountInactive):
		Forbidden(w, "Account is inactive")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyPunchedIn):
		BadRequest(w, "You are already punched in", nil)
	case errors.Is(err, attendance.ErrAlreadyPunchedOut):
		BadRequest(w, "You are already punched out", nil)
	case errors.Is(err, attendance.ErrNotPunchedIn):
		BadRequest(w, "You have not punched in yet", nil)
	case errors.Is(err, attendance.ErrInvalidDateRange):
		BadRequest(w, "Invalid date range provided", nil)
	case errors.Is(err, attendance.ErrDuplicatePunch):
		Conflict(w, "A punch record already exists for this day")
	case errors.Is(err, attendance.ErrRequestNotFound):
		NotFound(w, "Request not found or already processed")

	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
