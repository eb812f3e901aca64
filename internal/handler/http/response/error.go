package response

import (
	"errors"
	"net/http"

	"github.com/hadirly/attendance-backend-go/internal/domain/attendance"
	"github.com/hadirly/attendance-backend-go/internal/domain/auth"
	"github.com/hadirly/attendance-backend-go/internal/domain/user"
	"github.com/hadirly/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Auth domain errors
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid office ID or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token has been revoked")
	case errors.Is(err, auth.ErrResetTokenInvalid):
		BadRequest(w, "Reset token is invalid or expired", nil)

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrOfficeIDExists):
		Conflict(w, "Office ID already registered")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "Account is deactivated")
	case errors.Is(err, user.ErrTeamLeadAccessRequired):
		Forbidden(w, "Team lead access required")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrHomeLocationNotSet):
		BadRequest(w, "Home location is not set", nil)
	case errors.Is(err, attendance.ErrOutsideLateWindow):
		Conflict(w, "Late requests can only be submitted after the check-in window closes")
	case errors.Is(err, attendance.ErrDuplicateLateRequest):
		Conflict(w, "A pending late request already exists for today")
	case errors.Is(err, attendance.ErrApproverRoleRequired):
		Forbidden(w, "Team lead access required")
	case errors.Is(err, attendance.ErrRequestNotFound):
		NotFound(w, "Late request not found or already resolved")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
