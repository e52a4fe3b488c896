package response

import (
	"errors"
	"net/http"

	"github.com/attendly/ems-backend-go/internal/domain/attendance"
	"github.com/attendly/ems-backend-go/internal/domain/auth"
	"github.com/attendly/ems-backend-go/internal/domain/employee"
	"github.com/attendly/ems-backend-go/internal/domain/report"
	"github.com/attendly/ems-backend-go/internal/domain/user"
	"github.com/attendly/ems-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
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
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenMismatch):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrRefreshTokenCookieNotFound),
		errors.Is(err, auth.ErrRefreshTokenCookieEmpty):
		Unauthorized(w, "Refresh token missing")
	case errors.Is(err, auth.ErrEmailAlreadyExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, auth.ErrResetTokenInvalid):
		BadRequest(w, "Reset token is invalid or expired", nil)

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "Account is deactivated")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")
	case errors.Is(err, user.ErrRoleNotAllowed):
		Forbidden(w, "Role assignment not allowed")
	case errors.Is(err, user.ErrProfileAccessDenied):
		Forbidden(w, "Cannot modify another user's profile")
	case errors.Is(err, user.ErrRoleChangeDenied):
		Forbidden(w, "Cannot change own role")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrIdentifierExists):
		Conflict(w, "Employee identifier already exists")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrNoClockInToday):
		NotFound(w, "No clock-in recorded for today")

	// Report domain errors
	case errors.Is(err, report.ErrUnsupportedFormat):
		BadRequest(w, "Unsupported report format", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
