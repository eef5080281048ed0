package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
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
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrNoCompany):
		Forbidden(w, "User is not attached to a company")
	case errors.Is(err, jwt.ErrMissingCompanyClaim),
		errors.Is(err, user.ErrCompanyIDRequired):
		Forbidden(w, "Company context required")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrManagerAccessRequired),
		errors.Is(err, user.ErrOwnerAccessRequired),
		errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, dashboard.ErrEmployeeNotInRoster):
		NotFound(w, "Employee not found in the active roster")

	// Schedule domain errors
	case errors.Is(err, schedule.ErrWorkScheduleNotFound):
		NotFound(w, "Work schedule not found")
	case errors.Is(err, schedule.ErrWorkScheduleNameExists):
		Conflict(w, "Work schedule name already exists")
	case errors.Is(err, schedule.ErrBreakOutsideShift):
		BadRequest(w, err.Error(), map[string]string{"break_start": err.Error()})
	case errors.Is(err, schedule.ErrInvalidClockTime):
		BadRequest(w, err.Error(), nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrInvalidTimeRange):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
