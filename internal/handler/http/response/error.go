package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/validator"
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
	// Token errors
	case errors.Is(err, jwt.ErrInvalidToken),
		errors.Is(err, jwt.ErrMissingClaims),
		errors.Is(err, jwt.ErrInvalidRole):
		Unauthorized(w, err.Error())
	case errors.Is(err, jwt.ErrAdminRequired):
		Forbidden(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeNameExists):
		Conflict(w, "An employee with this name already exists")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrEmployeeRequired):
		Forbidden(w, err.Error())
	case errors.Is(err, attendance.ErrAlreadyClockedIn),
		errors.Is(err, attendance.ErrAlreadyClockedOut),
		errors.Is(err, attendance.ErrBreakAlreadyStarted),
		errors.Is(err, attendance.ErrBreakAlreadyEnded):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrNotClockedIn),
		errors.Is(err, attendance.ErrBreakNotStarted),
		errors.Is(err, attendance.ErrPhotoRequired),
		errors.Is(err, attendance.ErrInvalidPhoto):
		BadRequest(w, err.Error(), nil)

	// Report and time accounting errors
	case errors.Is(err, report.ErrNoDataFound):
		NotFound(w, "No data found for the specified criteria")
	case errors.Is(err, report.ErrInvalidDateRange),
		errors.Is(err, timesheet.ErrInvalidPeriod),
		errors.Is(err, timesheet.ErrInvalidSettings):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("unhandled error", slog.Any("error", err))
		InternalServerError(w, "An unexpected error occurred")
	}
}
