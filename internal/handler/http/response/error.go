package response

import (
	"errors"
	"net/http"

	"github.com/shiftpulse/shiftpulse-backend-go/internal/domain/attendance"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/domain/notification"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/domain/performance"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/domain/shift"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrShiftNameExists):
		Conflict(w, "Shift name already exists")
	case errors.Is(err, shift.ErrInvalidShiftTimes):
		BadRequest(w, "Invalid shift times", nil)
	case errors.Is(err, shift.ErrAssignmentNotFound):
		NotFound(w, "Shift assignment not found")
	case errors.Is(err, shift.ErrInvalidRequestData):
		BadRequest(w, "Invalid request data", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in for this date")
	case errors.Is(err, attendance.ErrDayOff):
		Conflict(w, "Cannot check in on a day off")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Conflict(w, "No open attendance session")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAttendanceConflict):
		Conflict(w, "Attendance record was modified concurrently, retry the operation")
	case errors.Is(err, attendance.ErrUnauthorized):
		Forbidden(w, "Not allowed to access this attendance record")
	case errors.Is(err, attendance.ErrInvalidRequestData):
		BadRequest(w, "Invalid request data", nil)

	// Performance domain errors
	case errors.Is(err, performance.ErrSummaryNotFound):
		NotFound(w, "Monthly summary not found")
	case errors.Is(err, performance.ErrNotScorable):
		BadRequest(w, "Attendance record cannot be scored", nil)
	case errors.Is(err, performance.ErrDataInconsistency):
		Conflict(w, "Stored hours are inconsistent with clock times")

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
