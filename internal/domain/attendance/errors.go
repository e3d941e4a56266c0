package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors
	ErrAlreadyCheckedIn = errors.New("you have already checked in today")
	ErrDayOff           = errors.New("this date is marked as a day off")
	ErrNotCheckedIn     = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut = errors.New("you have already checked out")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrInvalidRequestData = errors.New("invalid request data")
	ErrUnauthorized       = errors.New("unauthorized to access this attendance record")

	// ErrAttendanceConflict signals a lost optimistic-concurrency race on the
	// derived fields; the caller should re-read and retry.
	ErrAttendanceConflict = errors.New("attendance record was modified concurrently")
)
