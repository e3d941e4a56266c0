package shift

import "errors"

// Shift domain errors
var (
	ErrShiftNotFound      = errors.New("shift not found")
	ErrShiftNameExists    = errors.New("a shift with this name already exists")
	ErrInvalidShiftTimes  = errors.New("shift times must be valid HH:MM values")
	ErrAssignmentNotFound = errors.New("shift assignment not found")
	ErrInvalidRequestData = errors.New("invalid request data")
)
