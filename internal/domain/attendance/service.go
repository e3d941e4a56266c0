package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn opens the employee's attendance record for the work date and
	// records the delay against the assigned shift.
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut closes the open record, runs the performance calculator and
	// refreshes the month summary.
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)

	// RecordBreak accumulates break minutes on the open record. Break time
	// does not affect the per-day score, only the month-level netting.
	RecordBreak(ctx context.Context, req RecordBreakRequest) (AttendanceResponse, error)

	// GetMyAttendance retrieves attendance records for the authenticated employee
	GetMyAttendance(ctx context.Context, filter MyAttendanceFilter) (ListAttendanceResponse, error)

	// ListAttendance retrieves attendance records with filters (admin)
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// GetAttendance retrieves a single attendance record by ID
	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)
}
