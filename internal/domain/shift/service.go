package shift

import (
	"context"
)

// ShiftService defines business logic for the shift catalog and per-day
// assignments.
type ShiftService interface {
	CreateShift(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error)

	GetShift(ctx context.Context, id string) (ShiftResponse, error)

	ListShifts(ctx context.Context) (ListShiftsResponse, error)

	UpdateShift(ctx context.Context, req UpdateShiftRequest) (ShiftResponse, error)

	DeleteShift(ctx context.Context, id string) error

	// AssignShift sets the shift for one (employee, work date). When the day
	// already has recorded attendance the recorded hours are reclassified
	// against the new shift.
	AssignShift(ctx context.Context, req AssignShiftRequest) (AssignmentResponse, error)

	// SetDayOff marks a work date as non-working, clearing any shift and
	// zeroing recorded hours for that day.
	SetDayOff(ctx context.Context, req SetDayOffRequest) (AssignmentResponse, error)

	// BulkAssignMonth assigns one shift to every day of a month, reporting
	// per-day partial success rather than aborting on the first failure.
	BulkAssignMonth(ctx context.Context, req BulkAssignMonthRequest) (BulkAssignMonthResponse, error)

	ListAssignments(ctx context.Context, filter AssignmentFilter) ([]AssignmentResponse, error)
}
