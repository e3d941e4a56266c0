package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// All methods include companyID to prevent cross-company data access.
type AttendanceRepository interface {
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string, companyID string) (Attendance, error)

	// GetOpenSession returns the employee's most recent record without a
	// checkout.
	GetOpenSession(ctx context.Context, employeeID string, companyID string) (Attendance, error)

	HasCheckedIn(ctx context.Context, employeeID string, workDate time.Time, companyID string) (bool, error)

	// UpdateDerived rewrites the derived fields of a record, guarded by the
	// updated_at value the caller last read. Returns ErrAttendanceConflict
	// when another writer got there first.
	UpdateDerived(ctx context.Context, att Attendance, expectedUpdatedAt time.Time) (Attendance, error)

	// SetCheckOut records the checkout time once; the raw clock times are
	// never rewritten afterwards.
	SetCheckOut(ctx context.Context, id string, companyID string, checkOut time.Time) error

	AddBreakMinutes(ctx context.Context, id string, companyID string, minutes int) error

	List(ctx context.Context, filter AttendanceFilter, companyID string) ([]Attendance, int64, error)

	GetMyAttendance(ctx context.Context, employeeID string, filter MyAttendanceFilter, companyID string) ([]Attendance, int64, error)

	// ListByEmployeeAndRange returns every record in [start, end] ordered by
	// work date, for aggregation and recalculation.
	ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time, companyID string) ([]Attendance, error)

	// ListByRange returns every record in [start, end] for a company,
	// optionally restricted to one employee.
	ListByRange(ctx context.Context, companyID string, start, end time.Time, employeeID *string) ([]Attendance, error)

	// ListActiveEmployees returns every (company, employee) pair with at
	// least one record in [start, end], across all companies. Used by the
	// summary refresh job.
	ListActiveEmployees(ctx context.Context, start, end time.Time) ([]EmployeeRef, error)
}
