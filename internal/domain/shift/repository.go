package shift

import (
	"context"
	"time"
)

// ShiftRepository defines data access methods for shift definitions.
// All methods include companyID to prevent cross-company data access.
type ShiftRepository interface {
	Create(ctx context.Context, shift Shift) (Shift, error)

	GetByID(ctx context.Context, id string, companyID string) (Shift, error)

	List(ctx context.Context, companyID string) ([]Shift, int64, error)

	Update(ctx context.Context, req UpdateShiftRequest, companyID string) (Shift, error)

	SoftDelete(ctx context.Context, id string, companyID string) error
}

// AssignmentRepository defines data access methods for per-day shift
// assignments. (employee, work date) is unique; writes are upserts.
type AssignmentRepository interface {
	// Upsert creates or replaces the assignment for (employee, work date).
	Upsert(ctx context.Context, assignment Assignment) (Assignment, error)

	GetByEmployeeAndDate(ctx context.Context, employeeID string, workDate time.Time, companyID string) (*Assignment, error)

	ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time, companyID string) ([]Assignment, error)
}
