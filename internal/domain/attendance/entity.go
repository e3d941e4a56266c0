package attendance

import (
	"time"
)

// Status of a day's attendance record.
const (
	StatusInProgress = "in_progress" // checked in, no checkout yet
	StatusScored     = "scored"      // checked out against an assigned shift
	StatusUnscored   = "unscored"    // checked out with no shift assigned
	StatusDayOff     = "day_off"     // reassigned to a day off; hours zeroed, excluded from aggregation
)

// Attendance is one check-in/check-out pair for an employee on a work date.
// CheckIn and CheckOut are immutable once set; the derived fields below them
// are rewritten only by the scoring and reconciliation procedures.
type Attendance struct {
	ID           string
	EmployeeID   string
	CompanyID    string
	WorkDate     time.Time
	ShiftID      *string
	CheckIn      *time.Time
	CheckOut     *time.Time
	BreakMinutes int

	// Derived fields
	DelayMinutes      *int
	RegularHours      *float64
	OvertimeHours     *float64
	DelayScore        *float64
	WorkDurationScore *float64
	Punctuality       *float64
	FinalScore        *float64
	StatusLabel       *string

	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
	ShiftName    *string
}

// EmployeeRef identifies one employee within a company.
type EmployeeRef struct {
	CompanyID  string
	EmployeeID string
}

// TotalWorkedHours returns the recorded regular+overtime split, the value
// reconciliation reclassifies without re-deriving it from clock times.
func (a Attendance) TotalWorkedHours() float64 {
	var total float64
	if a.RegularHours != nil {
		total += *a.RegularHours
	}
	if a.OvertimeHours != nil {
		total += *a.OvertimeHours
	}
	return total
}
