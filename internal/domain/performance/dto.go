package performance

import (
	"github.com/shiftpulse/shiftpulse-backend-go/internal/pkg/validator"
)

// ========================================
// RECONCILIATION DTOs
// ========================================

// ReassignShiftRequest retroactively changes the shift (or day-off flag)
// for an already-recorded attendance day.
type ReassignShiftRequest struct {
	AttendanceID string  `json:"attendance_id"`
	ShiftID      *string `json:"shift_id"`
	IsDayOff     bool    `json:"is_day_off"`
}

func (r *ReassignShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AttendanceID) {
		errs = append(errs, validator.ValidationError{
			Field:   "attendance_id",
			Message: "attendance_id is required",
		})
	}

	if !r.IsDayOff && (r.ShiftID == nil || validator.IsEmpty(*r.ShiftID)) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id is required unless is_day_off is true",
		})
	}

	if r.IsDayOff && r.ShiftID != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id must be empty when is_day_off is true",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// HoursSnapshot captures the regular/overtime split before or after a
// reconciliation, for the audit trail.
type HoursSnapshot struct {
	ShiftID       *string `json:"shift_id"`
	RegularHours  float64 `json:"regular_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
}

type ReassignShiftResponse struct {
	AttendanceID string        `json:"attendance_id"`
	EmployeeID   string        `json:"employee_id"`
	WorkDate     string        `json:"work_date"`
	Before       HoursSnapshot `json:"before"`
	After        HoursSnapshot `json:"after"`
	IsDayOff     bool          `json:"is_day_off"`
}

// ========================================
// RECALCULATION DTOs
// ========================================

type RecalculateRequest struct {
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	EmployeeID *string `json:"employee_id,omitempty"`
}

func (r *RecalculateRequest) Validate() error {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RecordError reports one failed record inside a batch recalculation.
type RecordError struct {
	AttendanceID string `json:"attendance_id"`
	WorkDate     string `json:"work_date"`
	Message      string `json:"message"`
}

// RecalculateResponse reports batch recalculation results. The operation is
// idempotent, so a partial failure can simply be retried.
type RecalculateResponse struct {
	TotalRecords   int           `json:"total_records"`
	UpdatedRecords int           `json:"updated_records"`
	Errors         []RecordError `json:"errors,omitempty"`
}

// ========================================
// SUMMARY DTOs
// ========================================

type MonthlySummaryResponse struct {
	EmployeeID              string  `json:"employee_id"`
	EmployeeName            *string `json:"employee_name,omitempty"`
	MonthYear               string  `json:"month_year"`
	TotalWorkingDays        int     `json:"total_working_days"`
	TotalDelayMinutes       int     `json:"total_delay_minutes"`
	TotalBreakMinutes       int     `json:"total_break_minutes"`
	TotalOvertimeHours      float64 `json:"total_overtime_hours"`
	AveragePerformanceScore float64 `json:"average_performance_score"`
	PunctualityPercentage   float64 `json:"punctuality_percentage"`
	PerformanceStatus       string  `json:"performance_status"`
	DelayToFinishHours      float64 `json:"delay_to_finish_hours"`
	FinalOvertimeHours      float64 `json:"final_overtime_hours"`
	UpdatedAt               string  `json:"updated_at"`
}

type SummaryFilter struct {
	MonthYear  string
	EmployeeID *string
}

func (f *SummaryFilter) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidMonthYear(f.MonthYear); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "month_year",
			Message: "month_year must be in YYYY-MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
