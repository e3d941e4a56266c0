package shift

import (
	"github.com/shiftpulse/shiftpulse-backend-go/internal/pkg/validator"
)

// ========================================
// SHIFT DTOs
// ========================================

type CreateShiftRequest struct {
	Name          string   `json:"name"`
	StartTime     string   `json:"start_time"`
	EndTime       string   `json:"end_time"`
	DurationHours *float64 `json:"duration_hours,omitempty"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if !validator.IsValidTimeOfDay(r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM format",
		})
	}

	if !validator.IsValidTimeOfDay(r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:MM format",
		})
	}

	if r.DurationHours != nil && (*r.DurationHours <= 0 || *r.DurationHours > 24) {
		errs = append(errs, validator.ValidationError{
			Field:   "duration_hours",
			Message: "duration_hours must be in (0, 24]",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateShiftRequest struct {
	ID            string   `json:"-"`
	Name          *string  `json:"name,omitempty"`
	StartTime     *string  `json:"start_time,omitempty"`
	EndTime       *string  `json:"end_time,omitempty"`
	DurationHours *float64 `json:"duration_hours,omitempty"`
}

func (r *UpdateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name cannot be empty",
		})
	}

	if r.StartTime != nil && !validator.IsValidTimeOfDay(*r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM format",
		})
	}

	if r.EndTime != nil && !validator.IsValidTimeOfDay(*r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:MM format",
		})
	}

	if r.DurationHours != nil && (*r.DurationHours <= 0 || *r.DurationHours > 24) {
		errs = append(errs, validator.ValidationError{
			Field:   "duration_hours",
			Message: "duration_hours must be in (0, 24]",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ShiftResponse struct {
	ID            string  `json:"id"`
	CompanyID     string  `json:"company_id"`
	Name          string  `json:"name"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	DurationHours float64 `json:"duration_hours"`
	ExpectedHours float64 `json:"expected_hours"`
	Category      string  `json:"category"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

type ListShiftsResponse struct {
	TotalCount int64           `json:"total_count"`
	Shifts     []ShiftResponse `json:"shifts"`
}

// ========================================
// ASSIGNMENT DTOs
// ========================================

type AssignShiftRequest struct {
	EmployeeID string `json:"employee_id"`
	WorkDate   string `json:"work_date"` // "YYYY-MM-DD"
	ShiftID    string `json:"shift_id"`
}

func (r *AssignShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.WorkDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "work_date",
			Message: "work_date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.ShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SetDayOffRequest struct {
	EmployeeID string `json:"employee_id"`
	WorkDate   string `json:"work_date"`
}

func (r *SetDayOffRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.WorkDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "work_date",
			Message: "work_date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BulkAssignMonthRequest struct {
	EmployeeID string `json:"employee_id"`
	MonthYear  string `json:"month_year"` // "YYYY-MM"
	ShiftID    string `json:"shift_id"`
	// SkipWeekends leaves Saturdays and Sundays unassigned.
	SkipWeekends bool `json:"skip_weekends"`
}

func (r *BulkAssignMonthRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, ok := validator.IsValidMonthYear(r.MonthYear); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "month_year",
			Message: "month_year must be in YYYY-MM format",
		})
	}

	if validator.IsEmpty(r.ShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AssignmentResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	WorkDate   string  `json:"work_date"`
	ShiftID    *string `json:"shift_id"`
	ShiftName  *string `json:"shift_name,omitempty"`
	IsDayOff   bool    `json:"is_day_off"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

// DayError reports a single failed day inside a bulk operation.
type DayError struct {
	Date    string `json:"date"`
	Message string `json:"message"`
}

// BulkAssignMonthResponse reports per-day partial success. One failed day
// never aborts the rest of the month.
type BulkAssignMonthResponse struct {
	EmployeeID   string     `json:"employee_id"`
	MonthYear    string     `json:"month_year"`
	TotalDays    int        `json:"total_days"`
	AssignedDays int        `json:"assigned_days"`
	FailedDays   int        `json:"failed_days"`
	Errors       []DayError `json:"errors,omitempty"`
}

type AssignmentFilter struct {
	EmployeeID string
	StartDate  *string
	EndDate    *string
}

func (f *AssignmentFilter) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(f.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
