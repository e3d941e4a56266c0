package attendance

import (
	"github.com/shiftpulse/shiftpulse-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type CheckInRequest struct {
	// WorkDate optionally pins the work date; defaults to today in the
	// server's timezone when empty.
	WorkDate string `json:"work_date,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.WorkDate != "" {
		if _, ok := validator.IsValidDate(r.WorkDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "work_date",
				Message: "work_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckOutRequest struct{}

type RecordBreakRequest struct {
	Minutes int `json:"minutes"`
}

func (r *RecordBreakRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Minutes <= 0 || r.Minutes > 24*60 {
		errs = append(errs, validator.ValidationError{
			Field:   "minutes",
			Message: "minutes must be between 1 and 1440",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID                string   `json:"id"`
	EmployeeID        string   `json:"employee_id"`
	EmployeeName      *string  `json:"employee_name,omitempty"`
	WorkDate          string   `json:"work_date"`
	ShiftID           *string  `json:"shift_id"`
	ShiftName         *string  `json:"shift_name,omitempty"`
	CheckInTime       *string  `json:"check_in_time"`
	CheckOutTime      *string  `json:"check_out_time"`
	BreakMinutes      int      `json:"break_minutes"`
	DelayMinutes      *int     `json:"delay_minutes"`
	RegularHours      *float64 `json:"regular_hours"`
	OvertimeHours     *float64 `json:"overtime_hours"`
	DelayScore        *float64 `json:"delay_score"`
	WorkDurationScore *float64 `json:"work_duration_score"`
	Punctuality       *float64 `json:"punctuality"`
	FinalScore        *float64 `json:"final_score"`
	StatusLabel       *string  `json:"status_label"`
	Status            string   `json:"status"`
	CreatedAt         string   `json:"created_at"`
	UpdatedAt         string   `json:"updated_at"`
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Showing     string               `json:"showing"`
	Attendances []AttendanceResponse `json:"attendances"`
}

// ========================================
// FILTERS
// ========================================

type AttendanceFilter struct {
	EmployeeID *string
	StartDate  *string
	EndDate    *string
	Status     *string
	Page       int
	Limit      int
	SortBy     string
	SortOrder  string
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validateDateRange(f.StartDate, f.EndDate)...)

	if f.Status != nil && *f.Status != "" {
		if !validator.IsInSlice(*f.Status, []string{StatusInProgress, StatusScored, StatusUnscored, StatusDayOff}) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of in_progress, scored, unscored",
			})
		}
	}

	if f.SortBy != "" && !validator.IsInSlice(f.SortBy, []string{"work_date", "final_score", "delay_minutes"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "sort_by",
			Message: "sort_by must be one of work_date, final_score, delay_minutes",
		})
	}

	if f.SortOrder != "" && !validator.IsInSlice(f.SortOrder, []string{"asc", "desc"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "sort_order",
			Message: "sort_order must be asc or desc",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MyAttendanceFilter struct {
	StartDate *string
	EndDate   *string
	Status    *string
	Page      int
	Limit     int
}

func (f *MyAttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validateDateRange(f.StartDate, f.EndDate)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateDateRange(startDate, endDate *string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if startDate != nil && *startDate != "" {
		if _, ok := validator.IsValidDate(*startDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if endDate != nil && *endDate != "" {
		if _, ok := validator.IsValidDate(*endDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	return errs
}
