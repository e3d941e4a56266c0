package performance

import "time"

// ScoreState tells whether a day could be scored at all.
type ScoreState string

const (
	// StateScored means the day had both a checkout and an assigned shift.
	StateScored ScoreState = "scored"
	// StateUnscored means no shift was assigned; worked hours exist but no
	// scores. Not an error.
	StateUnscored ScoreState = "unscored"
	// StateInProgress means no checkout yet; nothing to score.
	StateInProgress ScoreState = "in_progress"
)

// Status labels derived from punctuality and delay score.
const (
	StatusPoor             = "Poor"
	StatusNeedsImprovement = "Needs Improvement"
	StatusGood             = "Good"
	StatusExcellent        = "Excellent"
)

// DailyScore is the calculator's output for one attendance record. All
// values are zero unless State == StateScored.
type DailyScore struct {
	State ScoreState

	DelayMinutes      int
	TotalWorkedHours  float64
	RegularHours      float64
	OvertimeHours     float64
	DelayScore        float64
	WorkDurationScore float64
	Punctuality       float64
	FinalScore        float64
	StatusLabel       string
}

// MonthlySummary is the denormalized month row per (employee, month),
// always reproducible by replaying the calculator over the month's records.
type MonthlySummary struct {
	ID         string
	CompanyID  string
	EmployeeID string
	MonthYear  string // "YYYY-MM"

	TotalWorkingDays        int
	TotalDelayMinutes       int
	TotalBreakMinutes       int
	TotalOvertimeHours      float64
	AveragePerformanceScore float64
	PunctualityPercentage   float64
	PerformanceStatus       string

	// Either/or netting: overtime and delay-to-finish are never both
	// positive; one fully consumes the other.
	DelayToFinishHours float64
	FinalOvertimeHours float64

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
}
