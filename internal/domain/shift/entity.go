package shift

import (
	"strings"
	"time"
)

type Shift struct {
	ID        string
	CompanyID string
	Name      string
	StartTime string // "HH:MM"
	EndTime   string // "HH:MM"
	// DurationHours is the configured contractual length. When nil the
	// duration derived from StartTime/EndTime is used.
	DurationHours *float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time
}

// Assignment links an employee to a shift (or a day off) for one work date.
// Exactly one assignment exists per (employee, work date).
type Assignment struct {
	ID         string
	CompanyID  string
	EmployeeID string
	WorkDate   time.Time
	ShiftID    *string
	IsDayOff   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Category string

const (
	CategoryDay   Category = "day"
	CategoryNight Category = "night"
	CategoryOther Category = "other"
)

// Named shift types carry fixed contractual hours regardless of their
// clock template:
//
//	day   -> 7h
//	night -> 8h
//	other -> configured duration, 8h when unset
const (
	dayShiftExpectedHours   = 7.0
	nightShiftExpectedHours = 8.0
	defaultExpectedHours    = 8.0
)

// CategoryOf classifies a shift by its name. The substring match is a
// deliberate business rule, not a parsing convenience.
func CategoryOf(name string) Category {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "day"):
		return CategoryDay
	case strings.Contains(lower, "night"):
		return CategoryNight
	default:
		return CategoryOther
	}
}

// ExpectedHours returns the contractual hours for the shift, applying the
// name-based category table before falling back to the configured duration.
func (s Shift) ExpectedHours() float64 {
	switch CategoryOf(s.Name) {
	case CategoryDay:
		return dayShiftExpectedHours
	case CategoryNight:
		return nightShiftExpectedHours
	}
	if s.DurationHours != nil && *s.DurationHours > 0 {
		return *s.DurationHours
	}
	return defaultExpectedHours
}

// Duration derives the clock-template length in hours, wrapping past
// midnight when the end time is at or before the start time.
func Duration(startTime, endTime string) (float64, error) {
	start, err := parseMinutes(startTime)
	if err != nil {
		return 0, err
	}
	end, err := parseMinutes(endTime)
	if err != nil {
		return 0, err
	}

	minutes := end - start
	if end <= start {
		minutes = (24*60 - start) + end
	}
	return float64(minutes) / 60.0, nil
}

// Duration returns the shift's clock-template length in hours.
func (s Shift) Duration() (float64, error) {
	return Duration(s.StartTime, s.EndTime)
}

// StartOnDate anchors the shift's start time on the given calendar date.
func (s Shift) StartOnDate(date time.Time) (time.Time, error) {
	t, err := time.ParseInLocation("15:04", s.StartTime, date.Location())
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}

func parseMinutes(hhmm string) (int, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
