package performance

import (
	"testing"

	"github.com/shiftpulse/shiftpulse-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoredRecord(day string, delayMinutes int, breakMinutes int, overtimeHours, finalScore, punctuality float64) attendance.Attendance {
	att := attendanceAt(day, "09:00", "17:00")
	regular := 8.0
	att.BreakMinutes = breakMinutes
	att.DelayMinutes = &delayMinutes
	att.RegularHours = &regular
	att.OvertimeHours = &overtimeHours
	att.FinalScore = &finalScore
	att.Punctuality = &punctuality
	att.Status = attendance.StatusScored
	return att
}

func TestNetDelayAgainstOvertime(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name          string
		delayMinutes  int
		breakMinutes  int
		overtimeHours float64
		wantDelay     float64
		wantOvertime  float64
	}{
		{"overtime covers the debt", 60, 30, 4, 0, 2.5},
		{"debt exceeds overtime", 120, 60, 2, 1, 0},
		{"exact cancellation", 90, 30, 2, 0, 0},
		{"no delay at all", 0, 0, 3, 0, 3},
		{"no overtime at all", 45, 15, 0, 1, 0},
		{"nothing either way", 0, 0, 0, 0, 0},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			delay, overtime := NetDelayAgainstOvertime(c.delayMinutes, c.breakMinutes, c.overtimeHours)

			assert.InDelta(t, c.wantDelay, delay, 1e-9)
			assert.InDelta(t, c.wantOvertime, overtime, 1e-9)
			assert.False(t, delay > 0 && overtime > 0, "netting must leave at most one side positive")
		})
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	records := []attendance.Attendance{
		scoredRecord("2026-03-02", 10, 30, 0.5, 91, 60),
		scoredRecord("2026-03-03", 0, 0, 2, 95, 100),
		scoredRecord("2026-03-04", 20, 30, 0, 75, 30),
	}

	summary := NewAggregator().Summarize("co-1", "emp-1", "2026-03", records)

	assert.Equal(t, "co-1", summary.CompanyID)
	assert.Equal(t, "emp-1", summary.EmployeeID)
	assert.Equal(t, "2026-03", summary.MonthYear)
	assert.Equal(t, 3, summary.TotalWorkingDays)
	assert.Equal(t, 30, summary.TotalDelayMinutes)
	assert.Equal(t, 60, summary.TotalBreakMinutes)
	assert.InDelta(t, 2.5, summary.TotalOvertimeHours, 1e-9)
	assert.InDelta(t, 87, summary.AveragePerformanceScore, 1e-9)
	assert.InDelta(t, 63.33, summary.PunctualityPercentage, 1e-9)

	// 30 delay + 60 break = 1.5h owed against 2.5h overtime.
	assert.InDelta(t, 0, summary.DelayToFinishHours, 1e-9)
	assert.InDelta(t, 1, summary.FinalOvertimeHours, 1e-9)
}

func TestSummarize_DistinctDates(t *testing.T) {
	t.Parallel()

	// Two records on the same date count that date once.
	records := []attendance.Attendance{
		scoredRecord("2026-03-02", 0, 0, 0, 90, 100),
		scoredRecord("2026-03-02", 0, 0, 0, 80, 100),
		scoredRecord("2026-03-05", 0, 0, 0, 70, 100),
	}

	summary := NewAggregator().Summarize("co-1", "emp-1", "2026-03", records)

	assert.Equal(t, 2, summary.TotalWorkingDays)
	assert.InDelta(t, 80, summary.AveragePerformanceScore, 1e-9)
}

func TestSummarize_UnscoredDaysCountAsWorking(t *testing.T) {
	t.Parallel()

	unscored := attendanceAt("2026-03-06", "09:00", "17:00")
	unscored.Status = attendance.StatusUnscored
	unscored.BreakMinutes = 45

	records := []attendance.Attendance{
		scoredRecord("2026-03-02", 0, 0, 1, 90, 100),
		unscored,
	}

	summary := NewAggregator().Summarize("co-1", "emp-1", "2026-03", records)

	assert.Equal(t, 2, summary.TotalWorkingDays)
	assert.Equal(t, 45, summary.TotalBreakMinutes)
	// Only the scored day feeds the averages.
	assert.InDelta(t, 90, summary.AveragePerformanceScore, 1e-9)
	assert.InDelta(t, 100, summary.PunctualityPercentage, 1e-9)
}

func TestSummarize_DayOffExcluded(t *testing.T) {
	t.Parallel()

	dayOff := attendanceAt("2026-03-06", "09:00", "17:00")
	dayOff.Status = attendance.StatusDayOff
	dayOff.BreakMinutes = 30
	delay := 15
	dayOff.DelayMinutes = &delay

	records := []attendance.Attendance{
		scoredRecord("2026-03-02", 0, 0, 1, 90, 100),
		dayOff,
	}

	summary := NewAggregator().Summarize("co-1", "emp-1", "2026-03", records)

	// The day off drops out entirely: not a working day, and none of its
	// leftover minutes leak into the totals.
	assert.Equal(t, 1, summary.TotalWorkingDays)
	assert.Equal(t, 0, summary.TotalDelayMinutes)
	assert.Equal(t, 0, summary.TotalBreakMinutes)
	assert.InDelta(t, 90, summary.AveragePerformanceScore, 1e-9)
}

func TestSummarize_Empty(t *testing.T) {
	t.Parallel()

	summary := NewAggregator().Summarize("co-1", "emp-1", "2026-03", nil)

	require.Equal(t, 0, summary.TotalWorkingDays)
	assert.Zero(t, summary.AveragePerformanceScore)
	assert.Zero(t, summary.DelayToFinishHours)
	assert.Zero(t, summary.FinalOvertimeHours)
}
