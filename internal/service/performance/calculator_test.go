package performance

import (
	"testing"
	"time"

	"github.com/shiftpulse/shiftpulse-backend-go/internal/domain/attendance"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/domain/performance"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/domain/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timeAt(day string, clock string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", day+" "+clock)
	if err != nil {
		panic(err)
	}
	return t
}

func attendanceAt(day, checkIn, checkOut string) attendance.Attendance {
	in := timeAt(day, checkIn)
	att := attendance.Attendance{
		WorkDate: timeAt(day, "00:00"),
		CheckIn:  &in,
	}
	if checkOut != "" {
		out := timeAt(day, checkOut)
		if !out.After(in) {
			out = out.AddDate(0, 0, 1)
		}
		att.CheckOut = &out
	}
	return att
}

func TestDelayScore(t *testing.T) {
	t.Parallel()

	cases := []struct {
		delayMinutes int
		want         float64
	}{
		{-15, 100},
		{0, 100},
		{5, 99},
		{10, 98},
		{100, 80},
		{499, 0.2},
		{500, 0},
		{600, 0},
	}
	for _, c := range cases {
		assert.InDelta(t, c.want, DelayScore(c.delayMinutes), 1e-9,
			"DelayScore(%d)", c.delayMinutes)
	}
}

func TestPunctualityPercentage(t *testing.T) {
	t.Parallel()

	cases := []struct {
		delayMinutes int
		want         float64
	}{
		{-5, 100},
		{0, 100},
		{10, 60},
		{25, 15},
		{30, 0},
		{31, 0},
		{35, 0},
		{59, 0},
		{60, 0},
		{120, 0},
	}
	for _, c := range cases {
		assert.InDelta(t, c.want, PunctualityPercentage(c.delayMinutes), 1e-9,
			"PunctualityPercentage(%d)", c.delayMinutes)
	}
}

func TestWorkDurationScore(t *testing.T) {
	t.Parallel()

	cases := []struct {
		worked   float64
		expected float64
		want     float64
	}{
		{8, 8, 100},
		{4, 8, 50},
		{0, 8, 0},
		{10, 8, 100}, // overtime never pushes past 100
		{7, 7, 100},
		{3.5, 7, 50},
	}
	for _, c := range cases {
		assert.InDelta(t, c.want, WorkDurationScore(c.worked, c.expected), 1e-9,
			"WorkDurationScore(%v, %v)", c.worked, c.expected)
	}
}

func TestSplitWorkedHours(t *testing.T) {
	t.Parallel()

	cases := []struct {
		worked       float64
		expected     float64
		wantRegular  float64
		wantOvertime float64
	}{
		{8, 8, 8, 0},
		{9.5, 8, 8, 1.5},
		{6, 8, 6, 0},
		{7.916667, 7, 7, 0.92},
		{0, 8, 0, 0},
	}
	for _, c := range cases {
		regular, overtime := SplitWorkedHours(c.worked, c.expected)
		assert.InDelta(t, c.wantRegular, regular, 1e-9)
		assert.InDelta(t, c.wantOvertime, overtime, 1e-9)
	}
}

func TestStatusLabel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		punctuality float64
		delayScore  float64
		want        string
	}{
		{100, 100, performance.StatusExcellent},
		{90, 85, performance.StatusExcellent},
		{80, 95, performance.StatusGood},
		{60, 99, performance.StatusNeedsImprovement},
		{0, 98, performance.StatusPoor},
		{100, 40, performance.StatusPoor},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, StatusLabel(c.punctuality, c.delayScore))
	}
}

func TestScoreDay_DayShift(t *testing.T) {
	t.Parallel()

	// Day shift 09:00-17:00 carries 7 expected hours; arriving 09:10 and
	// leaving 17:05 works 7h55m.
	sh := &shift.Shift{ID: "sh-1", Name: "Day Shift", StartTime: "09:00", EndTime: "17:00"}
	att := attendanceAt("2026-03-02", "09:10", "17:05")

	score := NewCalculator().ScoreDay(att, sh)

	require.Equal(t, performance.StateScored, score.State)
	assert.Equal(t, 10, score.DelayMinutes)
	assert.InDelta(t, 7.92, score.TotalWorkedHours, 1e-9)
	assert.InDelta(t, 7.0, score.RegularHours, 1e-9)
	assert.InDelta(t, 0.92, score.OvertimeHours, 1e-9)
	assert.InDelta(t, 98, score.DelayScore, 1e-9)
	assert.InDelta(t, 60, score.Punctuality, 1e-9)
	assert.InDelta(t, 100, score.WorkDurationScore, 1e-9)
	// round(98*0.6 + 100*0.3 + 0.92*2) = round(90.64)
	assert.InDelta(t, 91, score.FinalScore, 1e-9)
	assert.Equal(t, performance.StatusNeedsImprovement, score.StatusLabel)
}

func TestScoreDay_OnTimeFullDay(t *testing.T) {
	t.Parallel()

	sh := &shift.Shift{ID: "sh-2", Name: "Night Shift", StartTime: "22:00", EndTime: "06:00"}
	att := attendanceAt("2026-03-02", "21:50", "06:00")

	score := NewCalculator().ScoreDay(att, sh)

	require.Equal(t, performance.StateScored, score.State)
	assert.Equal(t, 0, score.DelayMinutes, "early arrival floors at zero")
	assert.InDelta(t, 100, score.DelayScore, 1e-9)
	assert.InDelta(t, 100, score.Punctuality, 1e-9)
	assert.InDelta(t, 100, score.WorkDurationScore, 1e-9)
	assert.Equal(t, performance.StatusExcellent, score.StatusLabel)
}

func TestScoreDay_ExtremeDelay(t *testing.T) {
	t.Parallel()

	sh := &shift.Shift{ID: "sh-3", Name: "Day Shift", StartTime: "09:00", EndTime: "17:00"}
	// More than 500 minutes late: the delay score bottoms out at zero.
	att := attendanceAt("2026-03-02", "17:30", "19:30")

	score := NewCalculator().ScoreDay(att, sh)

	require.Equal(t, performance.StateScored, score.State)
	assert.Equal(t, 510, score.DelayMinutes)
	assert.InDelta(t, 0, score.DelayScore, 1e-9)
	assert.InDelta(t, 0, score.Punctuality, 1e-9)
	assert.Equal(t, performance.StatusPoor, score.StatusLabel)
}

func TestScoreDay_NoShift(t *testing.T) {
	t.Parallel()

	att := attendanceAt("2026-03-02", "09:00", "17:00")

	score := NewCalculator().ScoreDay(att, nil)

	assert.Equal(t, performance.StateUnscored, score.State)
	assert.InDelta(t, 8, score.TotalWorkedHours, 1e-9)
	assert.Zero(t, score.FinalScore)
}

func TestScoreDay_NoCheckOut(t *testing.T) {
	t.Parallel()

	sh := &shift.Shift{ID: "sh-4", Name: "Day Shift", StartTime: "09:00", EndTime: "17:00"}
	att := attendanceAt("2026-03-02", "09:00", "")

	score := NewCalculator().ScoreDay(att, sh)

	assert.Equal(t, performance.StateInProgress, score.State)
}

func TestScoreDay_SplitAlwaysSumsToTotal(t *testing.T) {
	t.Parallel()

	sh := &shift.Shift{ID: "sh-5", Name: "Night Shift", StartTime: "22:00", EndTime: "06:00"}
	checkOuts := []string{"05:00", "06:00", "07:15", "08:41"}

	for _, out := range checkOuts {
		att := attendanceAt("2026-03-02", "22:00", out)
		score := NewCalculator().ScoreDay(att, sh)

		require.Equal(t, performance.StateScored, score.State)
		assert.InDelta(t, score.TotalWorkedHours, score.RegularHours+score.OvertimeHours, 0.011,
			"checkout %s", out)
	}
}

func TestCheckConsistency(t *testing.T) {
	t.Parallel()

	att := attendanceAt("2026-03-02", "09:00", "17:00")
	assert.True(t, CheckConsistency(att), "no derived fields yet")

	regular, overtime := 7.0, 1.0
	att.RegularHours = &regular
	att.OvertimeHours = &overtime
	assert.True(t, CheckConsistency(att))

	drifted := 5.0
	att.RegularHours = &drifted
	assert.False(t, CheckConsistency(att))
}
