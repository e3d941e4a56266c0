package performance

import (
	"math"
	"time"

	"github.com/shiftpulse/shiftpulse-backend-go/internal/domain/attendance"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/domain/performance"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/domain/shift"
)

// hoursTolerance is how far a stored regular+overtime split may drift from
// the clock-time difference before the record is flagged inconsistent.
// Both halves are rounded to 2 decimals, so legitimate drift is <= 0.01h.
const hoursTolerance = 0.02

// Calculator turns one attendance record plus its assigned shift into the
// day's delay, regular/overtime split and composite score. It is pure: safe
// to call concurrently for any records.
type Calculator struct {
}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// ScoreDay scores one day. A nil shift yields StateUnscored and a missing
// checkout yields StateInProgress; neither is an error.
func (c *Calculator) ScoreDay(att attendance.Attendance, sh *shift.Shift) performance.DailyScore {
	if att.CheckIn == nil || att.CheckOut == nil {
		return performance.DailyScore{State: performance.StateInProgress}
	}

	totalWorked := att.CheckOut.Sub(*att.CheckIn).Hours()

	if sh == nil {
		// No shift assigned: worked hours exist but nothing to score them
		// against.
		return performance.DailyScore{
			State:            performance.StateUnscored,
			TotalWorkedHours: round2(totalWorked),
		}
	}

	delayMinutes := c.DelayMinutes(*att.CheckIn, *sh)
	expected := sh.ExpectedHours()
	regular, overtime := SplitWorkedHours(totalWorked, expected)

	delayScore := DelayScore(delayMinutes)
	punctuality := PunctualityPercentage(delayMinutes)
	durationScore := WorkDurationScore(totalWorked, expected)
	finalScore := FinalScore(delayScore, durationScore, overtime)

	return performance.DailyScore{
		State:             performance.StateScored,
		DelayMinutes:      delayMinutes,
		TotalWorkedHours:  round2(totalWorked),
		RegularHours:      regular,
		OvertimeHours:     overtime,
		DelayScore:        delayScore,
		WorkDurationScore: durationScore,
		Punctuality:       punctuality,
		FinalScore:        finalScore,
		StatusLabel:       StatusLabel(punctuality, delayScore),
	}
}

// DelayMinutes measures how late the check-in was against the shift start
// anchored on the check-in's calendar date. Early arrival floors at 0:
// early check-in gives no credit, late check-in always costs.
func (c *Calculator) DelayMinutes(checkIn time.Time, sh shift.Shift) int {
	scheduledStart, err := sh.StartOnDate(checkIn)
	if err != nil {
		return 0
	}

	diff := checkIn.Sub(scheduledStart).Minutes()
	if diff <= 0 {
		return 0
	}
	return int(math.Floor(diff))
}

// SplitWorkedHours divides total worked time at the expected-hours
// boundary. The rounded halves always sum back to the rounded total.
func SplitWorkedHours(totalWorkedHours, expectedHours float64) (regular, overtime float64) {
	regular = math.Min(totalWorkedHours, expectedHours)
	overtime = math.Max(0, totalWorkedHours-expectedHours)
	return round2(regular), round2(overtime)
}

// DelayScore is the linear penalty: every 5 minutes late costs 1 point,
// floored at 0 (reached at 500 minutes).
func DelayScore(delayMinutes int) float64 {
	if delayMinutes <= 0 {
		return 100
	}
	return math.Max(0, 100-float64(delayMinutes)/5)
}

// PunctualityPercentage is the tiered penalty, distinct from DelayScore's
// linear one; it drives the status classification.
func PunctualityPercentage(delayMinutes int) float64 {
	switch {
	case delayMinutes <= 0:
		return 100
	case delayMinutes >= 60:
		return 0
	case delayMinutes > 30:
		return math.Max(0, 50-float64(delayMinutes)*2)
	default:
		return math.Max(0, 90-float64(delayMinutes)*3)
	}
}

// WorkDurationScore caps at 100; overtime earns its bonus in FinalScore
// instead, keeping this component on a 0-100 scale.
func WorkDurationScore(totalWorkedHours, expectedHours float64) float64 {
	if totalWorkedHours >= expectedHours {
		return 100
	}
	return (totalWorkedHours / expectedHours) * 100
}

// FinalScore is the weighted composite: delay dominates, duration is
// secondary, overtime contributes a small capped bonus.
func FinalScore(delayScore, workDurationScore, overtimeHours float64) float64 {
	bonus := math.Min(10, overtimeHours*2)
	return math.Round(delayScore*0.6 + workDurationScore*0.3 + bonus)
}

// StatusLabel classifies a day (or month) from punctuality and delay score
// jointly; the weaker of the two decides the band.
func StatusLabel(punctuality, delayScore float64) string {
	lowest := math.Min(punctuality, delayScore)
	switch {
	case lowest < 50:
		return performance.StatusPoor
	case lowest < 70:
		return performance.StatusNeedsImprovement
	case lowest < 85:
		return performance.StatusGood
	default:
		return performance.StatusExcellent
	}
}

// CheckConsistency reports whether the record's stored split still matches
// its clock times within tolerance. Inconsistent records are flagged for an
// explicit recompute, never silently corrected.
func CheckConsistency(att attendance.Attendance) bool {
	if att.CheckIn == nil || att.CheckOut == nil {
		return true
	}
	if att.RegularHours == nil && att.OvertimeHours == nil {
		return true
	}

	clockHours := att.CheckOut.Sub(*att.CheckIn).Hours()
	return math.Abs(clockHours-att.TotalWorkedHours()) <= hoursTolerance
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
