package performance

import (
	"github.com/shiftpulse/shiftpulse-backend-go/internal/domain/attendance"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/domain/performance"
)

// Aggregator folds one employee's attendance records for a month into a
// MonthlySummary. Pure: all database access happens in the caller.
type Aggregator struct {
}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Summarize aggregates the given records, which must all belong to the same
// employee and month. Duplicate records on the same date count that date
// once toward working days but each contributes its own minutes and scores.
func (a *Aggregator) Summarize(companyID, employeeID, monthYear string, records []attendance.Attendance) performance.MonthlySummary {
	summary := performance.MonthlySummary{
		CompanyID:  companyID,
		EmployeeID: employeeID,
		MonthYear:  monthYear,
	}

	seenDates := make(map[string]struct{})
	var (
		scoreSum       float64
		punctualitySum float64
		scoredDays     int
	)

	for _, rec := range records {
		if rec.Status == attendance.StatusDayOff {
			// Days off contribute nothing: not a working day, no minutes,
			// no scores.
			continue
		}

		date := rec.WorkDate.Format("2006-01-02")
		if _, ok := seenDates[date]; !ok {
			seenDates[date] = struct{}{}
			summary.TotalWorkingDays++
		}

		summary.TotalBreakMinutes += rec.BreakMinutes
		if rec.DelayMinutes != nil {
			summary.TotalDelayMinutes += *rec.DelayMinutes
		}
		if rec.OvertimeHours != nil {
			summary.TotalOvertimeHours += *rec.OvertimeHours
		}

		if rec.Status == attendance.StatusScored && rec.FinalScore != nil {
			scoreSum += *rec.FinalScore
			if rec.Punctuality != nil {
				punctualitySum += *rec.Punctuality
			}
			scoredDays++
		}
	}

	summary.TotalOvertimeHours = round2(summary.TotalOvertimeHours)

	if scoredDays > 0 {
		summary.AveragePerformanceScore = round2(scoreSum / float64(scoredDays))
		summary.PunctualityPercentage = round2(punctualitySum / float64(scoredDays))
	}
	summary.PerformanceStatus = StatusLabel(summary.PunctualityPercentage, summary.AveragePerformanceScore)

	summary.DelayToFinishHours, summary.FinalOvertimeHours = NetDelayAgainstOvertime(
		summary.TotalDelayMinutes, summary.TotalBreakMinutes, summary.TotalOvertimeHours)

	return summary
}

// NetDelayAgainstOvertime offsets accumulated delay plus break time against
// accumulated overtime. Exactly one of the two results is nonzero (or both
// are zero when they cancel out): overtime first pays down the time owed,
// and only the remainder on either side survives.
func NetDelayAgainstOvertime(delayMinutes, breakMinutes int, overtimeHours float64) (delayToFinishHours, finalOvertimeHours float64) {
	owedHours := float64(delayMinutes+breakMinutes) / 60

	if overtimeHours > owedHours {
		return 0, round2(overtimeHours - owedHours)
	}
	return round2(owedHours - overtimeHours), 0
}
