package performance

import (
	"github.com/shiftpulse/shiftpulse-backend-go/internal/domain/attendance"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/domain/performance"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/domain/shift"
)

// ReclassifyHours re-splits a record's already-recorded worked hours against
// a different shift's expected hours. The recorded total is the source of
// truth: clock times are never re-derived, so manual corrections to the
// stored total survive reconciliation.
func ReclassifyHours(att attendance.Attendance, newShift *shift.Shift) performance.HoursSnapshot {
	if newShift == nil {
		// Day off: nothing counts as work, so both halves zero out and the
		// record drops out of the month's aggregation.
		return performance.HoursSnapshot{}
	}

	regular, overtime := SplitWorkedHours(att.TotalWorkedHours(), newShift.ExpectedHours())
	return performance.HoursSnapshot{
		ShiftID:       &newShift.ID,
		RegularHours:  regular,
		OvertimeHours: overtime,
	}
}

// snapshotOf captures a record's current classification for the audit trail.
func snapshotOf(att attendance.Attendance) performance.HoursSnapshot {
	snap := performance.HoursSnapshot{}
	if att.ShiftID != nil {
		id := *att.ShiftID
		snap.ShiftID = &id
	}
	if att.RegularHours != nil {
		snap.RegularHours = *att.RegularHours
	}
	if att.OvertimeHours != nil {
		snap.OvertimeHours = *att.OvertimeHours
	}
	return snap
}
