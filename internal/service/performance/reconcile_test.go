package performance

import (
	"testing"

	"github.com/shiftpulse/shiftpulse-backend-go/internal/domain/attendance"
	"github.com/shiftpulse/shiftpulse-backend-go/internal/domain/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordedAttendance(regular, overtime float64) attendance.Attendance {
	att := attendanceAt("2026-03-02", "09:00", "18:30")
	shiftID := "sh-old"
	att.ShiftID = &shiftID
	att.RegularHours = &regular
	att.OvertimeHours = &overtime
	att.Status = attendance.StatusScored
	return att
}

func TestReclassifyHours(t *testing.T) {
	t.Parallel()

	// 9.5 recorded hours: 8 regular + 1.5 overtime against the old
	// 8-hour shift.
	att := recordedAttendance(8, 1.5)

	duration := 7.0
	designers := &shift.Shift{ID: "sh-designers", Name: "Designers", DurationHours: &duration}

	after := ReclassifyHours(att, designers)

	require.NotNil(t, after.ShiftID)
	assert.Equal(t, "sh-designers", *after.ShiftID)
	assert.InDelta(t, 7, after.RegularHours, 1e-9)
	assert.InDelta(t, 2.5, after.OvertimeHours, 1e-9)
	assert.InDelta(t, 9.5, after.RegularHours+after.OvertimeHours, 1e-9,
		"reclassification preserves the recorded total")
}

func TestReclassifyHours_Idempotent(t *testing.T) {
	t.Parallel()

	att := recordedAttendance(8, 1.5)
	duration := 7.0
	designers := &shift.Shift{ID: "sh-designers", Name: "Designers", DurationHours: &duration}

	first := ReclassifyHours(att, designers)

	att.ShiftID = first.ShiftID
	att.RegularHours = &first.RegularHours
	att.OvertimeHours = &first.OvertimeHours

	second := ReclassifyHours(att, designers)

	assert.Equal(t, first, second)
}

func TestReclassifyHours_NamedCategoryWins(t *testing.T) {
	t.Parallel()

	att := recordedAttendance(8, 1)

	// "Night Shift" carries 8 contractual hours regardless of its
	// configured duration.
	duration := 10.0
	night := &shift.Shift{ID: "sh-night", Name: "Night Shift", DurationHours: &duration}

	after := ReclassifyHours(att, night)

	assert.InDelta(t, 8, after.RegularHours, 1e-9)
	assert.InDelta(t, 1, after.OvertimeHours, 1e-9)
}

func TestReclassifyHours_DayOff(t *testing.T) {
	t.Parallel()

	att := recordedAttendance(8, 1.5)

	after := ReclassifyHours(att, nil)

	// A day off zeroes both halves; the recorded total does not survive as
	// regular hours.
	assert.Nil(t, after.ShiftID)
	assert.Zero(t, after.RegularHours)
	assert.Zero(t, after.OvertimeHours)
}

func TestSnapshotOf(t *testing.T) {
	t.Parallel()

	att := recordedAttendance(8, 1.5)

	snap := snapshotOf(att)

	require.NotNil(t, snap.ShiftID)
	assert.Equal(t, "sh-old", *snap.ShiftID)
	assert.InDelta(t, 8, snap.RegularHours, 1e-9)
	assert.InDelta(t, 1.5, snap.OvertimeHours, 1e-9)

	// A record that was never scored snapshots as zeros.
	bare := attendanceAt("2026-03-02", "09:00", "")
	empty := snapshotOf(bare)
	assert.Nil(t, empty.ShiftID)
	assert.Zero(t, empty.RegularHours)
	assert.Zero(t, empty.OvertimeHours)
}
