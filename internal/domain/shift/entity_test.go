package shift

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration(t *testing.T) {
	t.Parallel()

	cases := []struct {
		start string
		end   string
		want  float64
	}{
		{"09:00", "17:00", 8},
		{"09:00", "16:00", 7},
		{"22:00", "06:00", 8}, // wraps past midnight
		{"23:30", "00:15", 0.75},
		{"00:00", "23:59", 23.983333},
		{"08:00", "08:00", 24}, // equal times wrap a full day
	}
	for _, c := range cases {
		got, err := Duration(c.start, c.end)
		require.NoError(t, err, "Duration(%q, %q)", c.start, c.end)
		assert.InDelta(t, c.want, got, 1e-4, "Duration(%q, %q)", c.start, c.end)
	}
}

func TestDuration_Invalid(t *testing.T) {
	t.Parallel()

	for _, bad := range []string{"", "9am", "25:00", "12:60"} {
		_, err := Duration(bad, "17:00")
		assert.Error(t, err, "start %q", bad)
		_, err = Duration("09:00", bad)
		assert.Error(t, err, "end %q", bad)
	}
}

func TestCategoryOf(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		want Category
	}{
		{"Day Shift", CategoryDay},
		{"day shift", CategoryDay},
		{"Midday", CategoryDay}, // substring match is the rule
		{"Night Shift", CategoryNight},
		{"NIGHT", CategoryNight},
		{"Morning", CategoryOther},
		{"Designers", CategoryOther},
		{"", CategoryOther},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, CategoryOf(c.name), "CategoryOf(%q)", c.name)
	}
}

func TestExpectedHours(t *testing.T) {
	t.Parallel()

	duration := 6.5

	cases := []struct {
		name  string
		shift Shift
		want  float64
	}{
		{"day shift fixed at 7", Shift{Name: "Day Shift"}, 7},
		{"night shift fixed at 8", Shift{Name: "Night Shift"}, 8},
		{"named category beats configured duration", Shift{Name: "Day Shift", DurationHours: &duration}, 7},
		{"other uses configured duration", Shift{Name: "Morning", DurationHours: &duration}, 6.5},
		{"other without duration defaults to 8", Shift{Name: "Morning"}, 8},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, c.want, c.shift.ExpectedHours(), 1e-9)
		})
	}
}

func TestStartOnDate(t *testing.T) {
	t.Parallel()

	s := Shift{Name: "Night Shift", StartTime: "22:00", EndTime: "06:00"}
	date := time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC)

	start, err := s.StartOnDate(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 2, 22, 0, 0, 0, time.UTC), start)
}
