package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"123e4567-e89b-12d3-a456-426614174000",
		"123E4567-E89B-12D3-A456-426614174000",
	}
	invalid := []string{
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",     // missing dashes
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // invalid hex
		"",
	}
	for _, id := range valid {
		if !IsValidUUID(id) {
			t.Errorf("IsValidUUID(%q) = false, want true", id)
		}
	}
	for _, id := range invalid {
		if IsValidUUID(id) {
			t.Errorf("IsValidUUID(%q) = true, want false", id)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2026-03-02", "2024-02-29", "1999-12-31"}
	invalid := []string{"2026-3-2", "2026-13-01", "2025-02-29", "02-03-2026", "today", ""}
	for _, d := range valid {
		if _, ok := IsValidDate(d); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", d)
		}
	}
	for _, d := range invalid {
		if _, ok := IsValidDate(d); ok {
			t.Errorf("IsValidDate(%q) = true, want false", d)
		}
	}
}

func TestIsValidTimeOfDay(t *testing.T) {
	valid := []string{"00:00", "09:30", "23:59"}
	invalid := []string{"24:00", "9:30", "12:5", "12:60", "12:00:00", "noon", ""}
	for _, tm := range valid {
		if !IsValidTimeOfDay(tm) {
			t.Errorf("IsValidTimeOfDay(%q) = false, want true", tm)
		}
	}
	for _, tm := range invalid {
		if IsValidTimeOfDay(tm) {
			t.Errorf("IsValidTimeOfDay(%q) = true, want false", tm)
		}
	}
}

func TestIsValidMonthYear(t *testing.T) {
	valid := []string{"2026-03", "1999-12"}
	invalid := []string{"2026-13", "2026-3", "03-2026", "2026", ""}
	for _, m := range valid {
		if _, ok := IsValidMonthYear(m); !ok {
			t.Errorf("IsValidMonthYear(%q) = false, want true", m)
		}
	}
	for _, m := range invalid {
		if _, ok := IsValidMonthYear(m); ok {
			t.Errorf("IsValidMonthYear(%q) = true, want false", m)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"scored", "unscored", "in_progress"}
	if !IsInSlice("scored", slice) {
		t.Error("IsInSlice(scored) = false, want true")
	}
	if IsInSlice("Scored", slice) {
		t.Error("IsInSlice(Scored) = true, want false")
	}
	if IsInSlice("", slice) {
		t.Error("IsInSlice(\"\") = true, want false")
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "name", Message: "name is required"},
		{Field: "start_time", Message: "start_time must be in HH:MM format"},
	}

	if errs.Error() == "" {
		t.Error("Error() returned empty string")
	}

	m := errs.ToMap()
	if len(m) != 2 {
		t.Errorf("ToMap() len = %d, want 2", len(m))
	}
	if m["name"] != "name is required" {
		t.Errorf("ToMap()[name] = %q", m["name"])
	}
}
