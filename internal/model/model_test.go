package model

import (
	"testing"
	"time"
)

func TestProjectEarnings(t *testing.T) {
	tests := []struct {
		name   string
		rate   float64
		millis int64
		want   int64
	}{
		{"one hour", 200, 3600000, 200},
		{"half hour", 200, 1800000, 100},
		{"90 minutes", 200, 5400000, 300},
		{"rounds down", 100, 1000, 0},               // 0.028 rounds to 0
		{"rounds half up", 100, 30*60*1000 + 18000, 51}, // 50.5 rounds away from zero
		{"zero duration", 200, 0, 0},
		{"fractional rate", 12.5, 3600000, 13}, // 12.5 rounds to 13
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Project{HourlyRate: tt.rate}
			if got := p.Earnings(tt.millis); got != tt.want {
				t.Errorf("Earnings(%d) at %v/h = %d, want %d", tt.millis, tt.rate, got, tt.want)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		millis int64
		want   string
	}{
		{0, "00:00:00"},
		{999, "00:00:00"},
		{1000, "00:00:01"},
		{61000, "00:01:01"},
		{3600000, "01:00:00"},
		{3661000, "01:01:01"},
		{360000000, "100:00:00"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.millis); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.millis, got, tt.want)
		}
	}
}

func TestFormatHours(t *testing.T) {
	tests := []struct {
		millis int64
		want   string
	}{
		{0, "0.0h"},
		{1800000, "0.5h"},
		{3600000, "1.0h"},
		{9000000, "2.5h"},
	}
	for _, tt := range tests {
		if got := FormatHours(tt.millis); got != tt.want {
			t.Errorf("FormatHours(%d) = %q, want %q", tt.millis, got, tt.want)
		}
	}
}

func TestSessionDay(t *testing.T) {
	s := Session{Date: "2026-08-31"}
	day, err := s.Day()
	if err != nil {
		t.Fatalf("Day: %v", err)
	}
	if day.Weekday() != time.Monday {
		t.Errorf("weekday = %v, want Monday", day.Weekday())
	}

	bad := Session{Date: "31/08/2026"}
	if _, err := bad.Day(); err == nil {
		t.Error("malformed date should fail to parse")
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.DefaultHourlyRate != 200 {
		t.Errorf("DefaultHourlyRate = %v, want 200", s.DefaultHourlyRate)
	}
	if s.WeeklyGoal != int64(40*time.Hour/time.Millisecond) {
		t.Errorf("WeeklyGoal = %d, want 40h in millis", s.WeeklyGoal)
	}
	if !s.Notifications || !s.HapticFeedback || !s.AutoSave {
		t.Error("toggles should default to on")
	}
	if s.Theme != "nord" {
		t.Errorf("Theme = %q, want nord", s.Theme)
	}
}

func TestDefaultSnapshot(t *testing.T) {
	snap := DefaultSnapshot("seed-id")
	if len(snap.Projects) != 1 {
		t.Fatalf("got %d projects, want 1", len(snap.Projects))
	}
	p := snap.Projects[0]
	if p.ID != "seed-id" || p.Name != "General" {
		t.Errorf("seed project = %+v", p)
	}
	if p.HourlyRate != snap.Settings.DefaultHourlyRate {
		t.Errorf("seed rate %v should match default rate %v", p.HourlyRate, snap.Settings.DefaultHourlyRate)
	}
	if p.TotalTime != 0 || p.TotalEarnings != 0 {
		t.Error("seed project has nonzero aggregates")
	}
}
