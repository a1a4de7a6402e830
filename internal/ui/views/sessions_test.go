package views

import (
	"testing"
)

// An edit that only changes notes must not drift the stored duration:
// the form prefill has to parse back to exactly the millisecond count it
// was rendered from.
func TestDurationInputRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		millis int64
	}{
		{"ten seconds", 10 * 1000},
		{"one and a half seconds", 1500},
		{"100 minutes", 100 * 60 * 1000},
		{"one hour one second", 60*60*1000 + 1000},
		{"odd timer stop", 4*60*60*1000 + 23*60*1000 + 7*1000 + 250},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rendered := formatDurationInput(tt.millis)
			got, err := parseDurationMillis(rendered)
			if err != nil {
				t.Fatalf("parseDurationMillis(%q): %v", rendered, err)
			}
			if got != tt.millis {
				t.Errorf("round trip %d -> %q -> %d", tt.millis, rendered, got)
			}
		})
	}
}

func TestParseDurationMillis(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"90", 90 * 60 * 1000, false}, // bare number is minutes
		{"1h30m", 90 * 60 * 1000, false},
		{"45m", 45 * 60 * 1000, false},
		{" 10s ", 10 * 1000, false},
		{"", 0, true},
		{"soon", 0, true},
	}
	for _, tt := range tests {
		got, err := parseDurationMillis(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseDurationMillis(%q) = %d, want error", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseDurationMillis(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseDurationMillis(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
