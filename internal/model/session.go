package model

import (
	"fmt"
	"time"
)

// Source tags where a session came from
type Source string

const (
	SourceTimer  Source = "timer"
	SourceManual Source = "manual"
)

// DateFormat is the calendar-day key used for session dates (no time of day)
const DateFormat = "2006-01-02"

// Session is one recorded block of worked time, attributed to a project
// and a calendar date. Earnings are snapshotted at creation/edit time and
// never recomputed when the project's rate changes later.
type Session struct {
	ID        string `json:"id"`
	ProjectID string `json:"projectId"`
	Date      string `json:"date"`     // YYYY-MM-DD
	Duration  int64  `json:"duration"` // milliseconds
	Earnings  int64  `json:"earnings"`
	Notes     string `json:"notes,omitempty"`
	Source    Source `json:"source"`
}

// Day parses the session's calendar date
func (s *Session) Day() (time.Time, error) {
	return time.Parse(DateFormat, s.Date)
}

// FormatDuration renders milliseconds as HH:MM:SS
func FormatDuration(millis int64) string {
	secs := millis / 1000
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
}

// FormatHours renders milliseconds as a decimal hour count, e.g. "2.5h"
func FormatHours(millis int64) string {
	hours := float64(millis) / float64(time.Hour/time.Millisecond)
	return fmt.Sprintf("%.1fh", hours)
}
