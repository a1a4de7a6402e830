package model

import (
	"math"
	"time"
)

// Project represents a billable category with an hourly rate
type Project struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`

	// HourlyRate is in currency units per hour
	HourlyRate float64 `json:"hourlyRate"`

	// Cached aggregates maintained by the ledger on every mutation:
	// TotalTime is milliseconds across all sessions of this project,
	// TotalEarnings the sum of their snapshotted earnings.
	TotalTime     int64 `json:"totalTime"`
	TotalEarnings int64 `json:"totalEarnings"`
}

// Earnings returns the rounded earnings for working the given number of
// milliseconds at this project's current rate
func (p *Project) Earnings(durationMillis int64) int64 {
	hours := float64(durationMillis) / float64(time.Hour/time.Millisecond)
	return int64(math.Round(hours * p.HourlyRate))
}
