// Package stats computes read-only projections over a ledger snapshot.
// Everything here is a pure fold over the project and session collections.
package stats

import (
	"sort"
	"time"

	"github.com/Martyparty1988/Flow-time/internal/model"
)

// Totals is an aggregated time/earnings pair
type Totals struct {
	Time     int64 // milliseconds
	Earnings int64
}

// TotalTime sums tracked time across all projects
func TotalTime(snap model.Snapshot) int64 {
	var total int64
	for _, p := range snap.Projects {
		total += p.TotalTime
	}
	return total
}

// TotalEarnings sums earnings across all projects
func TotalEarnings(snap model.Snapshot) int64 {
	var total int64
	for _, p := range snap.Projects {
		total += p.TotalEarnings
	}
	return total
}

// AverageSession returns the mean session duration in milliseconds,
// zero when no sessions exist
func AverageSession(snap model.Snapshot) int64 {
	if len(snap.Sessions) == 0 {
		return 0
	}
	var total int64
	for _, s := range snap.Sessions {
		total += s.Duration
	}
	return total / int64(len(snap.Sessions))
}

// SessionsOn returns the sessions attributed to one calendar day
func SessionsOn(snap model.Snapshot, day time.Time) []model.Session {
	key := day.Format(model.DateFormat)
	var out []model.Session
	for _, s := range snap.Sessions {
		if s.Date == key {
			out = append(out, s)
		}
	}
	return out
}

// SessionsBetween returns the sessions in [from, to], inclusive on both
// calendar days
func SessionsBetween(snap model.Snapshot, from, to time.Time) []model.Session {
	lo := from.Format(model.DateFormat)
	hi := to.Format(model.DateFormat)
	var out []model.Session
	for _, s := range snap.Sessions {
		if s.Date >= lo && s.Date <= hi {
			out = append(out, s)
		}
	}
	return out
}

func sumSessions(sessions []model.Session) Totals {
	var t Totals
	for _, s := range sessions {
		t.Time += s.Duration
		t.Earnings += s.Earnings
	}
	return t
}

// DayTotals aggregates the sessions of one calendar day
func DayTotals(snap model.Snapshot, day time.Time) Totals {
	return sumSessions(SessionsOn(snap, day))
}

// RankedProject is one entry of the per-project ranking
type RankedProject struct {
	Project      model.Project
	SessionCount int
	// Share is this project's fraction of all sessions, 0..1
	Share float64
}

// ProjectRanking orders projects by total tracked time, descending
func ProjectRanking(snap model.Snapshot) []RankedProject {
	counts := make(map[string]int, len(snap.Projects))
	for _, s := range snap.Sessions {
		counts[s.ProjectID]++
	}

	ranked := make([]RankedProject, 0, len(snap.Projects))
	for _, p := range snap.Projects {
		r := RankedProject{Project: p, SessionCount: counts[p.ID]}
		if len(snap.Sessions) > 0 {
			r.Share = float64(r.SessionCount) / float64(len(snap.Sessions))
		}
		ranked = append(ranked, r)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Project.TotalTime > ranked[j].Project.TotalTime
	})
	return ranked
}

// WeekdayTotals aggregates tracked time per weekday, Monday first
func WeekdayTotals(snap model.Snapshot) [7]int64 {
	var out [7]int64
	for _, s := range snap.Sessions {
		day, err := s.Day()
		if err != nil {
			continue
		}
		idx := (int(day.Weekday()) + 6) % 7 // Monday = 0
		out[idx] += s.Duration
	}
	return out
}

// DayBucket is one bar of a per-day chart
type DayBucket struct {
	Day      time.Time
	Duration int64
}

// WeeklyData aggregates the last seven calendar days ending today
func WeeklyData(snap model.Snapshot, today time.Time) []DayBucket {
	out := make([]DayBucket, 0, 7)
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		out = append(out, DayBucket{Day: day, Duration: DayTotals(snap, day).Time})
	}
	return out
}

// MonthBucket is one bar of a per-month chart
type MonthBucket struct {
	Month time.Time // first of the month
	Totals
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

func monthTotals(snap model.Snapshot, month time.Time) Totals {
	key := monthKey(month)
	var t Totals
	for _, s := range snap.Sessions {
		if len(s.Date) >= len(key) && s.Date[:len(key)] == key {
			t.Time += s.Duration
			t.Earnings += s.Earnings
		}
	}
	return t
}

// MonthlySummary compares the current month against the previous one
func MonthlySummary(snap model.Snapshot, now time.Time) (thisMonth, lastMonth Totals) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return monthTotals(snap, first), monthTotals(snap, first.AddDate(0, -1, 0))
}

// MonthlyTotals aggregates the last n months ending with the current one
func MonthlyTotals(snap model.Snapshot, now time.Time, n int) []MonthBucket {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	out := make([]MonthBucket, 0, n)
	for i := n - 1; i >= 0; i-- {
		month := first.AddDate(0, -i, 0)
		out = append(out, MonthBucket{Month: month, Totals: monthTotals(snap, month)})
	}
	return out
}

// LongestSession returns the maximum session duration, zero without sessions
func LongestSession(snap model.Snapshot) int64 {
	var max int64
	for _, s := range snap.Sessions {
		if s.Duration > max {
			max = s.Duration
		}
	}
	return max
}

// ShortestSession returns the minimum session duration, zero without sessions
func ShortestSession(snap model.Snapshot) int64 {
	var min int64
	for i, s := range snap.Sessions {
		if i == 0 || s.Duration < min {
			min = s.Duration
		}
	}
	return min
}

// WorkingDays counts the distinct calendar days with at least one session
func WorkingDays(snap model.Snapshot) int {
	days := make(map[string]struct{})
	for _, s := range snap.Sessions {
		days[s.Date] = struct{}{}
	}
	return len(days)
}

// GoalProgress reports this week's tracked time against the weekly goal.
// Weeks start on Monday. Fraction is clamped to 1.
func GoalProgress(snap model.Snapshot, now time.Time) (tracked, goal int64, fraction float64) {
	offset := (int(now.Weekday()) + 6) % 7
	monday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -offset)

	tracked = sumSessions(SessionsBetween(snap, monday, now)).Time
	goal = snap.Settings.WeeklyGoal
	if goal > 0 {
		fraction = float64(tracked) / float64(goal)
		if fraction > 1 {
			fraction = 1
		}
	}
	return tracked, goal, fraction
}
