package stats

import (
	"testing"
	"time"

	"github.com/Martyparty1988/Flow-time/internal/model"
)

const hour = int64(60 * 60 * 1000)

// Monday
var monday = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func day(offset int) string {
	return monday.AddDate(0, 0, offset).Format(model.DateFormat)
}

func testSnapshot() model.Snapshot {
	return model.Snapshot{
		Projects: []model.Project{
			{ID: "a", Name: "A", HourlyRate: 200, TotalTime: 3 * hour, TotalEarnings: 600},
			{ID: "b", Name: "B", HourlyRate: 100, TotalTime: hour, TotalEarnings: 100},
		},
		Sessions: []model.Session{
			{ID: "s1", ProjectID: "a", Date: day(0), Duration: 2 * hour, Earnings: 400},
			{ID: "s2", ProjectID: "a", Date: day(-1), Duration: hour, Earnings: 200}, // Sunday
			{ID: "s3", ProjectID: "b", Date: day(-8), Duration: hour, Earnings: 100}, // last week Sunday
		},
		Settings: model.DefaultSettings(),
	}
}

func TestTotals(t *testing.T) {
	snap := testSnapshot()

	if got := TotalTime(snap); got != 4*hour {
		t.Errorf("TotalTime = %d, want %d", got, 4*hour)
	}
	if got := TotalEarnings(snap); got != 700 {
		t.Errorf("TotalEarnings = %d, want 700", got)
	}
}

func TestAverageSession(t *testing.T) {
	if got := AverageSession(model.Snapshot{}); got != 0 {
		t.Errorf("AverageSession on empty = %d, want 0", got)
	}
	snap := testSnapshot()
	want := 4 * hour / 3
	if got := AverageSession(snap); got != want {
		t.Errorf("AverageSession = %d, want %d", got, want)
	}
}

func TestDayTotals(t *testing.T) {
	snap := testSnapshot()

	got := DayTotals(snap, monday)
	if got.Time != 2*hour || got.Earnings != 400 {
		t.Errorf("DayTotals = %+v, want 2h/400", got)
	}

	empty := DayTotals(snap, monday.AddDate(0, 0, 5))
	if empty.Time != 0 || empty.Earnings != 0 {
		t.Errorf("DayTotals on empty day = %+v, want zero", empty)
	}
}

func TestSessionsBetween(t *testing.T) {
	snap := testSnapshot()

	got := SessionsBetween(snap, monday.AddDate(0, 0, -1), monday)
	if len(got) != 2 {
		t.Fatalf("got %d sessions, want 2", len(got))
	}

	all := SessionsBetween(snap, monday.AddDate(0, 0, -30), monday)
	if len(all) != 3 {
		t.Errorf("got %d sessions over 30 days, want 3", len(all))
	}
}

func TestProjectRanking(t *testing.T) {
	snap := testSnapshot()

	ranked := ProjectRanking(snap)
	if len(ranked) != 2 {
		t.Fatalf("got %d entries, want 2", len(ranked))
	}
	if ranked[0].Project.ID != "a" {
		t.Errorf("top project = %s, want a", ranked[0].Project.ID)
	}
	if ranked[0].SessionCount != 2 {
		t.Errorf("top SessionCount = %d, want 2", ranked[0].SessionCount)
	}
	wantShare := 2.0 / 3.0
	if diff := ranked[0].Share - wantShare; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("top Share = %f, want %f", ranked[0].Share, wantShare)
	}
}

func TestWeekdayTotals(t *testing.T) {
	snap := testSnapshot()

	totals := WeekdayTotals(snap)
	if totals[0] != 2*hour {
		t.Errorf("Monday = %d, want %d", totals[0], 2*hour)
	}
	// Both Sundays fold into the same bucket
	if totals[6] != 2*hour {
		t.Errorf("Sunday = %d, want %d", totals[6], 2*hour)
	}
	for i := 1; i < 6; i++ {
		if totals[i] != 0 {
			t.Errorf("weekday %d = %d, want 0", i, totals[i])
		}
	}
}

func TestWeeklyData(t *testing.T) {
	snap := testSnapshot()

	buckets := WeeklyData(snap, monday)
	if len(buckets) != 7 {
		t.Fatalf("got %d buckets, want 7", len(buckets))
	}
	// Oldest first, today last
	if buckets[6].Duration != 2*hour {
		t.Errorf("today = %d, want %d", buckets[6].Duration, 2*hour)
	}
	if buckets[5].Duration != hour {
		t.Errorf("yesterday = %d, want %d", buckets[5].Duration, hour)
	}
	// s3 is 8 days back, outside the window
	var total int64
	for _, b := range buckets {
		total += b.Duration
	}
	if total != 3*hour {
		t.Errorf("window total = %d, want %d", total, 3*hour)
	}
}

func TestMonthlySummary(t *testing.T) {
	snap := testSnapshot()

	// day(0) and day(-1) are August, day(-8) is August too
	thisMonth, lastMonth := MonthlySummary(snap, monday)
	if thisMonth.Time != 4*hour {
		t.Errorf("this month = %d, want %d", thisMonth.Time, 4*hour)
	}
	if lastMonth.Time != 0 {
		t.Errorf("last month = %d, want 0", lastMonth.Time)
	}

	// From September's perspective everything moves to last month
	september := monday.AddDate(0, 0, 1)
	thisMonth, lastMonth = MonthlySummary(snap, september)
	if thisMonth.Time != 0 {
		t.Errorf("September = %d, want 0", thisMonth.Time)
	}
	if lastMonth.Time != 4*hour {
		t.Errorf("August from September = %d, want %d", lastMonth.Time, 4*hour)
	}
}

func TestMonthlyTotals(t *testing.T) {
	snap := testSnapshot()

	buckets := MonthlyTotals(snap, monday, 3)
	if len(buckets) != 3 {
		t.Fatalf("got %d buckets, want 3", len(buckets))
	}
	if buckets[2].Time != 4*hour {
		t.Errorf("current month = %d, want %d", buckets[2].Time, 4*hour)
	}
	if buckets[0].Time != 0 || buckets[1].Time != 0 {
		t.Error("earlier months should be empty")
	}
}

func TestSessionExtremes(t *testing.T) {
	if LongestSession(model.Snapshot{}) != 0 || ShortestSession(model.Snapshot{}) != 0 {
		t.Error("extremes on empty snapshot should be 0")
	}

	snap := testSnapshot()
	if got := LongestSession(snap); got != 2*hour {
		t.Errorf("LongestSession = %d, want %d", got, 2*hour)
	}
	if got := ShortestSession(snap); got != hour {
		t.Errorf("ShortestSession = %d, want %d", got, hour)
	}
}

func TestWorkingDays(t *testing.T) {
	snap := testSnapshot()
	if got := WorkingDays(snap); got != 3 {
		t.Errorf("WorkingDays = %d, want 3", got)
	}

	// A second session on an existing day does not add a working day
	snap.Sessions = append(snap.Sessions, model.Session{ID: "s4", ProjectID: "a", Date: day(0), Duration: hour})
	if got := WorkingDays(snap); got != 3 {
		t.Errorf("WorkingDays = %d, want 3 after duplicate day", got)
	}
}

func TestGoalProgress(t *testing.T) {
	snap := testSnapshot()
	snap.Settings.WeeklyGoal = 8 * hour

	// monday is a Monday: the week starts today, so only s1 counts
	tracked, goal, fraction := GoalProgress(snap, monday)
	if tracked != 2*hour {
		t.Errorf("tracked = %d, want %d", tracked, 2*hour)
	}
	if goal != 8*hour {
		t.Errorf("goal = %d, want %d", goal, 8*hour)
	}
	if diff := fraction - 0.25; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("fraction = %f, want 0.25", fraction)
	}
}

func TestGoalProgressClamped(t *testing.T) {
	snap := testSnapshot()
	snap.Settings.WeeklyGoal = hour

	_, _, fraction := GoalProgress(snap, monday)
	if fraction != 1 {
		t.Errorf("fraction = %f, want clamped to 1", fraction)
	}
}

func TestGoalProgressZeroGoal(t *testing.T) {
	snap := testSnapshot()
	snap.Settings.WeeklyGoal = 0

	_, _, fraction := GoalProgress(snap, monday)
	if fraction != 0 {
		t.Errorf("fraction = %f, want 0 for zero goal", fraction)
	}
}
