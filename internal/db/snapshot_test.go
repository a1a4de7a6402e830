package db

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/Martyparty1988/Flow-time/internal/model"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLoadSnapshotEmptyDatabase(t *testing.T) {
	db := openTestDB(t)

	snap, err := db.LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(snap.Projects) != 0 || len(snap.Sessions) != 0 {
		t.Errorf("empty database yielded %d projects, %d sessions", len(snap.Projects), len(snap.Sessions))
	}
	// Missing settings row falls back to defaults
	if snap.Settings != model.DefaultSettings() {
		t.Errorf("settings = %+v, want defaults", snap.Settings)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	db := openTestDB(t)

	want := model.Snapshot{
		Projects: []model.Project{
			{ID: "p1", Name: "Client", Color: "#FF0000", HourlyRate: 250, TotalTime: 7200000, TotalEarnings: 500},
			{ID: "p2", Name: "Internal", Color: "", HourlyRate: 100},
		},
		Sessions: []model.Session{
			{ID: "s1", ProjectID: "p1", Date: "2026-08-30", Duration: 3600000, Earnings: 250, Notes: "review", Source: model.SourceTimer},
			{ID: "s2", ProjectID: "p1", Date: "2026-08-31", Duration: 3600000, Earnings: 250, Source: model.SourceManual},
		},
		Settings: model.Settings{
			DefaultHourlyRate: 300,
			Notifications:     true,
			HapticFeedback:    false,
			AutoSave:          true,
			Theme:             "dracula",
			WeeklyGoal:        144000000,
		},
	}

	if err := db.SaveSnapshot(want); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	got, err := db.LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestSaveSnapshotReplacesState(t *testing.T) {
	db := openTestDB(t)

	first := model.Snapshot{
		Projects: []model.Project{{ID: "p1", Name: "Old", HourlyRate: 100}},
		Sessions: []model.Session{{ID: "s1", ProjectID: "p1", Date: "2026-08-01", Duration: 1000, Source: model.SourceTimer}},
		Settings: model.DefaultSettings(),
	}
	if err := db.SaveSnapshot(first); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	second := model.Snapshot{
		Projects: []model.Project{{ID: "p2", Name: "New", HourlyRate: 200}},
		Settings: model.DefaultSettings(),
	}
	if err := db.SaveSnapshot(second); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	got, err := db.LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(got.Projects) != 1 || got.Projects[0].ID != "p2" {
		t.Errorf("projects = %+v, want only p2", got.Projects)
	}
	if len(got.Sessions) != 0 {
		t.Errorf("stale sessions survived the save: %+v", got.Sessions)
	}
}

func TestLoadSnapshotPreservesOrder(t *testing.T) {
	db := openTestDB(t)

	snap := model.Snapshot{Settings: model.DefaultSettings()}
	for _, id := range []string{"z", "m", "a", "q"} {
		snap.Projects = append(snap.Projects, model.Project{ID: id, Name: id, HourlyRate: 100})
		snap.Sessions = append(snap.Sessions, model.Session{
			ID: "s-" + id, ProjectID: id, Date: "2026-08-31", Duration: 1000, Source: model.SourceTimer,
		})
	}
	if err := db.SaveSnapshot(snap); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	got, err := db.LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	for i, want := range []string{"z", "m", "a", "q"} {
		if got.Projects[i].ID != want {
			t.Errorf("project[%d] = %s, want %s", i, got.Projects[i].ID, want)
		}
		if got.Sessions[i].ID != "s-"+want {
			t.Errorf("session[%d] = %s, want s-%s", i, got.Sessions[i].ID, want)
		}
	}
}

func TestClear(t *testing.T) {
	db := openTestDB(t)

	snap := model.Snapshot{
		Projects: []model.Project{{ID: "p1", Name: "P", HourlyRate: 100}},
		Settings: model.DefaultSettings(),
	}
	if err := db.SaveSnapshot(snap); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	if err := db.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	got, err := db.LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(got.Projects) != 0 {
		t.Errorf("projects survived Clear: %+v", got.Projects)
	}
}

// TestSaveDuringLoadNoDeadlock guards the MaxOpenConns(1) constraint: a
// snapshot save must not run while a load still holds the only connection
// through an open rows iterator. LoadSnapshot closes each iterator before
// issuing the next query, so back to back calls always complete.
func TestSaveDuringLoadNoDeadlock(t *testing.T) {
	db := openTestDB(t)

	snap := model.Snapshot{
		Projects: []model.Project{{ID: "p1", Name: "P", HourlyRate: 100}},
		Sessions: []model.Session{{ID: "s1", ProjectID: "p1", Date: "2026-08-31", Duration: 1000, Source: model.SourceTimer}},
		Settings: model.DefaultSettings(),
	}

	done := make(chan error, 1)
	go func() {
		for i := 0; i < 10; i++ {
			if err := db.SaveSnapshot(snap); err != nil {
				done <- err
				return
			}
			if _, err := db.LoadSnapshot(); err != nil {
				done <- err
				return
			}
		}
		done <- nil
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("save/load loop: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("save/load loop deadlocked")
	}
}
