package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Martyparty1988/Flow-time/internal/export"
	"github.com/Martyparty1988/Flow-time/internal/model"
)

func testConfig(t *testing.T) *Config {
	t.Helper()
	dir := t.TempDir()
	return &Config{
		DataDir: dir,
		DBPath:  filepath.Join(dir, "flowtime.db"),
	}
}

func TestNewSeedsDefaultState(t *testing.T) {
	application, err := New(testConfig(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer application.Close()

	projects := application.Ledger.Projects()
	if len(projects) != 1 {
		t.Fatalf("got %d projects, want 1 seeded", len(projects))
	}
	if projects[0].Name != "General" {
		t.Errorf("seed project name = %q, want General", projects[0].Name)
	}
	if application.Timer.SelectedProjectID() != projects[0].ID {
		t.Error("timer selection should start on the seed project")
	}
}

func TestSingleInstanceLock(t *testing.T) {
	cfg := testConfig(t)

	first, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer first.Close()

	if _, err := New(cfg); err == nil {
		t.Fatal("second instance on the same data dir should fail")
	}
}

func TestStateSurvivesRestart(t *testing.T) {
	cfg := testConfig(t)

	application, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	project := application.Ledger.Projects()[0]
	if _, err := application.Ledger.RecordSession(project.ID, 3600000, "deep work", model.SourceManual); err != nil {
		t.Fatalf("RecordSession: %v", err)
	}
	if err := application.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := New(cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	sessions := reopened.Ledger.Sessions()
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions after restart, want 1", len(sessions))
	}
	if sessions[0].Notes != "deep work" {
		t.Errorf("session notes = %q", sessions[0].Notes)
	}

	p, _ := reopened.Ledger.Project(project.ID)
	if p.TotalTime != 3600000 {
		t.Errorf("restored TotalTime = %d, want 3600000", p.TotalTime)
	}
}

func TestAutoSaveOffDefersFlush(t *testing.T) {
	cfg := testConfig(t)

	application, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer application.Close()

	settings := application.Ledger.Settings()
	settings.AutoSave = false
	if err := application.Ledger.UpdateSettings(settings); err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}

	project := application.Ledger.Projects()[0]
	if _, err := application.Ledger.RecordSession(project.ID, 3600000, "", model.SourceTimer); err != nil {
		t.Fatalf("RecordSession: %v", err)
	}

	// The mutation is not on disk yet
	snap, err := application.DB.LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(snap.Sessions) != 0 {
		t.Errorf("session persisted despite autosave off")
	}

	// Flush writes it regardless of the flag
	if err := application.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	snap, err = application.DB.LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(snap.Sessions) != 1 {
		t.Errorf("got %d persisted sessions after Flush, want 1", len(snap.Sessions))
	}
}

func TestExportWritesBackup(t *testing.T) {
	application, err := New(testConfig(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer application.Close()

	project := application.Ledger.Projects()[0]
	application.Ledger.RecordSession(project.ID, 3600000, "", model.SourceTimer)

	path := filepath.Join(t.TempDir(), "backup.json")
	written, err := application.Export(path)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if written != path {
		t.Errorf("Export returned %q, want %q", written, path)
	}

	snap, err := export.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(snap.Sessions) != 1 || len(snap.Projects) != 1 {
		t.Errorf("backup has %d projects, %d sessions", len(snap.Projects), len(snap.Sessions))
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("backup file missing: %v", err)
	}
}

func TestResetReturnsToSeedState(t *testing.T) {
	application, err := New(testConfig(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer application.Close()

	seed := application.Ledger.Projects()[0]
	application.Ledger.CreateProject("Client", 500, "")
	application.Ledger.RecordSession(seed.ID, 3600000, "", model.SourceTimer)

	if err := application.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	projects := application.Ledger.Projects()
	if len(projects) != 1 || projects[0].Name != "General" {
		t.Errorf("after reset: %+v, want a single seed project", projects)
	}
	if len(application.Ledger.Sessions()) != 0 {
		t.Error("sessions survived reset")
	}
	if projects[0].ID == seed.ID {
		t.Error("reset should mint a fresh seed project id")
	}
	if application.Timer.SelectedProjectID() != projects[0].ID {
		t.Error("timer selection should move to the new seed project")
	}
}
