package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/Martyparty1988/Flow-time/internal/model"
)

func TestDefaultFilename(t *testing.T) {
	now := time.Date(2026, 8, 31, 15, 4, 5, 0, time.UTC)
	if got := DefaultFilename(now); got != "flowtime-backup-2026-08-31.json" {
		t.Errorf("DefaultFilename = %q", got)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")

	want := model.Snapshot{
		Projects: []model.Project{
			{ID: "p1", Name: "Client", Color: "#00F5FF", HourlyRate: 250, TotalTime: 3600000, TotalEarnings: 250},
		},
		Sessions: []model.Session{
			{ID: "s1", ProjectID: "p1", Date: "2026-08-31", Duration: 3600000, Earnings: 250, Notes: "review", Source: model.SourceTimer},
		},
		Settings: model.DefaultSettings(),
	}

	now := time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)
	if err := WriteFile(path, want, now); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestBackupDocumentShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")

	snap := model.Snapshot{
		Projects: []model.Project{{ID: "p1", Name: "P", HourlyRate: 100}},
		Settings: model.DefaultSettings(),
	}
	now := time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)
	if err := WriteFile(path, snap, now); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("backup is not valid JSON: %v", err)
	}
	for _, field := range []string{"projects", "sessions", "settings", "exportDate"} {
		if _, ok := doc[field]; !ok {
			t.Errorf("backup missing %q field", field)
		}
	}

	var stamp struct {
		ExportDate time.Time `json:"exportDate"`
	}
	if err := json.Unmarshal(data, &stamp); err != nil {
		t.Fatalf("decode exportDate: %v", err)
	}
	if !stamp.ExportDate.Equal(now) {
		t.Errorf("exportDate = %v, want %v", stamp.ExportDate, now)
	}
}

func TestReadFileErrors(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("reading a missing file should fail")
	}

	path := filepath.Join(t.TempDir(), "garbage.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFile(path); err == nil {
		t.Error("reading invalid JSON should fail")
	}
}
