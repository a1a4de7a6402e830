// Package export writes the full state snapshot as a JSON backup artifact.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/Martyparty1988/Flow-time/internal/model"
)

// Backup is the exported document: the snapshot fields plus the export
// timestamp
type Backup struct {
	Projects   []model.Project `json:"projects"`
	Sessions   []model.Session `json:"sessions"`
	Settings   model.Settings  `json:"settings"`
	ExportDate time.Time       `json:"exportDate"`
}

// DefaultFilename returns the backup filename for the given day,
// e.g. flowtime-backup-2026-08-31.json
func DefaultFilename(now time.Time) string {
	return fmt.Sprintf("flowtime-backup-%s.json", now.Format(model.DateFormat))
}

// WriteFile writes the snapshot to path as indented JSON
func WriteFile(path string, snap model.Snapshot, now time.Time) error {
	backup := Backup{
		Projects:   snap.Projects,
		Sessions:   snap.Sessions,
		Settings:   snap.Settings,
		ExportDate: now,
	}

	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	return nil
}

// ReadFile reads a backup artifact back into a snapshot
func ReadFile(path string) (model.Snapshot, error) {
	var backup Backup

	data, err := os.ReadFile(path)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to read backup: %w", err)
	}
	if err := json.Unmarshal(data, &backup); err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to decode backup: %w", err)
	}

	return model.Snapshot{
		Projects: backup.Projects,
		Sessions: backup.Sessions,
		Settings: backup.Settings,
	}, nil
}
