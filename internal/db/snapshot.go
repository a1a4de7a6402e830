package db

import (
	"database/sql"
	"fmt"

	"github.com/Martyparty1988/Flow-time/internal/model"
)

// LoadSnapshot reads the whole persisted state. Projects and sessions come
// back in their stored position order, which is their creation order. An
// empty database yields a zero snapshot; the caller is responsible for
// seeding defaults.
func (db *DB) LoadSnapshot() (model.Snapshot, error) {
	var snap model.Snapshot

	rows, err := db.Query(`
		SELECT id, name, color, hourly_rate, total_time, total_earnings
		FROM projects
		ORDER BY position
	`)
	if err != nil {
		return snap, fmt.Errorf("failed to load projects: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p model.Project
		var color sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &color, &p.HourlyRate, &p.TotalTime, &p.TotalEarnings); err != nil {
			return snap, fmt.Errorf("failed to scan project: %w", err)
		}
		p.Color = color.String
		snap.Projects = append(snap.Projects, p)
	}
	if err := rows.Err(); err != nil {
		return snap, err
	}
	rows.Close()

	sessionRows, err := db.Query(`
		SELECT id, project_id, date, duration, earnings, notes, source
		FROM sessions
		ORDER BY position
	`)
	if err != nil {
		return snap, fmt.Errorf("failed to load sessions: %w", err)
	}
	defer sessionRows.Close()

	for sessionRows.Next() {
		var s model.Session
		if err := sessionRows.Scan(&s.ID, &s.ProjectID, &s.Date, &s.Duration, &s.Earnings, &s.Notes, &s.Source); err != nil {
			return snap, fmt.Errorf("failed to scan session: %w", err)
		}
		snap.Sessions = append(snap.Sessions, s)
	}
	if err := sessionRows.Err(); err != nil {
		return snap, err
	}
	// Close before the settings query: MaxOpenConns(1) means an open
	// rows iterator holds the only connection.
	sessionRows.Close()

	settings, ok, err := db.loadSettings()
	if err != nil {
		return snap, err
	}
	if !ok {
		settings = model.DefaultSettings()
	}
	snap.Settings = settings

	return snap, nil
}

func (db *DB) loadSettings() (model.Settings, bool, error) {
	var s model.Settings
	var notifications, haptics, autoSave int

	err := db.QueryRow(`
		SELECT default_hourly_rate, notifications, haptic_feedback, auto_save, theme, weekly_goal
		FROM settings WHERE id = 1
	`).Scan(&s.DefaultHourlyRate, &notifications, &haptics, &autoSave, &s.Theme, &s.WeeklyGoal)

	if err == sql.ErrNoRows {
		return s, false, nil
	}
	if err != nil {
		return s, false, fmt.Errorf("failed to load settings: %w", err)
	}

	s.Notifications = notifications == 1
	s.HapticFeedback = haptics == 1
	s.AutoSave = autoSave == 1
	return s, true, nil
}

// SaveSnapshot replaces the whole persisted state with the given snapshot
// inside a single transaction. The ledger calls this after every mutation;
// a failure leaves the previous on-disk state intact and the in-memory
// state stays authoritative.
func (db *DB) SaveSnapshot(snap model.Snapshot) error {
	return db.Transaction(func(tx *sql.Tx) error {
		for _, table := range []string{"sessions", "projects", "settings"} {
			if _, err := tx.Exec("DELETE FROM " + table); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}

		for i, p := range snap.Projects {
			_, err := tx.Exec(`
				INSERT INTO projects (id, name, color, hourly_rate, total_time, total_earnings, position)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, p.ID, p.Name, p.Color, p.HourlyRate, p.TotalTime, p.TotalEarnings, i)
			if err != nil {
				return fmt.Errorf("failed to insert project: %w", err)
			}
		}

		for i, s := range snap.Sessions {
			_, err := tx.Exec(`
				INSERT INTO sessions (id, project_id, date, duration, earnings, notes, source, position)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			`, s.ID, s.ProjectID, s.Date, s.Duration, s.Earnings, s.Notes, s.Source, i)
			if err != nil {
				return fmt.Errorf("failed to insert session: %w", err)
			}
		}

		boolInt := func(b bool) int {
			if b {
				return 1
			}
			return 0
		}
		set := snap.Settings
		_, err := tx.Exec(`
			INSERT INTO settings (id, default_hourly_rate, notifications, haptic_feedback, auto_save, theme, weekly_goal)
			VALUES (1, ?, ?, ?, ?, ?, ?)
		`, set.DefaultHourlyRate, boolInt(set.Notifications), boolInt(set.HapticFeedback), boolInt(set.AutoSave), set.Theme, set.WeeklyGoal)
		if err != nil {
			return fmt.Errorf("failed to insert settings: %w", err)
		}
		return nil
	})
}

// Clear removes all persisted state. The caller reinitializes with the
// default seed afterwards.
func (db *DB) Clear() error {
	return db.Transaction(func(tx *sql.Tx) error {
		for _, table := range []string{"sessions", "projects", "settings"} {
			if _, err := tx.Exec("DELETE FROM " + table); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}
		return nil
	})
}
