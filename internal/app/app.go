package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/Martyparty1988/Flow-time/internal/db"
	"github.com/Martyparty1988/Flow-time/internal/export"
	"github.com/Martyparty1988/Flow-time/internal/ledger"
	"github.com/Martyparty1988/Flow-time/internal/model"
	"github.com/Martyparty1988/Flow-time/internal/notify"
)

// App is the composition root. It owns the ledger and timer instances and
// passes them explicitly to the presentation and persistence collaborators;
// nothing is looked up globally.
type App struct {
	DB       *db.DB
	Ledger   *ledger.Ledger
	Timer    *ledger.Timer
	Notifier *notify.Notifier
	DataDir  string

	lockFile   *flock.Flock
	persistErr error
}

// Config holds application configuration
type Config struct {
	DataDir string
	DBPath  string
}

// DefaultConfig returns the default application configuration
func DefaultConfig() *Config {
	dataDir := db.DefaultDataDir()
	return &Config{
		DataDir: dataDir,
		DBPath:  filepath.Join(dataDir, "flowtime.db"),
	}
}

// New creates a new application instance
func New(cfg *Config) (*App, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	// Ensure data directory exists
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	app := &App{
		DataDir:  cfg.DataDir,
		Notifier: notify.NewNotifier(),
	}

	// Acquire lock to ensure single instance
	if err := app.acquireLock(); err != nil {
		return nil, err
	}

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		app.releaseLock()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	app.DB = database

	if err := app.loadState(); err != nil {
		database.Close()
		app.releaseLock()
		return nil, err
	}

	return app, nil
}

// loadState reads the snapshot, seeds a fresh database, and wires the
// ledger, timer and persistence hook together
func (a *App) loadState() error {
	snap, err := a.DB.LoadSnapshot()
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}

	if len(snap.Projects) == 0 {
		snap = model.DefaultSnapshot(uuid.New().String())
		if err := a.DB.SaveSnapshot(snap); err != nil {
			return fmt.Errorf("failed to seed state: %w", err)
		}
	}

	led, err := ledger.New(snap)
	if err != nil {
		return err
	}

	a.Ledger = led
	a.Timer = ledger.NewTimer(led)
	a.Notifier.SetEnabled(snap.Settings.Notifications)

	led.SetOnChange(a.handleChange)
	return nil
}

// handleChange is the ledger's change hook: it keeps the notifier flag in
// sync and flushes the snapshot when autosave is on. A failed write is
// remembered but never escalated; the in-memory state stays authoritative
// and the next mutation retries with the then-current state.
func (a *App) handleChange(snap model.Snapshot) {
	a.Notifier.SetEnabled(snap.Settings.Notifications)

	if !snap.Settings.AutoSave {
		return
	}
	if err := a.DB.SaveSnapshot(snap); err != nil {
		a.persistErr = err
	} else {
		a.persistErr = nil
	}
}

// PersistError returns and clears the last persistence failure, if any
func (a *App) PersistError() error {
	err := a.persistErr
	a.persistErr = nil
	return err
}

// Flush writes the current state unconditionally, regardless of the
// autosave flag. Called on quit and before export.
func (a *App) Flush() error {
	return a.DB.SaveSnapshot(a.Ledger.Snapshot())
}

// Export flushes and writes the JSON backup artifact to path. An empty
// path picks the default backup filename in the working directory.
func (a *App) Export(path string) (string, error) {
	now := time.Now()
	if path == "" {
		path = export.DefaultFilename(now)
	}
	if err := a.Flush(); err != nil {
		return "", err
	}
	if err := export.WriteFile(path, a.Ledger.Snapshot(), now); err != nil {
		return "", err
	}
	return path, nil
}

// Reset clears all persisted state and reinitializes to the default seed
func (a *App) Reset() error {
	if err := a.DB.Clear(); err != nil {
		return fmt.Errorf("failed to clear state: %w", err)
	}
	return a.loadState()
}

// acquireLock acquires an exclusive file lock to prevent multiple instances
func (a *App) acquireLock() error {
	lockPath := filepath.Join(a.DataDir, "flowtime.lock")
	a.lockFile = flock.New(lockPath)

	locked, err := a.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !locked {
		return fmt.Errorf("another instance of flowtime is already running")
	}

	return nil
}

// releaseLock releases the file lock
func (a *App) releaseLock() {
	if a.lockFile != nil {
		a.lockFile.Unlock()
	}
}

// Close flushes state and cleans up application resources
func (a *App) Close() error {
	var errs []error

	if a.Ledger != nil && a.DB != nil {
		if err := a.Flush(); err != nil {
			errs = append(errs, err)
		}
	}

	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	a.releaseLock()

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
