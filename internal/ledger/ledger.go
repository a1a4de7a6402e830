package ledger

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Martyparty1988/Flow-time/internal/model"
)

// Ledger owns the set of projects and sessions and enforces aggregate
// consistency: after every mutation, each project's TotalTime and
// TotalEarnings equal the sums over its sessions. The in-memory state is
// authoritative; persistence is a collaborator notified through the
// change hook.
//
// Mutating operations take a single mutex. Bubbletea delivers messages on
// one goroutine, but command closures run concurrently, and the multi-step
// aggregate updates in EditSession are not individually atomic.
type Ledger struct {
	mu       sync.Mutex
	projects []model.Project
	sessions []model.Session
	settings model.Settings

	onChange         func(model.Snapshot)
	onProjectDeleted func(deletedID, fallbackID string)

	newID func() string
	now   func() time.Time
}

// New creates a ledger from a loaded snapshot. The snapshot must contain
// at least one project; seed with model.DefaultSnapshot before calling.
func New(snap model.Snapshot) (*Ledger, error) {
	if len(snap.Projects) == 0 {
		return nil, &InvariantError{Reason: "a ledger needs at least one project"}
	}
	return &Ledger{
		projects: append([]model.Project(nil), snap.Projects...),
		sessions: append([]model.Session(nil), snap.Sessions...),
		settings: snap.Settings,
		newID:    func() string { return uuid.New().String() },
		now:      time.Now,
	}, nil
}

// SetOnChange registers the hook invoked after every successful mutation.
// The hook receives a copy of the full state, so a persistence layer can
// flush it and a presentation layer can re-render.
func (l *Ledger) SetOnChange(fn func(model.Snapshot)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = fn
}

// mutate runs fn under the mutex and fires the change hook on success
func (l *Ledger) mutate(fn func() error) error {
	l.mu.Lock()
	err := fn()
	var snap model.Snapshot
	hook := l.onChange
	if err == nil && hook != nil {
		snap = l.snapshotLocked()
	}
	l.mu.Unlock()

	if err == nil && hook != nil {
		hook(snap)
	}
	return err
}

func (l *Ledger) snapshotLocked() model.Snapshot {
	return model.Snapshot{
		Projects: append([]model.Project(nil), l.projects...),
		Sessions: append([]model.Session(nil), l.sessions...),
		Settings: l.settings,
	}
}

// Snapshot returns a copy of the full state
func (l *Ledger) Snapshot() model.Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

// Projects returns a copy of all projects in insertion order
func (l *Ledger) Projects() []model.Project {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]model.Project(nil), l.projects...)
}

// Sessions returns a copy of all sessions in creation order
func (l *Ledger) Sessions() []model.Session {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]model.Session(nil), l.sessions...)
}

// Settings returns the current settings record
func (l *Ledger) Settings() model.Settings {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.settings
}

// Project looks up a project by id
func (l *Ledger) Project(id string) (model.Project, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if p := l.findProject(id); p != nil {
		return *p, true
	}
	return model.Project{}, false
}

// Session looks up a session by id
func (l *Ledger) Session(id string) (model.Session, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if s := l.findSession(id); s != nil {
		return *s, true
	}
	return model.Session{}, false
}

func (l *Ledger) findProject(id string) *model.Project {
	for i := range l.projects {
		if l.projects[i].ID == id {
			return &l.projects[i]
		}
	}
	return nil
}

func (l *Ledger) findSession(id string) *model.Session {
	for i := range l.sessions {
		if l.sessions[i].ID == id {
			return &l.sessions[i]
		}
	}
	return nil
}

// CreateProject allocates a new project with zeroed aggregates
func (l *Ledger) CreateProject(name string, hourlyRate float64, color string) (model.Project, error) {
	var created model.Project
	err := l.mutate(func() error {
		if name == "" {
			return &ValidationError{Field: "name", Reason: "must not be empty"}
		}
		if hourlyRate <= 0 {
			return &ValidationError{Field: "hourlyRate", Reason: "must be positive"}
		}
		created = model.Project{
			ID:         l.newID(),
			Name:       name,
			Color:      color,
			HourlyRate: hourlyRate,
		}
		l.projects = append(l.projects, created)
		return nil
	})
	return created, err
}

// UpdateProject replaces a project's name, rate and color in place.
// Aggregates are untouched and existing sessions keep their snapshotted
// earnings; a rate change affects only future sessions.
func (l *Ledger) UpdateProject(id, name string, hourlyRate float64, color string) error {
	return l.mutate(func() error {
		if name == "" {
			return &ValidationError{Field: "name", Reason: "must not be empty"}
		}
		if hourlyRate <= 0 {
			return &ValidationError{Field: "hourlyRate", Reason: "must be positive"}
		}
		p := l.findProject(id)
		if p == nil {
			return &NotFoundError{Kind: "project", ID: id}
		}
		p.Name = name
		p.HourlyRate = hourlyRate
		p.Color = color
		return nil
	})
}

// DeleteProject removes a project and cascades to every session that
// references it. Deleting the last remaining project is rejected. If the
// timer's selection pointed at the deleted project it is moved to the
// first remaining one via the registered hook.
func (l *Ledger) DeleteProject(id string) error {
	var fallbackID string
	var deletedHook func(string, string)

	err := l.mutate(func() error {
		if l.findProject(id) == nil {
			return &NotFoundError{Kind: "project", ID: id}
		}
		if len(l.projects) == 1 {
			return &InvariantError{Reason: "cannot delete the last remaining project"}
		}

		kept := l.projects[:0]
		for _, p := range l.projects {
			if p.ID != id {
				kept = append(kept, p)
			}
		}
		l.projects = kept

		remaining := l.sessions[:0]
		for _, s := range l.sessions {
			if s.ProjectID != id {
				remaining = append(remaining, s)
			}
		}
		l.sessions = remaining

		fallbackID = l.projects[0].ID
		deletedHook = l.onProjectDeleted
		return nil
	})
	if err != nil {
		return err
	}
	if deletedHook != nil {
		deletedHook(id, fallbackID)
	}
	return nil
}

// RecordSession appends a session for today. Earnings are computed from
// the owning project's current rate and snapshotted on the session.
func (l *Ledger) RecordSession(projectID string, durationMillis int64, notes string, source model.Source) (model.Session, error) {
	return l.RecordSessionOn(l.now().Format(model.DateFormat), projectID, durationMillis, notes, source)
}

// RecordSessionOn appends a session attributed to the given calendar day
func (l *Ledger) RecordSessionOn(date, projectID string, durationMillis int64, notes string, source model.Source) (model.Session, error) {
	var created model.Session
	err := l.mutate(func() error {
		if durationMillis <= 0 {
			return &ValidationError{Field: "duration", Reason: "must be positive"}
		}
		if _, err := time.Parse(model.DateFormat, date); err != nil {
			return &ValidationError{Field: "date", Reason: "want YYYY-MM-DD"}
		}
		p := l.findProject(projectID)
		if p == nil {
			return &NotFoundError{Kind: "project", ID: projectID}
		}

		created = model.Session{
			ID:        l.newID(),
			ProjectID: projectID,
			Date:      date,
			Duration:  durationMillis,
			Earnings:  p.Earnings(durationMillis),
			Notes:     notes,
			Source:    source,
		}
		l.sessions = append(l.sessions, created)
		p.TotalTime += created.Duration
		p.TotalEarnings += created.Earnings
		return nil
	})
	return created, err
}

// EditSession replaces a session's fields wholesale, moving its duration
// and earnings between project aggregates. The old owner's aggregates are
// reduced before the new owner's are raised, so reassigning a session to
// its own project cannot double-count.
func (l *Ledger) EditSession(id, newProjectID, newDate string, newDurationMillis int64, newNotes string) error {
	return l.mutate(func() error {
		if newDurationMillis <= 0 {
			return &ValidationError{Field: "duration", Reason: "must be positive"}
		}
		if _, err := time.Parse(model.DateFormat, newDate); err != nil {
			return &ValidationError{Field: "date", Reason: "want YYYY-MM-DD"}
		}
		s := l.findSession(id)
		if s == nil {
			return &NotFoundError{Kind: "session", ID: id}
		}
		if l.findProject(newProjectID) == nil {
			return &NotFoundError{Kind: "project", ID: newProjectID}
		}

		if old := l.findProject(s.ProjectID); old != nil {
			old.TotalTime -= s.Duration
			old.TotalEarnings -= s.Earnings
		}

		next := l.findProject(newProjectID)
		s.ProjectID = newProjectID
		s.Date = newDate
		s.Duration = newDurationMillis
		s.Earnings = next.Earnings(newDurationMillis)
		s.Notes = newNotes

		next.TotalTime += s.Duration
		next.TotalEarnings += s.Earnings
		return nil
	})
}

// DeleteSession removes a session and subtracts it from its owner's
// aggregates. A missing owner means the project was already cascade
// deleted, which leaves nothing to subtract from.
func (l *Ledger) DeleteSession(id string) error {
	return l.mutate(func() error {
		s := l.findSession(id)
		if s == nil {
			return &NotFoundError{Kind: "session", ID: id}
		}

		if p := l.findProject(s.ProjectID); p != nil {
			p.TotalTime -= s.Duration
			p.TotalEarnings -= s.Earnings
		}

		remaining := l.sessions[:0]
		for _, sess := range l.sessions {
			if sess.ID != id {
				remaining = append(remaining, sess)
			}
		}
		l.sessions = remaining
		return nil
	})
}

// UpdateSettings replaces the settings record
func (l *Ledger) UpdateSettings(s model.Settings) error {
	return l.mutate(func() error {
		if s.DefaultHourlyRate <= 0 {
			return &ValidationError{Field: "defaultHourlyRate", Reason: "must be positive"}
		}
		l.settings = s
		return nil
	})
}
