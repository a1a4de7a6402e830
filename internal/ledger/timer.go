package ledger

import (
	"time"

	"github.com/Martyparty1988/Flow-time/internal/model"
)

// MinSessionDuration is the discard threshold: stopping a timer whose
// elapsed time is below it records nothing, so accidental taps never
// persist a session.
const MinSessionDuration = 5 * time.Second

// State is the timer's position in its state machine
type State int

const (
	Idle State = iota
	Running
	Paused
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "idle"
	}
}

// Timer is the elapsed-time state machine that feeds the ledger. Elapsed
// time is always derived from wall-clock instants, never accumulated from
// tick increments, so missed or throttled ticks cannot skew it.
//
// The timer expects a single caller goroutine (the bubbletea update loop);
// all its methods are synchronous.
type Timer struct {
	ledger *Ledger
	now    func() time.Time

	state     State
	startedAt time.Time
	pausedFor time.Duration // elapsed captured at Pause

	selectedProjectID string
}

// NewTimer creates a timer bound to the ledger. The initial selection is
// the first project; when the selected project is deleted the selection
// moves to whichever project the ledger keeps.
func NewTimer(l *Ledger) *Timer {
	t := &Timer{
		ledger: l,
		now:    time.Now,
	}
	if projects := l.Projects(); len(projects) > 0 {
		t.selectedProjectID = projects[0].ID
	}
	l.mu.Lock()
	l.onProjectDeleted = func(deletedID, fallbackID string) {
		if t.selectedProjectID == deletedID {
			t.selectedProjectID = fallbackID
		}
	}
	l.mu.Unlock()
	return t
}

// State returns the current timer state
func (t *Timer) State() State {
	return t.state
}

// SelectedProjectID returns the project new sessions will be recorded to
func (t *Timer) SelectedProjectID() string {
	return t.selectedProjectID
}

// SelectProject changes the project new sessions are recorded to
func (t *Timer) SelectProject(id string) error {
	if _, ok := t.ledger.Project(id); !ok {
		return &NotFoundError{Kind: "project", ID: id}
	}
	t.selectedProjectID = id
	return nil
}

// Start begins a new run from idle, or resumes from pause by re-deriving
// the effective start instant so the elapsed time carries over. Starting
// an already running timer is a no-op.
func (t *Timer) Start() {
	switch t.state {
	case Idle:
		t.startedAt = t.now()
		t.pausedFor = 0
		t.state = Running
	case Paused:
		t.startedAt = t.now().Add(-t.pausedFor)
		t.state = Running
	}
}

// Pause freezes the elapsed time. A no-op unless running.
func (t *Timer) Pause() {
	if t.state != Running {
		return
	}
	t.pausedFor = t.now().Sub(t.startedAt)
	t.state = Paused
}

// Elapsed returns the live elapsed time for display. It has no side
// effects, so a stale tick arriving after Stop just reads zero.
func (t *Timer) Elapsed() time.Duration {
	switch t.state {
	case Running:
		return t.now().Sub(t.startedAt)
	case Paused:
		return t.pausedFor
	default:
		return 0
	}
}

// Stop finalizes the run and resets to idle. Elapsed time at or above
// MinSessionDuration is recorded as a session for the selected project;
// anything shorter is discarded. The returned bool reports whether a
// session was recorded. Stopping an idle timer is a no-op.
func (t *Timer) Stop() (model.Session, bool, error) {
	if t.state == Idle {
		return model.Session{}, false, nil
	}

	elapsed := t.Elapsed()
	t.state = Idle
	t.startedAt = time.Time{}
	t.pausedFor = 0

	if elapsed < MinSessionDuration {
		return model.Session{}, false, nil
	}

	session, err := t.ledger.RecordSession(t.selectedProjectID, elapsed.Milliseconds(), "", model.SourceTimer)
	if err != nil {
		return model.Session{}, false, err
	}
	return session, true, nil
}
