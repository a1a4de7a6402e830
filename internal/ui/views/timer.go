package views

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Martyparty1988/Flow-time/internal/app"
	"github.com/Martyparty1988/Flow-time/internal/ledger"
	"github.com/Martyparty1988/Flow-time/internal/model"
	"github.com/Martyparty1988/Flow-time/internal/stats"
	"github.com/Martyparty1988/Flow-time/internal/ui/theme"
)

// progressFull is the session length that fills the progress bar
const progressFull = 4 * time.Hour

// TimerView is the main stopwatch screen
type TimerView struct {
	app    *app.App
	width  int
	height int

	projectCursor int

	statusMsg string
}

// NewTimerView creates a new timer view
func NewTimerView(application *app.App) TimerView {
	return TimerView{app: application}
}

// Init initializes the timer view
func (v TimerView) Init() tea.Cmd {
	if v.app.Timer.State() == ledger.Running {
		return tickCmd()
	}
	return nil
}

// SetSize sets the view dimensions
func (v TimerView) SetSize(width, height int) TimerView {
	v.width = width
	v.height = height
	return v
}

type timerTickMsg struct{}

// tickCmd re-renders the running clock about once a second. Elapsed time
// is derived from wall-clock instants, so a late or missed tick cannot
// skew the measurement.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return timerTickMsg{}
	})
}

// bell rings the terminal bell when haptic feedback is enabled. The BEL
// byte goes through the program's renderer so it cannot interleave with
// a frame being written.
func bell(enabled bool) tea.Cmd {
	if !enabled {
		return nil
	}
	return tea.Printf("\a")
}

// Update handles messages
func (v TimerView) Update(msg tea.Msg) (TimerView, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		// Render-only: keep ticking while the timer runs
		if v.app.Timer.State() == ledger.Running {
			return v, tickCmd()
		}
		return v, nil

	case tea.KeyMsg:
		settings := v.app.Ledger.Settings()

		switch msg.String() {
		case "j", "down":
			projects := v.app.Ledger.Projects()
			if v.projectCursor < len(projects)-1 {
				v.projectCursor++
			}
			return v, nil

		case "k", "up":
			if v.projectCursor > 0 {
				v.projectCursor--
			}
			return v, nil

		case "enter":
			if v.app.Timer.State() != ledger.Idle {
				return v, nil
			}
			projects := v.app.Ledger.Projects()
			if v.projectCursor < len(projects) {
				if err := v.app.Timer.SelectProject(projects[v.projectCursor].ID); err != nil {
					v.statusMsg = err.Error()
					return v, nil
				}
				v.statusMsg = fmt.Sprintf("Tracking %s", projects[v.projectCursor].Name)
			}
			return v, nil

		case "s", " ":
			switch v.app.Timer.State() {
			case ledger.Idle:
				v.app.Timer.Start()
				v.statusMsg = "Timer started"
				return v, tea.Batch(tickCmd(), bell(settings.HapticFeedback))
			case ledger.Running:
				v.app.Timer.Pause()
				v.statusMsg = "Paused"
				return v, bell(settings.HapticFeedback)
			case ledger.Paused:
				v.app.Timer.Start()
				v.statusMsg = "Resumed"
				return v, tea.Batch(tickCmd(), bell(settings.HapticFeedback))
			}
			return v, nil

		case "x":
			if v.app.Timer.State() == ledger.Idle {
				return v, nil
			}
			session, recorded, err := v.app.Timer.Stop()
			if err != nil {
				v.statusMsg = err.Error()
				return v, nil
			}
			if !recorded {
				v.statusMsg = "Too short, session discarded"
				return v, bell(settings.HapticFeedback)
			}

			v.statusMsg = fmt.Sprintf("Session saved: %s", model.FormatDuration(session.Duration))
			if project, ok := v.app.Ledger.Project(session.ProjectID); ok {
				v.app.Notifier.SendSessionSaved(project.Name, model.FormatDuration(session.Duration))
			}

			// Did this session push the week over the goal?
			tracked, goal, _ := stats.GoalProgress(v.app.Ledger.Snapshot(), time.Now())
			if goal > 0 && tracked >= goal && tracked-session.Duration < goal {
				v.app.Notifier.SendGoalReached(model.FormatHours(goal))
			}
			return v, bell(settings.HapticFeedback)
		}
	}

	return v, nil
}

// View renders the timer view
func (v TimerView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}

	t := theme.Current.Theme
	var sections []string

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		MarginBottom(1)
	sections = append(sections, titleStyle.Render("Timer"))

	sections = append(sections, v.renderClock())

	// Selected project and live earnings
	if project, ok := v.app.Ledger.Project(v.app.Timer.SelectedProjectID()); ok {
		elapsed := v.app.Timer.Elapsed().Milliseconds()
		line := fmt.Sprintf("%s · %.0f/h · %d earned", project.Name, project.HourlyRate, project.Earnings(elapsed))
		sections = append(sections, lipgloss.NewStyle().Foreground(t.Info).MarginTop(1).Render(line))
	}

	// Today's totals
	today := stats.DayTotals(v.app.Ledger.Snapshot(), time.Now())
	todayLine := fmt.Sprintf("Today: %s · %d earned", model.FormatDuration(today.Time), today.Earnings)
	sections = append(sections, lipgloss.NewStyle().Foreground(t.Subtle).Render(todayLine))

	// Project picker (when idle)
	if v.app.Timer.State() == ledger.Idle {
		sections = append(sections, v.renderProjectList())
	}

	if v.statusMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(t.Success).MarginTop(1).Render(v.statusMsg))
	}

	sections = append(sections, v.renderControls())

	return strings.Join(sections, "\n")
}

// renderClock renders the state label, elapsed time and progress bar
func (v TimerView) renderClock() string {
	t := theme.Current.Theme

	var color lipgloss.Color
	var stateLabel string
	switch v.app.Timer.State() {
	case ledger.Running:
		color = t.TimerRunning
		stateLabel = "TRACKING"
	case ledger.Paused:
		color = t.TimerPaused
		stateLabel = "PAUSED"
	default:
		color = t.TimerIdle
		stateLabel = "READY"
	}

	elapsed := v.app.Timer.Elapsed()
	clock := lipgloss.NewStyle().
		Bold(true).
		Foreground(color).
		Padding(1, 4).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Render(model.FormatDuration(elapsed.Milliseconds()))

	// Progress toward a four hour session
	progress := float64(elapsed) / float64(progressFull)
	if progress > 1 {
		progress = 1
	}
	barWidth := 30
	filled := int(progress * float64(barWidth))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	labelStyle := lipgloss.NewStyle().Bold(true).Foreground(color)
	barStyle := lipgloss.NewStyle().Foreground(color)

	return lipgloss.JoinVertical(lipgloss.Center,
		labelStyle.Render(stateLabel),
		clock,
		barStyle.Render(bar),
	)
}

// renderProjectList renders the project picker
func (v TimerView) renderProjectList() string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Secondary).
		MarginTop(2)

	var lines []string
	lines = append(lines, headerStyle.Render("Track time on:"))

	selectedID := v.app.Timer.SelectedProjectID()
	for i, project := range v.app.Ledger.Projects() {
		cursor := "  "
		style := styles.RowNormal
		if i == v.projectCursor {
			cursor = "> "
			style = styles.RowSelected
		}

		marker := " "
		if project.ID == selectedID {
			marker = "●"
		}

		line := fmt.Sprintf("%s%s %s (%.0f/h)", cursor, marker, project.Name, project.HourlyRate)
		lines = append(lines, style.Render(line))
	}

	return strings.Join(lines, "\n")
}

// renderControls renders the control hints
func (v TimerView) renderControls() string {
	t := theme.Current.Theme

	controlStyle := lipgloss.NewStyle().
		Foreground(t.Subtle).
		MarginTop(2)

	var controls string
	switch v.app.Timer.State() {
	case ledger.Idle:
		controls = "s/space start • j/k choose project • enter pick project"
	case ledger.Running:
		controls = "s/space pause • x stop and save"
	case ledger.Paused:
		controls = "s/space resume • x stop and save"
	}

	return controlStyle.Render(controls)
}

// IsInputMode returns whether the view is in input mode
func (v TimerView) IsInputMode() bool {
	return false
}
