package views

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Martyparty1988/Flow-time/internal/app"
	"github.com/Martyparty1988/Flow-time/internal/model"
	"github.com/Martyparty1988/Flow-time/internal/ui/theme"
)

// SessionsMode represents the current input mode of the sessions view
type SessionsMode int

const (
	SessionsModeNormal SessionsMode = iota
	SessionsModeAdd
	SessionsModeEdit
	SessionsModeConfirmDelete
)

// Form field positions: 0 is the project picker, the rest are text inputs
const (
	fieldProject = iota
	fieldDate
	fieldDuration
	fieldNotes
	fieldCount
)

// SessionsView lists recorded sessions and supports manual entry, full
// replace edits, and deletion
type SessionsView struct {
	app    *app.App
	width  int
	height int

	mode   SessionsMode
	cursor int

	// Form state
	editID     string
	projectIdx int
	inputs     []textinput.Model
	focus      int

	statusMsg string
	errMsg    string
}

// NewSessionsView creates a new sessions view
func NewSessionsView(application *app.App) SessionsView {
	return SessionsView{app: application}
}

// Init initializes the sessions view
func (v SessionsView) Init() tea.Cmd {
	return nil
}

// SetSize sets the view dimensions
func (v SessionsView) SetSize(width, height int) SessionsView {
	v.width = width
	v.height = height
	return v
}

// recent returns sessions newest first
func (v SessionsView) recent() []model.Session {
	sessions := v.app.Ledger.Sessions()
	out := make([]model.Session, len(sessions))
	for i, s := range sessions {
		out[len(sessions)-1-i] = s
	}
	return out
}

func (v *SessionsView) openForm(mode SessionsMode, session *model.Session) {
	v.mode = mode
	v.focus = fieldProject
	v.errMsg = ""

	date := textinput.New()
	date.Placeholder = model.DateFormat
	date.CharLimit = 10
	date.Width = 12

	duration := textinput.New()
	duration.Placeholder = "1h30m or 90"
	duration.CharLimit = 16
	duration.Width = 12

	notes := textinput.New()
	notes.Placeholder = "notes"
	notes.CharLimit = 200
	notes.Width = 40

	projects := v.app.Ledger.Projects()
	v.projectIdx = 0

	if session != nil {
		v.editID = session.ID
		date.SetValue(session.Date)
		duration.SetValue(formatDurationInput(session.Duration))
		notes.SetValue(session.Notes)
		for i, p := range projects {
			if p.ID == session.ProjectID {
				v.projectIdx = i
			}
		}
	} else {
		v.editID = ""
		date.SetValue(time.Now().Format(model.DateFormat))
	}

	v.inputs = []textinput.Model{date, duration, notes}
}

func (v *SessionsView) closeForm() {
	v.mode = SessionsModeNormal
	v.inputs = nil
	v.editID = ""
}

// formatDurationInput renders a stored duration for the edit form. The
// form round-trips: parseDurationMillis reads the string back to exactly
// the same millisecond count, so an edit that only touches other fields
// cannot rewrite the duration.
func formatDurationInput(millis int64) string {
	return (time.Duration(millis) * time.Millisecond).String()
}

// parseDurationMillis accepts a Go duration string or a bare number of
// minutes
func parseDurationMillis(input string) (int64, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, fmt.Errorf("empty duration")
	}

	if mins, err := strconv.Atoi(input); err == nil {
		return int64(mins) * 60 * 1000, nil
	}
	if d, err := time.ParseDuration(input); err == nil {
		return d.Milliseconds(), nil
	}
	return 0, fmt.Errorf("invalid duration %q", input)
}

func (v *SessionsView) submitForm() {
	projects := v.app.Ledger.Projects()
	if v.projectIdx >= len(projects) {
		v.errMsg = "no project selected"
		return
	}
	projectID := projects[v.projectIdx].ID
	date := strings.TrimSpace(v.inputs[0].Value())
	notes := strings.TrimSpace(v.inputs[2].Value())

	durMillis, err := parseDurationMillis(v.inputs[1].Value())
	if err != nil {
		v.errMsg = err.Error()
		return
	}

	if v.mode == SessionsModeEdit {
		err = v.app.Ledger.EditSession(v.editID, projectID, date, durMillis, notes)
	} else {
		_, err = v.app.Ledger.RecordSessionOn(date, projectID, durMillis, notes, model.SourceManual)
	}
	if err != nil {
		v.errMsg = err.Error()
		return
	}

	if v.mode == SessionsModeEdit {
		v.statusMsg = "Session updated"
	} else {
		v.statusMsg = "Session added"
	}
	v.closeForm()
}

// Update handles messages
func (v SessionsView) Update(msg tea.Msg) (SessionsView, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	switch v.mode {
	case SessionsModeAdd, SessionsModeEdit:
		return v.updateForm(keyMsg)
	case SessionsModeConfirmDelete:
		return v.updateConfirmDelete(keyMsg)
	}

	sessions := v.recent()

	switch keyMsg.String() {
	case "j", "down":
		if v.cursor < len(sessions)-1 {
			v.cursor++
		}
	case "k", "up":
		if v.cursor > 0 {
			v.cursor--
		}
	case "g":
		v.cursor = 0
	case "G":
		if len(sessions) > 0 {
			v.cursor = len(sessions) - 1
		}
	case "a":
		v.openForm(SessionsModeAdd, nil)
	case "enter":
		if v.cursor < len(sessions) {
			session := sessions[v.cursor]
			v.openForm(SessionsModeEdit, &session)
		}
	case "d":
		if v.cursor < len(sessions) {
			v.mode = SessionsModeConfirmDelete
		}
	}

	return v, nil
}

func (v SessionsView) updateConfirmDelete(msg tea.KeyMsg) (SessionsView, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		sessions := v.recent()
		if v.cursor < len(sessions) {
			if err := v.app.Ledger.DeleteSession(sessions[v.cursor].ID); err != nil {
				v.errMsg = err.Error()
			} else {
				v.statusMsg = "Session deleted"
				if v.cursor > 0 {
					v.cursor--
				}
			}
		}
		v.mode = SessionsModeNormal
	case "n", "N", "esc", "escape":
		v.mode = SessionsModeNormal
	}
	return v, nil
}

func (v SessionsView) updateForm(msg tea.KeyMsg) (SessionsView, tea.Cmd) {
	switch msg.String() {
	case "esc", "escape":
		v.closeForm()
		return v, nil

	case "enter":
		v.submitForm()
		return v, nil

	case "tab", "shift+tab", "up", "down":
		if msg.String() == "tab" || msg.String() == "down" {
			v.focus = (v.focus + 1) % fieldCount
		} else {
			v.focus = (v.focus + fieldCount - 1) % fieldCount
		}
		var cmd tea.Cmd
		for i := range v.inputs {
			if i+1 == v.focus {
				cmd = v.inputs[i].Focus()
			} else {
				v.inputs[i].Blur()
			}
		}
		return v, cmd
	}

	if v.focus == fieldProject {
		projects := v.app.Ledger.Projects()
		switch msg.String() {
		case "left", "h":
			if v.projectIdx > 0 {
				v.projectIdx--
			}
		case "right", "l":
			if v.projectIdx < len(projects)-1 {
				v.projectIdx++
			}
		}
		return v, nil
	}

	idx := v.focus - 1
	var cmd tea.Cmd
	v.inputs[idx], cmd = v.inputs[idx].Update(msg)
	return v, cmd
}

// View renders the sessions view
func (v SessionsView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}

	t := theme.Current.Theme
	var sections []string

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		MarginBottom(1)
	sections = append(sections, titleStyle.Render("Sessions"))

	switch v.mode {
	case SessionsModeAdd, SessionsModeEdit:
		sections = append(sections, v.renderForm())
	case SessionsModeConfirmDelete:
		sections = append(sections, v.renderList())
		confirm := lipgloss.NewStyle().Foreground(t.Warning).MarginTop(1).
			Render("Delete this session? (y/n)")
		sections = append(sections, confirm)
	default:
		sections = append(sections, v.renderList())
	}

	if v.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(t.Error).MarginTop(1).Render(v.errMsg))
	} else if v.statusMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(t.Success).MarginTop(1).Render(v.statusMsg))
	}

	return strings.Join(sections, "\n")
}

func (v SessionsView) renderList() string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	sessions := v.recent()
	if len(sessions) == 0 {
		return styles.Label.Render("No sessions yet. Start the timer or press 'a' to add one.")
	}

	maxShow := v.height - 6
	if maxShow < 3 {
		maxShow = 3
	}

	var lines []string
	for i, session := range sessions {
		if i >= maxShow {
			lines = append(lines, styles.Label.Render(fmt.Sprintf("  ... +%d more", len(sessions)-maxShow)))
			break
		}

		projectName := "unknown project"
		if p, ok := v.app.Ledger.Project(session.ProjectID); ok {
			projectName = p.Name
		}

		tag := ""
		if session.Source == model.SourceManual {
			tag = " [manual]"
		}
		notes := ""
		if session.Notes != "" {
			notes = " · " + session.Notes
		}

		line := fmt.Sprintf("%s  %s  %s  %d%s%s",
			session.Date,
			model.FormatDuration(session.Duration),
			projectName,
			session.Earnings,
			tag,
			notes,
		)

		style := styles.RowNormal
		if i == v.cursor && v.mode != SessionsModeAdd && v.mode != SessionsModeEdit {
			style = styles.RowSelected
		}
		lines = append(lines, style.Render(line))
	}

	hint := lipgloss.NewStyle().Foreground(t.Subtle).MarginTop(1).
		Render("a add • enter edit • d delete • j/k navigate")
	lines = append(lines, hint)

	return strings.Join(lines, "\n")
}

func (v SessionsView) renderForm() string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	title := "New session"
	if v.mode == SessionsModeEdit {
		title = "Edit session"
	}

	projects := v.app.Ledger.Projects()
	projectName := ""
	if v.projectIdx < len(projects) {
		projectName = projects[v.projectIdx].Name
	}
	projectLine := fmt.Sprintf("Project: ← %s →", projectName)
	projectStyle := styles.RowNormal
	if v.focus == fieldProject {
		projectStyle = styles.RowSelected
	}

	labels := []string{"Date", "Duration", "Notes"}
	var fields []string
	fields = append(fields, projectStyle.Render(projectLine))
	for i, input := range v.inputs {
		label := styles.Label.Render(fmt.Sprintf("%-9s", labels[i]+":"))
		fields = append(fields, label+input.View())
	}

	hint := lipgloss.NewStyle().Foreground(t.Subtle).MarginTop(1).
		Render("tab next field • enter save • esc cancel")

	body := strings.Join(append([]string{styles.Subtitle.Render(title), ""}, append(fields, hint)...), "\n")
	return styles.Panel.Render(body)
}

// IsInputMode returns whether the view is in input mode
func (v SessionsView) IsInputMode() bool {
	return v.mode == SessionsModeAdd || v.mode == SessionsModeEdit
}
