package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Martyparty1988/Flow-time/internal/app"
	"github.com/Martyparty1988/Flow-time/internal/model"
	"github.com/Martyparty1988/Flow-time/internal/ui/theme"
)

// ProjectsMode represents the current input mode of the projects view
type ProjectsMode int

const (
	ProjectsModeNormal ProjectsMode = iota
	ProjectsModeAdd
	ProjectsModeEdit
	ProjectsModeConfirmDelete
)

// ProjectsView manages the project list
type ProjectsView struct {
	app    *app.App
	width  int
	height int

	mode   ProjectsMode
	cursor int

	editID string
	inputs []textinput.Model // name, rate, color
	focus  int

	statusMsg string
	errMsg    string
}

// NewProjectsView creates a new projects view
func NewProjectsView(application *app.App) ProjectsView {
	return ProjectsView{app: application}
}

// Init initializes the projects view
func (v ProjectsView) Init() tea.Cmd {
	return nil
}

// SetSize sets the view dimensions
func (v ProjectsView) SetSize(width, height int) ProjectsView {
	v.width = width
	v.height = height
	return v
}

func (v *ProjectsView) openForm(mode ProjectsMode, project *model.Project) {
	v.mode = mode
	v.focus = 0
	v.errMsg = ""

	name := textinput.New()
	name.Placeholder = "project name"
	name.CharLimit = 60
	name.Width = 30

	rate := textinput.New()
	rate.Placeholder = "hourly rate"
	rate.CharLimit = 10
	rate.Width = 10

	color := textinput.New()
	color.Placeholder = "#00F5FF"
	color.CharLimit = 7
	color.Width = 9

	if project != nil {
		v.editID = project.ID
		name.SetValue(project.Name)
		rate.SetValue(strconv.FormatFloat(project.HourlyRate, 'f', -1, 64))
		color.SetValue(project.Color)
	} else {
		v.editID = ""
		rate.SetValue(strconv.FormatFloat(v.app.Ledger.Settings().DefaultHourlyRate, 'f', -1, 64))
		color.SetValue("#00F5FF")
	}

	name.Focus()
	v.inputs = []textinput.Model{name, rate, color}
}

func (v *ProjectsView) closeForm() {
	v.mode = ProjectsModeNormal
	v.inputs = nil
	v.editID = ""
}

func (v *ProjectsView) submitForm() {
	name := strings.TrimSpace(v.inputs[0].Value())
	color := strings.TrimSpace(v.inputs[2].Value())

	rate, err := strconv.ParseFloat(strings.TrimSpace(v.inputs[1].Value()), 64)
	if err != nil {
		v.errMsg = "invalid hourly rate"
		return
	}

	if v.mode == ProjectsModeEdit {
		err = v.app.Ledger.UpdateProject(v.editID, name, rate, color)
	} else {
		_, err = v.app.Ledger.CreateProject(name, rate, color)
	}
	if err != nil {
		v.errMsg = err.Error()
		return
	}

	if v.mode == ProjectsModeEdit {
		v.statusMsg = "Project updated"
	} else {
		v.statusMsg = "Project created"
	}
	v.closeForm()
}

// Update handles messages
func (v ProjectsView) Update(msg tea.Msg) (ProjectsView, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	switch v.mode {
	case ProjectsModeAdd, ProjectsModeEdit:
		return v.updateForm(keyMsg)
	case ProjectsModeConfirmDelete:
		return v.updateConfirmDelete(keyMsg)
	}

	projects := v.app.Ledger.Projects()

	switch keyMsg.String() {
	case "j", "down":
		if v.cursor < len(projects)-1 {
			v.cursor++
		}
	case "k", "up":
		if v.cursor > 0 {
			v.cursor--
		}
	case "a":
		v.openForm(ProjectsModeAdd, nil)
	case "enter":
		if v.cursor < len(projects) {
			project := projects[v.cursor]
			v.openForm(ProjectsModeEdit, &project)
		}
	case "d":
		if v.cursor < len(projects) {
			v.mode = ProjectsModeConfirmDelete
		}
	}

	return v, nil
}

func (v ProjectsView) updateConfirmDelete(msg tea.KeyMsg) (ProjectsView, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		projects := v.app.Ledger.Projects()
		if v.cursor < len(projects) {
			if err := v.app.Ledger.DeleteProject(projects[v.cursor].ID); err != nil {
				v.errMsg = err.Error()
			} else {
				v.statusMsg = "Project deleted"
				v.errMsg = ""
				if v.cursor > 0 {
					v.cursor--
				}
			}
		}
		v.mode = ProjectsModeNormal
	case "n", "N", "esc", "escape":
		v.mode = ProjectsModeNormal
	}
	return v, nil
}

func (v ProjectsView) updateForm(msg tea.KeyMsg) (ProjectsView, tea.Cmd) {
	switch msg.String() {
	case "esc", "escape":
		v.closeForm()
		return v, nil

	case "enter":
		v.submitForm()
		return v, nil

	case "tab", "shift+tab", "up", "down":
		if msg.String() == "tab" || msg.String() == "down" {
			v.focus = (v.focus + 1) % len(v.inputs)
		} else {
			v.focus = (v.focus + len(v.inputs) - 1) % len(v.inputs)
		}
		var cmd tea.Cmd
		for i := range v.inputs {
			if i == v.focus {
				cmd = v.inputs[i].Focus()
			} else {
				v.inputs[i].Blur()
			}
		}
		return v, cmd
	}

	var cmd tea.Cmd
	v.inputs[v.focus], cmd = v.inputs[v.focus].Update(msg)
	return v, cmd
}

// View renders the projects view
func (v ProjectsView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}

	t := theme.Current.Theme
	var sections []string

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		MarginBottom(1)
	sections = append(sections, titleStyle.Render("Projects"))

	switch v.mode {
	case ProjectsModeAdd, ProjectsModeEdit:
		sections = append(sections, v.renderForm())
	case ProjectsModeConfirmDelete:
		sections = append(sections, v.renderList())
		confirm := lipgloss.NewStyle().Foreground(t.Warning).MarginTop(1).
			Render("Delete this project and all its sessions? (y/n)")
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

func (v ProjectsView) renderList() string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	var lines []string
	for i, project := range v.app.Ledger.Projects() {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(project.Color)).Render("■")

		line := fmt.Sprintf("%s %s  %.0f/h  %s  %d earned",
			swatch,
			project.Name,
			project.HourlyRate,
			model.FormatDuration(project.TotalTime),
			project.TotalEarnings,
		)

		style := styles.RowNormal
		if i == v.cursor {
			style = styles.RowSelected
		}
		lines = append(lines, style.Render(line))
	}

	hint := lipgloss.NewStyle().Foreground(t.Subtle).MarginTop(1).
		Render("a add • enter edit • d delete • j/k navigate")
	lines = append(lines, hint)

	return strings.Join(lines, "\n")
}

func (v ProjectsView) renderForm() string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	title := "New project"
	if v.mode == ProjectsModeEdit {
		title = "Edit project"
	}

	labels := []string{"Name", "Rate", "Color"}
	var fields []string
	for i, input := range v.inputs {
		label := styles.Label.Render(fmt.Sprintf("%-7s", labels[i]+":"))
		fields = append(fields, label+input.View())
	}

	hint := lipgloss.NewStyle().Foreground(t.Subtle).MarginTop(1).
		Render("tab next field • enter save • esc cancel")

	body := strings.Join(append([]string{styles.Subtitle.Render(title), ""}, append(fields, hint)...), "\n")
	return styles.Panel.Render(body)
}

// IsInputMode returns whether the view is in input mode
func (v ProjectsView) IsInputMode() bool {
	return v.mode == ProjectsModeAdd || v.mode == ProjectsModeEdit
}
