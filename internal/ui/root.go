package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Martyparty1988/Flow-time/internal/app"
	"github.com/Martyparty1988/Flow-time/internal/ui/theme"
	"github.com/Martyparty1988/Flow-time/internal/ui/views"
)

// Debug logging (enable by setting FLOWTIME_DEBUG=1)
var rootDebugLog *os.File

func init() {
	if os.Getenv("FLOWTIME_DEBUG") == "1" {
		rootDebugLog, _ = os.OpenFile("/tmp/flowtime-root-debug.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	}
}

func rootDebugf(format string, args ...interface{}) {
	if rootDebugLog != nil {
		fmt.Fprintf(rootDebugLog, format+"\n", args...)
		rootDebugLog.Sync()
	}
}

// RootModel is the main application model that manages views
type RootModel struct {
	app    *app.App
	keys   KeyMap
	help   help.Model
	width  int
	height int

	currentView  View
	timerView    views.TimerView
	sessionsView views.SessionsView
	projectsView views.ProjectsView
	statsView    views.StatsView
	settingsView views.SettingsView
	helpVisible  bool

	// Status message
	statusMsg string
	errorMsg  string
}

// NewRootModel creates a new root model
func NewRootModel(application *app.App) RootModel {
	h := help.New()
	h.ShowAll = false

	return RootModel{
		app:          application,
		keys:         DefaultKeyMap(),
		help:         h,
		currentView:  ViewTimer,
		timerView:    views.NewTimerView(application),
		sessionsView: views.NewSessionsView(application),
		projectsView: views.NewProjectsView(application),
		statsView:    views.NewStatsView(application),
		settingsView: views.NewSettingsView(application),
	}
}

// SetView switches the starting view
func (m RootModel) SetView(v View) RootModel {
	m.currentView = v
	return m
}

// Init initializes the model
func (m RootModel) Init() tea.Cmd {
	cmd := m.timerView.Init()
	rootDebugf("RootModel.Init() returning cmd: %v", cmd != nil)
	return cmd
}

// Update handles messages
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	rootDebugf("RootModel.Update received msg type: %T", msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		// Update child views with new size
		// Reserve space for header (2 lines) and footer (2 lines)
		contentHeight := m.height - 4
		m.timerView = m.timerView.SetSize(m.width, contentHeight)
		m.sessionsView = m.sessionsView.SetSize(m.width, contentHeight)
		m.projectsView = m.projectsView.SetSize(m.width, contentHeight)
		m.statsView = m.statsView.SetSize(m.width, contentHeight)
		m.settingsView = m.settingsView.SetSize(m.width, contentHeight)

	case tea.KeyMsg:
		// Clear status/error on any keypress
		m.statusMsg = ""
		m.errorMsg = ""

		// Check if current view is in input mode
		isInputMode := false
		switch m.currentView {
		case ViewTimer:
			isInputMode = m.timerView.IsInputMode()
		case ViewSessions:
			isInputMode = m.sessionsView.IsInputMode()
		case ViewProjects:
			isInputMode = m.projectsView.IsInputMode()
		case ViewStats:
			isInputMode = m.statsView.IsInputMode()
		case ViewSettings:
			isInputMode = m.settingsView.IsInputMode()
		}

		// Global keybindings
		switch {
		case key.Matches(msg, m.keys.Quit):
			// ctrl+c always quits, but 'q' only quits when not in input mode
			if msg.String() == "ctrl+c" || !isInputMode {
				return m, tea.Quit
			}
			// Otherwise, let the view handle 'q' as a character

		case key.Matches(msg, m.keys.ThemeCycle):
			// ctrl+t always works (unlikely to type)
			m.cycleTheme()
			return m, nil

		case key.Matches(msg, m.keys.Export):
			path, err := m.app.Export("")
			if err != nil {
				m.errorMsg = err.Error()
			} else {
				m.statusMsg = "Exported to " + path
			}
			return m, nil
		}

		// Skip other global keys when in input mode
		if isInputMode {
			break // Fall through to view delegation
		}

		// These only work when NOT in input mode
		switch {
		case key.Matches(msg, m.keys.Help):
			m.helpVisible = !m.helpVisible
			m.help.ShowAll = m.helpVisible
			return m, nil

		// View switching (1-5 keys)
		case key.Matches(msg, m.keys.TimerView):
			m.currentView = ViewTimer
			return m, m.timerView.Init()
		case key.Matches(msg, m.keys.SessionsView):
			m.currentView = ViewSessions
			return m, m.sessionsView.Init()
		case key.Matches(msg, m.keys.ProjectsView):
			m.currentView = ViewProjects
			return m, m.projectsView.Init()
		case key.Matches(msg, m.keys.StatsView):
			m.currentView = ViewStats
			return m, m.statsView.Init()
		case key.Matches(msg, m.keys.SettingsView):
			m.currentView = ViewSettings
			return m, m.settingsView.Init()
		}

	case ErrorMsg:
		m.errorMsg = msg.Err.Error()
		return m, nil

	case StatusMsg:
		m.statusMsg = msg.Message
		return m, nil

	case ThemeChangedMsg:
		m.statusMsg = fmt.Sprintf("Theme: %s", msg.ThemeName)
		return m, nil
	}

	// Delegate to current view
	rootDebugf("Delegating to view: %v", m.currentView)
	switch m.currentView {
	case ViewTimer:
		newView, cmd := m.timerView.Update(msg)
		m.timerView = newView
		cmds = append(cmds, cmd)
	case ViewSessions:
		newView, cmd := m.sessionsView.Update(msg)
		m.sessionsView = newView
		cmds = append(cmds, cmd)
	case ViewProjects:
		newView, cmd := m.projectsView.Update(msg)
		m.projectsView = newView
		cmds = append(cmds, cmd)
	case ViewStats:
		newView, cmd := m.statsView.Update(msg)
		m.statsView = newView
		cmds = append(cmds, cmd)
	case ViewSettings:
		newView, cmd := m.settingsView.Update(msg)
		m.settingsView = newView
		cmds = append(cmds, cmd)
	}

	// Surface a failed autosave so the user knows to check disk space
	if err := m.app.PersistError(); err != nil {
		m.errorMsg = "save failed: " + err.Error()
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI
func (m RootModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var sections []string

	// Header
	header := m.renderHeader()
	sections = append(sections, header)

	// Content area
	// Reserve: 1 line for header + 3 lines for footer (status + 2 hint lines)
	contentHeight := m.height - 4
	if m.errorMsg != "" || m.statusMsg != "" {
		contentHeight-- // Extra line for status message
	}
	var content string

	if m.helpVisible {
		content = m.renderHelp()
	} else {
		switch m.currentView {
		case ViewTimer:
			content = m.timerView.View()
		case ViewSessions:
			content = m.sessionsView.View()
		case ViewProjects:
			content = m.projectsView.View()
		case ViewStats:
			content = m.statsView.View()
		case ViewSettings:
			content = m.settingsView.View()
		}
	}

	// Ensure content fills available space
	contentLines := strings.Count(content, "\n") + 1
	if contentLines < contentHeight {
		content += strings.Repeat("\n", contentHeight-contentLines)
	}
	sections = append(sections, content)

	// Footer
	footer := m.renderFooter()
	sections = append(sections, footer)

	return strings.Join(sections, "\n")
}

// renderHeader renders the header bar
func (m RootModel) renderHeader() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	title := styles.Header.Render("flowtime")

	viewStyle := lipgloss.NewStyle().
		Foreground(t.Subtle).
		Padding(0, 1)
	viewIndicator := viewStyle.Render(fmt.Sprintf("[%s]", m.currentView.String()))

	themeIndicator := viewStyle.Render(fmt.Sprintf("theme: %s", t.Name))

	leftSide := lipgloss.JoinHorizontal(lipgloss.Center, title, viewIndicator)
	rightSide := themeIndicator

	gap := m.width - lipgloss.Width(leftSide) - lipgloss.Width(rightSide)
	if gap < 0 {
		gap = 0
	}

	return leftSide + strings.Repeat(" ", gap) + rightSide
}

// renderFooter renders the footer/status bar
func (m RootModel) renderFooter() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	key := func(k, desc string) string {
		return styles.HelpKey.Render(k) + styles.HelpDesc.Render(" "+desc)
	}
	sep := styles.HelpSeparator.Render(" │ ")

	// Show error or status message on first line if present
	var statusLine string
	if m.errorMsg != "" {
		statusLine = lipgloss.NewStyle().Foreground(t.Error).Render(m.errorMsg)
	} else if m.statusMsg != "" {
		statusLine = lipgloss.NewStyle().Foreground(t.Info).Render(m.statusMsg)
	}

	// Build context-aware hint lines
	var line1, line2 string

	switch m.currentView {
	case ViewTimer:
		line1 = key("s/space", "start/pause") + sep +
			key("x", "stop+save") + sep +
			key("j/k", "choose project") + sep +
			key("enter", "pick project")
		line2 = key("1-5", "views") + sep +
			key("ctrl+t", "theme") + sep +
			key("?", "help")

	case ViewSessions:
		if m.sessionsView.IsInputMode() {
			line1 = key("tab", "next field") + sep +
				key("enter", "save") + sep +
				key("esc", "cancel")
		} else {
			line1 = key("a", "add") + sep +
				key("enter", "edit") + sep +
				key("d", "delete") + sep +
				key("j/k", "navigate")
			line2 = key("1-5", "views") + sep +
				key("ctrl+e", "export") + sep +
				key("?", "help")
		}

	case ViewProjects:
		if m.projectsView.IsInputMode() {
			line1 = key("tab", "next field") + sep +
				key("enter", "save") + sep +
				key("esc", "cancel")
		} else {
			line1 = key("a", "add") + sep +
				key("enter", "edit") + sep +
				key("d", "delete") + sep +
				key("j/k", "navigate")
			line2 = key("1-5", "views") + sep +
				key("ctrl+t", "theme") + sep +
				key("?", "help")
		}

	case ViewStats:
		line1 = key("g", "set weekly goal")
		line2 = key("1-5", "views") + sep +
			key("ctrl+t", "theme") + sep +
			key("?", "help")

	case ViewSettings:
		line1 = key("enter/space", "toggle") + sep +
			key("h/l", "cycle theme") + sep +
			key("e", "export") + sep +
			key("X", "clear all")
		line2 = key("1-5", "views") + sep +
			key("?", "help")

	default:
		line1 = key("1-5", "views") + sep + key("?", "help")
	}

	var lines []string
	if statusLine != "" {
		lines = append(lines, statusLine)
	}
	if line1 != "" {
		lines = append(lines, line1)
	}
	if line2 != "" {
		lines = append(lines, line2)
	}

	return strings.Join(lines, "\n")
}

// renderHelp renders the help overlay
func (m RootModel) renderHelp() string {
	t := theme.Current.Theme

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Secondary).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Foreground).
		Bold(true).
		Width(14)

	descStyle := lipgloss.NewStyle().
		Foreground(t.Subtle)

	var b strings.Builder

	b.WriteString(titleStyle.Render("Flowtime Help"))
	b.WriteString("\n\n")

	section := func(title string, keys [][]string) {
		b.WriteString(sectionStyle.Render(title))
		b.WriteString("\n")
		for _, kv := range keys {
			b.WriteString(keyStyle.Render(kv[0]))
			b.WriteString(descStyle.Render(kv[1]))
			b.WriteString("\n")
		}
	}

	section("Timer", [][]string{
		{"s / space", "Start, pause or resume"},
		{"x", "Stop and save the session"},
		{"j/k + enter", "Choose the tracked project"},
	})

	section("Sessions & Projects", [][]string{
		{"a", "Add a session or project"},
		{"enter", "Edit the selected item"},
		{"d", "Delete the selected item"},
		{"j/k", "Navigate the list"},
	})

	section("Stats", [][]string{
		{"g", "Set the weekly goal"},
	})

	section("Views", [][]string{
		{"1", "Timer"},
		{"2", "Sessions"},
		{"3", "Projects"},
		{"4", "Stats"},
		{"5", "Settings"},
	})

	section("System", [][]string{
		{"ctrl+t", "Cycle theme"},
		{"ctrl+e", "Export JSON backup"},
		{"?", "Toggle this help"},
		{"q / ctrl+c", "Quit"},
	})

	b.WriteString("\n")
	b.WriteString(descStyle.Render("Press ? or esc to close"))

	return b.String()
}

// cycleTheme cycles through available themes and persists the choice
func (m *RootModel) cycleTheme() {
	themes := theme.Available()
	current := theme.Current.Theme.Name

	for i, t := range themes {
		if t.Name == current {
			next := themes[(i+1)%len(themes)]
			theme.SetTheme(next)

			settings := m.app.Ledger.Settings()
			settings.Theme = next.Name
			if err := m.app.Ledger.UpdateSettings(settings); err != nil {
				m.errorMsg = err.Error()
				return
			}
			m.statusMsg = fmt.Sprintf("Theme: %s", next.Name)
			return
		}
	}
}
