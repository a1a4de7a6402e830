package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Martyparty1988/Flow-time/internal/app"
	"github.com/Martyparty1988/Flow-time/internal/ui/theme"
)

// Settings items, top to bottom
const (
	settingRate = iota
	settingNotifications
	settingHaptics
	settingAutoSave
	settingTheme
	settingCount
)

// SettingsView edits user preferences and holds the danger-zone actions
type SettingsView struct {
	app    *app.App
	width  int
	height int

	cursor int

	rateInput   textinput.Model
	editingRate bool

	// Clearing all data asks twice
	confirmClear int

	statusMsg string
	errMsg    string
}

// NewSettingsView creates a new settings view
func NewSettingsView(application *app.App) SettingsView {
	return SettingsView{app: application}
}

// Init initializes the settings view
func (v SettingsView) Init() tea.Cmd {
	return nil
}

// SetSize sets the view dimensions
func (v SettingsView) SetSize(width, height int) SettingsView {
	v.width = width
	v.height = height
	return v
}

// Update handles messages
func (v SettingsView) Update(msg tea.Msg) (SettingsView, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	if v.editingRate {
		return v.updateRateInput(keyMsg)
	}

	if v.confirmClear > 0 {
		return v.updateConfirmClear(keyMsg)
	}

	v.errMsg = ""

	switch keyMsg.String() {
	case "j", "down":
		if v.cursor < settingCount-1 {
			v.cursor++
		}
	case "k", "up":
		if v.cursor > 0 {
			v.cursor--
		}

	case "enter", " ":
		return v.activate()

	case "left", "h":
		if v.cursor == settingTheme {
			return v.cycleTheme(-1)
		}
	case "right", "l":
		if v.cursor == settingTheme {
			return v.cycleTheme(1)
		}

	case "e":
		path, err := v.app.Export("")
		if err != nil {
			v.errMsg = err.Error()
		} else {
			v.statusMsg = "Exported to " + path
		}

	case "X":
		v.confirmClear = 1
	}

	return v, nil
}

func (v SettingsView) activate() (SettingsView, tea.Cmd) {
	settings := v.app.Ledger.Settings()

	switch v.cursor {
	case settingRate:
		input := textinput.New()
		input.Placeholder = "rate per hour"
		input.CharLimit = 10
		input.Width = 10
		input.SetValue(strconv.FormatFloat(settings.DefaultHourlyRate, 'f', -1, 64))
		input.Focus()
		v.rateInput = input
		v.editingRate = true

	case settingNotifications:
		settings.Notifications = !settings.Notifications
		if err := v.app.Ledger.UpdateSettings(settings); err != nil {
			v.errMsg = err.Error()
		}
	case settingHaptics:
		settings.HapticFeedback = !settings.HapticFeedback
		if err := v.app.Ledger.UpdateSettings(settings); err != nil {
			v.errMsg = err.Error()
		}
	case settingAutoSave:
		settings.AutoSave = !settings.AutoSave
		if err := v.app.Ledger.UpdateSettings(settings); err != nil {
			v.errMsg = err.Error()
		}

	case settingTheme:
		return v.cycleTheme(1)
	}

	return v, nil
}

func (v SettingsView) cycleTheme(dir int) (SettingsView, tea.Cmd) {
	themes := theme.Available()
	settings := v.app.Ledger.Settings()

	idx := 0
	for i, t := range themes {
		if t.Name == settings.Theme {
			idx = i
		}
	}
	idx = (idx + dir + len(themes)) % len(themes)

	theme.SetTheme(themes[idx])
	settings.Theme = themes[idx].Name
	if err := v.app.Ledger.UpdateSettings(settings); err != nil {
		v.errMsg = err.Error()
	} else {
		v.statusMsg = "Theme: " + themes[idx].Name
	}
	return v, nil
}

func (v SettingsView) updateRateInput(msg tea.KeyMsg) (SettingsView, tea.Cmd) {
	switch msg.String() {
	case "esc", "escape":
		v.editingRate = false
		return v, nil
	case "enter":
		rate, err := strconv.ParseFloat(strings.TrimSpace(v.rateInput.Value()), 64)
		if err != nil || rate < 0 {
			v.errMsg = "invalid rate"
			v.editingRate = false
			return v, nil
		}
		settings := v.app.Ledger.Settings()
		settings.DefaultHourlyRate = rate
		if err := v.app.Ledger.UpdateSettings(settings); err != nil {
			v.errMsg = err.Error()
		} else {
			v.statusMsg = fmt.Sprintf("Default rate set to %.0f/h", rate)
		}
		v.editingRate = false
		return v, nil
	}

	var cmd tea.Cmd
	v.rateInput, cmd = v.rateInput.Update(msg)
	return v, cmd
}

func (v SettingsView) updateConfirmClear(msg tea.KeyMsg) (SettingsView, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if v.confirmClear == 1 {
			v.confirmClear = 2
			return v, nil
		}
		v.confirmClear = 0
		if err := v.app.Reset(); err != nil {
			v.errMsg = err.Error()
		} else {
			v.statusMsg = "All data cleared"
		}
	default:
		v.confirmClear = 0
	}
	return v, nil
}

// View renders the settings view
func (v SettingsView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}

	t := theme.Current.Theme
	styles := theme.Current.Styles
	settings := v.app.Ledger.Settings()

	var sections []string

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		MarginBottom(1)
	sections = append(sections, titleStyle.Render("Settings"))

	rateValue := fmt.Sprintf("%.0f/h", settings.DefaultHourlyRate)
	if v.editingRate {
		rateValue = v.rateInput.View()
	}

	rows := []struct {
		label string
		value string
	}{
		{"Default hourly rate", rateValue},
		{"Notifications", onOff(settings.Notifications)},
		{"Haptic feedback", onOff(settings.HapticFeedback)},
		{"Auto save", onOff(settings.AutoSave)},
		{"Theme", "← " + settings.Theme + " →"},
	}

	for i, row := range rows {
		line := fmt.Sprintf("%-22s %s", row.label, row.value)
		style := styles.RowNormal
		if i == v.cursor {
			style = styles.RowSelected
		}
		sections = append(sections, style.Render(line))
	}

	switch v.confirmClear {
	case 1:
		sections = append(sections, lipgloss.NewStyle().Foreground(t.Warning).MarginTop(1).
			Render("Clear ALL projects, sessions and settings? (y/n)"))
	case 2:
		sections = append(sections, lipgloss.NewStyle().Foreground(t.Error).MarginTop(1).
			Render("This cannot be undone. Really clear everything? (y/n)"))
	}

	if v.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(t.Error).MarginTop(1).Render(v.errMsg))
	} else if v.statusMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(t.Success).MarginTop(1).Render(v.statusMsg))
	}

	hint := lipgloss.NewStyle().Foreground(t.Subtle).MarginTop(1).
		Render("enter/space toggle • h/l cycle theme • e export backup • X clear all data")
	sections = append(sections, hint)

	return strings.Join(sections, "\n")
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// IsInputMode returns whether the view is in input mode
func (v SettingsView) IsInputMode() bool {
	return v.editingRate
}
