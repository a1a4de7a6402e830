package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the application
type KeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding

	// Actions
	Add        key.Binding
	Edit       key.Binding
	Delete     key.Binding
	StartPause key.Binding
	Stop       key.Binding

	// Views
	TimerView    key.Binding
	SessionsView key.Binding
	ProjectsView key.Binding
	StatsView    key.Binding
	SettingsView key.Binding

	// System
	Help       key.Binding
	ThemeCycle key.Binding
	Export     key.Binding
	Quit       key.Binding
	Confirm    key.Binding
	Cancel     key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),

		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		StartPause: key.NewBinding(
			key.WithKeys("s", " "),
			key.WithHelp("s/space", "start/pause"),
		),
		Stop: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "stop"),
		),

		TimerView: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "timer"),
		),
		SessionsView: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "sessions"),
		),
		ProjectsView: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "projects"),
		),
		StatsView: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "stats"),
		),
		SettingsView: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "settings"),
		),

		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		ThemeCycle: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "theme"),
		),
		Export: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("C-e", "export"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("escape"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp returns short help bindings (for status bar)
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns full help bindings (for help view)
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.StartPause, k.Stop},
		{k.Add, k.Edit, k.Delete},
		{k.TimerView, k.SessionsView, k.ProjectsView, k.StatsView, k.SettingsView},
		{k.ThemeCycle, k.Export},
		{k.Help, k.Quit},
	}
}
