package theme

import "github.com/charmbracelet/lipgloss"

// Gruvbox theme - Retro groove color scheme
// https://github.com/morhetz/gruvbox
var Gruvbox = Theme{
	Name: "gruvbox",

	// Background colors
	Background: lipgloss.Color("#282828"),
	Foreground: lipgloss.Color("#EBDBB2"),
	Subtle:     lipgloss.Color("#928374"),
	Highlight:  lipgloss.Color("#3C3836"),
	Border:     lipgloss.Color("#504945"),

	// Primary colors
	Primary:   lipgloss.Color("#FABD2F"), // Yellow
	Secondary: lipgloss.Color("#83A598"), // Blue
	Info:      lipgloss.Color("#83A598"), // Blue

	// Semantic colors
	Success: lipgloss.Color("#B8BB26"), // Green
	Warning: lipgloss.Color("#FE8019"), // Orange
	Error:   lipgloss.Color("#FB4934"), // Red

	// Timer states
	TimerRunning: lipgloss.Color("#B8BB26"), // Green
	TimerPaused:  lipgloss.Color("#FE8019"), // Orange
	TimerIdle:    lipgloss.Color("#928374"), // Gray

	Earnings: lipgloss.Color("#B8BB26"),
	ChartBar: lipgloss.Color("#FABD2F"),
}
