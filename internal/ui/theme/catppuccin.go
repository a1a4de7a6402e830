package theme

import "github.com/charmbracelet/lipgloss"

// Catppuccin theme (Mocha variant) - Soothing pastel theme
// https://catppuccin.com/
var Catppuccin = Theme{
	Name: "catppuccin",

	// Background colors
	Background: lipgloss.Color("#1E1E2E"),
	Foreground: lipgloss.Color("#CDD6F4"),
	Subtle:     lipgloss.Color("#6C7086"),
	Highlight:  lipgloss.Color("#313244"),
	Border:     lipgloss.Color("#45475A"),

	// Primary colors
	Primary:   lipgloss.Color("#CBA6F7"), // Mauve
	Secondary: lipgloss.Color("#89B4FA"), // Blue
	Info:      lipgloss.Color("#89DCEB"), // Sky

	// Semantic colors
	Success: lipgloss.Color("#A6E3A1"), // Green
	Warning: lipgloss.Color("#F9E2AF"), // Yellow
	Error:   lipgloss.Color("#F38BA8"), // Red

	// Timer states
	TimerRunning: lipgloss.Color("#A6E3A1"), // Green
	TimerPaused:  lipgloss.Color("#F9E2AF"), // Yellow
	TimerIdle:    lipgloss.Color("#6C7086"), // Overlay gray

	Earnings: lipgloss.Color("#A6E3A1"),
	ChartBar: lipgloss.Color("#CBA6F7"),
}
