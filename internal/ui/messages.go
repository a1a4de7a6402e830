package ui

// View represents the current active view
type View int

const (
	ViewTimer View = iota
	ViewSessions
	ViewProjects
	ViewStats
	ViewSettings
)

// String returns the display name for a view
func (v View) String() string {
	switch v {
	case ViewTimer:
		return "Timer"
	case ViewSessions:
		return "Sessions"
	case ViewProjects:
		return "Projects"
	case ViewStats:
		return "Stats"
	case ViewSettings:
		return "Settings"
	default:
		return "Unknown"
	}
}

// ErrorMsg contains an error to display
type ErrorMsg struct {
	Err error
}

// StatusMsg contains a status message to display
type StatusMsg struct {
	Message string
}

// ThemeChangedMsg indicates the theme was changed
type ThemeChangedMsg struct {
	ThemeName string
}
