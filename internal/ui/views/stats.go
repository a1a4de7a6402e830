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
	"github.com/Martyparty1988/Flow-time/internal/stats"
	"github.com/Martyparty1988/Flow-time/internal/ui/theme"
)

var weekdayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// StatsView shows derived statistics over the ledger
type StatsView struct {
	app    *app.App
	width  int
	height int

	goalInput   textinput.Model
	editingGoal bool

	statusMsg string
}

// NewStatsView creates a new stats view
func NewStatsView(application *app.App) StatsView {
	return StatsView{app: application}
}

// Init initializes the stats view
func (v StatsView) Init() tea.Cmd {
	return nil
}

// SetSize sets the view dimensions
func (v StatsView) SetSize(width, height int) StatsView {
	v.width = width
	v.height = height
	return v
}

// Update handles messages
func (v StatsView) Update(msg tea.Msg) (StatsView, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	if v.editingGoal {
		switch keyMsg.String() {
		case "esc", "escape":
			v.editingGoal = false
			return v, nil
		case "enter":
			hours, err := strconv.ParseFloat(strings.TrimSpace(v.goalInput.Value()), 64)
			if err != nil || hours <= 0 {
				v.statusMsg = "goal must be a positive number of hours"
				v.editingGoal = false
				return v, nil
			}
			settings := v.app.Ledger.Settings()
			settings.WeeklyGoal = int64(hours * float64(time.Hour/time.Millisecond))
			if err := v.app.Ledger.UpdateSettings(settings); err != nil {
				v.statusMsg = err.Error()
			} else {
				v.statusMsg = fmt.Sprintf("Weekly goal set to %.1fh", hours)
			}
			v.editingGoal = false
			return v, nil
		}
		var cmd tea.Cmd
		v.goalInput, cmd = v.goalInput.Update(msg)
		return v, cmd
	}

	if keyMsg.String() == "g" {
		v.goalInput = textinput.New()
		v.goalInput.Placeholder = "hours per week"
		v.goalInput.CharLimit = 6
		v.goalInput.Width = 10
		v.goalInput.Focus()
		v.editingGoal = true
	}

	return v, nil
}

// View renders the stats view
func (v StatsView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}

	t := theme.Current.Theme
	snap := v.app.Ledger.Snapshot()
	now := time.Now()

	var sections []string

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		MarginBottom(1)
	sections = append(sections, titleStyle.Render("Statistics"))

	sections = append(sections, v.renderTotals(snap))
	sections = append(sections, v.renderWeeklyChart(snap, now))
	sections = append(sections, v.renderWeekdayChart(snap))
	sections = append(sections, v.renderRanking(snap))
	sections = append(sections, v.renderMonthly(snap, now))
	sections = append(sections, v.renderGoal(snap, now))

	if v.statusMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(t.Success).Render(v.statusMsg))
	}

	hint := lipgloss.NewStyle().Foreground(t.Subtle).MarginTop(1).
		Render("g set weekly goal")
	sections = append(sections, hint)

	return strings.Join(sections, "\n")
}

func (v StatsView) renderTotals(snap model.Snapshot) string {
	styles := theme.Current.Styles

	lines := []string{
		fmt.Sprintf("Total time      %s", model.FormatDuration(stats.TotalTime(snap))),
		fmt.Sprintf("Total earned    %d", stats.TotalEarnings(snap)),
		fmt.Sprintf("Sessions        %d across %d working days", len(snap.Sessions), stats.WorkingDays(snap)),
		fmt.Sprintf("Avg session     %s", model.FormatDuration(stats.AverageSession(snap))),
		fmt.Sprintf("Longest         %s · shortest %s",
			model.FormatDuration(stats.LongestSession(snap)),
			model.FormatDuration(stats.ShortestSession(snap))),
	}
	return styles.Panel.Render(strings.Join(lines, "\n"))
}

// bar renders a proportional horizontal bar
func bar(value, max int64, width int) string {
	if max <= 0 || width <= 0 {
		return ""
	}
	filled := int(float64(value) / float64(max) * float64(width))
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func (v StatsView) renderWeeklyChart(snap model.Snapshot, now time.Time) string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	buckets := stats.WeeklyData(snap, now)
	var max int64
	for _, b := range buckets {
		if b.Duration > max {
			max = b.Duration
		}
	}

	barStyle := lipgloss.NewStyle().Foreground(t.ChartBar)
	var lines []string
	lines = append(lines, styles.Subtitle.Render("Last 7 days"))
	for _, b := range buckets {
		label := b.Day.Format("Mon 02")
		lines = append(lines, fmt.Sprintf("%s %s %s",
			styles.Label.Render(label),
			barStyle.Render(bar(b.Duration, max, 24)),
			model.FormatHours(b.Duration)))
	}
	return strings.Join(lines, "\n")
}

func (v StatsView) renderWeekdayChart(snap model.Snapshot) string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	totals := stats.WeekdayTotals(snap)
	var max, best int64
	bestIdx := -1
	for i, d := range totals {
		if d > max {
			max = d
		}
		if d > best {
			best = d
			bestIdx = i
		}
	}

	barStyle := lipgloss.NewStyle().Foreground(t.Secondary)
	var lines []string
	lines = append(lines, styles.Subtitle.Render("By weekday"))
	for i, d := range totals {
		lines = append(lines, fmt.Sprintf("%s %s %s",
			styles.Label.Render(weekdayLabels[i]),
			barStyle.Render(bar(d, max, 24)),
			model.FormatHours(d)))
	}
	if bestIdx >= 0 {
		lines = append(lines, styles.Label.Render("Most productive: "+weekdayLabels[bestIdx]))
	}
	return strings.Join(lines, "\n")
}

func (v StatsView) renderRanking(snap model.Snapshot) string {
	styles := theme.Current.Styles

	ranked := stats.ProjectRanking(snap)
	var lines []string
	lines = append(lines, styles.Subtitle.Render("Project ranking"))
	for i, r := range ranked {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(r.Project.Color)).Render("■")
		lines = append(lines, fmt.Sprintf("%d. %s %-20s %s  %.1f%%",
			i+1, swatch, r.Project.Name,
			model.FormatDuration(r.Project.TotalTime),
			r.Share*100))
	}
	return strings.Join(lines, "\n")
}

func (v StatsView) renderMonthly(snap model.Snapshot, now time.Time) string {
	styles := theme.Current.Styles

	thisMonth, lastMonth := stats.MonthlySummary(snap, now)
	lines := []string{
		styles.Subtitle.Render("Monthly"),
		fmt.Sprintf("This month  %s · %d earned", model.FormatDuration(thisMonth.Time), thisMonth.Earnings),
		fmt.Sprintf("Last month  %s · %d earned", model.FormatDuration(lastMonth.Time), lastMonth.Earnings),
	}
	return strings.Join(lines, "\n")
}

func (v StatsView) renderGoal(snap model.Snapshot, now time.Time) string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	tracked, goal, fraction := stats.GoalProgress(snap, now)

	var lines []string
	lines = append(lines, styles.Subtitle.Render("Weekly goal"))
	barStyle := lipgloss.NewStyle().Foreground(t.Success)
	lines = append(lines, fmt.Sprintf("%s %s / %s (%.0f%%)",
		barStyle.Render(bar(tracked, goal, 24)),
		model.FormatHours(tracked),
		model.FormatHours(goal),
		fraction*100))

	if v.editingGoal {
		lines = append(lines, styles.Label.Render("New goal: ")+v.goalInput.View())
	}
	return strings.Join(lines, "\n")
}

// IsInputMode returns whether the view is in input mode
func (v StatsView) IsInputMode() bool {
	return v.editingGoal
}
