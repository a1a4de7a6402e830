package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Martyparty1988/Flow-time/internal/app"
	"github.com/Martyparty1988/Flow-time/internal/model"
	"github.com/Martyparty1988/Flow-time/internal/ui"
	"github.com/Martyparty1988/Flow-time/internal/ui/theme"
)

var (
	version = "0.1.0"
)

func main() {
	// Subcommand handling
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "add":
			handleAdd(os.Args[2:])
			return
		case "export":
			handleExport(os.Args[2:])
			return
		case "version":
			fmt.Printf("flowtime v%s\n", version)
			return
		case "help", "-h", "--help":
			printHelp()
			return
		}
	}

	// Parse flags for TUI mode
	viewFlag := flag.String("view", "timer", "Starting view (timer, sessions, projects, stats, settings)")
	themeFlag := flag.String("theme", "", "Theme name (nord, dracula, gruvbox, catppuccin)")
	flag.Parse()

	// Run TUI
	if err := runTUI(*viewFlag, *themeFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	help := `flowtime - A stopwatch-based time and earnings tracker

Usage:
  flowtime                        Start the TUI
  flowtime add <duration> [args]  Quick add a session
  flowtime export [path]          Write a JSON backup
  flowtime version                Show version
  flowtime help                   Show this help

Quick Add Syntax:
  flowtime add 1h30m
  flowtime add 90 @client "sprint planning"
  flowtime add 45m @client date:2026-08-30 code review

  Duration:  1h30m, 45m, or a bare number of minutes
  Project:   @name          (defaults to the first project)
  Date:      date:2006-01-02 (defaults to today)
  Anything else becomes the session notes.

TUI Options:
  --view <name>     Starting view (timer, sessions, projects, stats, settings)
  --theme <name>    Theme (nord, dracula, gruvbox, catppuccin)

Keybindings:
  Timer:        s/space       Start, pause, resume
                x             Stop and save
                j/k + enter   Choose project

  Lists:        a             Add
                enter         Edit
                d             Delete (with confirm)

  Views:        1-5           Switch views
                ctrl+e        Export backup
                ?             Help
                q             Quit`

	fmt.Println(help)
}

// handleAdd records a manual session from the command line. It goes
// through the full application so aggregates and autosave behave exactly
// as they do in the TUI.
func handleAdd(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: flowtime add <duration> [@project] [date:YYYY-MM-DD] [notes]")
		fmt.Fprintln(os.Stderr, "Example: flowtime add 1h30m @client sprint planning")
		os.Exit(1)
	}

	durMillis, err := parseDuration(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	projectName := ""
	date := time.Now().Format(model.DateFormat)
	var noteParts []string

	for _, word := range args[1:] {
		switch {
		case strings.HasPrefix(word, "@"):
			projectName = strings.TrimPrefix(word, "@")
		case strings.HasPrefix(strings.ToLower(word), "date:"):
			date = strings.TrimPrefix(strings.ToLower(word), "date:")
		default:
			noteParts = append(noteParts, word)
		}
	}

	application, err := app.New(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	projects := application.Ledger.Projects()
	projectID := projects[0].ID
	if projectName != "" {
		found := false
		for _, p := range projects {
			if strings.EqualFold(p.Name, projectName) {
				projectID = p.ID
				found = true
				break
			}
		}
		if !found {
			fmt.Fprintf(os.Stderr, "Error: no project named %q\n", projectName)
			os.Exit(1)
		}
	}

	session, err := application.Ledger.RecordSessionOn(
		date, projectID, durMillis, strings.Join(noteParts, " "), model.SourceManual)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	project, _ := application.Ledger.Project(projectID)
	fmt.Printf("Recorded: %s on %s (%s)\n",
		model.FormatDuration(session.Duration), project.Name, session.Date)
	fmt.Printf("Earned: %d\n", session.Earnings)
}

// handleExport writes the JSON backup without starting the TUI
func handleExport(args []string) {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}

	application, err := app.New(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	written, err := application.Export(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Exported to %s\n", written)
}

// parseDuration accepts a Go duration string or a bare number of minutes
func parseDuration(input string) (int64, error) {
	if mins, err := strconv.Atoi(input); err == nil {
		if mins <= 0 {
			return 0, fmt.Errorf("duration must be positive")
		}
		return int64(mins) * 60 * 1000, nil
	}
	d, err := time.ParseDuration(input)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid duration %q", input)
	}
	return d.Milliseconds(), nil
}

func runTUI(startView, themeName string) error {
	// Create application
	application, err := app.New(nil)
	if err != nil {
		return err
	}
	defer application.Close()

	// Theme precedence: flag over the persisted setting
	if themeName == "" {
		themeName = application.Ledger.Settings().Theme
	}
	if t, ok := theme.ByName(themeName); ok {
		theme.SetTheme(t)
	}

	// Create root model
	root := ui.NewRootModel(application)
	switch strings.ToLower(startView) {
	case "sessions":
		root = root.SetView(ui.ViewSessions)
	case "projects":
		root = root.SetView(ui.ViewProjects)
	case "stats":
		root = root.SetView(ui.ViewStats)
	case "settings":
		root = root.SetView(ui.ViewSettings)
	}

	// Create and run program
	p := tea.NewProgram(
		root,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()
	return err
}
