package tui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/git-chain/internal/app"
	"github.com/runoshun/git-chain/internal/domain"
	"github.com/runoshun/git-chain/internal/usecase"
)

// Model is the main bubbletea model for the TUI.
type Model struct {
	// Dependencies (pointers first for alignment)
	container *app.Container
	err       error

	// Loaded data
	report *domain.StatisticsReport
	result *domain.ReconciliationResult

	// Components
	keys     KeyMap
	styles   Styles
	help     help.Model
	projects table.Model
	tasks    table.Model

	// Numeric state (smaller types last)
	mode    Mode
	width   int
	height  int
	loading bool
}

// New creates a new TUI Model with the given container.
func New(c *app.Container) *Model {
	projects := table.New(
		table.WithColumns([]table.Column{
			{Title: "!", Width: 1},
			{Title: "Project", Width: 20},
			{Title: "Done", Width: 10},
			{Title: "Active", Width: 6},
			{Title: "Pending", Width: 7},
			{Title: "Stale", Width: 5},
			{Title: "Orphans", Width: 7},
			{Title: "Cost", Width: 9},
		}),
		table.WithFocused(true),
		table.WithHeight(10),
		table.WithStyles(TableStyles()),
	)

	tasks := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 3},
			{Title: "Hash", Width: 8},
			{Title: "Status", Width: 13},
			{Title: "PR", Width: 6},
			{Title: "Task", Width: 50},
		}),
		table.WithFocused(true),
		table.WithHeight(10),
		table.WithStyles(TableStyles()),
	)

	return &Model{
		container: c,
		keys:      DefaultKeyMap(),
		styles:    DefaultStyles(),
		help:      help.New(),
		projects:  projects,
		tasks:     tasks,
		mode:      ModeProjects,
		loading:   true,
	}
}

// Init initializes the model and returns the initial command.
func (m *Model) Init() tea.Cmd {
	return m.loadStats()
}

// loadStats returns a command that runs a statistics collection.
func (m *Model) loadStats() tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.CollectStatisticsUseCase().Execute(context.Background(), usecase.CollectStatisticsInput{})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgStatsLoaded{Report: out.Report}
	}
}

// loadProject returns a command that reconciles one project.
func (m *Model) loadProject(project string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.ShowStatusUseCase().Execute(context.Background(), usecase.ShowStatusInput{Project: project})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgProjectLoaded{Result: out.Result}
	}
}

// SelectedProject returns the highlighted project, or "" if none.
func (m *Model) SelectedProject() string {
	if m.report == nil {
		return ""
	}
	i := m.projects.Cursor()
	if i < 0 || i >= len(m.report.Projects) {
		return ""
	}
	return m.report.Projects[i].Project
}

// Mode returns the current UI mode.
func (m *Model) Mode() Mode {
	return m.mode
}

// projectRows converts the report into table rows.
func projectRows(report *domain.StatisticsReport) []table.Row {
	rows := make([]table.Row, 0, len(report.Projects))
	for _, p := range report.Projects {
		mark := ""
		if p.NeedsAttention() {
			mark = "!"
		}
		if p.Error != "" {
			rows = append(rows, table.Row{mark, p.Project, "error", "-", "-", "-", "-", "-"})
			continue
		}
		rows = append(rows, table.Row{
			mark,
			p.Project,
			fmt.Sprintf("%d/%d", p.Completed, p.Total),
			strconv.Itoa(p.InProgress),
			strconv.Itoa(p.Pending),
			strconv.Itoa(p.StaleOpenPRs),
			strconv.Itoa(p.OpenOrphans),
			fmt.Sprintf("$%.2f", p.CostUSD),
		})
	}
	return rows
}

// taskRows converts a reconciliation result into table rows.
func taskRows(result *domain.ReconciliationResult) []table.Row {
	rows := make([]table.Row, 0, len(result.Tasks))
	for _, entry := range result.Tasks {
		pr := "-"
		if entry.PR != nil {
			pr = fmt.Sprintf("#%d", entry.PR.Number)
		}
		rows = append(rows, table.Row{
			strconv.Itoa(entry.Task.Ordinal),
			entry.Task.Hash,
			StatusIcon(entry.Status) + " " + entry.Status.Display(),
			pr,
			entry.Task.Description,
		})
	}
	return rows
}
