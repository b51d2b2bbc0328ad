package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// chromeHeight is the number of lines taken by everything but the table.
const chromeHeight = 10

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		tableHeight := msg.Height - chromeHeight
		if tableHeight < 3 {
			tableHeight = 3
		}
		m.projects.SetHeight(tableHeight)
		m.tasks.SetHeight(tableHeight)
		return m, nil

	case MsgStatsLoaded:
		m.loading = false
		m.err = nil
		m.report = msg.Report
		m.projects.SetRows(projectRows(msg.Report))
		if m.projects.Cursor() >= len(msg.Report.Projects) {
			m.projects.SetCursor(0)
		}
		return m, nil

	case MsgProjectLoaded:
		m.loading = false
		m.err = nil
		m.result = msg.Result
		m.tasks.SetRows(taskRows(msg.Result))
		m.tasks.SetCursor(0)
		m.mode = ModeTasks
		return m, nil

	case MsgError:
		m.loading = false
		m.err = msg.Err
		return m, nil
	}

	return m, nil
}

// handleKeyMsg handles keyboard input.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		if m.mode == ModeTasks && m.result != nil {
			return m, tea.Batch(m.loadStats(), m.loadProject(m.result.Project))
		}
		return m, m.loadStats()

	case key.Matches(msg, m.keys.Enter):
		if m.mode != ModeProjects {
			return m, nil
		}
		project := m.SelectedProject()
		if project == "" {
			return m, nil
		}
		m.loading = true
		return m, m.loadProject(project)

	case key.Matches(msg, m.keys.Back):
		if m.mode == ModeTasks {
			m.mode = ModeProjects
		}
		return m, nil
	}

	// Navigation goes to the active table
	var cmd tea.Cmd
	if m.mode == ModeTasks {
		m.tasks, cmd = m.tasks.Update(msg)
	} else {
		m.projects, cmd = m.projects.Update(msg)
	}
	return m, cmd
}
