package tui

import (
	"fmt"
	"strings"

	"github.com/runoshun/git-chain/internal/domain"
)

// View renders the TUI.
func (m *Model) View() string {
	var b strings.Builder

	header := "git-chain dashboard"
	if m.loading {
		header += " (loading...)"
	}
	b.WriteString(m.styles.Header.Render(header))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(m.styles.ErrorMsg.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}

	switch m.mode {
	case ModeTasks:
		b.WriteString(m.viewTasks())
	default:
		b.WriteString(m.viewProjects())
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render(m.help.View(m.keys)))

	return m.styles.App.Render(b.String())
}

func (m *Model) viewProjects() string {
	if m.report == nil {
		return "Collecting statistics..."
	}
	if len(m.report.Projects) == 0 {
		return "No projects found."
	}

	var b strings.Builder
	b.WriteString(m.projects.View())
	b.WriteString("\n")

	summary := fmt.Sprintf("Total cost $%.2f · stale after %d days · updated %s",
		m.report.TotalCost(),
		m.report.StaleDays,
		m.report.GeneratedAt.Format("15:04:05"),
	)
	b.WriteString(m.styles.Summary.Render(summary))
	b.WriteString("\n")

	if n := len(m.report.NeedingAttention()); n > 0 {
		b.WriteString(m.styles.Attention.Render(fmt.Sprintf("%d project(s) need attention", n)))
		b.WriteString("\n")
	}

	if len(m.report.Reviewers) > 0 {
		parts := make([]string, 0, len(m.report.Reviewers))
		for _, r := range m.report.Reviewers {
			parts = append(parts, fmt.Sprintf("%s %d open/%d merged", r.Username, r.Open, r.Merged))
		}
		b.WriteString("Reviewers: " + strings.Join(parts, ", "))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) viewTasks() string {
	if m.result == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Project " + m.result.Project))
	b.WriteString("\n")
	b.WriteString(m.tasks.View())
	b.WriteString("\n")

	counts := []string{
		m.styles.StatusStyle(domain.TaskStatusCompleted).Render(fmt.Sprintf("%d completed", m.result.Count(domain.TaskStatusCompleted))),
		m.styles.StatusStyle(domain.TaskStatusInProgress).Render(fmt.Sprintf("%d in progress", m.result.Count(domain.TaskStatusInProgress))),
		m.styles.StatusStyle(domain.TaskStatusPending).Render(fmt.Sprintf("%d pending", m.result.Count(domain.TaskStatusPending))),
	}
	b.WriteString(m.styles.Summary.Render(strings.Join(counts, " · ")))
	b.WriteString("\n")

	if len(m.result.OrphanedPRs) > 0 {
		line := fmt.Sprintf("%d orphaned PR(s), %d open", len(m.result.OrphanedPRs), len(m.result.OpenOrphans()))
		b.WriteString(m.styles.Attention.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
