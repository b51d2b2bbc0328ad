package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/runoshun/git-chain/internal/domain"
)

// Colors defines the color palette for the TUI.
var Colors = struct {
	Primary  lipgloss.Color
	Muted    lipgloss.Color
	Error    lipgloss.Color
	Warning  lipgloss.Color
	Selected lipgloss.Color

	// Task status colors
	Pending    lipgloss.Color
	InProgress lipgloss.Color
	Completed  lipgloss.Color
}{
	Primary:  lipgloss.Color("#6C5CE7"), // Purple
	Muted:    lipgloss.Color("#636E72"), // Gray
	Error:    lipgloss.Color("#D63031"), // Red
	Warning:  lipgloss.Color("#FDCB6E"), // Yellow
	Selected: lipgloss.Color("#FFEAA7"), // Light yellow

	Pending:    lipgloss.Color("#74B9FF"), // Light blue
	InProgress: lipgloss.Color("#FDCB6E"), // Yellow
	Completed:  lipgloss.Color("#00B894"), // Green
}

// Styles contains all the lipgloss styles for the TUI.
type Styles struct {
	App       lipgloss.Style
	Header    lipgloss.Style
	Title     lipgloss.Style
	Summary   lipgloss.Style
	Attention lipgloss.Style
	ErrorMsg  lipgloss.Style
	Footer    lipgloss.Style

	// Task status
	StatusPending    lipgloss.Style
	StatusInProgress lipgloss.Style
	StatusCompleted  lipgloss.Style
}

// DefaultStyles returns the default styles for the TUI.
func DefaultStyles() Styles {
	return Styles{
		App: lipgloss.NewStyle().
			Padding(1, 2),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary).
			MarginBottom(1),

		Title: lipgloss.NewStyle().
			Bold(true),

		Summary: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			MarginTop(1),

		Attention: lipgloss.NewStyle().
			Foreground(Colors.Warning).
			Bold(true),

		ErrorMsg: lipgloss.NewStyle().
			Foreground(Colors.Error).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			MarginTop(1),

		StatusPending: lipgloss.NewStyle().
			Foreground(Colors.Pending),

		StatusInProgress: lipgloss.NewStyle().
			Foreground(Colors.InProgress),

		StatusCompleted: lipgloss.NewStyle().
			Foreground(Colors.Completed),
	}
}

// TableStyles returns the styles for the bubbles tables.
func TableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Colors.Muted).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(Colors.Selected).
		Bold(true)
	return s
}

// StatusStyle returns the style for a given task status.
func (s Styles) StatusStyle(status domain.TaskStatus) lipgloss.Style {
	switch status {
	case domain.TaskStatusPending:
		return s.StatusPending
	case domain.TaskStatusInProgress:
		return s.StatusInProgress
	case domain.TaskStatusCompleted:
		return s.StatusCompleted
	default:
		return s.StatusPending
	}
}

// StatusIcon returns an icon for a given task status.
func StatusIcon(status domain.TaskStatus) string {
	switch status {
	case domain.TaskStatusPending:
		return "○"
	case domain.TaskStatusInProgress:
		return "●"
	case domain.TaskStatusCompleted:
		return "✓"
	default:
		return "?"
	}
}
