// Package tui provides the statistics dashboard for git-chain.
package tui

// Mode represents the current UI mode.
type Mode int

const (
	ModeProjects Mode = iota // Project statistics table
	ModeTasks                // Task status of one project
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeProjects:
		return "projects"
	case ModeTasks:
		return "tasks"
	default:
		return "unknown"
	}
}
