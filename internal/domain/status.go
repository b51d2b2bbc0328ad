package domain

// TaskStatus is the derived state of a task.
// It is recomputed on every run from the checkbox and the matching PR.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"     // No open or merged PR
	TaskStatusInProgress TaskStatus = "in_progress" // Open PR exists
	TaskStatusCompleted  TaskStatus = "completed"   // Checked, or PR merged
)

// AllTaskStatuses returns all task status values.
func AllTaskStatuses() []TaskStatus {
	return []TaskStatus{
		TaskStatusPending,
		TaskStatusInProgress,
		TaskStatusCompleted,
	}
}

// Display returns a human-readable representation of the status.
func (s TaskStatus) Display() string {
	switch s {
	case TaskStatusPending:
		return "Pending"
	case TaskStatusInProgress:
		return "In Progress"
	case TaskStatusCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

// IsValid returns true if the status is a known value.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	default:
		return false
	}
}
