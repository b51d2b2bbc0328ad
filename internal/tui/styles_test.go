package tui

import (
	"testing"

	"github.com/runoshun/git-chain/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestStyles_StatusStyle(t *testing.T) {
	styles := DefaultStyles()

	for _, status := range domain.AllTaskStatuses() {
		t.Run(status.Display(), func(t *testing.T) {
			rendered := styles.StatusStyle(status).Render(status.Display())
			assert.NotEmpty(t, rendered)
		})
	}

	// Unknown status falls back to the pending style without panicking
	_ = styles.StatusStyle(domain.TaskStatus("unknown")).Render("unknown")
}

func TestStatusIcon(t *testing.T) {
	tests := []struct {
		status domain.TaskStatus
		want   string
	}{
		{domain.TaskStatusPending, "○"},
		{domain.TaskStatusInProgress, "●"},
		{domain.TaskStatusCompleted, "✓"},
		{domain.TaskStatus("unknown"), "?"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusIcon(tt.status))
		})
	}
}
