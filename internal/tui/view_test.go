package tui

import (
	"testing"

	"github.com/runoshun/git-chain/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestView_Projects(t *testing.T) {
	m, _ := newTestModel(t)
	assert.Contains(t, m.View(), "Collecting statistics...")
	assert.Contains(t, m.View(), "(loading...)")

	run(t, m, m.Init())
	view := m.View()

	assert.NotContains(t, view, "(loading...)")
	assert.Contains(t, view, "widgets")
	assert.Contains(t, view, "gadgets")
	assert.Contains(t, view, "stale after 7 days")
	assert.Contains(t, view, "need attention")
	assert.Contains(t, view, "alice 1 open/0 merged")
}

func TestView_NoProjects(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(MsgStatsLoaded{Report: &domain.StatisticsReport{}})
	assert.Contains(t, m.View(), "No projects found.")
}

func TestView_Tasks(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(MsgProjectLoaded{Result: &domain.ReconciliationResult{
		Project: "widgets",
		Tasks: []domain.TaskWithStatus{
			{Task: domain.Task{Hash: domain.TaskHash("Add X"), Description: "Add X", Ordinal: 1}, Status: domain.TaskStatusPending},
		},
		OrphanedPRs: []domain.PullRequest{{Number: 3, State: domain.PRStateOpen}},
	}})

	view := m.View()
	assert.Contains(t, view, "Project widgets")
	assert.Contains(t, view, "Add X")
	assert.Contains(t, view, "1 pending")
	assert.Contains(t, view, "1 orphaned PR(s), 1 open")
}

func TestProjectRows_Error(t *testing.T) {
	rows := projectRows(&domain.StatisticsReport{Projects: []domain.ProjectStats{
		{Project: "broken", Error: "spec has no checklist items"},
		{Project: "widgets", Total: 3, Pending: 3},
	}})

	assert.Equal(t, "!", rows[0][0])
	assert.Equal(t, "broken", rows[0][1])
	assert.Equal(t, "error", rows[0][2])
	assert.Equal(t, "0/3", rows[1][2])
}
