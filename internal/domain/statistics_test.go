package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectStats_NeedsAttention(t *testing.T) {
	tests := []struct {
		name  string
		stats ProjectStats
		want  bool
	}{
		{"healthy in progress", ProjectStats{Pending: 3, InProgress: 1}, false},
		{"all done", ProjectStats{Completed: 4, Total: 4}, false},
		{"idle with work remaining", ProjectStats{Pending: 2}, true},
		{"stale PR", ProjectStats{InProgress: 1, StaleOpenPRs: 1}, true},
		{"open orphan", ProjectStats{Completed: 1, OpenOrphans: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.stats.NeedsAttention())
		})
	}
}

func TestProjectStats_CompletionPercent(t *testing.T) {
	assert.InDelta(t, 50.0, ProjectStats{Total: 4, Completed: 2}.CompletionPercent(), 0.001)
	assert.InDelta(t, 0.0, ProjectStats{}.CompletionPercent(), 0.001)
}

func TestBuildProjectStats(t *testing.T) {
	now := baseTime.Add(30 * 24 * time.Hour)
	spec := mustParse(t, "- [x] Add X\n- [ ] Add Y\n- [ ] Add Z\n- [ ] Add W\n")

	// 30 days old
	stale := openPR(1, "widgets", "Add Y", baseTime)
	// Open orphan, fresh
	fresh := openPR(2, "widgets", "Removed", now.Add(-time.Hour))
	// Other project, ignored
	other := openPR(3, "gadgets", "Add X", baseTime)
	merged := mergedPR(4, "widgets", "Add W", baseTime)

	open := []PullRequest{stale, fresh, other}
	result := Reconcile(spec, open, []PullRequest{merged}, "widgets")

	stats := BuildProjectStats(result, open, 1.25, now, 7)
	assert.Equal(t, ProjectStats{
		Project:      "widgets",
		CostUSD:      1.25,
		Total:        4,
		Completed:    2,
		InProgress:   1,
		Pending:      1,
		StaleOpenPRs: 1,
		OpenOrphans:  1,
	}, stats)
	assert.True(t, stats.NeedsAttention())
}

func TestAggregateReviewers(t *testing.T) {
	a := openPR(1, "widgets", "Add X", baseTime)
	a.Assignees = []string{"bob"}
	b := mergedPR(2, "widgets", "Add Y", baseTime)
	b.Assignees = []string{"alice", "bob"}
	c := mergedPR(3, "gadgets", "Add Z", baseTime)
	c.Assignees = []string{"alice"}
	closed := PullRequest{Number: 4, State: PRStateClosed, Assignees: []string{"carol"}}

	got := AggregateReviewers([]PullRequest{a, b, c, closed, b})
	assert.Equal(t, []ReviewerStats{
		{Username: "alice", Merged: 2, Open: 0},
		{Username: "bob", Merged: 1, Open: 1},
		{Username: "carol", Merged: 0, Open: 0},
	}, got)
}

func TestStatisticsReport(t *testing.T) {
	report := &StatisticsReport{
		Projects: []ProjectStats{
			{Project: "a", CostUSD: 1.5, Pending: 1, InProgress: 1},
			{Project: "b", CostUSD: 0.25, Pending: 2},
		},
	}
	assert.InDelta(t, 1.75, report.TotalCost(), 0.0001)

	attention := report.NeedingAttention()
	require.Len(t, attention, 1)
	assert.Equal(t, "b", attention[0].Project)
}

func TestParseCostComment(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   float64
		wantOK bool
	}{
		{"table row", "| **Total Cost** | **$0.123456** |", 0.123456, true},
		{"plain", "Total cost: $2.50", 2.5, true},
		{"integer", "TOTAL COST $3", 3, true},
		{"multi-line", "## Cost Breakdown\n\n| Main run | $0.10 |\n| Total Cost | $0.15 |\n", 0.15, true},
		{"no cost", "LGTM", 0, false},
		{"no amount", "Total cost unknown", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCostComment(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestSumCost(t *testing.T) {
	one := 1.0
	half := 0.5
	prs := []PullRequest{{CostUSD: &one}, {}, {CostUSD: &half}}
	assert.InDelta(t, 1.5, SumCost(prs), 1e-9)
}
