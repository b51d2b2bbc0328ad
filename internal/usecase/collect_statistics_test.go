package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/git-chain/internal/domain"
)

func (f *fixture) collectStatistics() *CollectStatistics {
	return NewCollectStatistics(f.specs, f.prs, f.costs, f.logger, f.clock, f.config)
}

func TestCollectStatistics_Execute(t *testing.T) {
	f := newFixture()
	f.specs.Specs["gadgets"] = "- [x] One\n- [ ] Two\n"

	old := testNow.Add(-10 * 24 * time.Hour)
	f.prs.Open = []domain.PullRequest{
		openPR(1, "widgets", "Add Y", old, "alice"),
		openPR(2, "gadgets", "Removed", testNow.Add(-time.Hour), "bob"),
		openPR(3, "elsewhere", "Add X", old, "carol"),
	}
	f.prs.Merged = []domain.PullRequest{
		mergedPR(4, "widgets", "Add X", old, "alice"),
		mergedPR(5, "gadgets", "One", old, "alice", "bob"),
	}
	f.costs.Costs[4] = 0.75
	f.costs.Costs[5] = 1.5

	out, err := f.collectStatistics().Execute(context.Background(), CollectStatisticsInput{})
	require.NoError(t, err)

	report := out.Report
	assert.Equal(t, testNow, report.GeneratedAt)
	assert.Equal(t, domain.DefaultStaleDays, report.StaleDays)

	require.Len(t, report.Projects, 2)
	gadgets := report.Projects[0]
	assert.Equal(t, domain.ProjectStats{
		Project:     "gadgets",
		CostUSD:     1.5,
		Total:       2,
		Completed:   1,
		Pending:     1,
		OpenOrphans: 1,
	}, gadgets)
	assert.True(t, gadgets.NeedsAttention())

	widgets := report.Projects[1]
	assert.Equal(t, domain.ProjectStats{
		Project:      "widgets",
		CostUSD:      0.75,
		Total:        3,
		Completed:    1,
		InProgress:   1,
		Pending:      1,
		StaleOpenPRs: 1,
	}, widgets)

	// Reviewers of unreported projects are not counted
	assert.Equal(t, []domain.ReviewerStats{
		{Username: "alice", Merged: 2, Open: 1},
		{Username: "bob", Merged: 1, Open: 1},
	}, report.Reviewers)
	assert.InDelta(t, 2.25, report.TotalCost(), 1e-9)
}

func TestCollectStatistics_Execute_SelectedProjectsAndStaleDays(t *testing.T) {
	f := newFixture()
	f.specs.Specs["gadgets"] = "- [ ] One\n"
	f.config.Stats.StaleDays = 30
	f.prs.Open = []domain.PullRequest{openPR(1, "widgets", "Add X", testNow.Add(-3*24*time.Hour))}

	out, err := f.collectStatistics().Execute(context.Background(), CollectStatisticsInput{})
	require.NoError(t, err)
	assert.Equal(t, 30, out.Report.StaleDays)
	assert.Equal(t, 0, out.Report.Projects[1].StaleOpenPRs)

	out, err = f.collectStatistics().Execute(context.Background(), CollectStatisticsInput{
		Projects:  []string{"widgets"},
		StaleDays: 2,
	})
	require.NoError(t, err)
	require.Len(t, out.Report.Projects, 1)
	assert.Equal(t, 2, out.Report.StaleDays)
	assert.Equal(t, 1, out.Report.Projects[0].StaleOpenPRs)
}

func TestCollectStatistics_Execute_CostFailureDegrades(t *testing.T) {
	f := newFixture()
	f.specs.Specs["gadgets"] = "- [ ] One\n"
	f.prs.Merged = []domain.PullRequest{
		mergedPR(4, "widgets", "Add X", testNow),
		mergedPR(6, "widgets", "Add Y", testNow),
		mergedPR(5, "gadgets", "One", testNow),
	}
	f.costs.Costs[4] = 1.0
	f.costs.Errs[6] = errors.New("rate limited")
	f.costs.Costs[5] = 0.5

	out, err := f.collectStatistics().Execute(context.Background(), CollectStatisticsInput{})
	require.NoError(t, err)

	assert.InDelta(t, 0.5, out.Report.Projects[0].CostUSD, 1e-9)
	assert.InDelta(t, 0.0, out.Report.Projects[1].CostUSD, 1e-9)
	// Task statuses are unaffected by the cost failure
	assert.Equal(t, 2, out.Report.Projects[1].Completed)

	warnings := f.logger.ByLevel("WARN")
	require.Len(t, warnings, 1)
	assert.Equal(t, "widgets", warnings[0].Project)
	assert.Contains(t, warnings[0].Msg, "rate limited")
}

func TestCollectStatistics_Execute_RecordedCostSkipsLookup(t *testing.T) {
	f := newFixture()
	cost := 2.0
	pr := mergedPR(4, "widgets", "Add X", testNow)
	pr.CostUSD = &cost
	f.prs.Merged = []domain.PullRequest{pr}

	out, err := f.collectStatistics().Execute(context.Background(), CollectStatisticsInput{Projects: []string{"widgets"}})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, out.Report.Projects[0].CostUSD, 1e-9)
	assert.Empty(t, f.costs.Calls)
}

func TestCollectStatistics_Execute_BrokenProjectReported(t *testing.T) {
	f := newFixture()
	f.specs.Specs["broken"] = "# notes only\n"
	f.prs.Open = []domain.PullRequest{openPR(1, "widgets", "Add X", testNow)}

	out, err := f.collectStatistics().Execute(context.Background(), CollectStatisticsInput{})
	require.NoError(t, err)

	require.Len(t, out.Report.Projects, 2)
	broken := out.Report.Projects[0]
	assert.Equal(t, "broken", broken.Project)
	assert.Contains(t, broken.Error, "no checklist items")
	assert.Zero(t, broken.Total)
	assert.True(t, broken.NeedsAttention())

	widgets := out.Report.Projects[1]
	assert.Empty(t, widgets.Error)
	assert.Equal(t, 3, widgets.Total)
	assert.Equal(t, 1, widgets.InProgress)

	warnings := f.logger.ByLevel("WARN")
	require.Len(t, warnings, 1)
	assert.Equal(t, "broken", warnings[0].Project)
}

func TestCollectStatistics_Execute_MergedBetweenListings(t *testing.T) {
	f := newFixture()
	// #7 was merged after the open listing and before the merged one.
	f.prs.Open = []domain.PullRequest{openPR(7, "widgets", "Add X", testNow)}
	f.prs.Merged = []domain.PullRequest{mergedPR(7, "widgets", "Add X", testNow)}

	out, err := f.collectStatistics().Execute(context.Background(), CollectStatisticsInput{})
	require.NoError(t, err)

	widgets := out.Report.Projects[0]
	assert.Equal(t, 1, widgets.Completed)
	assert.Zero(t, widgets.InProgress)
	assert.Equal(t, 2, widgets.Pending)
}

func TestCollectStatistics_Execute_Errors(t *testing.T) {
	t.Run("listing failure aborts", func(t *testing.T) {
		f := newFixture()
		f.prs.Err = domain.ErrRemoteAPI
		_, err := f.collectStatistics().Execute(context.Background(), CollectStatisticsInput{})
		assert.ErrorIs(t, err, domain.ErrRemoteAPI)
	})

	t.Run("unknown project", func(t *testing.T) {
		f := newFixture()
		_, err := f.collectStatistics().Execute(context.Background(), CollectStatisticsInput{Projects: []string{"nope"}})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("project discovery failure", func(t *testing.T) {
		f := newFixture()
		f.specs.ListErr = errors.New("bad tree")
		_, err := f.collectStatistics().Execute(context.Background(), CollectStatisticsInput{})
		assert.ErrorContains(t, err, "bad tree")
	})
}
