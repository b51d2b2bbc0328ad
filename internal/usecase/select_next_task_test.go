package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/git-chain/internal/domain"
)

func (f *fixture) selectNext() *SelectNextTask {
	return NewSelectNextTask(f.specs, f.projects, f.prs, f.logger, f.config)
}

func TestSelectNextTask_Execute_ProjectMode(t *testing.T) {
	f := newFixture()

	out, err := f.selectNext().Execute(context.Background(), SelectNextTaskInput{Project: "widgets"})
	require.NoError(t, err)

	require.True(t, out.Selected())
	assert.Equal(t, "Add X", out.Task.Description)
	assert.Equal(t, domain.TaskHash("Add X"), out.Task.Hash)
	assert.Equal(t, 1, out.Task.Ordinal)
	assert.Equal(t, "chain-widgets-"+domain.TaskHash("Add X"), out.Branch)
	assert.Equal(t, "main", out.BaseBranch)
	assert.Empty(t, out.Reviewer)
	assert.Empty(t, out.Reason)

	// Both states are listed with the configured label and limit
	require.Len(t, f.prs.Calls, 2)
	assert.Equal(t, domain.ListPROptions{Label: "chain", State: domain.PRStateOpen, Limit: 200}, f.prs.Calls[0])
	assert.Equal(t, domain.PRStateMerged, f.prs.Calls[1].State)
}

func TestSelectNextTask_Execute_ProjectLimitReached(t *testing.T) {
	f := newFixture()
	f.prs.Open = []domain.PullRequest{openPR(7, "widgets", "Add X", testNow)}

	out, err := f.selectNext().Execute(context.Background(), SelectNextTaskInput{Project: "widgets"})
	require.NoError(t, err)

	assert.False(t, out.Selected())
	assert.Equal(t, ReasonNoCapacity, out.Reason)
	assert.Equal(t, domain.AdmissionDeniedProjectLimit, out.Admission.Result)
	assert.Empty(t, out.Branch)
}

func TestSelectNextTask_Execute_MergedBetweenListings(t *testing.T) {
	f := newFixture()
	f.projects.Configs["widgets"] = &domain.ProjectConfig{
		Reviewers: []domain.Reviewer{{Username: "alice", MaxOpenPRs: 1}},
	}
	// The open listing still reports #7, the merged listing already has it.
	f.prs.Open = []domain.PullRequest{openPR(7, "widgets", "Add X", testNow, "alice")}
	f.prs.Merged = []domain.PullRequest{mergedPR(7, "widgets", "Add X", testNow, "alice")}

	out, err := f.selectNext().Execute(context.Background(), SelectNextTaskInput{Project: "widgets"})
	require.NoError(t, err)

	require.True(t, out.Selected())
	assert.Equal(t, "alice", out.Reviewer)
	assert.Equal(t, 0, out.Admission.OpenByReviewer["alice"])
	assert.Equal(t, "Add Y", out.Task.Description)
}

func TestSelectNextTask_Execute_ProjectLimitFromConfig(t *testing.T) {
	f := newFixture()
	f.projects.Configs["widgets"] = &domain.ProjectConfig{MaxOpenPRs: 2, BaseBranch: "develop"}
	f.prs.Open = []domain.PullRequest{openPR(7, "widgets", "Add X", testNow)}

	out, err := f.selectNext().Execute(context.Background(), SelectNextTaskInput{Project: "widgets"})
	require.NoError(t, err)

	require.True(t, out.Selected())
	// Add X is in progress, so Add Y is next
	assert.Equal(t, "Add Y", out.Task.Description)
	assert.Equal(t, 2, out.Task.Ordinal)
	assert.Equal(t, "develop", out.BaseBranch)
}

func TestSelectNextTask_Execute_ReviewerScenario(t *testing.T) {
	f := newFixture()
	f.projects.Configs["widgets"] = &domain.ProjectConfig{
		Reviewers: []domain.Reviewer{{Username: "alice", MaxOpenPRs: 2}},
	}
	f.prs.Open = []domain.PullRequest{openPR(1, "widgets", "Add X", testNow, "alice")}

	out, err := f.selectNext().Execute(context.Background(), SelectNextTaskInput{Project: "widgets"})
	require.NoError(t, err)
	require.True(t, out.Selected())
	assert.Equal(t, "alice", out.Reviewer)
	assert.Equal(t, "Add Y", out.Task.Description)

	// A second open PR for alice fills her capacity
	f.prs.Open = append(f.prs.Open, openPR(2, "widgets", "Add Y", testNow, "alice"))

	out, err = f.selectNext().Execute(context.Background(), SelectNextTaskInput{Project: "widgets"})
	require.NoError(t, err)
	assert.False(t, out.Selected())
	assert.Empty(t, out.Reviewer)
	assert.Equal(t, ReasonNoCapacity, out.Reason)
	assert.Equal(t, domain.AdmissionDeniedReviewers, out.Admission.Result)
}

func TestSelectNextTask_Execute_OtherProjectsDoNotCount(t *testing.T) {
	f := newFixture()
	f.prs.Open = []domain.PullRequest{
		openPR(1, "gadgets", "Add X", testNow),
		{Number: 2, State: domain.PRStateOpen, Branch: "feature/unrelated"},
	}

	out, err := f.selectNext().Execute(context.Background(), SelectNextTaskInput{Project: "widgets"})
	require.NoError(t, err)
	assert.True(t, out.Selected())
}

func TestSelectNextTask_Execute_AllComplete(t *testing.T) {
	f := newFixture()
	f.specs.Specs["widgets"] = "- [x] Add X\n- [ ] Add Y\n"
	f.prs.Merged = []domain.PullRequest{mergedPR(3, "widgets", "Add Y", testNow)}

	out, err := f.selectNext().Execute(context.Background(), SelectNextTaskInput{Project: "widgets"})
	require.NoError(t, err)
	assert.False(t, out.Selected())
	assert.Equal(t, ReasonAllTasksComplete, out.Reason)
}

func TestSelectNextTask_Execute_NoPendingTasks(t *testing.T) {
	f := newFixture()
	f.specs.Specs["widgets"] = "- [x] Add X\n- [ ] Add Y\n"
	f.projects.Configs["widgets"] = &domain.ProjectConfig{MaxOpenPRs: 3}
	f.prs.Open = []domain.PullRequest{openPR(4, "widgets", "Add Y", testNow)}

	out, err := f.selectNext().Execute(context.Background(), SelectNextTaskInput{Project: "widgets"})
	require.NoError(t, err)
	assert.False(t, out.Selected())
	assert.Equal(t, ReasonNoPendingTasks, out.Reason)
}

func TestSelectNextTask_Execute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		project string
		setup   func(f *fixture)
		wantErr error
	}{
		{
			name:    "invalid project name",
			project: "a/b",
			wantErr: domain.ErrInvalidProjectName,
		},
		{
			name:    "missing spec",
			project: "gadgets",
			wantErr: domain.ErrNotFound,
		},
		{
			name:    "spec without checklist",
			project: "widgets",
			setup:   func(f *fixture) { f.specs.Specs["widgets"] = "# nothing here\n" },
			wantErr: domain.ErrConfiguration,
		},
		{
			name:    "invalid reviewer config",
			project: "widgets",
			setup:   func(f *fixture) { f.projects.Errs["widgets"] = domain.ErrDuplicateReviewer },
			wantErr: domain.ErrConfiguration,
		},
		{
			name:    "listing failure aborts",
			project: "widgets",
			setup: func(f *fixture) {
				f.prs.MergedErr = fmt.Errorf("%w: timeout", domain.ErrRemoteAPI)
			},
			wantErr: domain.ErrRemoteAPI,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			if tt.setup != nil {
				tt.setup(f)
			}
			_, err := f.selectNext().Execute(context.Background(), SelectNextTaskInput{Project: tt.project})
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestSelectNextTask_Execute_Logs(t *testing.T) {
	f := newFixture()

	_, err := f.selectNext().Execute(context.Background(), SelectNextTaskInput{Project: "widgets"})
	require.NoError(t, err)

	entries := f.logger.ByLevel("INFO")
	require.Len(t, entries, 1)
	assert.Equal(t, "widgets", entries[0].Project)
	assert.Equal(t, "next", entries[0].Category)
	assert.Contains(t, entries[0].Msg, domain.TaskHash("Add X"))
}
