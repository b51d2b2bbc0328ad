package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func openPR(number int, project, description string, created time.Time) PullRequest {
	return PullRequest{
		Number:    number,
		State:     PRStateOpen,
		Branch:    BranchName(project, TaskHash(description)),
		CreatedAt: created,
	}
}

func mergedPR(number int, project, description string, created time.Time) PullRequest {
	merged := created.Add(time.Hour)
	return PullRequest{
		Number:    number,
		State:     PRStateMerged,
		Branch:    BranchName(project, TaskHash(description)),
		CreatedAt: created,
		MergedAt:  &merged,
	}
}

func mustParse(t *testing.T, content string) *SpecDocument {
	t.Helper()
	doc, err := ParseSpec(content)
	require.NoError(t, err)
	return doc
}

func TestReconcile_EndToEnd(t *testing.T) {
	spec := mustParse(t, "- [ ] Add X\n- [ ] Add Y\n- [ ] Add Z\n")
	pr := openPR(7, "widgets", "Add Y", baseTime)

	result := Reconcile(spec, []PullRequest{pr}, nil, "widgets")

	require.Len(t, result.Tasks, 3)
	assert.Equal(t, TaskStatusPending, result.Tasks[0].Status)
	assert.Nil(t, result.Tasks[0].PR)
	assert.Equal(t, TaskStatusInProgress, result.Tasks[1].Status)
	require.NotNil(t, result.Tasks[1].PR)
	assert.Equal(t, 7, result.Tasks[1].PR.Number)
	assert.Equal(t, TaskStatusPending, result.Tasks[2].Status)
	assert.Empty(t, result.OrphanedPRs)
	assert.Equal(t, "widgets", result.Project)
}

func TestReconcile_CheckedIsAlwaysCompleted(t *testing.T) {
	spec := mustParse(t, "- [x] Add X\n- [x] Add Y\n- [x] Add Z\n")
	open := []PullRequest{openPR(1, "widgets", "Add X", baseTime)}
	merged := []PullRequest{mergedPR(2, "widgets", "Add Y", baseTime)}

	result := Reconcile(spec, open, merged, "widgets")

	for _, entry := range result.Tasks {
		assert.Equal(t, TaskStatusCompleted, entry.Status, entry.Task.Description)
	}
	require.NotNil(t, result.Tasks[0].PR)
	assert.Equal(t, 1, result.Tasks[0].PR.Number)
	require.NotNil(t, result.Tasks[1].PR)
	assert.Equal(t, 2, result.Tasks[1].PR.Number)
	assert.Nil(t, result.Tasks[2].PR)
}

func TestReconcile_MergedButUncheckedIsCompleted(t *testing.T) {
	spec := mustParse(t, "- [ ] Add X\n")
	result := Reconcile(spec, nil, []PullRequest{mergedPR(3, "widgets", "Add X", baseTime)}, "widgets")

	require.Len(t, result.Tasks, 1)
	assert.Equal(t, TaskStatusCompleted, result.Tasks[0].Status)
}

func TestReconcile_OpenBeatsMerged(t *testing.T) {
	spec := mustParse(t, "- [ ] Add X\n")
	// The merged PR is newer, but open still wins.
	open := []PullRequest{openPR(10, "widgets", "Add X", baseTime)}
	merged := []PullRequest{mergedPR(11, "widgets", "Add X", baseTime.Add(48*time.Hour))}

	for _, order := range []struct {
		name         string
		open, merged []PullRequest
	}{
		{"open list first", open, merged},
		{"merged in open list", merged, open},
	} {
		t.Run(order.name, func(t *testing.T) {
			result := Reconcile(spec, order.open, order.merged, "widgets")
			require.NotNil(t, result.Tasks[0].PR)
			assert.Equal(t, 10, result.Tasks[0].PR.Number)
			assert.Equal(t, TaskStatusInProgress, result.Tasks[0].Status)
		})
	}
}

func TestReconcile_MostRecentWithinSameState(t *testing.T) {
	spec := mustParse(t, "- [ ] Add X\n")
	open := []PullRequest{
		openPR(20, "widgets", "Add X", baseTime.Add(2*time.Hour)),
		openPR(21, "widgets", "Add X", baseTime.Add(5*time.Hour)),
		openPR(22, "widgets", "Add X", baseTime),
	}

	result := Reconcile(spec, open, nil, "widgets")
	require.NotNil(t, result.Tasks[0].PR)
	assert.Equal(t, 21, result.Tasks[0].PR.Number)
	assert.Empty(t, result.OrphanedPRs)
}

func TestReconcile_Orphans(t *testing.T) {
	spec := mustParse(t, "- [ ] Add X\n")
	open := []PullRequest{
		openPR(5, "widgets", "Removed task", baseTime),
		{Number: 6, State: PRStateOpen, Branch: "feature/unrelated", CreatedAt: baseTime},
		openPR(7, "gadgets", "Add X", baseTime),
	}
	merged := []PullRequest{
		mergedPR(3, "widgets", "Old removed task", baseTime),
	}

	result := Reconcile(spec, open, merged, "widgets")

	require.Len(t, result.OrphanedPRs, 2)
	assert.Equal(t, 3, result.OrphanedPRs[0].Number)
	assert.Equal(t, 5, result.OrphanedPRs[1].Number)
	assert.True(t, result.OrphanedPRs[0].IsMerged())
	assert.True(t, result.OrphanedPRs[1].IsOpen())

	openOrphans := result.OpenOrphans()
	require.Len(t, openOrphans, 1)
	assert.Equal(t, 5, openOrphans[0].Number)

	// Undecodable and other-project PRs appear nowhere.
	assert.Equal(t, TaskStatusPending, result.Tasks[0].Status)
	assert.Nil(t, result.Tasks[0].PR)
	for _, pr := range result.OrphanedPRs {
		assert.NotEqual(t, 6, pr.Number)
		assert.NotEqual(t, 7, pr.Number)
	}
}

func TestReconcile_ClosedUnmergedIgnored(t *testing.T) {
	spec := mustParse(t, "- [ ] Add X\n")
	closed := PullRequest{
		Number:    9,
		State:     PRStateClosed,
		Branch:    BranchName("widgets", TaskHash("Add X")),
		CreatedAt: baseTime,
	}
	closedOrphan := PullRequest{
		Number:    10,
		State:     PRStateClosed,
		Branch:    BranchName("widgets", TaskHash("Gone")),
		CreatedAt: baseTime,
	}

	result := Reconcile(spec, nil, []PullRequest{closed, closedOrphan}, "widgets")
	assert.Equal(t, TaskStatusPending, result.Tasks[0].Status)
	assert.Nil(t, result.Tasks[0].PR)
	assert.Empty(t, result.OrphanedPRs)
}

func TestReconcile_InconsistentMergedState(t *testing.T) {
	spec := mustParse(t, "- [ ] Add X\n")
	mergedAt := baseTime.Add(time.Hour)
	pr := PullRequest{
		Number:    4,
		State:     PRStateClosed,
		Branch:    BranchName("widgets", TaskHash("Add X")),
		CreatedAt: baseTime,
		MergedAt:  &mergedAt,
	}

	result := Reconcile(spec, nil, []PullRequest{pr}, "widgets")
	assert.Equal(t, TaskStatusCompleted, result.Tasks[0].Status)
}

func TestReconcile_DuplicateNumberConsideredOnce(t *testing.T) {
	spec := mustParse(t, "- [ ] Add X\n")
	pr := openPR(5, "widgets", "Removed", baseTime)

	result := Reconcile(spec, []PullRequest{pr}, []PullRequest{pr}, "widgets")
	assert.Len(t, result.OrphanedPRs, 1)
}

func TestReconcile_DuplicateNumberPrefersMergedCopy(t *testing.T) {
	spec := mustParse(t, "- [ ] Add X\n")
	// #7 merged between the open and the merged listing.
	stale := openPR(7, "widgets", "Add X", baseTime)
	fresh := mergedPR(7, "widgets", "Add X", baseTime)

	for _, order := range []struct {
		name         string
		open, merged []PullRequest
	}{
		{"open copy listed first", []PullRequest{stale}, []PullRequest{fresh}},
		{"merged copy listed first", []PullRequest{fresh}, []PullRequest{stale}},
	} {
		t.Run(order.name, func(t *testing.T) {
			result := Reconcile(spec, order.open, order.merged, "widgets")
			assert.Equal(t, TaskStatusCompleted, result.Tasks[0].Status)
			require.NotNil(t, result.Tasks[0].PR)
			assert.True(t, result.Tasks[0].PR.IsMerged())
		})
	}
}

func TestReconcile_HyphenatedProjectDoesNotLeak(t *testing.T) {
	spec := mustParse(t, "- [ ] Add X\n")
	// "my" must not claim branches of "my-app".
	open := []PullRequest{openPR(1, "my-app", "Add X", baseTime)}

	result := Reconcile(spec, open, nil, "my")
	assert.Equal(t, TaskStatusPending, result.Tasks[0].Status)
	assert.Empty(t, result.OrphanedPRs)

	result = Reconcile(spec, open, nil, "my-app")
	assert.Equal(t, TaskStatusInProgress, result.Tasks[0].Status)
}

func TestReconciliationResult_Helpers(t *testing.T) {
	spec := mustParse(t, "- [x] Add X\n- [ ] Add Y\n- [ ] Add Z\n- [ ] Add W\n")
	open := []PullRequest{openPR(1, "widgets", "Add Y", baseTime)}
	merged := []PullRequest{mergedPR(2, "widgets", "Add W", baseTime)}

	result := Reconcile(spec, open, merged, "widgets")

	assert.Equal(t, 2, result.Count(TaskStatusCompleted))
	assert.Equal(t, 1, result.Count(TaskStatusInProgress))
	assert.Equal(t, 1, result.Count(TaskStatusPending))

	next, ok := result.NextPending()
	require.True(t, ok)
	assert.Equal(t, "Add Z", next.Description)
	assert.Equal(t, 3, next.Ordinal)

	matched := result.MatchedPRs()
	require.Len(t, matched, 2)
	assert.Equal(t, 1, matched[0].Number)
	assert.Equal(t, 2, matched[1].Number)
}

func TestReconciliationResult_NextPendingNone(t *testing.T) {
	spec := mustParse(t, "- [x] Add X\n")
	result := Reconcile(spec, nil, nil, "widgets")
	_, ok := result.NextPending()
	assert.False(t, ok)
}

func TestProjectPRs(t *testing.T) {
	prs := []PullRequest{
		openPR(1, "widgets", "Add X", baseTime),
		openPR(2, "gadgets", "Add X", baseTime),
		{Number: 3, Branch: "main"},
	}
	got := ProjectPRs(prs, "widgets")
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Number)
}
