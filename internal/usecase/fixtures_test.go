package usecase

import (
	"time"

	"github.com/runoshun/git-chain/internal/domain"
	"github.com/runoshun/git-chain/internal/testutil"
)

var testNow = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

const threeTaskSpec = "# Widgets\n\n- [ ] Add X\n- [ ] Add Y\n- [ ] Add Z\n"

// fixture bundles the mocks shared by the project use cases.
type fixture struct {
	specs    *testutil.MockSpecSource
	projects *testutil.MockProjectConfigLoader
	prs      *testutil.MockPullRequestLister
	costs    *testutil.MockCostSource
	logger   *testutil.MockLogger
	clock    *testutil.MockClock
	config   *domain.Config
}

func newFixture() *fixture {
	f := &fixture{
		specs:    testutil.NewMockSpecSource(),
		projects: testutil.NewMockProjectConfigLoader(),
		prs:      &testutil.MockPullRequestLister{},
		costs:    testutil.NewMockCostSource(),
		logger:   &testutil.MockLogger{},
		clock:    &testutil.MockClock{NowTime: testNow},
		config:   domain.NewDefaultConfig(),
	}
	f.specs.Specs["widgets"] = threeTaskSpec
	return f
}

func openPR(number int, project, description string, created time.Time, assignees ...string) domain.PullRequest {
	return domain.PullRequest{
		Number:    number,
		State:     domain.PRStateOpen,
		Branch:    domain.BranchName(project, domain.TaskHash(description)),
		CreatedAt: created,
		Assignees: assignees,
		Labels:    []string{"chain"},
	}
}

func mergedPR(number int, project, description string, created time.Time, assignees ...string) domain.PullRequest {
	merged := created.Add(time.Hour)
	pr := openPR(number, project, description, created, assignees...)
	pr.State = domain.PRStateMerged
	pr.MergedAt = &merged
	return pr
}
