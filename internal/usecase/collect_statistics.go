package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/runoshun/git-chain/internal/domain"
)

// CollectStatisticsInput contains the parameters for a statistics run.
type CollectStatisticsInput struct {
	Projects  []string // Projects to report; empty means every discovered project
	StaleDays int      // Staleness threshold; zero uses the configured value
}

// CollectStatisticsOutput contains the statistics report.
type CollectStatisticsOutput struct {
	Report *domain.StatisticsReport
}

// CollectStatistics builds per-project and per-reviewer rollups.
// Fields are ordered to minimize memory padding.
type CollectStatistics struct {
	specs  domain.SpecSource
	prs    domain.PullRequestLister
	costs  domain.CostSource
	logger domain.Logger
	clock  domain.Clock
	config *domain.Config
}

// NewCollectStatistics creates a new CollectStatistics use case.
func NewCollectStatistics(
	specs domain.SpecSource,
	prs domain.PullRequestLister,
	costs domain.CostSource,
	logger domain.Logger,
	clock domain.Clock,
	config *domain.Config,
) *CollectStatistics {
	return &CollectStatistics{
		specs:  specs,
		prs:    prs,
		costs:  costs,
		logger: logger,
		clock:  clock,
		config: config,
	}
}

// Execute collects statistics. A PR listing failure aborts the run. A project
// whose spec cannot be read or parsed is reported with its error, unless it
// was named explicitly and does not exist. A cost
// lookup failure only zeroes that project's cost.
func (uc *CollectStatistics) Execute(ctx context.Context, in CollectStatisticsInput) (*CollectStatisticsOutput, error) {
	ref := uc.config.Chain.SpecRef

	staleDays := in.StaleDays
	if staleDays <= 0 {
		staleDays = uc.config.Stats.StaleDays
	}
	if staleDays <= 0 {
		staleDays = domain.DefaultStaleDays
	}

	projects := in.Projects
	if len(projects) == 0 {
		var err error
		projects, err = uc.specs.ListProjects(ctx, ref)
		if err != nil {
			return nil, fmt.Errorf("list projects: %w", err)
		}
	}

	snap, err := listPRs(ctx, uc.prs, uc.config)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	report := &domain.StatisticsReport{
		GeneratedAt: now,
		StaleDays:   staleDays,
		Projects:    make([]domain.ProjectStats, 0, len(projects)),
	}

	var projectPRs []domain.PullRequest
	for _, project := range projects {
		spec, err := loadSpec(ctx, uc.specs, project, ref)
		if err != nil {
			// A project named on the command line must exist.
			if len(in.Projects) > 0 && errors.Is(err, domain.ErrNotFound) {
				return nil, err
			}
			uc.logger.Warn(project, "stats", err.Error())
			report.Projects = append(report.Projects, domain.ProjectStats{Project: project, Error: err.Error()})
			continue
		}

		result := domain.Reconcile(spec, snap.Open, snap.Merged, project)
		cost := uc.projectCost(ctx, project, snap.Merged)
		report.Projects = append(report.Projects, domain.BuildProjectStats(result, snap.Open, cost, now, staleDays))

		projectPRs = append(projectPRs, domain.ProjectPRs(snap.All(), project)...)
	}
	report.Reviewers = domain.AggregateReviewers(projectPRs)

	uc.logger.Info("", "stats", fmt.Sprintf("collected statistics for %d projects", len(report.Projects)))
	return &CollectStatisticsOutput{Report: report}, nil
}

// projectCost sums the recorded cost of the project's merged PRs.
// Any lookup failure yields 0 for the whole project.
func (uc *CollectStatistics) projectCost(ctx context.Context, project string, merged []domain.PullRequest) float64 {
	total := 0.0
	for _, pr := range domain.ProjectPRs(merged, project) {
		if !pr.IsMerged() {
			continue
		}
		if pr.CostUSD != nil {
			total += *pr.CostUSD
			continue
		}
		cost, ok, err := uc.costs.PullRequestCost(ctx, pr.Number)
		if err != nil {
			uc.logger.Warn(project, "stats", fmt.Sprintf("cost of PR #%d: %v; reporting cost 0", pr.Number, err))
			return 0
		}
		if ok {
			total += cost
		}
	}
	return total
}
