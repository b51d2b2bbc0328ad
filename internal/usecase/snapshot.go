// Package usecase contains the application use cases.
package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/git-chain/internal/domain"
)

// prSnapshot holds the labelled PRs observed at one point in a run.
type prSnapshot struct {
	Open   []domain.PullRequest
	Merged []domain.PullRequest
}

// All returns open and merged PRs together.
func (s *prSnapshot) All() []domain.PullRequest {
	all := make([]domain.PullRequest, 0, len(s.Open)+len(s.Merged))
	all = append(all, s.Open...)
	return append(all, s.Merged...)
}

// listPRs fetches open and merged PRs carrying the configured label.
// Any listing failure aborts the run. A PR merged between the two calls is
// reported in both lists; only its merged copy is kept so it does not count
// against capacity.
func listPRs(ctx context.Context, prs domain.PullRequestLister, cfg *domain.Config) (*prSnapshot, error) {
	open, err := prs.ListPullRequests(ctx, domain.ListPROptions{
		Label: cfg.Chain.Label,
		State: domain.PRStateOpen,
		Limit: cfg.GitHub.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list open PRs: %w", err)
	}

	merged, err := prs.ListPullRequests(ctx, domain.ListPROptions{
		Label: cfg.Chain.Label,
		State: domain.PRStateMerged,
		Limit: cfg.GitHub.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list merged PRs: %w", err)
	}

	return &prSnapshot{Open: domain.DropMerged(open, merged), Merged: merged}, nil
}

// loadSpec reads and parses the spec document of a project.
func loadSpec(ctx context.Context, specs domain.SpecSource, project, ref string) (*domain.SpecDocument, error) {
	if err := domain.ValidateProjectName(project); err != nil {
		return nil, err
	}
	content, err := specs.ReadSpec(ctx, project, ref)
	if err != nil {
		return nil, fmt.Errorf("read spec: %w", err)
	}
	doc, err := domain.ParseSpec(content)
	if err != nil {
		return nil, fmt.Errorf("project %s: %w", project, err)
	}
	return doc, nil
}
