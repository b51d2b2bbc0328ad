package usecase

import (
	"context"

	"github.com/runoshun/git-chain/internal/domain"
)

// ListOrphansInput contains the parameters for listing orphaned PRs.
type ListOrphansInput struct {
	Project  string // Project name (required)
	OpenOnly bool   // Only orphans that are still open
}

// ListOrphansOutput contains the orphaned PRs, sorted by number.
type ListOrphansOutput struct {
	Orphans []domain.PullRequest
}

// ListOrphans lists PRs whose task is no longer in the spec.
type ListOrphans struct {
	status *ShowStatus
}

// NewListOrphans creates a new ListOrphans use case.
func NewListOrphans(specs domain.SpecSource, prs domain.PullRequestLister, config *domain.Config) *ListOrphans {
	return &ListOrphans{
		status: NewShowStatus(specs, prs, config),
	}
}

// Execute reconciles the project and returns its orphans.
func (uc *ListOrphans) Execute(ctx context.Context, in ListOrphansInput) (*ListOrphansOutput, error) {
	out, err := uc.status.Execute(ctx, ShowStatusInput{Project: in.Project})
	if err != nil {
		return nil, err
	}

	orphans := out.Result.OrphanedPRs
	if in.OpenOnly {
		orphans = out.Result.OpenOrphans()
	}
	return &ListOrphansOutput{Orphans: orphans}, nil
}
