package usecase

import (
	"context"

	"github.com/runoshun/git-chain/internal/domain"
)

// ShowStatusInput contains the parameters for showing project status.
type ShowStatusInput struct {
	Project string // Project name (required)
}

// ShowStatusOutput contains the reconciled state of a project.
type ShowStatusOutput struct {
	Result *domain.ReconciliationResult
}

// ShowStatus is the use case for displaying the status of every task.
type ShowStatus struct {
	specs  domain.SpecSource
	prs    domain.PullRequestLister
	config *domain.Config
}

// NewShowStatus creates a new ShowStatus use case.
func NewShowStatus(specs domain.SpecSource, prs domain.PullRequestLister, config *domain.Config) *ShowStatus {
	return &ShowStatus{
		specs:  specs,
		prs:    prs,
		config: config,
	}
}

// Execute reconciles the spec of a project with its PRs.
func (uc *ShowStatus) Execute(ctx context.Context, in ShowStatusInput) (*ShowStatusOutput, error) {
	spec, err := loadSpec(ctx, uc.specs, in.Project, uc.config.Chain.SpecRef)
	if err != nil {
		return nil, err
	}

	snap, err := listPRs(ctx, uc.prs, uc.config)
	if err != nil {
		return nil, err
	}

	return &ShowStatusOutput{
		Result: domain.Reconcile(spec, snap.Open, snap.Merged, in.Project),
	}, nil
}
