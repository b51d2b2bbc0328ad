package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/git-chain/internal/domain"
)

// EncodeBranchInput contains the parameters for naming a task branch.
type EncodeBranchInput struct {
	Project     string
	Description string
}

// EncodeBranchOutput contains the branch of a task.
type EncodeBranchOutput struct {
	Branch   string
	TaskHash string
}

// EncodeBranch derives the branch name of a task from its description.
type EncodeBranch struct{}

// NewEncodeBranch creates a new EncodeBranch use case.
func NewEncodeBranch() *EncodeBranch {
	return &EncodeBranch{}
}

// Execute hashes the description and encodes the branch name.
func (uc *EncodeBranch) Execute(_ context.Context, in EncodeBranchInput) (*EncodeBranchOutput, error) {
	if err := domain.ValidateProjectName(in.Project); err != nil {
		return nil, err
	}
	hash := domain.TaskHash(in.Description)
	return &EncodeBranchOutput{
		Branch:   domain.BranchName(in.Project, hash),
		TaskHash: hash,
	}, nil
}

// DecodeBranchInput contains the parameters for decoding a branch.
type DecodeBranchInput struct {
	Branch string // Empty means the current branch
}

// DecodeBranchOutput contains the decoded branch.
type DecodeBranchOutput struct {
	Branch     string
	Descriptor domain.BranchDescriptor
	IsTask     bool
}

// DecodeBranch tells which project and task a branch belongs to.
type DecodeBranch struct {
	git domain.Git
}

// NewDecodeBranch creates a new DecodeBranch use case.
func NewDecodeBranch(git domain.Git) *DecodeBranch {
	return &DecodeBranch{git: git}
}

// Execute decodes the branch name.
func (uc *DecodeBranch) Execute(ctx context.Context, in DecodeBranchInput) (*DecodeBranchOutput, error) {
	branch := in.Branch
	if branch == "" {
		current, err := uc.git.CurrentBranch(ctx)
		if err != nil {
			return nil, fmt.Errorf("get current branch: %w", err)
		}
		branch = current
	}

	desc, ok := domain.ParseBranch(branch)
	return &DecodeBranchOutput{
		Branch:     branch,
		Descriptor: desc,
		IsTask:     ok,
	}, nil
}
