package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/git-chain/internal/domain"
)

// CompleteTaskInput contains the parameters for checking off a task.
type CompleteTaskInput struct {
	Project  string // Project name (required)
	TaskHash string // 8-hex task hash (required)
}

// CompleteTaskOutput contains the result of checking off a task.
type CompleteTaskOutput struct {
	Task    domain.Task
	Changed bool // False if the task was already checked
}

// CompleteTask flips the checkbox of a task in the working-tree spec.
// Committing and pushing the change is left to the caller.
type CompleteTask struct {
	specs  domain.SpecSource
	writer domain.SpecWriter
	logger domain.Logger
}

// NewCompleteTask creates a new CompleteTask use case.
func NewCompleteTask(specs domain.SpecSource, writer domain.SpecWriter, logger domain.Logger) *CompleteTask {
	return &CompleteTask{
		specs:  specs,
		writer: writer,
		logger: logger,
	}
}

// Execute marks the task complete.
func (uc *CompleteTask) Execute(ctx context.Context, in CompleteTaskInput) (*CompleteTaskOutput, error) {
	hash := strings.ToLower(strings.TrimSpace(in.TaskHash))
	if !domain.IsTaskHash(hash) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidTaskHash, in.TaskHash)
	}
	if err := domain.ValidateProjectName(in.Project); err != nil {
		return nil, err
	}

	// Always the working tree: that is what gets committed.
	content, err := uc.specs.ReadSpec(ctx, in.Project, "")
	if err != nil {
		return nil, fmt.Errorf("read spec: %w", err)
	}

	spec, err := domain.ParseSpec(content)
	if err != nil {
		return nil, fmt.Errorf("project %s: %w", in.Project, err)
	}
	task, ok := spec.FindByHash(hash)
	if !ok {
		return nil, fmt.Errorf("%w: %s in project %s", domain.ErrTaskNotFound, hash, in.Project)
	}

	updated, changed, err := domain.MarkTaskComplete(content, hash)
	if err != nil {
		return nil, err
	}
	if !changed {
		uc.logger.Info(in.Project, "complete", fmt.Sprintf("task %s already checked", hash))
		return &CompleteTaskOutput{Task: task}, nil
	}

	if err := uc.writer.WriteSpec(ctx, in.Project, updated); err != nil {
		return nil, fmt.Errorf("write spec: %w", err)
	}
	task.Checked = true
	uc.logger.Info(in.Project, "complete", fmt.Sprintf("checked task %s: %s", hash, task.Description))

	return &CompleteTaskOutput{Task: task, Changed: true}, nil
}
