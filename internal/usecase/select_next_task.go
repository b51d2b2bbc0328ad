package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/git-chain/internal/domain"
)

// Reasons reported when no task is selected.
const (
	ReasonNoCapacity       = "no capacity"
	ReasonAllTasksComplete = "all tasks complete"
	ReasonNoPendingTasks   = "no pending tasks"
)

// SelectNextTaskInput contains the parameters for selecting the next task.
type SelectNextTaskInput struct {
	Project string // Project name (required)
}

// SelectNextTaskOutput contains the result of selecting the next task.
// Task is nil when nothing may start; Reason says why.
// Fields are ordered to minimize memory padding.
type SelectNextTaskOutput struct {
	Task       *domain.Task
	Result     *domain.ReconciliationResult
	Reviewer   string // Assigned reviewer, empty in project mode
	Branch     string // Branch to create for the task
	BaseBranch string
	Reason     string
	Admission  domain.Admission
}

// Selected reports whether a task was selected.
func (o *SelectNextTaskOutput) Selected() bool {
	return o.Task != nil
}

// SelectNextTask decides whether a new task may start and which one.
//
// Admission is a best-effort throttle: it is derived from the PR snapshot of
// this run only, so two runs started at the same time can both be admitted.
type SelectNextTask struct {
	specs    domain.SpecSource
	projects domain.ProjectConfigLoader
	prs      domain.PullRequestLister
	logger   domain.Logger
	config   *domain.Config
}

// NewSelectNextTask creates a new SelectNextTask use case.
func NewSelectNextTask(
	specs domain.SpecSource,
	projects domain.ProjectConfigLoader,
	prs domain.PullRequestLister,
	logger domain.Logger,
	config *domain.Config,
) *SelectNextTask {
	return &SelectNextTask{
		specs:    specs,
		projects: projects,
		prs:      prs,
		logger:   logger,
		config:   config,
	}
}

// Execute reconciles the project and selects the next pending task.
func (uc *SelectNextTask) Execute(ctx context.Context, in SelectNextTaskInput) (*SelectNextTaskOutput, error) {
	if err := domain.ValidateProjectName(in.Project); err != nil {
		return nil, err
	}

	projectCfg, err := uc.projects.LoadProject(ctx, in.Project, uc.config.Chain.SpecRef)
	if err != nil {
		return nil, fmt.Errorf("load project config: %w", err)
	}

	spec, err := loadSpec(ctx, uc.specs, in.Project, uc.config.Chain.SpecRef)
	if err != nil {
		return nil, err
	}

	snap, err := listPRs(ctx, uc.prs, uc.config)
	if err != nil {
		return nil, err
	}

	result := domain.Reconcile(spec, snap.Open, snap.Merged, in.Project)
	admission := domain.CheckAdmission(projectCfg.Reviewers, snap.Open, in.Project, projectCfg.ProjectLimit())

	out := &SelectNextTaskOutput{
		Result:     result,
		Admission:  admission,
		BaseBranch: projectCfg.ResolveBaseBranch(uc.config.Chain.BaseBranch),
	}

	if !admission.Allowed() {
		out.Reason = ReasonNoCapacity
		uc.logger.Info(in.Project, "next", fmt.Sprintf("no capacity: %s (open=%d)", admission.Result, admission.OpenPRs))
		return out, nil
	}

	task, ok := result.NextPending()
	if !ok {
		if result.Count(domain.TaskStatusCompleted) == len(result.Tasks) {
			out.Reason = ReasonAllTasksComplete
		} else {
			out.Reason = ReasonNoPendingTasks
		}
		uc.logger.Info(in.Project, "next", out.Reason)
		return out, nil
	}

	out.Task = &task
	out.Reviewer = admission.Reviewer
	out.Branch = domain.BranchName(in.Project, task.Hash)
	uc.logger.Info(in.Project, "next", fmt.Sprintf("selected task %s (#%d) reviewer=%q", task.Hash, task.Ordinal, out.Reviewer))
	return out, nil
}
