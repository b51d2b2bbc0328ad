package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/git-chain/internal/domain"
)

// ListProjectsInput contains the parameters for listing projects.
type ListProjectsInput struct{}

// ProjectSummary describes one project without contacting the PR platform.
type ProjectSummary struct {
	Err       error // Spec could not be read or parsed
	Name      string
	Total     int
	Completed int
	Reviewers int
}

// ListProjectsOutput contains the discovered projects, sorted by name.
type ListProjectsOutput struct {
	Projects []ProjectSummary
}

// ListProjects discovers projects and summarises their specs.
type ListProjects struct {
	specs    domain.SpecSource
	projects domain.ProjectConfigLoader
	logger   domain.Logger
	config   *domain.Config
}

// NewListProjects creates a new ListProjects use case.
func NewListProjects(specs domain.SpecSource, projects domain.ProjectConfigLoader, logger domain.Logger, config *domain.Config) *ListProjects {
	return &ListProjects{
		specs:    specs,
		projects: projects,
		logger:   logger,
		config:   config,
	}
}

// Execute lists projects. A project with a broken spec or config is still
// listed with its error so one bad project does not hide the others.
func (uc *ListProjects) Execute(ctx context.Context, _ ListProjectsInput) (*ListProjectsOutput, error) {
	ref := uc.config.Chain.SpecRef
	names, err := uc.specs.ListProjects(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	out := &ListProjectsOutput{Projects: make([]ProjectSummary, 0, len(names))}
	for _, name := range names {
		summary := ProjectSummary{Name: name}

		spec, err := loadSpec(ctx, uc.specs, name, ref)
		if err != nil {
			summary.Err = err
			uc.logger.Warn(name, "projects", err.Error())
			out.Projects = append(out.Projects, summary)
			continue
		}
		summary.Total = spec.TotalTasks()
		summary.Completed = spec.CompletedTasks()

		cfg, err := uc.projects.LoadProject(ctx, name, ref)
		if err != nil {
			summary.Err = err
			uc.logger.Warn(name, "projects", err.Error())
		} else {
			summary.Reviewers = len(cfg.Reviewers)
		}
		out.Projects = append(out.Projects, summary)
	}
	return out, nil
}
