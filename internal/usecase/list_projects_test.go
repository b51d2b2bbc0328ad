package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/git-chain/internal/domain"
)

func TestListProjects_Execute(t *testing.T) {
	f := newFixture()
	f.specs.Specs["gadgets"] = "- [x] One\n- [x] Two\n- [ ] Three\n"
	f.specs.Specs["broken"] = "no checklist"
	f.projects.Configs["gadgets"] = &domain.ProjectConfig{
		Reviewers: []domain.Reviewer{{Username: "alice", MaxOpenPRs: 1}, {Username: "bob", MaxOpenPRs: 1}},
	}

	uc := NewListProjects(f.specs, f.projects, f.logger, f.config)
	out, err := uc.Execute(context.Background(), ListProjectsInput{})
	require.NoError(t, err)

	require.Len(t, out.Projects, 3)
	assert.Equal(t, "broken", out.Projects[0].Name)
	assert.ErrorIs(t, out.Projects[0].Err, domain.ErrNoTasksInSpec)

	assert.Equal(t, ProjectSummary{Name: "gadgets", Total: 3, Completed: 2, Reviewers: 2}, out.Projects[1])
	assert.Equal(t, ProjectSummary{Name: "widgets", Total: 3}, out.Projects[2])

	warnings := f.logger.ByLevel("WARN")
	require.Len(t, warnings, 1)
	assert.Equal(t, "broken", warnings[0].Project)
}

func TestListProjects_Execute_ConfigError(t *testing.T) {
	f := newFixture()
	f.projects.Errs["widgets"] = domain.ErrInvalidReviewer

	uc := NewListProjects(f.specs, f.projects, f.logger, f.config)
	out, err := uc.Execute(context.Background(), ListProjectsInput{})
	require.NoError(t, err)

	require.Len(t, out.Projects, 1)
	assert.Equal(t, 3, out.Projects[0].Total)
	assert.ErrorIs(t, out.Projects[0].Err, domain.ErrConfiguration)
}

func TestListProjects_Execute_ListError(t *testing.T) {
	f := newFixture()
	f.specs.ListErr = errors.New("corrupt repository")

	uc := NewListProjects(f.specs, f.projects, f.logger, f.config)
	_, err := uc.Execute(context.Background(), ListProjectsInput{})
	assert.ErrorContains(t, err, "corrupt repository")
}
