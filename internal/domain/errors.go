package domain

import (
	"errors"
	"fmt"
)

// Error classes. Specific errors wrap one of these so callers can branch
// on errors.Is(err, ErrConfiguration) and friends.
var (
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
	ErrRemoteAPI     = errors.New("remote API error")
)

// Domain errors.
var (
	ErrNoTasksInSpec       = fmt.Errorf("%w: spec has no checklist items", ErrConfiguration)
	ErrInvalidReviewer     = fmt.Errorf("%w: invalid reviewer", ErrConfiguration)
	ErrDuplicateReviewer   = fmt.Errorf("%w: duplicate reviewer", ErrConfiguration)
	ErrInvalidProjectLimit = fmt.Errorf("%w: maxOpenPRs must not be negative", ErrConfiguration)
	ErrInvalidProjectName  = fmt.Errorf("%w: invalid project name", ErrConfiguration)
	ErrInvalidTaskHash     = fmt.Errorf("%w: invalid task hash", ErrConfiguration)
	ErrProjectNotFound     = fmt.Errorf("%w: project", ErrNotFound)
	ErrSpecNotFound        = fmt.Errorf("%w: spec document", ErrNotFound)
	ErrTaskNotFound        = fmt.Errorf("%w: task", ErrNotFound)
	ErrConfigExists        = fmt.Errorf("%w: config file already exists", ErrConfiguration)
	ErrNotGitRepository    = errors.New("not a git repository (or any of the parent directories)")
	ErrDetachedHead        = errors.New("HEAD is detached")
)
