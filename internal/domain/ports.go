package domain

import (
	"context"
	"time"
)

// SpecSource reads spec documents and discovers projects.
type SpecSource interface {
	// ReadSpec returns the raw spec document of a project at ref.
	// An empty ref reads the working tree. Returns ErrSpecNotFound if absent.
	ReadSpec(ctx context.Context, project, ref string) (string, error)

	// ListProjects returns every project with a spec document at ref, sorted by name.
	ListProjects(ctx context.Context, ref string) ([]string, error)
}

// SpecWriter rewrites spec documents in the working tree.
type SpecWriter interface {
	// WriteSpec replaces the working-tree spec document of a project.
	WriteSpec(ctx context.Context, project, content string) error
}

// ProjectConfigLoader loads per-project configuration.
type ProjectConfigLoader interface {
	// LoadProject returns the configuration of a project at ref.
	// A missing configuration file yields an empty config.
	LoadProject(ctx context.Context, project, ref string) (*ProjectConfig, error)
}

// ListPROptions configures a PR listing.
type ListPROptions struct {
	Label string
	State PRState
	Limit int
}

// PullRequestLister lists pull requests from the remote platform.
type PullRequestLister interface {
	// ListPullRequests returns PRs carrying the label in the given state.
	// Any failure is wrapped in ErrRemoteAPI.
	ListPullRequests(ctx context.Context, opts ListPROptions) ([]PullRequest, error)
}

// CostSource looks up the agent cost recorded on a PR.
type CostSource interface {
	// PullRequestCost returns the cost of a PR and whether one was recorded.
	PullRequestCost(ctx context.Context, number int) (float64, bool, error)
}

// ConfigLoader loads tool configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (repo + global).
	Load() (*Config, error)

	// LoadGlobal returns only the global configuration.
	LoadGlobal() (*Config, error)

	// LoadWithOptions returns the merged configuration, skipping ignored sources.
	LoadWithOptions(opts LoadConfigOptions) (*Config, error)
}

// CommandExecutor runs external programs.
type CommandExecutor interface {
	// Execute runs the command and returns its combined output.
	Execute(cmd *ExecCommand) ([]byte, error)

	// Output runs the command with ctx and returns stdout only.
	// Stderr is folded into the returned error.
	Output(ctx context.Context, cmd *ExecCommand) ([]byte, error)
}

// Logger writes diagnostic messages, globally or for one project.
// An empty project logs to the global log only.
type Logger interface {
	Info(project, category, msg string)
	Debug(project, category, msg string)
	Warn(project, category, msg string)
	Error(project, category, msg string)
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// ConfigInfo describes a config file on disk.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// ConfigManager inspects and creates config files.
type ConfigManager interface {
	// GetRepoConfigInfo returns information about the repository config file.
	GetRepoConfigInfo() ConfigInfo

	// GetGlobalConfigInfo returns information about the global config file.
	GetGlobalConfigInfo() ConfigInfo

	// InitRepoConfig writes the default template to the repository config file.
	// Returns ErrConfigExists if the file is already present.
	InitRepoConfig(cfg *Config) error

	// InitGlobalConfig writes the default template to the global config file.
	InitGlobalConfig(cfg *Config) error
}

// Git reads the state of the local checkout.
type Git interface {
	// CurrentBranch returns the name of the checked-out branch.
	// Returns ErrDetachedHead when no branch is checked out.
	CurrentBranch(ctx context.Context) (string, error)
}
