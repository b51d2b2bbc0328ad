// Package app provides the dependency injection container for the application.
package app

import (
	"log/slog"
	"os"

	"github.com/runoshun/git-chain/internal/domain"
	"github.com/runoshun/git-chain/internal/infra/config"
	"github.com/runoshun/git-chain/internal/infra/executor"
	"github.com/runoshun/git-chain/internal/infra/git"
	"github.com/runoshun/git-chain/internal/infra/github"
	"github.com/runoshun/git-chain/internal/infra/logging"
	"github.com/runoshun/git-chain/internal/infra/specstore"
	"github.com/runoshun/git-chain/internal/usecase"
)

// Config holds the application configuration paths.
type Config struct {
	RepoRoot   string // Root directory of the git repository
	GitDir     string // Path to .git directory
	WorkingDir string // Top level of the current worktree
	ChainDir   string // Path to .git/chain directory (logs)
}

// newConfig creates a new Config from the git client.
func newConfig(gitClient *git.Client) Config {
	gitDir := gitClient.GitDir()
	return Config{
		RepoRoot:   gitClient.RepoRoot(),
		GitDir:     gitDir,
		WorkingDir: gitClient.WorkingDir(),
		ChainDir:   domain.ChainDir(gitDir),
	}
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Specs         domain.SpecSource
	SpecWriter    domain.SpecWriter
	Projects      domain.ProjectConfigLoader
	PullRequests  domain.PullRequestLister
	Costs         domain.CostSource
	Clock         domain.Clock
	Git           domain.Git
	Log           domain.Logger
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager

	// Pointer fields
	AppConfig *domain.Config
	Logger    *slog.Logger

	// Configuration
	Config Config
}

// New creates a new Container by detecting the git repository from the given directory.
func New(dir string) (*Container, error) {
	// Detect git repository
	runner := executor.NewClient()
	gitClient, err := git.NewClient(runner, dir)
	if err != nil {
		return nil, err
	}

	cfg := newConfig(gitClient)

	// Broken config files still yield defaults; the root command reports them
	configLoader := config.NewLoader(cfg.WorkingDir)
	appConfig, err := configLoader.Load()
	if err != nil {
		appConfig = domain.NewDefaultConfig()
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logging.ParseLevel(appConfig.Log.Level),
	}))

	store, err := specstore.New(cfg.WorkingDir, appConfig.Chain.SpecDir)
	if err != nil {
		return nil, err
	}

	gh := github.NewClient(runner, cfg.WorkingDir, appConfig.GitHub)

	return &Container{
		Specs:         store,
		SpecWriter:    store,
		Projects:      store,
		PullRequests:  gh,
		Costs:         gh,
		Clock:         domain.RealClock{},
		Git:           gitClient,
		Log:           logging.New(cfg.ChainDir, logging.ParseLevel(appConfig.Log.Level)),
		ConfigLoader:  configLoader,
		ConfigManager: config.NewManager(cfg.WorkingDir),
		AppConfig:     appConfig,
		Logger:        logger,
		Config:        cfg,
	}, nil
}

// Deps lists the ports a test container is built from.
type Deps struct {
	Specs        domain.SpecSource
	SpecWriter   domain.SpecWriter
	Projects     domain.ProjectConfigLoader
	PullRequests domain.PullRequestLister
	Costs        domain.CostSource
	Clock        domain.Clock
	Git          domain.Git
	Log          domain.Logger
}

// NewWithDeps creates a new Container with custom dependencies for testing.
// A nil app config falls back to the defaults.
func NewWithDeps(cfg Config, appConfig *domain.Config, deps Deps, logger *slog.Logger) *Container {
	if appConfig == nil {
		appConfig = domain.NewDefaultConfig()
	}
	log := deps.Log
	if log == nil {
		log = logging.Nop{}
	}
	return &Container{
		Specs:        deps.Specs,
		SpecWriter:   deps.SpecWriter,
		Projects:     deps.Projects,
		PullRequests: deps.PullRequests,
		Costs:        deps.Costs,
		Clock:        deps.Clock,
		Git:          deps.Git,
		Log:          log,
		AppConfig:    appConfig,
		Logger:       logger,
		Config:       cfg,
	}
}

// Close releases the log files held by the container.
func (c *Container) Close() error {
	if closer, ok := c.Log.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

// UseCase factory methods

// SelectNextTaskUseCase returns a new SelectNextTask use case.
func (c *Container) SelectNextTaskUseCase() *usecase.SelectNextTask {
	return usecase.NewSelectNextTask(c.Specs, c.Projects, c.PullRequests, c.Log, c.AppConfig)
}

// ShowStatusUseCase returns a new ShowStatus use case.
func (c *Container) ShowStatusUseCase() *usecase.ShowStatus {
	return usecase.NewShowStatus(c.Specs, c.PullRequests, c.AppConfig)
}

// ListOrphansUseCase returns a new ListOrphans use case.
func (c *Container) ListOrphansUseCase() *usecase.ListOrphans {
	return usecase.NewListOrphans(c.Specs, c.PullRequests, c.AppConfig)
}

// ListProjectsUseCase returns a new ListProjects use case.
func (c *Container) ListProjectsUseCase() *usecase.ListProjects {
	return usecase.NewListProjects(c.Specs, c.Projects, c.Log, c.AppConfig)
}

// CollectStatisticsUseCase returns a new CollectStatistics use case.
func (c *Container) CollectStatisticsUseCase() *usecase.CollectStatistics {
	return usecase.NewCollectStatistics(c.Specs, c.PullRequests, c.Costs, c.Log, c.Clock, c.AppConfig)
}

// CompleteTaskUseCase returns a new CompleteTask use case.
func (c *Container) CompleteTaskUseCase() *usecase.CompleteTask {
	return usecase.NewCompleteTask(c.Specs, c.SpecWriter, c.Log)
}

// EncodeBranchUseCase returns a new EncodeBranch use case.
func (c *Container) EncodeBranchUseCase() *usecase.EncodeBranch {
	return usecase.NewEncodeBranch()
}

// DecodeBranchUseCase returns a new DecodeBranch use case.
func (c *Container) DecodeBranchUseCase() *usecase.DecodeBranch {
	return usecase.NewDecodeBranch(c.Git)
}

// ShowLogsUseCase returns a new ShowLogs use case.
func (c *Container) ShowLogsUseCase() *usecase.ShowLogs {
	return usecase.NewShowLogs(c.Config.ChainDir)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}

// ShowConfigTemplateUseCase returns a new ShowConfigTemplate use case.
func (c *Container) ShowConfigTemplateUseCase() *usecase.ShowConfigTemplate {
	return usecase.NewShowConfigTemplate()
}
