// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/runoshun/git-chain/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockSpecSource is a test double for domain.SpecSource and domain.SpecWriter.
// Specs are keyed by project; the ref argument is recorded but not used.
// Fields are ordered to minimize memory padding.
type MockSpecSource struct {
	Specs    map[string]string
	ReadErr  error
	ListErr  error
	WriteErr error
	LastRef  string
	Written  map[string]string
}

// NewMockSpecSource creates a new MockSpecSource with initialized maps.
func NewMockSpecSource() *MockSpecSource {
	return &MockSpecSource{
		Specs:   make(map[string]string),
		Written: make(map[string]string),
	}
}

// Ensure MockSpecSource implements the spec ports.
var (
	_ domain.SpecSource = (*MockSpecSource)(nil)
	_ domain.SpecWriter = (*MockSpecSource)(nil)
)

// ReadSpec returns the configured spec or ErrSpecNotFound.
func (m *MockSpecSource) ReadSpec(_ context.Context, project, ref string) (string, error) {
	m.LastRef = ref
	if m.ReadErr != nil {
		return "", m.ReadErr
	}
	content, ok := m.Specs[project]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrSpecNotFound, project)
	}
	return content, nil
}

// ListProjects returns the configured projects, sorted.
func (m *MockSpecSource) ListProjects(_ context.Context, ref string) ([]string, error) {
	m.LastRef = ref
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	projects := make([]string, 0, len(m.Specs))
	for name := range m.Specs {
		projects = append(projects, name)
	}
	sort.Strings(projects)
	return projects, nil
}

// WriteSpec records the content and updates the spec.
func (m *MockSpecSource) WriteSpec(_ context.Context, project, content string) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}
	if _, ok := m.Specs[project]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrSpecNotFound, project)
	}
	m.Specs[project] = content
	m.Written[project] = content
	return nil
}

// MockProjectConfigLoader is a test double for domain.ProjectConfigLoader.
type MockProjectConfigLoader struct {
	Configs map[string]*domain.ProjectConfig
	Errs    map[string]error
}

// NewMockProjectConfigLoader creates a new MockProjectConfigLoader with initialized maps.
func NewMockProjectConfigLoader() *MockProjectConfigLoader {
	return &MockProjectConfigLoader{
		Configs: make(map[string]*domain.ProjectConfig),
		Errs:    make(map[string]error),
	}
}

// Ensure MockProjectConfigLoader implements domain.ProjectConfigLoader.
var _ domain.ProjectConfigLoader = (*MockProjectConfigLoader)(nil)

// LoadProject returns the configured config, or an empty one.
func (m *MockProjectConfigLoader) LoadProject(_ context.Context, project, _ string) (*domain.ProjectConfig, error) {
	if err := m.Errs[project]; err != nil {
		return nil, err
	}
	if cfg, ok := m.Configs[project]; ok {
		return cfg, nil
	}
	return &domain.ProjectConfig{}, nil
}

// MockPullRequestLister is a test double for domain.PullRequestLister.
// Fields are ordered to minimize memory padding.
type MockPullRequestLister struct {
	Open      []domain.PullRequest
	Merged    []domain.PullRequest
	Err       error
	MergedErr error
	Calls     []domain.ListPROptions
}

// Ensure MockPullRequestLister implements domain.PullRequestLister.
var _ domain.PullRequestLister = (*MockPullRequestLister)(nil)

// ListPullRequests returns the configured PRs for the requested state.
func (m *MockPullRequestLister) ListPullRequests(_ context.Context, opts domain.ListPROptions) ([]domain.PullRequest, error) {
	m.Calls = append(m.Calls, opts)
	if m.Err != nil {
		return nil, m.Err
	}
	switch opts.State {
	case domain.PRStateMerged:
		if m.MergedErr != nil {
			return nil, m.MergedErr
		}
		return m.Merged, nil
	case domain.PRStateOpen:
		return m.Open, nil
	}
	return nil, errors.New("unsupported state")
}

// MockCostSource is a test double for domain.CostSource.
type MockCostSource struct {
	Costs map[int]float64
	Errs  map[int]error
	Calls []int
}

// NewMockCostSource creates a new MockCostSource with initialized maps.
func NewMockCostSource() *MockCostSource {
	return &MockCostSource{
		Costs: make(map[int]float64),
		Errs:  make(map[int]error),
	}
}

// Ensure MockCostSource implements domain.CostSource.
var _ domain.CostSource = (*MockCostSource)(nil)

// PullRequestCost returns the configured cost for a PR number.
func (m *MockCostSource) PullRequestCost(_ context.Context, number int) (float64, bool, error) {
	m.Calls = append(m.Calls, number)
	if err := m.Errs[number]; err != nil {
		return 0, false, err
	}
	cost, ok := m.Costs[number]
	return cost, ok, nil
}

// LogEntry is one message recorded by MockLogger.
type LogEntry struct {
	Level    string
	Project  string
	Category string
	Msg      string
}

// MockLogger is a test double for domain.Logger that records entries.
type MockLogger struct {
	Entries []LogEntry
}

// Ensure MockLogger implements domain.Logger.
var _ domain.Logger = (*MockLogger)(nil)

func (m *MockLogger) record(level, project, category, msg string) {
	m.Entries = append(m.Entries, LogEntry{Level: level, Project: project, Category: category, Msg: msg})
}

// Info records an info message.
func (m *MockLogger) Info(project, category, msg string) { m.record("INFO", project, category, msg) }

// Debug records a debug message.
func (m *MockLogger) Debug(project, category, msg string) { m.record("DEBUG", project, category, msg) }

// Warn records a warning message.
func (m *MockLogger) Warn(project, category, msg string) { m.record("WARN", project, category, msg) }

// Error records an error message.
func (m *MockLogger) Error(project, category, msg string) { m.record("ERROR", project, category, msg) }

// ByLevel returns the recorded entries of a level.
func (m *MockLogger) ByLevel(level string) []LogEntry {
	var out []LogEntry
	for _, e := range m.Entries {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// MockGit is a test double for domain.Git.
type MockGit struct {
	CurrentBranchErr  error
	CurrentBranchName string
}

// Ensure MockGit implements domain.Git.
var _ domain.Git = (*MockGit)(nil)

// CurrentBranch returns the configured branch name or error.
func (m *MockGit) CurrentBranch(_ context.Context) (string, error) {
	if m.CurrentBranchErr != nil {
		return "", m.CurrentBranchErr
	}
	return m.CurrentBranchName, nil
}

// MockCommandExecutor is a test double for domain.CommandExecutor.
// Fields are ordered to minimize memory padding.
type MockCommandExecutor struct {
	// OutputFunc, when set, computes the result of Output per command.
	OutputFunc func(cmd *domain.ExecCommand) ([]byte, error)
	ExecuteErr error
	OutputErr  error
	Commands   []*domain.ExecCommand
	ExecuteOut []byte
	OutputOut  []byte
	// Deadlines records whether each Output call had a context deadline.
	Deadlines []bool
}

// Ensure MockCommandExecutor implements domain.CommandExecutor.
var _ domain.CommandExecutor = (*MockCommandExecutor)(nil)

// Execute records the command and returns the configured result.
func (m *MockCommandExecutor) Execute(cmd *domain.ExecCommand) ([]byte, error) {
	m.Commands = append(m.Commands, cmd)
	return m.ExecuteOut, m.ExecuteErr
}

// Output records the command and returns the configured result.
func (m *MockCommandExecutor) Output(ctx context.Context, cmd *domain.ExecCommand) ([]byte, error) {
	m.Commands = append(m.Commands, cmd)
	_, hasDeadline := ctx.Deadline()
	m.Deadlines = append(m.Deadlines, hasDeadline)
	if m.OutputFunc != nil {
		return m.OutputFunc(cmd)
	}
	return m.OutputOut, m.OutputErr
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config       *domain.Config
	GlobalConfig *domain.Config
	LoadErr      error
	GlobalErr    error
}

// NewMockConfigLoader creates a new MockConfigLoader with default config.
func NewMockConfigLoader() *MockConfigLoader {
	return &MockConfigLoader{
		Config: domain.NewDefaultConfig(),
	}
}

// Ensure MockConfigLoader implements domain.ConfigLoader interface.
var _ domain.ConfigLoader = (*MockConfigLoader)(nil)

// Load returns the configured config or error.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Config, nil
}

// LoadGlobal returns the configured config or error.
func (m *MockConfigLoader) LoadGlobal() (*domain.Config, error) {
	if m.GlobalErr != nil {
		return nil, m.GlobalErr
	}
	if m.GlobalConfig != nil {
		return m.GlobalConfig, nil
	}
	return m.Config, nil
}

// LoadWithOptions returns config based on options.
func (m *MockConfigLoader) LoadWithOptions(_ domain.LoadConfigOptions) (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Config, nil
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	InitRepoErr      error
	InitGlobalErr    error
	Written          *domain.Config
	RepoConfigInfo   domain.ConfigInfo
	GlobalConfigInfo domain.ConfigInfo
	InitRepoCalled   bool
	InitGlobalCalled bool
}

// NewMockConfigManager creates a new MockConfigManager.
func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{}
}

// Ensure MockConfigManager implements domain.ConfigManager.
var _ domain.ConfigManager = (*MockConfigManager)(nil)

// GetRepoConfigInfo returns the configured repo config info.
func (m *MockConfigManager) GetRepoConfigInfo() domain.ConfigInfo {
	return m.RepoConfigInfo
}

// GetGlobalConfigInfo returns the configured global config info.
func (m *MockConfigManager) GetGlobalConfigInfo() domain.ConfigInfo {
	return m.GlobalConfigInfo
}

// InitRepoConfig records the call and returns the configured error.
func (m *MockConfigManager) InitRepoConfig(cfg *domain.Config) error {
	m.InitRepoCalled = true
	m.Written = cfg
	return m.InitRepoErr
}

// InitGlobalConfig records the call and returns the configured error.
func (m *MockConfigManager) InitGlobalConfig(cfg *domain.Config) error {
	m.InitGlobalCalled = true
	m.Written = cfg
	return m.InitGlobalErr
}
