package domain

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"
	"time"
)

//go:embed config_template.toml
var configTemplateContent string

// Directory and file names for git-chain.
const (
	ConfigFileName        = "config.toml"       // Tool config file name
	ProjectConfigFileName = "configuration.yml" // Per-project config file name
	DefaultSpecDir        = "chain"             // Directory holding one subdirectory per project
	DefaultLabel          = "chain"             // Label put on every task PR
	DefaultBaseBranch     = "main"
	DefaultLogLevel       = "info"
	DefaultGitHubTimeout  = 60 * time.Second
	DefaultGitHubLimit    = 200
)

// Config represents the tool configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string     `toml:"-"`
	Chain    ChainConfig  `toml:"chain"`
	GitHub   GitHubConfig `toml:"github"`
	Log      LogConfig    `toml:"log"`
	Stats    StatsConfig  `toml:"stats"`
}

// ChainConfig holds settings from the [chain] section.
type ChainConfig struct {
	Label      string `toml:"label,omitempty"`       // Label of task PRs
	SpecDir    string `toml:"spec_dir,omitempty"`    // Directory of project specs, relative to repo root
	BaseBranch string `toml:"base_branch,omitempty"` // Default base branch for task PRs
	SpecRef    string `toml:"spec_ref,omitempty"`    // Git ref to read specs from (empty = working tree)
}

// GitHubConfig holds settings from the [github] section.
type GitHubConfig struct {
	Repo    string        `toml:"repo,omitempty"`  // owner/name (empty = gh default)
	Timeout time.Duration `toml:"-"`               // Timeout for each gh call
	Limit   int           `toml:"limit,omitempty"` // Max PRs per listing
}

// StatsConfig holds settings from the [stats] section.
type StatsConfig struct {
	StaleDays int `toml:"stale_days,omitempty"`
}

// LogConfig holds logging settings from the [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // debug, info, warn, error
}

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Chain: ChainConfig{
			Label:      DefaultLabel,
			SpecDir:    DefaultSpecDir,
			BaseBranch: DefaultBaseBranch,
		},
		GitHub: GitHubConfig{
			Timeout: DefaultGitHubTimeout,
			Limit:   DefaultGitHubLimit,
		},
		Stats: StatsConfig{
			StaleDays: DefaultStaleDays,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// LoadConfigOptions controls which config sources are loaded.
type LoadConfigOptions struct {
	IgnoreGlobal bool
	IgnoreRepo   bool
}

// ProjectConfig is the per-project configuration.
// Fields are ordered to minimize memory padding.
type ProjectConfig struct {
	Reviewers  []Reviewer `yaml:"reviewers,omitempty" json:"reviewers,omitempty"`
	BaseBranch string     `yaml:"baseBranch,omitempty" json:"baseBranch,omitempty"`
	MaxOpenPRs int        `yaml:"maxOpenPRs,omitempty" json:"maxOpenPRs,omitempty"` // Project-wide limit without reviewers
}

// HasReviewers reports whether reviewer capacity applies.
func (c *ProjectConfig) HasReviewers() bool {
	return len(c.Reviewers) > 0
}

// ProjectLimit returns the project-wide open PR limit.
func (c *ProjectConfig) ProjectLimit() int {
	if c.MaxOpenPRs <= 0 {
		return DefaultProjectLimit
	}
	return c.MaxOpenPRs
}

// ResolveBaseBranch returns the project's base branch, or fallback.
func (c *ProjectConfig) ResolveBaseBranch(fallback string) string {
	if c.BaseBranch != "" {
		return c.BaseBranch
	}
	return fallback
}

// Validate checks the reviewer list and limits.
func (c *ProjectConfig) Validate() error {
	if c.MaxOpenPRs < 0 {
		return ErrInvalidProjectLimit
	}
	seen := make(map[string]bool, len(c.Reviewers))
	for i, r := range c.Reviewers {
		if strings.TrimSpace(r.Username) == "" {
			return fmt.Errorf("%w: reviewers[%d] has no username", ErrInvalidReviewer, i)
		}
		if r.MaxOpenPRs < 0 {
			return fmt.Errorf("%w: %s has negative maxOpenPRs", ErrInvalidReviewer, r.Username)
		}
		if seen[r.Username] {
			return fmt.Errorf("%w: %s", ErrDuplicateReviewer, r.Username)
		}
		seen[r.Username] = true
	}
	return nil
}

// ValidateProjectName checks that a project name can be encoded in a branch
// name and used as a directory.
func ValidateProjectName(name string) error {
	if name == "" || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidProjectName, name)
	}
	if strings.ContainsAny(name, "/\\ \t\n~^:?*[") {
		return fmt.Errorf("%w: %q", ErrInvalidProjectName, name)
	}
	return nil
}

// templateData holds all data for rendering the config template.
type templateData struct {
	Label      string
	SpecDir    string
	BaseBranch string
	Timeout    string
	LogLevel   string
	Limit      int
	StaleDays  int
}

// RenderConfigTemplate renders a commented config file from the given Config.
func RenderConfigTemplate(cfg *Config) string {
	data := templateData{
		Label:      cfg.Chain.Label,
		SpecDir:    cfg.Chain.SpecDir,
		BaseBranch: cfg.Chain.BaseBranch,
		Timeout:    cfg.GitHub.Timeout.String(),
		Limit:      cfg.GitHub.Limit,
		StaleDays:  cfg.Stats.StaleDays,
		LogLevel:   cfg.Log.Level,
	}

	tmpl, err := template.New("config").Delims("<<", ">>").Parse(configTemplateContent)
	if err != nil {
		// Should never happen with embedded template
		panic(fmt.Sprintf("failed to parse config template: %v", err))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		panic(fmt.Sprintf("failed to execute config template: %v", err))
	}
	return buf.String()
}
