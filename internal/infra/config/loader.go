// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/git-chain/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	repoRoot      string // Path to repository root
	globalConfDir string // Path to global config directory (e.g., ~/.config/git-chain)
}

// NewLoader creates a new Loader.
func NewLoader(repoRoot string) *Loader {
	return &Loader{
		repoRoot:      repoRoot,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(repoRoot, globalConfDir string) *Loader {
	return &Loader{
		repoRoot:      repoRoot,
		globalConfDir: globalConfDir,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// repoConfigPath returns the repository config path.
// It always lives under the default spec directory so spec_dir can be configured in it.
func (l *Loader) repoConfigPath() string {
	return domain.RepoConfigPath(l.repoRoot, domain.DefaultSpecDir)
}

// Load returns the merged configuration (repo + global).
// Repository config takes precedence over global config.
func (l *Loader) Load() (*domain.Config, error) {
	return l.LoadWithOptions(domain.LoadConfigOptions{})
}

// LoadGlobal returns only the global configuration.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(filepath.Join(l.globalConfDir, domain.ConfigFileName))
}

// LoadRepo returns only the repository configuration.
func (l *Loader) LoadRepo() (*domain.Config, error) {
	return l.loadFile(l.repoConfigPath())
}

// LoadWithOptions returns the merged configuration with options to ignore sources.
func (l *Loader) LoadWithOptions(opts domain.LoadConfigOptions) (*domain.Config, error) {
	var global, repo *domain.Config
	var err error

	// Load global config unless ignored
	if !opts.IgnoreGlobal {
		global, err = l.LoadGlobal()
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	// Load repo config unless ignored
	if !opts.IgnoreRepo {
		repo, err = l.LoadRepo()
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	// Merge: default <- global <- repo (later takes precedence)
	base := domain.NewDefaultConfig()
	if global != nil {
		base = mergeConfigs(base, global)
	}
	if repo != nil {
		base = mergeConfigs(base, repo)
	}
	return base, nil
}

// loadFile loads a configuration from a file.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", domain.ErrConfiguration, path, err)
	}

	return convertRawToDomainConfig(raw), nil
}

// convertRawToDomainConfig converts the raw map to domain config and collects warnings.
func convertRawToDomainConfig(raw map[string]any) *domain.Config {
	res := &domain.Config{}
	var warnings []string

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown key: %s", section))
			continue
		}
		switch section {
		case "chain":
			for k, v := range m {
				switch k {
				case "label":
					res.Chain.Label = stringValue(v)
				case "spec_dir":
					res.Chain.SpecDir = stringValue(v)
				case "base_branch":
					res.Chain.BaseBranch = stringValue(v)
				case "spec_ref":
					res.Chain.SpecRef = stringValue(v)
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [chain]: %s", k))
				}
			}
		case "github":
			for k, v := range m {
				switch k {
				case "repo":
					res.GitHub.Repo = stringValue(v)
				case "timeout":
					d, err := time.ParseDuration(stringValue(v))
					if err != nil || d <= 0 {
						warnings = append(warnings, fmt.Sprintf("invalid duration in [github].timeout: %v", v))
						continue
					}
					res.GitHub.Timeout = d
				case "limit":
					res.GitHub.Limit = intValue(v)
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [github]: %s", k))
				}
			}
		case "stats":
			for k, v := range m {
				switch k {
				case "stale_days":
					res.Stats.StaleDays = intValue(v)
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [stats]: %s", k))
				}
			}
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					res.Log.Level = stringValue(v)
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

func stringValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// intValue accepts the int64 that go-toml produces for integers.
func intValue(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	}
	return 0
}

// mergeConfigs merges two configs, with override taking precedence.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := &domain.Config{
		Chain:    base.Chain,
		GitHub:   base.GitHub,
		Stats:    base.Stats,
		Log:      base.Log,
		Warnings: append([]string{}, base.Warnings...),
	}

	// Add override warnings
	result.Warnings = append(result.Warnings, override.Warnings...)

	if override.Chain.Label != "" {
		result.Chain.Label = override.Chain.Label
	}
	if override.Chain.SpecDir != "" {
		result.Chain.SpecDir = override.Chain.SpecDir
	}
	if override.Chain.BaseBranch != "" {
		result.Chain.BaseBranch = override.Chain.BaseBranch
	}
	if override.Chain.SpecRef != "" {
		result.Chain.SpecRef = override.Chain.SpecRef
	}
	if override.GitHub.Repo != "" {
		result.GitHub.Repo = override.GitHub.Repo
	}
	if override.GitHub.Timeout > 0 {
		result.GitHub.Timeout = override.GitHub.Timeout
	}
	if override.GitHub.Limit > 0 {
		result.GitHub.Limit = override.GitHub.Limit
	}
	if override.Stats.StaleDays > 0 {
		result.Stats.StaleDays = override.Stats.StaleDays
	}
	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}

	return result
}
