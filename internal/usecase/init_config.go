package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/git-chain/internal/domain"
)

// InitConfigInput selects which chain config file to write.
type InitConfigInput struct {
	Config *domain.Config // Values rendered into the template; nil renders the defaults
	Global bool           // Write the per-user file instead of <toplevel>/chain/config.toml
}

// InitConfigOutput reports the written file.
type InitConfigOutput struct {
	Path  string
	Scope string // "repo" or "global"
}

// InitConfig writes the commented chain config template so the PR label,
// spec directory and gh settings can be edited in place.
// An existing file is never overwritten.
type InitConfig struct {
	configs domain.ConfigManager
}

// NewInitConfig creates a new InitConfig use case.
func NewInitConfig(configs domain.ConfigManager) *InitConfig {
	return &InitConfig{configs: configs}
}

// Execute renders the template into the selected file.
func (uc *InitConfig) Execute(_ context.Context, in InitConfigInput) (*InitConfigOutput, error) {
	cfg := in.Config
	if cfg == nil {
		cfg = domain.NewDefaultConfig()
	}

	scope, info, write := "repo", uc.configs.GetRepoConfigInfo(), uc.configs.InitRepoConfig
	if in.Global {
		scope, info, write = "global", uc.configs.GetGlobalConfigInfo(), uc.configs.InitGlobalConfig
	}

	if info.Exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrConfigExists, info.Path)
	}
	if err := write(cfg); err != nil {
		return nil, fmt.Errorf("write %s config %s: %w", scope, info.Path, err)
	}
	return &InitConfigOutput{Path: info.Path, Scope: scope}, nil
}
