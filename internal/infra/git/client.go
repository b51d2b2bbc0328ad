// Package git locates the repository and answers branch queries.
package git

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/runoshun/git-chain/internal/domain"
)

// Client runs git through a command executor.
type Client struct {
	exec       domain.CommandExecutor
	repoRoot   string // Parent of the common .git directory
	gitDir     string // Common .git directory, shared by linked checkouts
	workingDir string // Toplevel of the checkout the command was started in
}

// NewClient locates the repository containing dir.
// Returns domain.ErrNotGitRepository when dir is outside any repository.
func NewClient(exec domain.CommandExecutor, dir string) (*Client, error) {
	c := &Client{exec: exec}
	lines, err := c.revParse(context.Background(), dir, "--git-common-dir", "--show-toplevel")
	if err != nil {
		return nil, domain.ErrNotGitRepository
	}
	if len(lines) != 2 {
		return nil, fmt.Errorf("unexpected rev-parse output: %q", strings.Join(lines, "\n"))
	}

	gitDir := lines[0]
	if !filepath.IsAbs(gitDir) {
		gitDir = filepath.Join(dir, gitDir)
	}
	c.gitDir = filepath.Clean(gitDir)
	c.repoRoot = filepath.Dir(c.gitDir)
	c.workingDir = lines[1]
	return c, nil
}

// RepoRoot returns the repository root directory.
func (c *Client) RepoRoot() string {
	return c.repoRoot
}

// GitDir returns the common .git directory. Chain logs live below it.
func (c *Client) GitDir() string {
	return c.gitDir
}

// WorkingDir returns the toplevel of the current checkout.
// Spec documents and repo config are read here.
func (c *Client) WorkingDir() string {
	return c.workingDir
}

// CurrentBranch returns the checked-out branch of the working directory.
func (c *Client) CurrentBranch(ctx context.Context) (string, error) {
	lines, err := c.revParse(ctx, c.workingDir, "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}
	if len(lines) == 0 || lines[0] == "HEAD" {
		return "", domain.ErrDetachedHead
	}
	return lines[0], nil
}

func (c *Client) revParse(ctx context.Context, dir string, args ...string) ([]string, error) {
	out, err := c.exec.Output(ctx, domain.NewCommand("git", append([]string{"rev-parse"}, args...), dir))
	if err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(string(out))
	if trimmed == "" {
		return nil, errors.New("git rev-parse: empty output")
	}
	return strings.Split(trimmed, "\n"), nil
}

// Ensure Client implements domain.Git interface.
var _ domain.Git = (*Client)(nil)
