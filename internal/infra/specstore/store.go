// Package specstore reads project spec documents and configuration from a git
// repository, either from the working tree or from any committed ref.
package specstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	"gopkg.in/yaml.v3"

	"github.com/runoshun/git-chain/internal/domain"
)

// Store implements domain.SpecSource, domain.SpecWriter and domain.ProjectConfigLoader.
//
// Layout, relative to the repository root:
//
//	<specDir>/
//	  <project>/
//	    spec.md            → checklist of tasks
//	    configuration.yml  → reviewers and limits (optional)
type Store struct {
	repo     *git.Repository
	repoRoot string // path to the working tree
	specDir  string // e.g., "chain"
}

// Ensure Store implements the ports.
var (
	_ domain.SpecSource          = (*Store)(nil)
	_ domain.SpecWriter          = (*Store)(nil)
	_ domain.ProjectConfigLoader = (*Store)(nil)
)

// New opens the repository at repoRoot.
func New(repoRoot, specDir string) (*Store, error) {
	repo, err := git.PlainOpenWithOptions(repoRoot, &git.PlainOpenOptions{EnableDotGitCommonDir: true})
	if err != nil {
		return nil, fmt.Errorf("open git repository: %w", err)
	}
	return NewWithRepo(repo, repoRoot, specDir), nil
}

// NewWithRepo creates a Store with an existing repository instance.
func NewWithRepo(repo *git.Repository, repoRoot, specDir string) *Store {
	if specDir == "" {
		specDir = domain.DefaultSpecDir
	}
	return &Store{
		repo:     repo,
		repoRoot: repoRoot,
		specDir:  specDir,
	}
}

// ReadSpec returns the spec document of a project at ref.
// An empty ref reads the working tree.
func (s *Store) ReadSpec(ctx context.Context, project, ref string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := domain.ValidateProjectName(project); err != nil {
		return "", err
	}

	path := domain.SpecPath(s.specDir, project)
	data, err := s.readFile(ref, path)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", domain.ErrSpecNotFound, path)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ListProjects returns every project with a spec document at ref, sorted by name.
// A missing spec directory yields no projects.
func (s *Store) ListProjects(ctx context.Context, ref string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var projects []string
	var err error
	if ref == "" {
		projects, err = s.listWorkingTree()
	} else {
		projects, err = s.listAtRef(ref)
	}
	if err != nil {
		return nil, err
	}

	sort.Strings(projects)
	return projects, nil
}

// WriteSpec replaces the working-tree spec document of a project.
func (s *Store) WriteSpec(ctx context.Context, project, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := domain.ValidateProjectName(project); err != nil {
		return err
	}

	path := s.workingPath(domain.SpecPath(s.specDir, project))
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", domain.ErrSpecNotFound, path)
		}
		return err
	}
	// #nosec G306 - spec documents are regular tracked files
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write spec: %w", err)
	}
	return nil
}

// LoadProject returns the configuration of a project at ref.
// A missing configuration file yields an empty config.
func (s *Store) LoadProject(ctx context.Context, project, ref string) (*domain.ProjectConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := domain.ValidateProjectName(project); err != nil {
		return nil, err
	}

	path := domain.ProjectConfigPath(s.specDir, project)
	data, err := s.readFile(ref, path)
	if errors.Is(err, os.ErrNotExist) {
		return &domain.ProjectConfig{}, nil
	}
	if err != nil {
		return nil, err
	}

	var cfg domain.ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", domain.ErrConfiguration, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// readFile reads a repository-relative slash path from the working tree or ref.
// Missing files are reported as os.ErrNotExist.
func (s *Store) readFile(ref, relPath string) ([]byte, error) {
	if ref == "" {
		return os.ReadFile(s.workingPath(relPath))
	}

	tree, err := s.treeAt(ref)
	if err != nil {
		return nil, err
	}
	file, err := tree.File(relPath)
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) || errors.Is(err, object.ErrDirectoryNotFound) {
			return nil, os.ErrNotExist
		}
		return nil, fmt.Errorf("find %s at %s: %w", relPath, ref, err)
	}
	contents, err := file.Contents()
	if err != nil {
		return nil, fmt.Errorf("read %s at %s: %w", relPath, ref, err)
	}
	return []byte(contents), nil
}

// treeAt resolves ref to the root tree of its commit.
func (s *Store) treeAt(ref string) (*object.Tree, error) {
	hash, err := s.repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return nil, fmt.Errorf("%w: git ref %q: %v", domain.ErrNotFound, ref, err)
	}
	commit, err := s.repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("get commit %s: %w", hash, err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("get tree %s: %w", hash, err)
	}
	return tree, nil
}

func (s *Store) listWorkingTree() ([]string, error) {
	entries, err := os.ReadDir(s.workingPath(s.specDir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read spec directory: %w", err)
	}

	var projects []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		spec := s.workingPath(domain.SpecPath(s.specDir, entry.Name()))
		if info, err := os.Stat(spec); err == nil && info.Mode().IsRegular() {
			projects = append(projects, entry.Name())
		}
	}
	return projects, nil
}

func (s *Store) listAtRef(ref string) ([]string, error) {
	root, err := s.treeAt(ref)
	if err != nil {
		return nil, err
	}
	dir, err := root.Tree(filepath.ToSlash(s.specDir))
	if err != nil {
		if errors.Is(err, object.ErrDirectoryNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find %s at %s: %w", s.specDir, ref, err)
	}

	var projects []string
	for _, entry := range dir.Entries {
		if entry.Mode != filemode.Dir {
			continue
		}
		sub, err := dir.Tree(entry.Name)
		if err != nil {
			continue
		}
		if _, err := sub.File(domain.SpecFileName); err == nil {
			projects = append(projects, entry.Name)
		}
	}
	return projects, nil
}

func (s *Store) workingPath(relPath string) string {
	return filepath.Join(s.repoRoot, filepath.FromSlash(relPath))
}
