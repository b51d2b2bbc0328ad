package domain

import (
	"path/filepath"
	"regexp"
)

// BranchPrefix is the fixed literal every task branch starts with.
const BranchPrefix = "chain"

// BranchDescriptor links a branch (and its PR) back to a task.
type BranchDescriptor struct {
	Project  string `json:"project"`
	TaskHash string `json:"taskHash"`
}

// BranchName returns the branch name for a task of a project.
// Format: chain-<project>-<taskHash>
func BranchName(project, taskHash string) string {
	return BranchPrefix + "-" + project + "-" + taskHash
}

// branchPattern anchors the hash on the right so that project names may
// contain hyphens: chain-<project>-<8 lowercase hex>
var branchPattern = regexp.MustCompile(`^` + BranchPrefix + `-(.+)-([0-9a-f]{8})$`)

// ParseBranch decodes a task branch name.
// Returns false for branches that do not follow the convention.
func ParseBranch(branch string) (BranchDescriptor, bool) {
	m := branchPattern.FindStringSubmatch(branch)
	if m == nil {
		return BranchDescriptor{}, false
	}
	return BranchDescriptor{Project: m[1], TaskHash: m[2]}, true
}

// ChainDir returns the private directory for logs under the .git directory.
func ChainDir(gitDir string) string {
	return filepath.Join(gitDir, "chain")
}

// GlobalLogPath returns the path to the global log file.
func GlobalLogPath(chainDir string) string {
	return filepath.Join(chainDir, "logs", "chain.log")
}

// ProjectLogPath returns the path to the log file of a project.
func ProjectLogPath(chainDir, project string) string {
	return filepath.Join(chainDir, "logs", "project-"+project+".log")
}

// ProjectDir returns the directory of a project relative to the repository root.
func ProjectDir(specDir, project string) string {
	return filepath.ToSlash(filepath.Join(specDir, project))
}

// SpecPath returns the spec document path of a project relative to the repository root.
func SpecPath(specDir, project string) string {
	return filepath.ToSlash(filepath.Join(specDir, project, SpecFileName))
}

// ProjectConfigPath returns the project configuration path relative to the repository root.
func ProjectConfigPath(specDir, project string) string {
	return filepath.ToSlash(filepath.Join(specDir, project, ProjectConfigFileName))
}

// RepoConfigPath returns the repository tool config path.
func RepoConfigPath(repoRoot, specDir string) string {
	return filepath.Join(repoRoot, specDir, ConfigFileName)
}

// GlobalConfigDir returns the global config directory for git-chain.
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, "git-chain")
}
