// Package main is the entry point for the git-chain CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/runoshun/git-chain/internal/app"
	"github.com/runoshun/git-chain/internal/cli"
	"github.com/runoshun/git-chain/internal/domain"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	container, err := app.New(cwd)
	if err != nil {
		// Allow running without git repo for help/version and pure helpers
		if errors.Is(err, domain.ErrNotGitRepository) {
			return runWithoutContainer(err)
		}
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer func() { _ = container.Close() }()

	rootCmd := cli.NewRootCommand(container, version)
	return rootCmd.Execute()
}

// runWithoutContainer handles cases where git repo is not found.
// Help, version, branch encoding and the config template work without a repository.
func runWithoutContainer(gitErr error) error {
	if !canRunWithoutGit(os.Args[1:]) {
		return gitErr
	}
	return cli.NewRootCommand(nil, version).Execute()
}

func canRunWithoutGit(args []string) bool {
	if len(args) == 0 {
		return true
	}
	for _, arg := range args {
		switch arg {
		case "--version", "-v", "--help", "-h":
			return true
		case "--decode":
			return false
		}
	}
	switch args[0] {
	case "help", "branch":
		return true
	case "config":
		return len(args) > 1 && args[1] == "template"
	}
	return false
}
