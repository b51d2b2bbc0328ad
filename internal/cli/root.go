// Package cli provides the command-line interface for git-chain.
package cli

import (
	"fmt"

	"github.com/runoshun/git-chain/internal/app"
	"github.com/spf13/cobra"
)

// Command group IDs.
const (
	groupSetup   = "setup"
	groupProject = "project"
	groupReport  = "report"
)

// NewRootCommand creates the root command for git-chain.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "chain",
		Short: "Spec-driven task chaining over pull requests",
		Long: `git-chain drives a project one pull request at a time.

Each project keeps a markdown checklist (chain/<project>/spec.md). Every
checklist item is a task; its branch is chain-<project>-<hash>, where hash
is derived from the item text. git-chain reconciles the checklist with the
open and merged PRs carrying the chain label, decides whether reviewers
have capacity for another PR, and picks the next pending task.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Template output must work even with broken config files
			if cmd.Name() == "template" {
				return nil
			}

			// Skip if container is nil (e.g. in tests)
			if c == nil || c.ConfigLoader == nil {
				return nil
			}

			cfg, err := c.ConfigLoader.Load()
			if err != nil {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v (using defaults)\n", err)
				return nil
			}

			for _, w := range cfg.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
	}

	// Define command groups
	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: groupProject, Title: "Project Commands:"},
		&cobra.Group{ID: groupReport, Title: "Reporting:"},
	)

	// Setup commands
	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	logsCmd := newLogsCommand(c)
	logsCmd.GroupID = groupSetup

	// Project commands
	nextCmd := newNextCommand(c)
	nextCmd.GroupID = groupProject

	statusCmd := newStatusCommand(c)
	statusCmd.GroupID = groupProject

	completeCmd := newCompleteCommand(c)
	completeCmd.GroupID = groupProject

	orphansCmd := newOrphansCommand(c)
	orphansCmd.GroupID = groupProject

	branchCmd := newBranchCommand(c)
	branchCmd.GroupID = groupProject

	// Reporting commands
	projectsCmd := newProjectsCommand(c)
	projectsCmd.GroupID = groupReport

	statsCmd := newStatsCommand(c)
	statsCmd.GroupID = groupReport

	dashboardCmd := newDashboardCommand(c)
	dashboardCmd.GroupID = groupReport

	// Add subcommands
	root.AddCommand(
		configCmd,
		logsCmd,
		nextCmd,
		statusCmd,
		completeCmd,
		orphansCmd,
		branchCmd,
		projectsCmd,
		statsCmd,
		dashboardCmd,
	)

	return root
}
