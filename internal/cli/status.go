package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/runoshun/git-chain/internal/app"
	"github.com/runoshun/git-chain/internal/domain"
	"github.com/runoshun/git-chain/internal/usecase"
	"github.com/spf13/cobra"
)

// newStatusCommand creates the status command.
func newStatusCommand(c *app.Container) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "status <project>",
		Short: "Show task status of a project",
		Long: `Reconcile the project's spec with its PRs and show every task.

Output columns:
  ORD, HASH, STATUS, PR, TASK

Orphaned PRs (task branches whose hash no longer matches any task) are listed
after the tasks. Open orphans need attention.

Examples:
  chain status widgets
  chain status widgets --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			uc := c.ShowStatusUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ShowStatusInput{Project: args[0]})
			if err != nil {
				return err
			}

			if format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), out.Result)
			}
			printStatus(cmd.OutOrStdout(), out.Result)
			return nil
		},
	}

	addFormatFlag(cmd, &format)
	return cmd
}

// newOrphansCommand creates the orphans command.
func newOrphansCommand(c *app.Container) *cobra.Command {
	var format string
	var openOnly bool

	cmd := &cobra.Command{
		Use:   "orphans <project>",
		Short: "List orphaned PRs of a project",
		Long: `List PRs on task branches of the project whose hash matches no task.

This happens when a checklist item is edited or removed after its PR was
opened. Use --open to list only orphans that are still open.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			uc := c.ListOrphansUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ListOrphansInput{
				Project:  args[0],
				OpenOnly: openOnly,
			})
			if err != nil {
				return err
			}

			if format == formatJSON {
				orphans := out.Orphans
				if orphans == nil {
					orphans = []domain.PullRequest{}
				}
				return writeJSON(cmd.OutOrStdout(), orphans)
			}
			if len(out.Orphans) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No orphaned PRs.")
				return nil
			}
			printOrphans(cmd.OutOrStdout(), out.Orphans)
			return nil
		},
	}

	cmd.Flags().BoolVar(&openOnly, "open", false, "Only show open orphans")
	addFormatFlag(cmd, &format)
	return cmd
}

// printStatus prints the task table, a summary line and the orphans.
func printStatus(w io.Writer, result *domain.ReconciliationResult) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)

	_, _ = fmt.Fprintln(tw, "ORD\tHASH\tSTATUS\tPR\tTASK")
	for _, entry := range result.Tasks {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			entry.Task.Ordinal,
			entry.Task.Hash,
			entry.Status,
			prRef(entry.PR),
			entry.Task.Description,
		)
	}
	_ = tw.Flush()

	_, _ = fmt.Fprintf(w, "\n%d tasks: %d completed, %d in progress, %d pending\n",
		len(result.Tasks),
		result.Count(domain.TaskStatusCompleted),
		result.Count(domain.TaskStatusInProgress),
		result.Count(domain.TaskStatusPending),
	)

	if len(result.OrphanedPRs) > 0 {
		_, _ = fmt.Fprintln(w, "\nOrphaned PRs:")
		printOrphans(w, result.OrphanedPRs)
	}
}

// printOrphans prints orphaned PRs; open ones are flagged.
func printOrphans(w io.Writer, prs []domain.PullRequest) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	_, _ = fmt.Fprintln(tw, "PR\tSTATE\tBRANCH\tTITLE")
	for _, pr := range prs {
		state := "merged"
		if pr.IsOpen() {
			state = "open (needs attention)"
		}
		_, _ = fmt.Fprintf(tw, "#%d\t%s\t%s\t%s\n", pr.Number, state, pr.Branch, orDash(pr.Title))
	}
}

func prRef(pr *domain.PullRequest) string {
	if pr == nil {
		return "-"
	}
	return fmt.Sprintf("#%d", pr.Number)
}
