package cli

import (
	"fmt"

	"github.com/runoshun/git-chain/internal/app"
	"github.com/runoshun/git-chain/internal/usecase"
	"github.com/spf13/cobra"
)

// newLogsCommand creates the logs command.
func newLogsCommand(c *app.Container) *cobra.Command {
	var lines int

	cmd := &cobra.Command{
		Use:   "logs [project]",
		Short: "Show git-chain logs",
		Long: `Show the global log, or the log of a project.

Logs are written to .git/chain/logs/.

Examples:
  chain logs
  chain logs widgets -n 20`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := usecase.ShowLogsInput{Lines: lines}
			if len(args) == 1 {
				in.Project = args[0]
			}

			out, err := c.ShowLogsUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), out.Content)
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 0, "Number of lines to show from the end (0 = all)")
	return cmd
}
