package cli

import (
	"fmt"

	"github.com/runoshun/git-chain/internal/app"
	"github.com/runoshun/git-chain/internal/usecase"
	"github.com/spf13/cobra"
)

// newCompleteCommand creates the complete command.
func newCompleteCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "complete <project> <hash>",
		Short: "Check off a task in the spec",
		Long: `Flip the checkbox of the task with the given hash to [x] in the
working-tree spec file. Every other byte of the file is preserved.
Completing an already checked task is a no-op.

Examples:
  chain complete widgets e8f45634`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := c.CompleteTaskUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.CompleteTaskInput{
				Project:  args[0],
				TaskHash: args[1],
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if !out.Changed {
				_, _ = fmt.Fprintf(w, "Task %s already complete: %s\n", out.Task.Hash, out.Task.Description)
				return nil
			}
			_, _ = fmt.Fprintf(w, "Completed task %s: %s\n", out.Task.Hash, out.Task.Description)
			return nil
		},
	}
	return cmd
}
