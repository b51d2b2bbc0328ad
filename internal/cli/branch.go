package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/runoshun/git-chain/internal/app"
	"github.com/runoshun/git-chain/internal/usecase"
	"github.com/spf13/cobra"
)

// newBranchCommand creates the branch command.
func newBranchCommand(c *app.Container) *cobra.Command {
	var decode bool

	cmd := &cobra.Command{
		Use:   "branch <project> <description> | --decode [branch]",
		Short: "Encode or decode task branch names",
		Long: `Print the branch name of a task, or decode a branch name.

Without --decode, the arguments are a project and the task description
(remaining arguments are joined with spaces).
With --decode, the argument is a branch name; without one, the current
branch is decoded.

Examples:
  chain branch widgets "Add X"
  chain branch --decode chain-widgets-e8f45634
  chain branch --decode`,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			if decode {
				if len(args) > 1 {
					return errors.New("--decode accepts at most one branch")
				}
				in := usecase.DecodeBranchInput{}
				if len(args) == 1 {
					in.Branch = args[0]
				}
				out, err := c.DecodeBranchUseCase().Execute(cmd.Context(), in)
				if err != nil {
					return err
				}
				if !out.IsTask {
					return fmt.Errorf("%s is not a task branch", out.Branch)
				}
				_, _ = fmt.Fprintf(w, "project: %s\nhash:    %s\n", out.Descriptor.Project, out.Descriptor.TaskHash)
				return nil
			}

			if len(args) < 2 {
				return errors.New("requires a project and a task description")
			}
			out, err := c.EncodeBranchUseCase().Execute(cmd.Context(), usecase.EncodeBranchInput{
				Project:     args[0],
				Description: strings.Join(args[1:], " "),
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(w, out.Branch)
			return nil
		},
	}

	cmd.Flags().BoolVar(&decode, "decode", false, "Decode a branch name instead")
	return cmd
}
