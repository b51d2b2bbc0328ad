package cli

import (
	"fmt"
	"io"

	"github.com/runoshun/git-chain/internal/app"
	"github.com/runoshun/git-chain/internal/domain"
	"github.com/runoshun/git-chain/internal/usecase"
	"github.com/spf13/cobra"
)

// nextJSON is the machine-readable result of `chain next`.
type nextJSON struct {
	Task       *domain.Task  `json:"task"`
	Admission  admissionJSON `json:"admission"`
	Project    string        `json:"project"`
	Branch     string        `json:"branch,omitempty"`
	BaseBranch string        `json:"baseBranch,omitempty"`
	Reviewer   string        `json:"reviewer,omitempty"`
	Reason     string        `json:"reason,omitempty"`
	Selected   bool          `json:"selected"`
}

type admissionJSON struct {
	OpenByReviewer map[string]int `json:"openByReviewer,omitempty"`
	Result         string         `json:"result"`
	OpenPRs        int            `json:"openPrs"`
	Limit          int            `json:"limit,omitempty"`
}

// newNextCommand creates the next command.
func newNextCommand(c *app.Container) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "next <project>",
		Short: "Select the next task to start",
		Long: `Reconcile the project with its PRs and select the next pending task.

A task is only selected when there is capacity: with reviewers configured,
the first reviewer (in configured order) below their maxOpenPRs is assigned;
without reviewers, the project-wide maxOpenPRs limit (default 1) applies.

When nothing is selected, the reason is one of:
  no capacity, all tasks complete, no pending tasks

Examples:
  chain next widgets
  chain next widgets --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			uc := c.SelectNextTaskUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.SelectNextTaskInput{Project: args[0]})
			if err != nil {
				return err
			}

			if format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), toNextJSON(args[0], out))
			}
			printNext(cmd.OutOrStdout(), out)
			return nil
		},
	}

	addFormatFlag(cmd, &format)
	return cmd
}

func toNextJSON(project string, out *usecase.SelectNextTaskOutput) nextJSON {
	return nextJSON{
		Task: out.Task,
		Admission: admissionJSON{
			OpenByReviewer: out.Admission.OpenByReviewer,
			Result:         out.Admission.Result.String(),
			OpenPRs:        out.Admission.OpenPRs,
			Limit:          out.Admission.Limit,
		},
		Project:    project,
		Branch:     out.Branch,
		BaseBranch: out.BaseBranch,
		Reviewer:   out.Reviewer,
		Reason:     out.Reason,
		Selected:   out.Selected(),
	}
}

func printNext(w io.Writer, out *usecase.SelectNextTaskOutput) {
	if !out.Selected() {
		_, _ = fmt.Fprintf(w, "No task selected: %s\n", out.Reason)
		return
	}
	_, _ = fmt.Fprintf(w, "Task:     %s %s (#%d)\n", out.Task.Hash, out.Task.Description, out.Task.Ordinal)
	_, _ = fmt.Fprintf(w, "Branch:   %s\n", out.Branch)
	_, _ = fmt.Fprintf(w, "Base:     %s\n", out.BaseBranch)
	_, _ = fmt.Fprintf(w, "Reviewer: %s\n", orDash(out.Reviewer))
}
