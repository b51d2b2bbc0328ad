package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/runoshun/git-chain/internal/app"
	"github.com/runoshun/git-chain/internal/usecase"
	"github.com/spf13/cobra"
)

// projectJSON is one entry of `chain projects --format json`.
type projectJSON struct {
	Name      string `json:"name"`
	Error     string `json:"error,omitempty"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
	Reviewers int    `json:"reviewers"`
}

// newProjectsCommand creates the projects command.
func newProjectsCommand(c *app.Container) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List projects",
		Long: `List every project found under the spec directory.

A project is a directory containing spec.md. Checked items are counted from
the document alone; PRs are not consulted. Projects whose spec or
configuration cannot be read are listed with the error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			out, err := c.ListProjectsUseCase().Execute(cmd.Context(), usecase.ListProjectsInput{})
			if err != nil {
				return err
			}

			if format == formatJSON {
				entries := make([]projectJSON, 0, len(out.Projects))
				for _, p := range out.Projects {
					e := projectJSON{Name: p.Name, Total: p.Total, Completed: p.Completed, Reviewers: p.Reviewers}
					if p.Err != nil {
						e.Error = p.Err.Error()
					}
					entries = append(entries, e)
				}
				return writeJSON(cmd.OutOrStdout(), entries)
			}

			if len(out.Projects) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No projects found.")
				return nil
			}
			printProjects(cmd.OutOrStdout(), out.Projects)
			return nil
		},
	}

	addFormatFlag(cmd, &format)
	return cmd
}

func printProjects(w io.Writer, projects []usecase.ProjectSummary) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	_, _ = fmt.Fprintln(tw, "PROJECT\tDONE\tREVIEWERS\tNOTE")
	for _, p := range projects {
		if p.Err != nil {
			_, _ = fmt.Fprintf(tw, "%s\t-\t-\t%v\n", p.Name, p.Err)
			continue
		}
		reviewers := "-"
		if p.Reviewers > 0 {
			reviewers = fmt.Sprintf("%d", p.Reviewers)
		}
		_, _ = fmt.Fprintf(tw, "%s\t%d/%d\t%s\t-\n", p.Name, p.Completed, p.Total, reviewers)
	}
}
