package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/runoshun/git-chain/internal/app"
	"github.com/runoshun/git-chain/internal/domain"
	"github.com/runoshun/git-chain/internal/usecase"
	"github.com/spf13/cobra"
)

var (
	statsTitleStyle     = lipgloss.NewStyle().Bold(true)
	statsHeaderStyle    = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	statsCellStyle      = lipgloss.NewStyle().Padding(0, 1)
	statsAttentionStyle = statsCellStyle.Foreground(lipgloss.Color("#F38BA8"))
)

// newStatsCommand creates the stats command.
func newStatsCommand(c *app.Container) *cobra.Command {
	var format string
	var staleDays int

	cmd := &cobra.Command{
		Use:   "stats [project...]",
		Short: "Show project and reviewer statistics",
		Long: `Show per-project progress, cost and staleness, and per-reviewer PR counts.

Without arguments every project is reported. Projects marked with "!" need
attention: a stale open PR, pending work with nothing in progress, or an
open orphaned PR.

Cost is read from "Total Cost" comments on merged PRs. If a lookup fails,
the project's cost is reported as 0 and a warning is logged.

Examples:
  chain stats
  chain stats widgets gadgets --stale-days 3
  chain stats --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			uc := c.CollectStatisticsUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.CollectStatisticsInput{
				Projects:  args,
				StaleDays: staleDays,
			})
			if err != nil {
				return err
			}

			if format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), out.Report)
			}
			printStats(cmd.OutOrStdout(), out.Report)
			return nil
		},
	}

	cmd.Flags().IntVar(&staleDays, "stale-days", 0, "Days after which an open PR is stale (default from config)")
	addFormatFlag(cmd, &format)
	return cmd
}

// printStats renders the report as two tables and a cost total.
func printStats(w io.Writer, report *domain.StatisticsReport) {
	_, _ = fmt.Fprintln(w, statsTitleStyle.Render(fmt.Sprintf(
		"Statistics at %s (stale after %d days)",
		report.GeneratedAt.Format("2006-01-02 15:04"),
		report.StaleDays,
	)))

	if len(report.Projects) == 0 {
		_, _ = fmt.Fprintln(w, "No projects found.")
		return
	}

	projects := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("", "PROJECT", "DONE", "IN PROGRESS", "PENDING", "STALE", "ORPHANS", "COST")
	for _, p := range report.Projects {
		mark := ""
		if p.NeedsAttention() {
			mark = "!"
		}
		if p.Error != "" {
			projects.Row(mark, p.Project, "-", "-", "-", "-", "-", "-")
			continue
		}
		projects.Row(
			mark,
			p.Project,
			fmt.Sprintf("%d/%d (%.0f%%)", p.Completed, p.Total, p.CompletionPercent()),
			strconv.Itoa(p.InProgress),
			strconv.Itoa(p.Pending),
			strconv.Itoa(p.StaleOpenPRs),
			strconv.Itoa(p.OpenOrphans),
			formatCost(p.CostUSD),
		)
	}
	projects.StyleFunc(func(row, _ int) lipgloss.Style {
		if row == table.HeaderRow {
			return statsHeaderStyle
		}
		if row >= 0 && row < len(report.Projects) && report.Projects[row].NeedsAttention() {
			return statsAttentionStyle
		}
		return statsCellStyle
	})
	_, _ = fmt.Fprintln(w, projects.String())

	for _, p := range report.Projects {
		if p.Error != "" {
			_, _ = fmt.Fprintf(w, "%s: %s\n", p.Project, p.Error)
		}
	}

	if len(report.Reviewers) > 0 {
		reviewers := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("REVIEWER", "OPEN", "MERGED")
		for _, r := range report.Reviewers {
			reviewers.Row(r.Username, strconv.Itoa(r.Open), strconv.Itoa(r.Merged))
		}
		reviewers.StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return statsHeaderStyle
			}
			return statsCellStyle
		})
		_, _ = fmt.Fprintln(w, reviewers.String())
	}

	_, _ = fmt.Fprintf(w, "Total cost: %s\n", formatCost(report.TotalCost()))
}

func formatCost(usd float64) string {
	return fmt.Sprintf("$%.2f", usd)
}
