package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/git-chain/internal/app"
	"github.com/runoshun/git-chain/internal/tui"
	"github.com/spf13/cobra"
)

// launchDashboardFunc is a function variable for launching the dashboard, allowing it to be mocked in tests.
var launchDashboardFunc = launchDashboard

// newDashboardCommand creates the dashboard command.
func newDashboardCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Launch the interactive statistics dashboard",
		Long: `Launch an interactive view of the statistics report.

Keys:
  enter  show the tasks of the selected project
  esc    back to projects
  r      refresh
  q      quit`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchDashboardFunc(c)
		},
	}
	return cmd
}

// launchDashboard runs the bubbletea program until the user quits.
func launchDashboard(c *app.Container) error {
	p := tea.NewProgram(tui.New(c), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
