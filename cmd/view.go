package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"cli-grid/internal/app"
	"cli-grid/internal/config"
	"cli-grid/internal/grid"
	"cli-grid/internal/logger"
	"cli-grid/internal/source"
)

var (
	viewSource sourceOptions
	viewTable  tableOptions
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Open a source in the interactive grid",
	Long: `Open a CSV file, JSON file, PostgreSQL query or saved source in the
interactive grid.

Examples:
  # Browse a CSV file
  cli-grid view --csv users.csv

  # Browse a query with a column layout
  cli-grid view --pg postgres://app@localhost/shop --query "SELECT * FROM orders" --layout orders.yaml

  # Open a saved source sorted by newest first
  cli-grid view --source orders --sort -created_at`,
	Args: cobra.NoArgs,
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
	addSourceFlags(viewCmd, &viewSource)
	addTableFlags(viewCmd, &viewTable)
}

func runView(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	src, err := viewSource.resolve(cfg)
	if err != nil {
		return err
	}
	layout, err := viewSource.loadLayout(cfg)
	if err != nil {
		return err
	}
	return runApp(src, layout, cfg, viewSource, viewTable)
}

func runApp(src source.Source, layout *grid.Layout, cfg *config.Config, so sourceOptions, to tableOptions) error {
	logToFile()
	logger.Log.Infow("opening grid", "source", src.Describe())

	model := app.NewModel(app.Options{
		Source:    src,
		Layout:    layout,
		PageSize:  so.effectivePageSize(layout, cfg),
		SearchKey: so.searchKey,
		Strings:   resolveStrings(cfg),
		Prepare: func(t grid.Table) grid.Table {
			prepared, err := to.apply(t)
			if err != nil {
				logger.Log.Warnw("ignoring initial grid options", "error", err)
				return t
			}
			return prepared
		},
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
