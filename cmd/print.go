package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"cli-grid/internal/app"
	"cli-grid/internal/config"
	"cli-grid/internal/export"
	"cli-grid/internal/grid"
	"cli-grid/internal/locale"
	"cli-grid/internal/logger"
)

const loadTimeout = 2 * time.Minute

var (
	printSource sourceOptions
	printTable  tableOptions
)

var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Print one page of a source",
	Long: `Print one page of a source as a table, followed by the row summary and
the page window.

Examples:
  # Third page of a CSV file
  cli-grid print --csv users.csv --page 3

  # Active users sorted by email, descending
  cli-grid print --json users.json --filter status=active --sort -email`,
	Args: cobra.NoArgs,
	RunE: runPrint,
}

func init() {
	rootCmd.AddCommand(printCmd)
	addSourceFlags(printCmd, &printSource)
	addTableFlags(printCmd, &printTable)
}

func runPrint(cmd *cobra.Command, _ []string) error {
	tbl, s, _, err := loadTable(cmd.Context(), printSource, printTable)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), export.Plain(tbl, s))
	return nil
}

// loadTable loads the selected source synchronously and builds its table.
func loadTable(ctx context.Context, so sourceOptions, to tableOptions) (grid.Table, locale.Strings, string, error) {
	cfg, err := config.Load()
	if err != nil {
		return grid.Table{}, locale.Strings{}, "", err
	}
	s := resolveStrings(cfg)

	src, err := so.resolve(cfg)
	if err != nil {
		return grid.Table{}, s, "", err
	}
	layout, err := so.loadLayout(cfg)
	if err != nil {
		return grid.Table{}, s, "", err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, loadTimeout)
	defer cancel()

	ds, err := src.Load(ctx)
	if err != nil {
		return grid.Table{}, s, "", fmt.Errorf("load %s: %w", src.Describe(), err)
	}
	logger.Log.Debugw("source loaded", "source", src.Describe(), "rows", len(ds.Records), "elapsed", ds.LoadTime)

	tbl, err := app.BuildTable(ds, layout, so.effectivePageSize(layout, cfg), so.searchKey)
	if err != nil {
		return grid.Table{}, s, "", err
	}
	tbl, err = to.apply(tbl)
	if err != nil {
		return grid.Table{}, s, "", err
	}
	return tbl, s, src.Describe(), nil
}
