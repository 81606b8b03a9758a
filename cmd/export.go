package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"cli-grid/internal/export"
	"cli-grid/internal/logger"
)

var (
	exportSource sourceOptions
	exportTable  tableOptions
	exportOut    string
	exportTitle  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export one page of a source as HTML",
	Long: `Export one page of a source as a standalone HTML document with a
pagination bar. Page links use ?page=N.

Examples:
  cli-grid export --csv users.csv --page 2 --out users.html`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	addSourceFlags(exportCmd, &exportSource)
	addTableFlags(exportCmd, &exportTable)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
	exportCmd.Flags().StringVar(&exportTitle, "title", "", "document title (default the source)")
}

func runExport(cmd *cobra.Command, _ []string) error {
	tbl, s, desc, err := loadTable(cmd.Context(), exportSource, exportTable)
	if err != nil {
		return err
	}

	title := exportTitle
	if title == "" {
		title = desc
	}

	var w io.Writer = cmd.OutOrStdout()
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", exportOut, err)
		}
		defer f.Close()
		w = f
	}

	if err := export.HTML(w, tbl, s, title); err != nil {
		return err
	}
	if exportOut != "" {
		logger.Log.Infow("exported page", "file", exportOut, "page", tbl.PageIndex()+1)
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote page %d of %d to %s\n", tbl.PageIndex()+1, tbl.PageCount(), exportOut)
	}
	return nil
}
