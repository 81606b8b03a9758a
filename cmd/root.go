package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"cli-grid/internal/config"
	"cli-grid/internal/locale"
	"cli-grid/internal/logger"
	"cli-grid/internal/source"
	"cli-grid/internal/ui"
)

var (
	logLevel   string
	localeCode string

	rootCmd = &cobra.Command{
		Use:   "cli-grid",
		Short: "Paginated data grid for the terminal",
		Long: `cli-grid shows CSV files, JSON arrays and PostgreSQL queries as a
searchable, sortable, paginated grid.

Run without arguments to pick one of the saved sources, or use
"cli-grid view" to open a file or query directly.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogging()
		},
		SilenceUsage: true,
		RunE:         runRoot,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error) - overrides config file")
	rootCmd.PersistentFlags().StringVar(&localeCode, "locale", "",
		"interface language (ar, en) - overrides config file")
}

// Execute runs the root command
func Execute() {
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func configureLogging() {
	effectiveLogLevel := "warn"

	cfg, err := config.Load()
	if err == nil && cfg.LogLevel != "" {
		effectiveLogLevel = cfg.LogLevel
	}

	if logLevel != "" {
		effectiveLogLevel = logLevel
	}

	logger.SetLevel(effectiveLogLevel)
}

// resolveStrings picks the interface language: flag, then config, then Arabic.
func resolveStrings(cfg *config.Config) locale.Strings {
	if localeCode != "" {
		return locale.For(localeCode)
	}
	if cfg != nil {
		return locale.For(cfg.Locale)
	}
	return locale.Arabic
}

// logToFile moves logging off the terminal while a full-screen program runs.
func logToFile() {
	dir, err := config.Dir()
	if err != nil {
		return
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return
	}
	if path, err := config.LogPath(); err == nil {
		logger.SetOutput(path)
	}
}

func runRoot(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if len(cfg.Sources) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No saved sources. Add one with \"cli-grid source add\" or open a file with \"cli-grid view --csv FILE\".")
		return nil
	}

	logToFile()

	p := tea.NewProgram(ui.NewPickerModel(cfg), tea.WithAltScreen())
	result, err := p.Run()
	if err != nil {
		return err
	}
	pm, ok := result.(ui.PickerModel)
	if !ok || !pm.Done {
		return nil
	}
	if pm.NewSource {
		return runSourceAdd(cmd, nil)
	}

	src, err := source.FromSaved(pm.Chosen)
	if err != nil {
		return err
	}
	opts := sourceOptions{source: pm.Chosen.Name}
	layout, err := opts.loadLayout(cfg)
	if err != nil {
		return err
	}
	return runApp(src, layout, cfg, opts, tableOptions{})
}
