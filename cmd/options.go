package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cli-grid/internal/config"
	"cli-grid/internal/grid"
	"cli-grid/internal/source"
)

var (
	errNoSource        = errors.New("no source given: use --csv, --json, --pg or --source")
	errMultipleSources = errors.New("only one of --csv, --json, --pg and --source may be given")
	errMissingQuery    = errors.New("--pg needs --query")
)

// sourceOptions are the flags that select what to load.
type sourceOptions struct {
	csv       string
	json      string
	pg        string
	query     string
	source    string
	layout    string
	pageSize  int
	searchKey string
}

func addSourceFlags(cmd *cobra.Command, o *sourceOptions) {
	cmd.Flags().StringVar(&o.csv, "csv", "", "CSV file with a header row")
	cmd.Flags().StringVar(&o.json, "json", "", "JSON file holding an array of objects")
	cmd.Flags().StringVar(&o.pg, "pg", "", "PostgreSQL connection URI")
	cmd.Flags().StringVar(&o.query, "query", "", "SELECT query to run with --pg")
	cmd.Flags().StringVar(&o.source, "source", "", "name of a saved source")
	cmd.Flags().StringVar(&o.layout, "layout", "", "YAML column layout file")
	cmd.Flags().IntVar(&o.pageSize, "page-size", 0, "rows per page")
	cmd.Flags().StringVar(&o.searchKey, "search-key", "", "column the search box filters on")
}

// resolve returns the source the flags select.
func (o sourceOptions) resolve(cfg *config.Config) (source.Source, error) {
	given := 0
	for _, v := range []string{o.csv, o.json, o.pg, o.source} {
		if v != "" {
			given++
		}
	}
	switch {
	case given == 0:
		return nil, errNoSource
	case given > 1:
		return nil, errMultipleSources
	}

	switch {
	case o.csv != "":
		return &source.CSV{Path: o.csv}, nil
	case o.json != "":
		return &source.JSON{Path: o.json}, nil
	case o.pg != "":
		if strings.TrimSpace(o.query) == "" {
			return nil, errMissingQuery
		}
		return &source.Postgres{URI: o.pg, Query: o.query}, nil
	}

	saved, err := cfg.Find(o.source)
	if err != nil {
		return nil, err
	}
	return source.FromSaved(saved)
}

// loadLayout reads --layout, or the layout of the saved source.
func (o sourceOptions) loadLayout(cfg *config.Config) (*grid.Layout, error) {
	path := o.layout
	if path == "" && o.source != "" {
		if saved, err := cfg.Find(o.source); err == nil {
			path = saved.Layout
		}
	}
	if path == "" {
		return nil, nil
	}
	return grid.LoadLayout(path)
}

// effectivePageSize applies flag, then layout, then config precedence.
func (o sourceOptions) effectivePageSize(layout *grid.Layout, cfg *config.Config) int {
	if o.pageSize > 0 {
		return o.pageSize
	}
	if layout != nil && layout.PageSize > 0 {
		return layout.PageSize
	}
	if cfg != nil {
		return cfg.PageSize
	}
	return 0
}

// tableOptions are the flags that set the initial grid state.
type tableOptions struct {
	page    int
	sort    []string
	filters []string
	search  string
}

func addTableFlags(cmd *cobra.Command, o *tableOptions) {
	cmd.Flags().IntVar(&o.page, "page", 1, "page to show (one-based)")
	cmd.Flags().StringSliceVar(&o.sort, "sort", nil, "sort column, prefix with - for descending (repeatable)")
	cmd.Flags().StringArrayVar(&o.filters, "filter", nil, "column filter as key=value (repeatable)")
	cmd.Flags().StringVar(&o.search, "search", "", "search text for the search column")
}

// parseSort turns "name" and "-name" into sort specs.
func parseSort(values []string) []grid.SortSpec {
	specs := make([]grid.SortSpec, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if key, ok := strings.CutPrefix(v, "-"); ok {
			specs = append(specs, grid.SortSpec{Key: key, Desc: true})
			continue
		}
		specs = append(specs, grid.SortSpec{Key: strings.TrimPrefix(v, "+")})
	}
	return specs
}

// parseFilters turns key=value pairs into column filters.
func parseFilters(values []string) ([]grid.ColumnFilter, error) {
	filters := make([]grid.ColumnFilter, 0, len(values))
	for _, v := range values {
		key, value, ok := strings.Cut(v, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid filter %q: expected key=value", v)
		}
		filters = append(filters, grid.ColumnFilter{Key: strings.TrimSpace(key), Value: value})
	}
	return filters, nil
}

// apply sets the initial state on t. Unknown columns are rejected.
func (o tableOptions) apply(t grid.Table) (grid.Table, error) {
	specs := parseSort(o.sort)
	for _, sp := range specs {
		if _, ok := t.Column(sp.Key); !ok {
			return t, fmt.Errorf("sort: %w: %q", grid.ErrUnknownColumn, sp.Key)
		}
	}
	filters, err := parseFilters(o.filters)
	if err != nil {
		return t, err
	}
	for _, f := range filters {
		if _, ok := t.Column(f.Key); !ok {
			return t, fmt.Errorf("filter: %w: %q", grid.ErrUnknownColumn, f.Key)
		}
	}

	if len(specs) > 0 {
		t = t.SetSorting(specs)
	}
	for _, f := range filters {
		t = t.SetFilter(f.Key, f.Value)
	}
	if o.search != "" {
		t = t.SetSearch(o.search)
	}
	if o.page > 1 {
		t = t.SetPageIndex(o.page - 1)
	}
	return t, nil
}
