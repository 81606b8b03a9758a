// Package source loads datasets into grid records.
package source

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"cli-grid/internal/config"
	"cli-grid/internal/grid"
)

var (
	ErrUnknownKind = errors.New("unknown source kind")
	ErrNotSelect   = errors.New("query does not return rows")
)

// Dataset is a loaded table: ordered column keys and one record per row.
type Dataset struct {
	Columns  []string
	Records  []grid.Record
	LoadTime time.Duration
}

// Source loads a dataset.
type Source interface {
	Load(ctx context.Context) (*Dataset, error)
	Describe() string
}

// FromSaved returns the source a saved entry refers to.
func FromSaved(s config.SavedSource) (Source, error) {
	switch s.Kind {
	case config.KindCSV:
		return &CSV{Path: s.Path}, nil
	case config.KindJSON:
		return &JSON{Path: s.Path}, nil
	case config.KindPostgres:
		return &Postgres{URI: s.URI, Query: s.Query}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, s.Kind)
	}
}

// uniqueColumns renames repeated column names so every record key is
// distinct. The second "id" becomes "id_2", the third "id_3", skipping
// names already taken. An empty name becomes "column".
func uniqueColumns(names []string) []string {
	taken := make(map[string]bool, len(names))
	for _, n := range names {
		taken[n] = true
	}
	seen := make(map[string]bool, len(names))
	out := make([]string, len(names))
	for i, n := range names {
		if n == "" {
			n = "column"
		}
		if !seen[n] {
			seen[n] = true
			out[i] = n
			continue
		}
		name := n
		for k := 2; seen[name] || taken[name]; k++ {
			name = n + "_" + strconv.Itoa(k)
		}
		seen[name] = true
		out[i] = name
	}
	return out
}
