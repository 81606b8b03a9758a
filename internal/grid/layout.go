package grid

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Layout is a column layout file: which columns to show, how to label them
// and which one the search box filters.
type Layout struct {
	SearchKey string         `yaml:"search_key,omitempty"`
	PageSize  int            `yaml:"page_size,omitempty" validate:"gte=0"`
	Columns   []ColumnLayout `yaml:"columns" validate:"dive"`
}

// ColumnLayout configures one column.
type ColumnLayout struct {
	Key      string `yaml:"key" validate:"required"`
	Header   string `yaml:"header,omitempty"`
	Hideable *bool  `yaml:"hideable,omitempty"`
	Sortable *bool  `yaml:"sortable,omitempty"`
	Hidden   bool   `yaml:"hidden,omitempty"`
}

// LoadLayout reads a YAML layout file.
func LoadLayout(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout: %w", err)
	}
	return ParseLayout(data)
}

// ParseLayout decodes and validates a YAML layout.
func ParseLayout(data []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}
	if err := validate.Struct(l); err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}
	return &l, nil
}

// BuildColumns builds grid columns. Without configured columns every key in
// keys becomes a column.
func (l *Layout) BuildColumns(keys []string) []Column {
	if l == nil || len(l.Columns) == 0 {
		return DefaultColumns(keys)
	}
	cols := make([]Column, 0, len(l.Columns))
	for _, cl := range l.Columns {
		cols = append(cols, Column{
			Key:            cl.Key,
			Header:         cl.Header,
			DisableHiding:  cl.Hideable != nil && !*cl.Hideable,
			DisableSorting: cl.Sortable != nil && !*cl.Sortable,
			Hidden:         cl.Hidden,
		})
	}
	return cols
}

// Options returns table options for the given column keys. pageSize
// overrides the layout page size when positive.
func (l *Layout) Options(keys []string, pageSize int) Options {
	opts := Options{PageSize: pageSize}
	if l != nil {
		opts.SearchKey = l.SearchKey
		if opts.PageSize <= 0 {
			opts.PageSize = l.PageSize
		}
	}
	if opts.SearchKey == "" {
		cols := l.BuildColumns(keys)
		colKeys := make([]string, len(cols))
		for i, c := range cols {
			colKeys[i] = c.Key
		}
		opts.SearchKey = DefaultSearchKey(colKeys)
	}
	return opts
}

// DefaultColumns makes one column per key, headed by the key itself. A
// column named "id" starts hidden.
func DefaultColumns(keys []string) []Column {
	cols := make([]Column, len(keys))
	for i, k := range keys {
		cols[i] = Column{Key: k, Header: k, Hidden: k == "id"}
	}
	return cols
}

// DefaultSearchKey picks the search column when none is configured: the
// second column when there is one, otherwise the first.
func DefaultSearchKey(keys []string) string {
	switch len(keys) {
	case 0:
		return ""
	case 1:
		return keys[0]
	default:
		return keys[1]
	}
}
