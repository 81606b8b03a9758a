// Package grid holds the client-side state of a data grid: its columns, the
// loaded records and the user's sorting, filtering, visibility, selection and
// pagination choices. Every transition returns a new Table; the receiver is
// left untouched.
package grid

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"cli-grid/internal/pagination"
)

var (
	ErrUnknownColumn   = errors.New("unknown column")
	ErrDuplicateColumn = errors.New("duplicate column")
	ErrInvalidOptions  = errors.New("invalid grid options")
)

var validate = validator.New()

// Options configures a new Table.
type Options struct {
	// SearchKey is the accessor key of the column the search box filters.
	SearchKey string `validate:"required"`
	PageSize  int    `validate:"min=1"`
}

// Table is an immutable snapshot of a grid.
type Table struct {
	columns   []Column
	rows      []Row
	searchKey string
	state     State
}

// PageSummary is the one-based row range shown on the current page.
type PageSummary struct {
	From  int
	To    int
	Total int
}

// New builds a Table over records. A zero PageSize means DefaultPageSize.
func New(columns []Column, records []Record, opts Options) (Table, error) {
	if opts.PageSize == 0 {
		opts.PageSize = DefaultPageSize
	}
	if err := validate.Struct(opts); err != nil {
		return Table{}, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}

	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if seen[c.Key] {
			return Table{}, fmt.Errorf("%w: %q", ErrDuplicateColumn, c.Key)
		}
		seen[c.Key] = true
	}
	if !seen[opts.SearchKey] {
		return Table{}, fmt.Errorf("search key: %w: %q", ErrUnknownColumn, opts.SearchKey)
	}

	rows := make([]Row, len(records))
	for i, r := range records {
		rows[i] = Row{ID: strconv.Itoa(i), Record: r}
	}

	state := State{
		Visibility: make(map[string]bool),
		Selection:  make(map[string]bool),
		Pagination: PaginationState{PageSize: opts.PageSize},
	}
	for _, c := range columns {
		if c.Hidden {
			state.Visibility[c.Key] = false
		}
	}

	return Table{
		columns:   slices.Clone(columns),
		rows:      rows,
		searchKey: opts.SearchKey,
		state:     state,
	}, nil
}

// State returns a copy of the table state.
func (t Table) State() State {
	return t.state.clone()
}

// WithState replaces the whole state. Sorting, filters and visibility that
// name a column this table does not have are dropped. Missing maps are
// created and a non-positive page size falls back to DefaultPageSize.
func (t Table) WithState(s State) Table {
	next := t
	next.state = s.clone()
	next.state.Sorting = slices.DeleteFunc(next.state.Sorting, func(sp SortSpec) bool {
		_, ok := t.Column(sp.Key)
		return !ok
	})
	next.state.Filters = slices.DeleteFunc(next.state.Filters, func(f ColumnFilter) bool {
		_, ok := t.Column(f.Key)
		return !ok
	})
	maps.DeleteFunc(next.state.Visibility, func(key string, _ bool) bool {
		_, ok := t.Column(key)
		return !ok
	})
	if next.state.Visibility == nil {
		next.state.Visibility = make(map[string]bool)
	}
	if next.state.Selection == nil {
		next.state.Selection = make(map[string]bool)
	}
	if next.state.Pagination.PageSize <= 0 {
		next.state.Pagination.PageSize = DefaultPageSize
	}
	return next
}

func (t Table) update(fn func(s *State)) Table {
	next := t
	next.state = t.state.clone()
	fn(&next.state)
	return next
}

// Columns returns every column in declaration order.
func (t Table) Columns() []Column {
	return slices.Clone(t.columns)
}

// Column looks up a column by key.
func (t Table) Column(key string) (Column, bool) {
	for _, c := range t.columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column{}, false
}

// SearchKey returns the key of the column bound to the search box.
func (t Table) SearchKey() string {
	return t.searchKey
}

// Len returns the number of loaded rows before filtering.
func (t Table) Len() int {
	return len(t.rows)
}

// ---------------------------------------------------------------------------
// Row models
// ---------------------------------------------------------------------------

// FilteredRows returns the rows matching every column filter, in dataset order.
func (t Table) FilteredRows() []Row {
	if len(t.state.Filters) == 0 {
		return slices.Clone(t.rows)
	}
	out := make([]Row, 0, len(t.rows))
	for _, r := range t.rows {
		if t.matches(r) {
			out = append(out, r)
		}
	}
	return out
}

func (t Table) matches(r Row) bool {
	for _, f := range t.state.Filters {
		if f.Value == "" {
			continue
		}
		value := strings.ToLower(FormatValue(r.Record[f.Key]))
		if !strings.Contains(value, strings.ToLower(f.Value)) {
			return false
		}
	}
	return true
}

// SortedRows returns the filtered rows in sort order.
func (t Table) SortedRows() []Row {
	rows := t.FilteredRows()
	if len(t.state.Sorting) == 0 {
		return rows
	}
	specs := t.state.Sorting
	sort.SliceStable(rows, func(i, j int) bool {
		for _, sp := range specs {
			a, b := rows[i].Record[sp.Key], rows[j].Record[sp.Key]
			c := Compare(a, b)
			if c == 0 {
				continue
			}
			// nil stays last in both directions
			if sp.Desc && a != nil && b != nil {
				c = -c
			}
			return c < 0
		}
		return false
	})
	return rows
}

// PageRows returns the rows on the current page.
func (t Table) PageRows() []Row {
	rows := t.SortedRows()
	size := t.state.Pagination.PageSize
	start := t.state.Pagination.PageIndex * size
	if start < 0 || start >= len(rows) {
		return []Row{}
	}
	end := min(start+size, len(rows))
	return rows[start:end]
}

// ---------------------------------------------------------------------------
// Pagination
// ---------------------------------------------------------------------------

// PageIndex returns the zero-based current page.
func (t Table) PageIndex() int { return t.state.Pagination.PageIndex }

// PageSize returns the number of rows per page.
func (t Table) PageSize() int { return t.state.Pagination.PageSize }

// PageCount returns the number of pages over the filtered rows.
func (t Table) PageCount() int {
	return pagination.PageCount(len(t.FilteredRows()), t.state.Pagination.PageSize)
}

// CanPreviousPage reports whether there is a page before the current one.
func (t Table) CanPreviousPage() bool {
	return t.state.Pagination.PageIndex > 0
}

// CanNextPage reports whether there is a page after the current one.
func (t Table) CanNextPage() bool {
	return t.state.Pagination.PageIndex < t.PageCount()-1
}

// SetPageIndex moves to page i, clamped to the existing pages.
func (t Table) SetPageIndex(i int) Table {
	maxIndex := max(t.PageCount()-1, 0)
	i = max(0, min(i, maxIndex))
	return t.update(func(s *State) { s.Pagination.PageIndex = i })
}

// NextPage moves one page forward when possible.
func (t Table) NextPage() Table {
	if !t.CanNextPage() {
		return t
	}
	return t.SetPageIndex(t.state.Pagination.PageIndex + 1)
}

// PreviousPage moves one page back when possible.
func (t Table) PreviousPage() Table {
	if !t.CanPreviousPage() {
		return t
	}
	return t.SetPageIndex(t.state.Pagination.PageIndex - 1)
}

// SetPageSize changes the rows per page and returns to the first page.
// Sizes below one are ignored.
func (t Table) SetPageSize(n int) Table {
	if n < 1 {
		return t
	}
	return t.update(func(s *State) {
		s.Pagination.PageSize = n
		s.Pagination.PageIndex = 0
	})
}

// Window returns the pager tokens for the current page.
func (t Table) Window() []pagination.Token {
	return pagination.Window(t.PageCount(), t.state.Pagination.PageIndex)
}

// Summary returns the row range of the current page.
func (t Table) Summary() PageSummary {
	total := len(t.FilteredRows())
	size := t.state.Pagination.PageSize
	from := t.state.Pagination.PageIndex*size + 1
	if total == 0 || from < 1 || from > total {
		return PageSummary{Total: total}
	}
	return PageSummary{From: from, To: min(from+size-1, total), Total: total}
}

// ---------------------------------------------------------------------------
// Sorting
// ---------------------------------------------------------------------------

// Sorting returns the active sort specs.
func (t Table) Sorting() []SortSpec {
	return slices.Clone(t.state.Sorting)
}

// SortDirection reports how key is sorted: 0 unsorted, 1 ascending, -1 descending.
func (t Table) SortDirection(key string) int {
	sp, ok := t.state.sortFor(key)
	switch {
	case !ok:
		return 0
	case sp.Desc:
		return -1
	default:
		return 1
	}
}

// ToggleSort cycles key through ascending, descending and unsorted, making it
// the only sorted column.
func (t Table) ToggleSort(key string) Table {
	c, ok := t.Column(key)
	if !ok || c.DisableSorting {
		return t
	}
	var next []SortSpec
	switch t.SortDirection(key) {
	case 0:
		next = []SortSpec{{Key: key}}
	case 1:
		next = []SortSpec{{Key: key, Desc: true}}
	}
	return t.SetSorting(next)
}

// SetSorting replaces the sort specs. Specs naming unknown or unsortable
// columns are dropped.
func (t Table) SetSorting(specs []SortSpec) Table {
	kept := make([]SortSpec, 0, len(specs))
	for _, sp := range specs {
		if c, ok := t.Column(sp.Key); ok && !c.DisableSorting {
			kept = append(kept, sp)
		}
	}
	return t.update(func(s *State) {
		s.Sorting = kept
		s.Pagination.PageIndex = 0
	})
}

// ---------------------------------------------------------------------------
// Filtering
// ---------------------------------------------------------------------------

// Filter returns the filter value of column key.
func (t Table) Filter(key string) string {
	return t.state.filter(key)
}

// SetFilter sets the filter of column key; an empty value removes it.
// Unknown columns are ignored.
func (t Table) SetFilter(key, value string) Table {
	if _, ok := t.Column(key); !ok {
		return t
	}
	return t.update(func(s *State) {
		filters := make([]ColumnFilter, 0, len(s.Filters)+1)
		for _, f := range s.Filters {
			if f.Key != key {
				filters = append(filters, f)
			}
		}
		if value != "" {
			filters = append(filters, ColumnFilter{Key: key, Value: value})
		}
		s.Filters = filters
		s.Pagination.PageIndex = 0
	})
}

// Search returns the search box value.
func (t Table) Search() string {
	return t.Filter(t.searchKey)
}

// SetSearch filters the search column.
func (t Table) SetSearch(value string) Table {
	return t.SetFilter(t.searchKey, value)
}

// ---------------------------------------------------------------------------
// Visibility
// ---------------------------------------------------------------------------

// IsVisible reports whether column key is shown.
func (t Table) IsVisible(key string) bool {
	v, ok := t.state.Visibility[key]
	return !ok || v
}

// VisibleColumns returns the shown columns in declaration order.
func (t Table) VisibleColumns() []Column {
	out := make([]Column, 0, len(t.columns))
	for _, c := range t.columns {
		if t.IsVisible(c.Key) {
			out = append(out, c)
		}
	}
	return out
}

// HideableColumns returns the columns whose visibility the user controls.
func (t Table) HideableColumns() []Column {
	out := make([]Column, 0, len(t.columns))
	for _, c := range t.columns {
		if !c.DisableHiding {
			out = append(out, c)
		}
	}
	return out
}

// SetColumnVisibility shows or hides column key. Columns that cannot be
// hidden are left alone.
func (t Table) SetColumnVisibility(key string, visible bool) Table {
	c, ok := t.Column(key)
	if !ok || c.DisableHiding {
		return t
	}
	return t.update(func(s *State) {
		if s.Visibility == nil {
			s.Visibility = make(map[string]bool)
		}
		s.Visibility[key] = visible
	})
}

// ToggleColumnVisibility flips the visibility of column key.
func (t Table) ToggleColumnVisibility(key string) Table {
	return t.SetColumnVisibility(key, !t.IsVisible(key))
}

// ---------------------------------------------------------------------------
// Selection
// ---------------------------------------------------------------------------

// IsSelected reports whether the row with id is selected.
func (t Table) IsSelected(id string) bool {
	return t.state.Selection[id]
}

// ToggleRowSelected flips the selection of the row with id.
func (t Table) ToggleRowSelected(id string) Table {
	return t.update(func(s *State) {
		if s.Selection == nil {
			s.Selection = make(map[string]bool)
		}
		if s.Selection[id] {
			delete(s.Selection, id)
			return
		}
		s.Selection[id] = true
	})
}

// ClearSelection deselects every row.
func (t Table) ClearSelection() Table {
	return t.update(func(s *State) { s.Selection = make(map[string]bool) })
}

// SelectedRows returns the selected rows that pass the current filters.
func (t Table) SelectedRows() []Row {
	var out []Row
	for _, r := range t.FilteredRows() {
		if t.state.Selection[r.ID] {
			out = append(out, r)
		}
	}
	return out
}
