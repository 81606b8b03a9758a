package grid

import "maps"

// DefaultPageSize is the page size used when none is configured.
const DefaultPageSize = 9

// SortSpec sorts by one column.
type SortSpec struct {
	Key  string
	Desc bool
}

// ColumnFilter keeps rows whose column value contains Value.
type ColumnFilter struct {
	Key   string
	Value string
}

// PaginationState is the current page and its size.
type PaginationState struct {
	PageIndex int
	PageSize  int
}

// State is everything a user can change about a grid. A State handed out by
// a Table is never modified afterwards; transitions build a new one.
type State struct {
	Sorting    []SortSpec
	Filters    []ColumnFilter
	Visibility map[string]bool
	Selection  map[string]bool
	Pagination PaginationState
}

func (s State) clone() State {
	return State{
		Sorting:    append([]SortSpec(nil), s.Sorting...),
		Filters:    append([]ColumnFilter(nil), s.Filters...),
		Visibility: maps.Clone(s.Visibility),
		Selection:  maps.Clone(s.Selection),
		Pagination: s.Pagination,
	}
}

// filter returns the filter value for key, or "".
func (s State) filter(key string) string {
	for _, f := range s.Filters {
		if f.Key == key {
			return f.Value
		}
	}
	return ""
}

// sortFor returns the sort spec for key, if any.
func (s State) sortFor(key string) (SortSpec, bool) {
	for _, sp := range s.Sorting {
		if sp.Key == key {
			return sp, true
		}
	}
	return SortSpec{}, false
}
