package grid

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cli-grid/internal/pagination"
)

func sampleColumns() []Column {
	return []Column{
		{Key: "id", Header: "ID", Hidden: true},
		{Key: "name", Header: "Name"},
		{Key: "city", Header: "City"},
		{Key: "age", Header: "Age", DisableHiding: true},
	}
}

func sampleRecords() []Record {
	return []Record{
		{"id": int64(1), "name": "Alice", "city": "Cairo", "age": int64(30)},
		{"id": int64(2), "name": "bob", "city": "Amman", "age": int64(25)},
		{"id": int64(3), "name": "Charlie", "city": "Cairo", "age": nil},
		{"id": int64(4), "name": "dina", "city": "Riyadh", "age": int64(41)},
	}
}

func numberedRecords(n int) []Record {
	recs := make([]Record, n)
	for i := range recs {
		recs[i] = Record{"n": int64(i), "label": fmt.Sprintf("row-%02d", i)}
	}
	return recs
}

func newSample(t *testing.T) Table {
	t.Helper()
	tbl, err := New(sampleColumns(), sampleRecords(), Options{SearchKey: "name"})
	require.NoError(t, err)
	return tbl
}

func names(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = FormatValue(r.Record["name"])
	}
	return out
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		cols    []Column
		opts    Options
		wantErr error
	}{
		{"missing search key", sampleColumns(), Options{}, ErrInvalidOptions},
		{"negative page size", sampleColumns(), Options{SearchKey: "name", PageSize: -1}, ErrInvalidOptions},
		{"unknown search key", sampleColumns(), Options{SearchKey: "email"}, ErrUnknownColumn},
		{"duplicate column", append(sampleColumns(), Column{Key: "name"}), Options{SearchKey: "name"}, ErrDuplicateColumn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cols, sampleRecords(), tt.opts)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewDefaults(t *testing.T) {
	tbl := newSample(t)
	assert.Equal(t, DefaultPageSize, tbl.PageSize())
	assert.Equal(t, 0, tbl.PageIndex())
	assert.Equal(t, "name", tbl.SearchKey())
	assert.Equal(t, 4, tbl.Len())
	assert.False(t, tbl.IsVisible("id"))
	assert.True(t, tbl.IsVisible("name"))
}

func TestPaginationTransitions(t *testing.T) {
	tbl, err := New([]Column{{Key: "n"}, {Key: "label"}}, numberedRecords(95), Options{SearchKey: "label", PageSize: 10})
	require.NoError(t, err)

	assert.Equal(t, 10, tbl.PageCount())
	assert.False(t, tbl.CanPreviousPage())
	assert.True(t, tbl.CanNextPage())
	assert.Equal(t, tbl, tbl.PreviousPage())

	next := tbl.NextPage()
	assert.Equal(t, 1, next.PageIndex())
	assert.Equal(t, 0, tbl.PageIndex(), "receiver must not change")

	last := tbl.SetPageIndex(99)
	assert.Equal(t, 9, last.PageIndex())
	assert.False(t, last.CanNextPage())
	assert.Len(t, last.PageRows(), 5)
	assert.Equal(t, PageSummary{From: 91, To: 95, Total: 95}, last.Summary())

	assert.Equal(t, 0, tbl.SetPageIndex(-5).PageIndex())

	mid := tbl.SetPageIndex(5)
	assert.Equal(t, pagination.Window(10, 5), mid.Window())
	assert.Equal(t, PageSummary{From: 51, To: 60, Total: 95}, mid.Summary())

	resized := mid.SetPageSize(50)
	assert.Equal(t, 0, resized.PageIndex())
	assert.Equal(t, 2, resized.PageCount())
	assert.Equal(t, mid, mid.SetPageSize(0))
}

func TestPageRowsEmpty(t *testing.T) {
	tbl, err := New([]Column{{Key: "n"}}, nil, Options{SearchKey: "n"})
	require.NoError(t, err)

	assert.Equal(t, 0, tbl.PageCount())
	assert.Empty(t, tbl.PageRows())
	assert.Empty(t, tbl.Window())
	assert.Equal(t, PageSummary{}, tbl.Summary())
	assert.False(t, tbl.CanNextPage())
	assert.Equal(t, 0, tbl.SetPageIndex(3).PageIndex())
}

func TestFilterAndSearch(t *testing.T) {
	tbl := newSample(t)

	cairo := tbl.SetFilter("city", "CAI")
	assert.Equal(t, []string{"Alice", "Charlie"}, names(cairo.FilteredRows()))
	assert.Equal(t, "CAI", cairo.Filter("city"))

	both := cairo.SetSearch("char")
	assert.Equal(t, []string{"Charlie"}, names(both.PageRows()))
	assert.Equal(t, "char", both.Search())

	cleared := both.SetFilter("city", "").SetSearch("")
	assert.Len(t, cleared.FilteredRows(), 4)
	assert.Empty(t, cleared.State().Filters)

	assert.Equal(t, tbl, tbl.SetFilter("email", "x"), "unknown column is ignored")
}

func TestFilterResetsPage(t *testing.T) {
	tbl, err := New([]Column{{Key: "n"}, {Key: "label"}}, numberedRecords(40), Options{SearchKey: "label", PageSize: 5})
	require.NoError(t, err)

	tbl = tbl.SetPageIndex(6)
	require.Equal(t, 6, tbl.PageIndex())

	filtered := tbl.SetSearch("row-1")
	assert.Equal(t, 0, filtered.PageIndex())
	assert.Equal(t, 2, filtered.PageCount())
}

func TestToggleSortCycle(t *testing.T) {
	tbl := newSample(t)

	asc := tbl.ToggleSort("name")
	assert.Equal(t, 1, asc.SortDirection("name"))
	assert.Equal(t, []string{"Alice", "bob", "Charlie", "dina"}, names(asc.SortedRows()))

	desc := asc.ToggleSort("name")
	assert.Equal(t, -1, desc.SortDirection("name"))
	assert.Equal(t, []string{"dina", "Charlie", "bob", "Alice"}, names(desc.SortedRows()))

	none := desc.ToggleSort("name")
	assert.Equal(t, 0, none.SortDirection("name"))
	assert.Empty(t, none.Sorting())
	assert.Equal(t, []string{"Alice", "bob", "Charlie", "dina"}, names(none.SortedRows()))
}

func TestSortNilLast(t *testing.T) {
	tbl := newSample(t)

	asc := tbl.ToggleSort("age")
	assert.Equal(t, []string{"bob", "Alice", "dina", "Charlie"}, names(asc.SortedRows()))

	desc := asc.ToggleSort("age")
	assert.Equal(t, []string{"dina", "Alice", "bob", "Charlie"}, names(desc.SortedRows()))
}

func TestSortMixedKindsIgnoresInputOrder(t *testing.T) {
	orders := [][]any{
		{int64(10), int64(2), "n/a", "1x"},
		{"1x", int64(2), int64(10), "n/a"},
		{"n/a", int64(10), "1x", int64(2)},
	}
	cols := []Column{{Key: "v", Header: "V"}}
	for _, order := range orders {
		recs := make([]Record, len(order))
		for i, v := range order {
			recs[i] = Record{"v": v}
		}
		tbl, err := New(cols, recs, Options{SearchKey: "v"})
		require.NoError(t, err)

		var got []string
		for _, r := range tbl.ToggleSort("v").SortedRows() {
			got = append(got, FormatValue(r.Record["v"]))
		}
		assert.Equal(t, []string{"2", "10", "1x", "n/a"}, got)
	}
}

func TestSetSortingMultiColumn(t *testing.T) {
	tbl := newSample(t).SetSorting([]SortSpec{
		{Key: "city"},
		{Key: "name", Desc: true},
		{Key: "missing"},
	})
	assert.Len(t, tbl.Sorting(), 2)
	assert.Equal(t, []string{"bob", "Charlie", "Alice", "dina"}, names(tbl.SortedRows()))
}

func TestSortDisabled(t *testing.T) {
	cols := sampleColumns()
	cols[1].DisableSorting = true
	tbl, err := New(cols, sampleRecords(), Options{SearchKey: "name"})
	require.NoError(t, err)

	assert.Equal(t, tbl, tbl.ToggleSort("name"))
	assert.Equal(t, tbl, tbl.ToggleSort("nope"))
}

func TestColumnVisibility(t *testing.T) {
	tbl := newSample(t)

	hideable := tbl.HideableColumns()
	require.Len(t, hideable, 3)
	for _, c := range hideable {
		assert.NotEqual(t, "age", c.Key)
	}

	hidden := tbl.SetColumnVisibility("city", false)
	assert.False(t, hidden.IsVisible("city"))
	assert.True(t, tbl.IsVisible("city"))

	var keys []string
	for _, c := range hidden.VisibleColumns() {
		keys = append(keys, c.Key)
	}
	assert.Equal(t, []string{"name", "age"}, keys)

	assert.True(t, hidden.ToggleColumnVisibility("city").IsVisible("city"))
	assert.True(t, tbl.ToggleColumnVisibility("id").IsVisible("id"))

	assert.Equal(t, tbl, tbl.SetColumnVisibility("age", false), "age cannot be hidden")
}

func TestRowSelection(t *testing.T) {
	tbl := newSample(t)

	sel := tbl.ToggleRowSelected("0").ToggleRowSelected("2")
	assert.True(t, sel.IsSelected("0"))
	assert.False(t, tbl.IsSelected("0"))
	assert.Len(t, sel.SelectedRows(), 2)

	filtered := sel.SetSearch("char")
	require.Len(t, filtered.SelectedRows(), 1)
	assert.Equal(t, "2", filtered.SelectedRows()[0].ID)

	assert.False(t, sel.ToggleRowSelected("0").IsSelected("0"))
	assert.Empty(t, sel.ClearSelection().SelectedRows())
}

func TestStateIsolation(t *testing.T) {
	tbl := newSample(t).SetColumnVisibility("city", false)

	st := tbl.State()
	st.Visibility["city"] = true
	st.Sorting = append(st.Sorting, SortSpec{Key: "name"})

	assert.False(t, tbl.IsVisible("city"))
	assert.Empty(t, tbl.Sorting())

	replaced := tbl.WithState(st)
	assert.True(t, replaced.IsVisible("city"))
	assert.Equal(t, 1, replaced.SortDirection("name"))
}

func TestWithStateDefaults(t *testing.T) {
	tbl := newSample(t).WithState(State{})
	assert.Equal(t, DefaultPageSize, tbl.PageSize())
	assert.True(t, tbl.ToggleRowSelected("1").IsSelected("1"))
}

func TestWithStateDropsUnknownColumns(t *testing.T) {
	st := newSample(t).
		SetFilter("city", "cairo").
		ToggleSort("city").
		SetColumnVisibility("city", false).
		State()
	st.Filters = append(st.Filters, ColumnFilter{Key: "name", Value: "a"})

	cols := []Column{{Key: "id", Hidden: true}, {Key: "name"}, {Key: "age"}}
	tbl, err := New(cols, sampleRecords(), Options{SearchKey: "name"})
	require.NoError(t, err)

	next := tbl.WithState(st)
	assert.Empty(t, next.Sorting())
	assert.Empty(t, next.Filter("city"))
	assert.Equal(t, "a", next.Filter("name"))
	assert.NotContains(t, next.State().Visibility, "city")
	assert.Equal(t, []string{"Alice", "Charlie", "dina"}, names(next.SortedRows()))
}

func TestColumnRendering(t *testing.T) {
	c := Column{Key: "name"}
	assert.Equal(t, "name", c.Title())

	c.Header = "Name"
	assert.Equal(t, "Name", c.Title())

	c.HeaderFunc = func() string { return "NAME" }
	assert.Equal(t, "NAME", c.Title())

	r := Record{"name": "Alice"}
	assert.Equal(t, "Alice", c.Render(r))
	c.Cell = func(r Record) string { return "<" + FormatValue(r["name"]) + ">" }
	assert.Equal(t, "<Alice>", c.Render(r))
	assert.Equal(t, "Alice", c.Value(r))
}
