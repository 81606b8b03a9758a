package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetPrintOpts() {
	printSource = sourceOptions{}
	printTable = tableOptions{page: 1}
}

func TestRunPrint_PageAndSummary(t *testing.T) {
	dir := isolate(t)
	t.Cleanup(resetPrintOpts)
	resetPrintOpts()

	printSource = sourceOptions{csv: writeUsersCSV(t, dir, 50), pageSize: 5}
	printTable.page = 4

	c, out := testCommand()
	require.NoError(t, runPrint(c, nil))

	s := out.String()
	assert.Contains(t, s, "user16")
	assert.Contains(t, s, "user20")
	assert.NotContains(t, s, "user21")
	assert.Contains(t, s, "Showing 16 to 20 of 50")
	assert.Contains(t, s, "‹ 1 … 3 [4] 5 … 10 ›")
	assert.NotContains(t, s, "│ id", "id column starts hidden")
}

func TestRunPrint_SortFilterSearch(t *testing.T) {
	dir := isolate(t)
	t.Cleanup(resetPrintOpts)
	resetPrintOpts()

	printSource = sourceOptions{csv: writeUsersCSV(t, dir, 12), pageSize: 3}
	printTable.filters = []string{"status=blocked"}
	printTable.sort = []string{"-age"}

	c, out := testCommand()
	require.NoError(t, runPrint(c, nil))

	s := out.String()
	assert.Contains(t, s, "age ▼")
	assert.Contains(t, s, "user12")
	assert.NotContains(t, s, "user03")
	assert.Contains(t, s, "Showing 1 to 3 of 4")
}

func TestRunPrint_EmptyResult(t *testing.T) {
	dir := isolate(t)
	t.Cleanup(resetPrintOpts)
	resetPrintOpts()

	printSource = sourceOptions{csv: writeUsersCSV(t, dir, 5)}
	printTable.search = "nobody"

	c, out := testCommand()
	require.NoError(t, runPrint(c, nil))
	assert.Contains(t, out.String(), "No data")
}

func TestRunPrint_Errors(t *testing.T) {
	isolate(t)
	t.Cleanup(resetPrintOpts)
	resetPrintOpts()

	c, _ := testCommand()
	assert.ErrorIs(t, runPrint(c, nil), errNoSource)

	printSource = sourceOptions{csv: "/does/not/exist.csv"}
	assert.Error(t, runPrint(c, nil))
}
