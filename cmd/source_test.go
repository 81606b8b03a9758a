package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cli-grid/internal/config"
)

func resetAddOpts() {
	addOpts.kind = ""
	addOpts.path = ""
	addOpts.uri = ""
	addOpts.query = ""
	addOpts.layout = ""
	addOpts.noTest = false
}

func TestSourceAddListRm(t *testing.T) {
	dir := isolate(t)
	t.Cleanup(resetAddOpts)
	resetAddOpts()

	addOpts.kind = config.KindCSV
	addOpts.path = writeUsersCSV(t, dir, 4)

	c, out := testCommand()
	require.NoError(t, runSourceAdd(c, []string{"users"}))
	assert.Contains(t, out.String(), `Saved source "users"`)

	resetAddOpts()
	addOpts.kind = config.KindPostgres
	addOpts.uri = "postgres://app:secret@db:5432/shop"
	addOpts.query = "SELECT * FROM orders"
	addOpts.noTest = true
	require.NoError(t, runSourceAdd(c, []string{"orders"}))

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Len(t, cfg.Sources, 2)

	out.Reset()
	require.NoError(t, runSourceList(c, nil))
	list := out.String()
	assert.Contains(t, list, "users")
	assert.Contains(t, list, "orders")
	assert.Contains(t, list, "xxxxx")
	assert.NotContains(t, list, "secret")

	out.Reset()
	require.NoError(t, runSourceRm(c, []string{"users"}))
	assert.Contains(t, out.String(), `Removed source "users"`)

	cfg, err = config.Load()
	require.NoError(t, err)
	require.Len(t, cfg.Sources, 1)
	assert.Equal(t, "orders", cfg.Sources[0].Name)

	assert.ErrorIs(t, runSourceRm(c, []string{"users"}), config.ErrSourceNotFound)
}

func TestSourceAdd_Invalid(t *testing.T) {
	isolate(t)
	t.Cleanup(resetAddOpts)
	resetAddOpts()

	addOpts.kind = config.KindPostgres
	addOpts.uri = "postgres://db"
	addOpts.noTest = true

	c, _ := testCommand()
	assert.Error(t, runSourceAdd(c, []string{"orders"}), "postgres sources need a query")
}

func TestSourceList_Empty(t *testing.T) {
	isolate(t)

	c, out := testCommand()
	require.NoError(t, runSourceList(c, nil))
	assert.Contains(t, out.String(), "No saved sources.")
}

func TestSourceAdd_FailedTestLoadIsNotSaved(t *testing.T) {
	isolate(t)
	t.Cleanup(resetAddOpts)
	resetAddOpts()

	addOpts.kind = config.KindCSV
	addOpts.path = "/does/not/exist.csv"

	c, _ := testCommand()
	err := runSourceAdd(c, []string{"missing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--no-test")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Sources)
}
