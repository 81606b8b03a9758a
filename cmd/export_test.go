package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetExportOpts() {
	exportSource = sourceOptions{}
	exportTable = tableOptions{page: 1}
	exportOut = ""
	exportTitle = ""
}

func TestRunExport_ToFile(t *testing.T) {
	dir := isolate(t)
	t.Cleanup(resetExportOpts)
	resetExportOpts()

	exportSource = sourceOptions{csv: writeUsersCSV(t, dir, 30), pageSize: 5}
	exportTable.page = 2
	exportOut = filepath.Join(dir, "users.html")
	exportTitle = "Users"

	c, out := testCommand()
	require.NoError(t, runExport(c, nil))
	assert.Contains(t, out.String(), "Wrote page 2 of 6")

	data, err := os.ReadFile(exportOut)
	require.NoError(t, err)
	html := string(data)
	assert.Contains(t, html, "<title>Users</title>")
	assert.Contains(t, html, `dir="ltr"`)
	assert.Contains(t, html, "user06")
	assert.Contains(t, html, `href="?page=1"`)
	assert.Contains(t, html, `<span class="current">2</span>`)
}

func TestRunExport_Stdout(t *testing.T) {
	dir := isolate(t)
	t.Cleanup(resetExportOpts)
	resetExportOpts()
	localeCode = "ar"

	exportSource = sourceOptions{csv: writeUsersCSV(t, dir, 3)}

	c, out := testCommand()
	require.NoError(t, runExport(c, nil))
	assert.Contains(t, out.String(), `dir="rtl"`)
	assert.Contains(t, out.String(), "عرض 1 إلى 3 من 3")
}
