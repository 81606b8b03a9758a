package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// isolate points the config dir at a temp dir and switches to English.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("CLIGRID_CONFIG_DIR", dir)

	origLocale := localeCode
	localeCode = "en"
	t.Cleanup(func() { localeCode = origLocale })
	return dir
}

func writeUsersCSV(t *testing.T, dir string, n int) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("id,name,age,status\n")
	for i := 1; i <= n; i++ {
		status := "active"
		if i%3 == 0 {
			status = "blocked"
		}
		fmt.Fprintf(&b, "%d,user%02d,%d,%s\n", i, i, 20+i, status)
	}
	path := filepath.Join(dir, "users.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o600))
	return path
}

func testCommand() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer
	c := &cobra.Command{}
	c.SetOut(&buf)
	c.SetErr(&buf)
	c.SetContext(context.Background())
	return c, &buf
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}
