//go:build integration

package source

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func init() {
	// Ryuk does not work with Podman; containers are terminated in cleanup.
	os.Setenv("TESTCONTAINERS_RYUK_DISABLED", "true")
}

// setupPostgresContainer starts an isolated PostgreSQL and returns its URI.
func setupPostgresContainer(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "grid",
			"POSTGRES_PASSWORD": "grid",
			"POSTGRES_DB":       "grid",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start postgres container")

	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	return fmt.Sprintf("postgres://grid:grid@%s:%s/grid?sslmode=disable", host, port.Port())
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestPostgresIntegration(t *testing.T) {
	uri := setupPostgresContainer(t)
	ctx := testContext(t)

	db, err := Connect(ctx, uri)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	assert.True(t, db.IsConnected(ctx))
	assert.Equal(t, "grid", db.Database())

	for _, stmt := range []string{
		`CREATE TABLE people (
			id serial PRIMARY KEY,
			name text NOT NULL,
			balance numeric(10,2),
			joined date
		)`,
		`INSERT INTO people (name, balance, joined) VALUES
			('Alice', 10.50, '2024-01-02'),
			('bob', NULL, '2023-05-06')`,
	} {
		_, err = db.Conn.Exec(ctx, stmt)
		require.NoError(t, err)
	}

	tables, err := db.ListTables(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"people"}, tables)

	pks, err := db.PrimaryKeys(ctx, "people")
	require.NoError(t, err)
	assert.Equal(t, []string{"id"}, pks)

	ds, err := db.Select(ctx, TableQuery("people", pks, 0))
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name", "balance", "joined"}, ds.Columns)
	require.Len(t, ds.Records, 2)
	assert.Equal(t, "Alice", ds.Records[0]["name"])
	assert.Equal(t, 10.5, ds.Records[0]["balance"])
	assert.Nil(t, ds.Records[1]["balance"])

	ds, err = db.Select(ctx, "SELECT a.id, b.id, a.name FROM people a JOIN people b ON b.id <> a.id ORDER BY a.id")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "id_2", "name"}, ds.Columns)
	require.Len(t, ds.Records, 2)
	assert.Equal(t, int32(1), ds.Records[0]["id"])
	assert.Equal(t, int32(2), ds.Records[0]["id_2"])

	_, err = db.Select(ctx, "DELETE FROM people")
	assert.ErrorIs(t, err, ErrNotSelect)

	src := &Postgres{URI: uri, Query: "SELECT name FROM people ORDER BY name"}
	ds, err = src.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, ds.Records, 2)
}
