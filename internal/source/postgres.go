package source

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"cli-grid/internal/grid"
	"cli-grid/internal/logger"
)

// Postgres runs a query against a PostgreSQL database.
type Postgres struct {
	URI   string
	Query string
}

// Describe returns the connection without its password and the query.
func (p *Postgres) Describe() string {
	return fmt.Sprintf("%s %s", RedactURI(p.URI), strings.Join(strings.Fields(p.Query), " "))
}

// Load connects, runs the query and disconnects.
func (p *Postgres) Load(ctx context.Context) (*Dataset, error) {
	db, err := Connect(ctx, p.URI)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return db.Select(ctx, p.Query)
}

// DB wraps a pgx connection with metadata.
type DB struct {
	Conn     *pgx.Conn
	host     string
	port     string
	user     string
	database string
}

// BuildURI assembles a connection URI from individual fields.
func BuildURI(host, port, user, password, database string) string {
	if host == "" {
		host = "localhost"
	}
	if port == "" {
		port = "5432"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, password),
		Host:     host + ":" + port,
		Path:     "/" + database,
		RawQuery: "sslmode=prefer",
	}
	return u.String()
}

// RedactURI returns uri without its password.
func RedactURI(uri string) string {
	parsed, err := url.Parse(uri)
	if err != nil {
		return "postgres://?"
	}
	return parsed.Redacted()
}

// Connect establishes a PostgreSQL connection from a URI with a 10-second timeout.
func Connect(ctx context.Context, uri string) (*DB, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid URI: %w", err)
	}

	port := parsed.Port()
	if port == "" {
		port = "5432"
	}

	// Ensure sslmode is set if not already present
	q := parsed.Query()
	if q.Get("sslmode") == "" {
		q.Set("sslmode", "prefer")
		parsed.RawQuery = q.Encode()
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, parsed.String())
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	db := &DB{
		Conn:     conn,
		host:     parsed.Hostname(),
		port:     port,
		user:     parsed.User.Username(),
		database: strings.TrimPrefix(parsed.Path, "/"),
	}
	logger.Log.Debugw("connected", "conn", db.ConnInfo())
	return db, nil
}

// Close closes the database connection.
func (d *DB) Close() {
	if d.Conn != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		d.Conn.Close(ctx)
	}
}

// IsConnected checks if the connection is alive.
func (d *DB) IsConnected(ctx context.Context) bool {
	if d.Conn == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return d.Conn.Ping(ctx) == nil
}

// ConnInfo returns a display-safe connection string (no password).
func (d *DB) ConnInfo() string {
	return fmt.Sprintf("postgres://%s@%s:%s/%s", d.user, d.host, d.port, d.database)
}

// Database returns the current database name.
func (d *DB) Database() string {
	return d.database
}

// isSelectLike returns true if the query returns rows.
func isSelectLike(sql string) bool {
	upper := strings.ToUpper(strings.TrimSpace(sql))
	return strings.HasPrefix(upper, "SELECT") ||
		strings.HasPrefix(upper, "WITH") ||
		strings.HasPrefix(upper, "VALUES") ||
		strings.HasPrefix(upper, "TABLE")
}

// Select runs a row-returning query and converts every row to a record.
func (d *DB) Select(ctx context.Context, sql string) (*Dataset, error) {
	trimmed := strings.TrimSpace(sql)
	if trimmed == "" {
		return nil, fmt.Errorf("empty query")
	}
	if !isSelectLike(trimmed) {
		return nil, ErrNotSelect
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	start := time.Now()
	rows, err := d.Conn.Query(ctx, trimmed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name
	}
	// SELECT * over a join repeats names like "id".
	columns = uniqueColumns(columns)

	var records []grid.Record
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		rec := make(grid.Record, len(values))
		for i, v := range values {
			rec[columns[i]] = pgValue(v)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	logger.Log.Infow("query loaded", "rows", len(records), "elapsed", elapsed)
	return &Dataset{
		Columns:  columns,
		Records:  records,
		LoadTime: elapsed,
	}, nil
}

// pgValue turns values pgx has no plain Go type for into ones the grid can
// sort and print.
func pgValue(v any) any {
	switch val := v.(type) {
	case pgtype.Numeric:
		f, err := val.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	case [16]byte:
		return fmt.Sprintf("%x-%x-%x-%x-%x", val[0:4], val[4:6], val[6:8], val[8:10], val[10:16])
	case []byte:
		return string(val)
	case map[string]any, []any:
		return fmt.Sprint(val)
	default:
		return v
	}
}
