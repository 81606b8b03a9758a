package source

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"cli-grid/internal/grid"
)

// CSV reads a comma separated file whose first row is the header.
type CSV struct {
	Path string
}

// Describe returns the file path.
func (c *CSV) Describe() string { return "csv:" + c.Path }

// Load reads the whole file.
func (c *CSV) Load(ctx context.Context) (*Dataset, error) {
	start := time.Now()
	f, err := os.Open(c.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv: %w", err)
	}
	defer f.Close()

	ds, err := ReadCSV(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.Path, err)
	}
	ds.LoadTime = time.Since(start)
	return ds, nil
}

// ReadCSV parses CSV data. Cells that look like integers or decimals become
// int64 or float64 so they sort numerically; empty cells become nil.
func ReadCSV(ctx context.Context, r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &Dataset{}, nil
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	columns = uniqueColumns(columns)

	var records []grid.Record
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rec := make(grid.Record, len(columns))
		for i, col := range columns {
			if i < len(fields) {
				rec[col] = inferValue(fields[i])
			} else {
				rec[col] = nil
			}
		}
		records = append(records, rec)
	}

	return &Dataset{Columns: columns, Records: records}, nil
}

// decimalNumber matches plain decimal numbers. Leading zeros, hex, NaN and
// Inf stay text so the cell shows what the file holds.
var decimalNumber = regexp.MustCompile(`^[+-]?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

func inferValue(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if !decimalNumber.MatchString(s) {
		return s
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// JSON reads a file holding an array of objects.
type JSON struct {
	Path string
}

// Describe returns the file path.
func (j *JSON) Describe() string { return "json:" + j.Path }

// Load reads the whole file.
func (j *JSON) Load(ctx context.Context) (*Dataset, error) {
	start := time.Now()
	f, err := os.Open(j.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open json: %w", err)
	}
	defer f.Close()

	ds, err := ReadJSON(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", j.Path, err)
	}
	ds.LoadTime = time.Since(start)
	return ds, nil
}

// ReadJSON parses an array of objects. Columns are ordered by first
// appearance; numbers are kept as int64 when whole, float64 otherwise.
func ReadJSON(ctx context.Context, r io.Reader) (*Dataset, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &Dataset{}, nil
		}
		return nil, fmt.Errorf("failed to parse json: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, fmt.Errorf("expected an array of objects")
	}

	var (
		columns []string
		seen    = make(map[string]bool)
		records []grid.Record
	)
	for dec.More() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		// Keys are read token by token to keep their order.
		keys, obj, err := decodeObject(dec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", len(records)+1, err)
		}
		for _, k := range keys {
			if !seen[k] {
				seen[k] = true
				columns = append(columns, k)
			}
		}
		records = append(records, obj)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to parse json: %w", err)
	}

	return &Dataset{Columns: columns, Records: records}, nil
}

func decodeObject(dec *json.Decoder) ([]string, grid.Record, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("expected an object")
	}

	var keys []string
	rec := make(grid.Record)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, _ := tok.(string)
		var raw any
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, err
		}
		keys = append(keys, key)
		rec[key] = normalizeJSON(raw)
	}
	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}
	return keys, rec, nil
}

func normalizeJSON(v any) any {
	switch val := v.(type) {
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return n
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case map[string]any, []any:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	default:
		return val
	}
}
