package grid

import (
	"fmt"
	"strconv"
	"time"
)

// Record is one row of input data keyed by accessor key.
type Record map[string]any

// Row is a record with a stable id: its position in the original dataset.
type Row struct {
	ID     string
	Record Record
}

// Column describes how a grid column reads, labels and renders its data.
type Column struct {
	Key    string // accessor key into a Record; also the column id
	Header string

	// Cell overrides the default cell rendering when set.
	Cell func(Record) string
	// HeaderFunc overrides Header when set.
	HeaderFunc func() string

	DisableHiding  bool
	DisableSorting bool
	Hidden         bool // initial visibility
}

// Title returns the text shown in the column header.
func (c Column) Title() string {
	if c.HeaderFunc != nil {
		return c.HeaderFunc()
	}
	if c.Header != "" {
		return c.Header
	}
	return c.Key
}

// Value returns the raw value of the column in r.
func (c Column) Value(r Record) any {
	return r[c.Key]
}

// Render returns the display text of the column in r.
func (c Column) Render(r Record) string {
	if c.Cell != nil {
		return c.Cell(r)
	}
	return FormatValue(r[c.Key])
}

// FormatValue turns a record value into display text. Nil becomes the empty
// string and whole floats drop their fraction.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 && val.Nanosecond() == 0 {
			return val.Format(time.DateOnly)
		}
		return val.Format(time.DateTime)
	case []byte:
		return string(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
