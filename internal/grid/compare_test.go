package grid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		a, b any
		want int
	}{
		{"ints", int64(2), int64(10), -1},
		{"mixed numbers", 2.5, int32(2), 1},
		{"equal numbers", uint8(7), 7.0, 0},
		{"times", day, day.Add(time.Hour), -1},
		{"bools", true, false, 1},
		{"text ignores case", "apple", "Banana", -1},
		{"text tie broken by case", "a", "A", 1},
		{"number against text", int64(5), "five", -1},
		{"numeric text after numbers", "10", int64(2), 1},
		{"number before time", int64(99), day, -1},
		{"time before bool", day, false, -1},
		{"bool before text", true, "a", -1},
		{"text after bool", "false", false, 1},
		{"nil last", nil, "z", 1},
		{"nil against nil", nil, nil, 0},
		{"value before nil", int64(0), nil, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compare(tt.a, tt.b))
		})
	}
}

func TestCompareMixedKindsIsTransitive(t *testing.T) {
	values := []any{int64(2), int64(10), "10", "n/a", "1x", 2.5, true}
	for _, a := range values {
		for _, b := range values {
			assert.Equal(t, -Compare(b, a), Compare(a, b), "%v vs %v", a, b)
			for _, c := range values {
				if Compare(a, b) < 0 && Compare(b, c) < 0 {
					assert.Negative(t, Compare(a, c), "%v < %v < %v", a, b, c)
				}
			}
		}
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "x", "x"},
		{"whole float", 3.0, "3"},
		{"fraction", 2.75, "2.75"},
		{"int", int64(-4), "-4"},
		{"bool", true, "true"},
		{"date", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), "2024-01-02"},
		{"datetime", time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), "2024-01-02 03:04:05"},
		{"bytes", []byte("raw"), "raw"},
		{"duration", 90 * time.Second, "1m30s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.in))
		})
	}
}
