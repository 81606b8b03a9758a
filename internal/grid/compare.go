package grid

import (
	"cmp"
	"strings"
	"time"
)

// Value kinds in sort order. Values of different kinds never compare as
// text, so a column mixing numbers and words sorts the same way whatever
// order the rows arrive in.
const (
	kindNumber = iota
	kindTime
	kindBool
	kindText
)

func kindOf(v any) int {
	if _, ok := toFloat(v); ok {
		return kindNumber
	}
	switch v.(type) {
	case time.Time:
		return kindTime
	case bool:
		return kindBool
	}
	return kindText
}

// Compare orders two record values. Numbers sort before times, times
// before bools and bools before text. Within a kind numbers compare
// numerically, times chronologically, bools false before true and text
// case-insensitively. Nil sorts after every other value.
func Compare(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return 1
		default:
			return -1
		}
	}

	ka, kb := kindOf(a), kindOf(b)
	if ka != kb {
		return cmp.Compare(ka, kb)
	}

	switch ka {
	case kindNumber:
		fa, _ := toFloat(a)
		fb, _ := toFloat(b)
		return cmp.Compare(fa, fb)
	case kindTime:
		return a.(time.Time).Compare(b.(time.Time))
	case kindBool:
		ba, bb := a.(bool), b.(bool)
		switch {
		case ba == bb:
			return 0
		case !ba:
			return -1
		default:
			return 1
		}
	}

	sa, sb := FormatValue(a), FormatValue(b)
	if c := strings.Compare(strings.ToLower(sa), strings.ToLower(sb)); c != 0 {
		return c
	}
	return strings.Compare(sa, sb)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
