package interp

import (
	"math"
	"strconv"
	"strings"
)

// FormatNumber renders a number the way PRINT shows it.
// Integral values have no decimal point; very large or small ones use exponent form.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// FormatValue is the PRINT form: lists are flattened and joined with spaces.
func FormatValue(v Value) string {
	switch val := v.(type) {
	case float64:
		return FormatNumber(val)
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case []Value:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = FormatValue(item)
		}
		return strings.Join(parts, " ")
	case nil:
		return ""
	default:
		return ""
	}
}

// FormatShow is the SHOW form: lists keep their brackets.
func FormatShow(v Value) string {
	list, ok := v.([]Value)
	if !ok {
		return FormatValue(v)
	}
	var b strings.Builder
	b.WriteByte('[')
	for i, item := range list {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(FormatShow(item))
	}
	b.WriteByte(']')
	return b.String()
}
