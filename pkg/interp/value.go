package interp

import (
	"math"
	"strconv"
	"strings"
)

// Value is a Logo value: float64, string, bool, []Value or nil (no value).
type Value = any

// toNumber converts a value to float64. Numeric words are accepted.
func toNumber(v Value) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// isTruthy decides a condition. TRUE and FALSE words count as booleans.
func isTruthy(v Value) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		switch val {
		case "TRUE":
			return true
		case "FALSE", "":
			return false
		}
		return true
	case float64:
		return val != 0 && !math.IsNaN(val)
	case nil:
		return false
	default:
		return true
	}
}

// valuesEqual compares two values. Values of different types are never equal.
func valuesEqual(a, b Value) bool {
	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case []Value:
		bv, ok := b.([]Value)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !valuesEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case nil:
		return b == nil
	default:
		return false
	}
}

// compareValues applies <, >, <= or >=. Numbers compare numerically,
// words lexically, and anything else is false.
func compareValues(op string, a, b Value) bool {
	var c int
	as, aStr := a.(string)
	bs, bStr := b.(string)
	switch {
	case aStr && bStr:
		an, aok := toNumber(as)
		bn, bok := toNumber(bs)
		if aok && bok {
			c = compareFloat(an, bn)
		} else {
			c = strings.Compare(as, bs)
		}
	default:
		an, aok := toNumber(a)
		bn, bok := toNumber(b)
		if !aok || !bok || math.IsNaN(an) || math.IsNaN(bn) {
			return false
		}
		c = compareFloat(an, bn)
	}
	switch op {
	case "<":
		return c < 0
	case ">":
		return c > 0
	case "<=":
		return c <= 0
	case ">=":
		return c >= 0
	}
	return false
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// typeName describes a value for error messages.
func typeName(v Value) string {
	switch v.(type) {
	case float64:
		return "a number"
	case string:
		return "a word"
	case []Value:
		return "a list"
	case bool:
		return "TRUE/FALSE"
	case nil:
		return "nothing"
	default:
		return "something unknown"
	}
}
