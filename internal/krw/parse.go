// Package krw holds the shared won-amount parsing and formatting helpers that
// underlie every monetary comparison in the engine.
package krw

import (
	"math"
	"strconv"
	"strings"
)

// Amount coerces an arbitrary value into a won amount. It accepts numbers,
// numeric strings (thousands separators and currency symbols stripped),
// booleans, and nested {value: ...} wrappers. Anything unparsable yields 0;
// it never fails.
func Amount(v any) int64 {
	switch x := v.(type) {
	case nil:
		return 0
	case int64:
		return x
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case uint64:
		if x > math.MaxInt64 {
			return math.MaxInt64
		}
		return int64(x)
	case float64:
		return roundToInt64(x)
	case float32:
		return roundToInt64(float64(x))
	case bool:
		if x {
			return 1
		}
		return 0
	case string:
		return parseAmountString(x)
	case map[string]any:
		if inner, ok := x["value"]; ok {
			return Amount(inner)
		}
		return 0
	case *int64:
		if x == nil {
			return 0
		}
		return *x
	default:
		return 0
	}
}

// AmountFloat is Amount without integer rounding, for ratio arithmetic.
func AmountFloat(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	default:
		return float64(Amount(v))
	}
}

func parseAmountString(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	// Strip grouping separators, currency markers, and surrounding junk.
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' && b.Len() == 0:
			b.WriteRune(r)
		case r == '.':
			b.WriteRune(r)
		case r == ',' || r == ' ' || r == '_':
			// grouping, skip
		case r == '₩' || r == '원':
			// currency marker, skip
		default:
			// Any other rune ends the numeric prefix once digits were seen;
			// before that it is leading junk ("약 3,000" style) and is skipped.
			if b.Len() > 0 && strings.ContainsAny(b.String(), "0123456789") {
				return parseCleaned(b.String())
			}
		}
	}
	return parseCleaned(b.String())
}

func parseCleaned(s string) int64 {
	if s == "" || s == "-" {
		return 0
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return roundToInt64(f)
	}
	return 0
}

func roundToInt64(f float64) int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	if f > math.MaxInt64 {
		return math.MaxInt64
	}
	if f < math.MinInt64 {
		return math.MinInt64
	}
	return int64(math.Round(f))
}
