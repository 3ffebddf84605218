package records

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Date layouts accepted by the raw collections, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// stringValue coerces a raw field to a trimmed string. Numeric identifiers
// arrive as JSON numbers in some exports, so those are rendered back to their
// canonical decimal form.
func stringValue(row Row, key string) (string, bool) {
	raw, ok := row[key]
	if !ok || raw == nil {
		return "", false
	}
	switch v := raw.(type) {
	case string:
		s := strings.TrimSpace(v)
		return s, s != ""
	case json.Number:
		return v.String(), true
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10), true
		}
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}

// floatValue coerces a raw field to a float64, accepting numbers and
// stringly-typed numbers.
func floatValue(row Row, key string) (float64, bool) {
	raw, ok := row[key]
	if !ok || raw == nil {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// intValue coerces a raw field to an int, truncating fractional input.
func intValue(row Row, key string) (int, bool) {
	f, ok := floatValue(row, key)
	if !ok {
		return 0, false
	}
	return int(f), true
}

// timeValue coerces a raw field to a timestamp using the accepted layouts.
func timeValue(row Row, key string) (time.Time, bool) {
	s, ok := stringValue(row, key)
	if !ok {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// optionalString returns the coerced field or the fallback when absent.
func optionalString(row Row, key, fallback string) string {
	if s, ok := stringValue(row, key); ok {
		return s
	}
	return fallback
}

// nonNegative clamps monetary values; the source data occasionally carries
// sign errors and the metric formulas assume non-negative amounts.
func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
