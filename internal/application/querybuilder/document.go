// internal/application/querybuilder/document.go
package querybuilder

import (
	"strconv"
	"strings"
	"time"
)

// Document is one JSON-like record as stored in the document database.
// Repositories hand the builder raw documents so that projection can
// drop fields without fighting the static shape of a domain struct.
type Document map[string]any

// lookup resolves a dotted path ("customerInfo.name", "orderInfo.status")
// against a document. Arrays along the path are unwound, so a path into
// an array of maps yields one candidate per element (Mongo match semantics:
// a condition on an array field holds when ANY element satisfies it).
func lookup(doc Document, path string) []any {
	parts := strings.Split(path, ".")
	current := []any{map[string]any(doc)}

	for _, part := range parts {
		var next []any
		for _, v := range current {
			switch node := v.(type) {
			case map[string]any:
				if child, ok := node[part]; ok {
					next = append(next, child)
				}
			case Document:
				if child, ok := node[part]; ok {
					next = append(next, child)
				}
			case []any:
				for _, elem := range node {
					if m, ok := elem.(map[string]any); ok {
						if child, ok := m[part]; ok {
							next = append(next, child)
						}
					}
				}
			}
		}
		current = next
		if len(current) == 0 {
			return nil
		}
	}

	// Unwind trailing arrays so callers always see scalar candidates.
	var out []any
	for _, v := range current {
		if arr, ok := v.([]any); ok {
			out = append(out, arr...)
			continue
		}
		out = append(out, v)
	}
	return out
}

// ========================
// value coercion
// ========================

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		return parseTimeString(t)
	}
	return time.Time{}, false
}

func parseTimeString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case bool:
		return strconv.FormatBool(s), true
	}
	if f, ok := asFloat(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64), true
	}
	if t, ok := v.(time.Time); ok {
		return t.UTC().Format(time.RFC3339Nano), true
	}
	return "", false
}

// compareValues orders two document values for sorting: numerics before
// strings, times compared as times. Returns <0, 0, >0.
func compareValues(a, b any) int {
	if ta, ok := asTimeStrict(a); ok {
		if tb, ok := asTimeStrict(b); ok {
			switch {
			case ta.Before(tb):
				return -1
			case ta.After(tb):
				return 1
			default:
				return 0
			}
		}
	}
	if fa, ok := asFloatStrict(a); ok {
		if fb, ok := asFloatStrict(b); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			default:
				return 0
			}
		}
	}
	sa, _ := asString(a)
	sb, _ := asString(b)
	return strings.Compare(sa, sb)
}

// Strict variants do not coerce free-form strings, so "abc" never becomes 0
// and string columns sort lexicographically.
func asFloatStrict(v any) (float64, bool) {
	if _, isStr := v.(string); isStr {
		return 0, false
	}
	return asFloat(v)
}

func asTimeStrict(v any) (time.Time, bool) {
	t, ok := v.(time.Time)
	return t, ok
}
