// internal/application/querybuilder/compile.go
package querybuilder

import (
	"strconv"
	"strings"
)

// ========================
// Defaults / reserved keys
// ========================

const (
	DefaultPage      = 1
	DefaultLimit     = 10
	DefaultSortField = "createdAt" // newest first keeps pagination deterministic
)

// Control parameters consumed by the builder itself. They are never
// interpreted as field filters.
const (
	ParamSearchTerm = "searchTerm"
	ParamSort       = "sort"
	ParamPage       = "page"
	ParamLimit      = "limit"
	ParamFields     = "fields"
)

var reservedParams = map[string]struct{}{
	ParamSearchTerm: {},
	ParamSort:       {},
	ParamPage:       {},
	ParamLimit:      {},
	ParamFields:     {},
}

// IsReserved reports whether key is a builder control parameter.
func IsReserved(key string) bool {
	_, ok := reservedParams[key]
	return ok
}

// ========================
// Compilers (pure)
// ========================

// CompileSearch builds the OR-match spec from the searchTerm parameter.
// Returns nil when no term was supplied.
func CompileSearch(params map[string]string, fields []string) *SearchSpec {
	term := strings.TrimSpace(params[ParamSearchTerm])
	if term == "" || len(fields) == 0 {
		return nil
	}
	return &SearchSpec{Term: term, Fields: fields}
}

// CompileFilter turns every non-reserved parameter into an AND condition.
// "field[gte]" style keys become range conditions; a range whose value is
// neither numeric nor a date is dropped (fail open; strict validation
// belongs upstream).
func CompileFilter(params map[string]string) []Condition {
	var conds []Condition
	for key, raw := range params {
		if IsReserved(key) {
			continue
		}
		field, op, ok := splitFilterKey(key)
		if !ok {
			continue
		}
		if op == OpEq {
			conds = append(conds, Condition{Field: field, Op: OpEq, Value: raw})
			continue
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			conds = append(conds, Condition{Field: field, Op: op, Value: f})
			continue
		}
		if t, ok := parseTimeString(raw); ok {
			conds = append(conds, Condition{Field: field, Op: op, Value: t})
			continue
		}
		// malformed range value: ignore the condition entirely
	}
	return conds
}

// splitFilterKey parses "price[gte]" into ("price", OpGte). A plain key is
// an equality. An unknown bracket suffix is rejected.
func splitFilterKey(key string) (string, Op, bool) {
	open := strings.IndexByte(key, '[')
	if open < 0 {
		return key, OpEq, key != ""
	}
	if !strings.HasSuffix(key, "]") || open == 0 {
		return "", OpEq, false
	}
	field := key[:open]
	switch Op(key[open+1 : len(key)-1]) {
	case OpGt:
		return field, OpGt, true
	case OpGte:
		return field, OpGte, true
	case OpLt:
		return field, OpLt, true
	case OpLte:
		return field, OpLte, true
	}
	return "", OpEq, false
}

// CompileSort parses the comma-separated sort parameter ("-createdAt,name").
// Unspecified -> fixed default: newest first.
func CompileSort(params map[string]string) []SortKey {
	raw := strings.TrimSpace(params[ParamSort])
	if raw == "" {
		return []SortKey{{Field: DefaultSortField, Desc: true}}
	}
	var keys []SortKey
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" || part == "-" {
			continue
		}
		if strings.HasPrefix(part, "-") {
			keys = append(keys, SortKey{Field: part[1:], Desc: true})
			continue
		}
		keys = append(keys, SortKey{Field: part})
	}
	if len(keys) == 0 {
		return []SortKey{{Field: DefaultSortField, Desc: true}}
	}
	return keys
}

// CompilePage normalizes page/limit. Non-numeric or non-positive input
// falls back to the defaults; skip = (page-1)*limit.
func CompilePage(params map[string]string) PageSpec {
	page := atoiDefault(params[ParamPage], DefaultPage)
	if page < 1 {
		page = DefaultPage
	}
	limit := atoiDefault(params[ParamLimit], DefaultLimit)
	if limit < 1 {
		limit = DefaultLimit
	}
	return PageSpec{Page: page, Limit: limit, Skip: (page - 1) * limit}
}

// CompileFields parses the fields parameter ("name,price" or "-password").
// internalOnly lists fields dropped when the caller selected nothing.
func CompileFields(params map[string]string, internalOnly ...string) Projection {
	raw := strings.TrimSpace(params[ParamFields])
	if raw == "" {
		return Projection{Exclude: internalOnly}
	}
	var p Projection
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" || part == "-" {
			continue
		}
		if strings.HasPrefix(part, "-") {
			p.Exclude = append(p.Exclude, part[1:])
			continue
		}
		p.Include = append(p.Include, part)
	}
	if len(p.Include) == 0 && len(p.Exclude) == 0 {
		return Projection{Exclude: internalOnly}
	}
	return p
}

func atoiDefault(raw string, def int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
