// internal/application/querybuilder/descriptor.go
package querybuilder

import (
	"sort"
	"strings"
)

// ========================
// Operators (closed set)
// ========================

type Op string

const (
	OpEq  Op = "eq"
	OpGt  Op = "gt"
	OpGte Op = "gte"
	OpLt  Op = "lt"
	OpLte Op = "lte"
)

// Condition is one compiled predicate leaf. Value is pre-parsed at compile
// time: string for equality, float64 or time.Time for range operators.
type Condition struct {
	Field string
	Op    Op
	Value any
}

// SearchSpec is the case-insensitive OR-match across searchable fields.
type SearchSpec struct {
	Term   string
	Fields []string
}

// SortKey is one sort column; Desc when the raw key carried a "-" prefix.
type SortKey struct {
	Field string
	Desc  bool
}

// PageSpec holds normalized 1-based pagination. Zero value = "not paginated".
type PageSpec struct {
	Page  int
	Limit int
	Skip  int
}

// Projection is the field allow/deny list. When neither list is set the
// document passes through untouched (minus repo-declared internal fields,
// which compile into Exclude).
type Projection struct {
	Include []string
	Exclude []string
}

// Descriptor is the deferred query configuration one builder accumulates.
// Base carries the already-scoped predicate (e.g. "orders of customer X")
// and is always ANDed in front of the compiled filters.
type Descriptor struct {
	Base       []Condition
	Search     *SearchSpec
	Filters    []Condition
	SortKeys   []SortKey
	Page       PageSpec
	Projection Projection
}

// ========================
// Evaluation
// ========================

// Match reports whether doc satisfies base AND search AND every filter.
// Pagination and projection never affect matching.
func (d Descriptor) Match(doc Document) bool {
	for _, c := range d.Base {
		if !matchCondition(doc, c) {
			return false
		}
	}
	if d.Search != nil && !matchSearch(doc, *d.Search) {
		return false
	}
	for _, c := range d.Filters {
		if !matchCondition(doc, c) {
			return false
		}
	}
	return true
}

// Apply runs the full pipeline over an in-memory snapshot of the collection:
// filter -> sort -> skip/limit -> project, always in that order no matter
// how the fluent methods were invoked.
func (d Descriptor) Apply(docs []Document) []Document {
	out := make([]Document, 0, len(docs))
	for _, doc := range docs {
		if d.Match(doc) {
			out = append(out, doc)
		}
	}

	if len(d.SortKeys) > 0 {
		keys := d.SortKeys
		sort.SliceStable(out, func(i, j int) bool {
			for _, k := range keys {
				ci := firstValue(out[i], k.Field)
				cj := firstValue(out[j], k.Field)
				cmp := compareValues(ci, cj)
				if cmp == 0 {
					continue
				}
				if k.Desc {
					return cmp > 0
				}
				return cmp < 0
			}
			return false
		})
	}

	if d.Page.Limit > 0 {
		if d.Page.Skip >= len(out) {
			out = nil
		} else {
			out = out[d.Page.Skip:]
			if len(out) > d.Page.Limit {
				out = out[:d.Page.Limit]
			}
		}
	}

	if len(d.Projection.Include) > 0 || len(d.Projection.Exclude) > 0 {
		projected := make([]Document, len(out))
		for i, doc := range out {
			projected[i] = d.Projection.apply(doc)
		}
		out = projected
	}
	return out
}

func matchSearch(doc Document, s SearchSpec) bool {
	term := strings.ToLower(strings.TrimSpace(s.Term))
	if term == "" {
		return true
	}
	for _, field := range s.Fields {
		for _, v := range lookup(doc, field) {
			if str, ok := asString(v); ok {
				if strings.Contains(strings.ToLower(str), term) {
					return true
				}
			}
		}
	}
	return false
}

func matchCondition(doc Document, c Condition) bool {
	candidates := lookup(doc, c.Field)
	if len(candidates) == 0 {
		return false
	}
	for _, v := range candidates {
		if evalOp(v, c.Op, c.Value) {
			return true
		}
	}
	return false
}

func evalOp(docVal any, op Op, condVal any) bool {
	if op == OpEq {
		return equalLoose(docVal, condVal)
	}

	var cmp int
	switch want := condVal.(type) {
	case float64:
		got, ok := asFloat(docVal)
		if !ok {
			return false
		}
		switch {
		case got < want:
			cmp = -1
		case got > want:
			cmp = 1
		}
	default:
		// time.Time; compile guarantees range values are float64 or time.Time
		wantT, ok := asTime(condVal)
		if !ok {
			return false
		}
		gotT, ok := asTime(docVal)
		if !ok {
			return false
		}
		switch {
		case gotT.Before(wantT):
			cmp = -1
		case gotT.After(wantT):
			cmp = 1
		}
	}

	switch op {
	case OpGt:
		return cmp > 0
	case OpGte:
		return cmp >= 0
	case OpLt:
		return cmp < 0
	case OpLte:
		return cmp <= 0
	}
	return false
}

// equalLoose compares a document value against a raw query-string value:
// numeric when both sides are numeric, string otherwise.
func equalLoose(docVal, condVal any) bool {
	want, _ := asString(condVal)
	if df, ok := asFloatStrict(docVal); ok {
		if wf, ok := asFloat(want); ok {
			return df == wf
		}
	}
	got, ok := asString(docVal)
	if !ok {
		return false
	}
	return got == want
}

func firstValue(doc Document, path string) any {
	vals := lookup(doc, path)
	if len(vals) == 0 {
		return nil
	}
	return vals[0]
}

func (p Projection) apply(doc Document) Document {
	out := make(Document, len(doc))
	if len(p.Include) > 0 {
		for _, f := range p.Include {
			if v, ok := doc[f]; ok {
				out[f] = v
			}
		}
		// the document identity always survives an include projection
		if v, ok := doc["id"]; ok {
			out["id"] = v
		}
		return out
	}
	for k, v := range doc {
		out[k] = v
	}
	for _, f := range p.Exclude {
		delete(out, f)
	}
	return out
}
