// internal/adapters/out/firestore/common/fsutil.go
package common

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	qb "github.com/ridoy-softworldit/bdm-bazar-backend/internal/application/querybuilder"
)

// CollectionSource adapts one Firestore collection to querybuilder.Source.
// The builder does filtering/sorting/projection itself, so Fetch streams
// the raw documents with the doc ID injected under "id".
type CollectionSource struct {
	Col *firestore.CollectionRef
}

var _ qb.Source = CollectionSource{}

func (s CollectionSource) Fetch(ctx context.Context) ([]qb.Document, error) {
	it := s.Col.Documents(ctx)
	defer it.Stop()

	var out []qb.Document
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		data := doc.Data()
		if data == nil {
			data = map[string]any{}
		}
		data["id"] = doc.Ref.ID
		out = append(out, qb.Document(data))
	}
	return out, nil
}

// ========================
// decode helpers (doc.Data() -> domain)
// ========================

func GetString(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func GetFloat(m map[string]any, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}

func GetInt(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case int64:
		return int(v)
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

func GetTime(m map[string]any, key string) time.Time {
	if v, ok := m[key].(time.Time); ok {
		return v
	}
	return time.Time{}
}

func GetTimePtr(m map[string]any, key string) *time.Time {
	if v, ok := m[key].(time.Time); ok && !v.IsZero() {
		t := v.UTC()
		return &t
	}
	return nil
}

func GetMap(m map[string]any, key string) map[string]any {
	if v, ok := m[key].(map[string]any); ok {
		return v
	}
	return map[string]any{}
}

func GetSlice(m map[string]any, key string) []any {
	if v, ok := m[key].([]any); ok {
		return v
	}
	return nil
}

func GetStringSlice(m map[string]any, key string) []string {
	var out []string
	for _, v := range GetSlice(m, key) {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
