// internal/adapters/in/http/handlers/helpers.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	qb "github.com/ridoy-softworldit/bdm-bazar-backend/internal/application/querybuilder"
)

// listEnvelope is the response shape for every collection endpoint.
type listEnvelope struct {
	Meta qb.Meta `json:"meta"`
	Data any     `json:"data"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeList(w http.ResponseWriter, docs []qb.Document, meta qb.Meta) {
	if docs == nil {
		docs = []qb.Document{}
	}
	writeJSON(w, http.StatusOK, listEnvelope{Meta: meta, Data: docs})
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method_not_allowed")
}

func notFound(w http.ResponseWriter) {
	writeError(w, http.StatusNotFound, "not_found")
}

// queryParams flattens r.URL.Query() into the single-value map the
// query builder consumes. Repeated keys keep the first value.
func queryParams(r *http.Request) map[string]string {
	q := r.URL.Query()
	params := make(map[string]string, len(q))
	for k, vs := range q {
		if len(vs) > 0 {
			params[k] = vs[0]
		}
	}
	return params
}

// pathTail returns the path segment after prefix, stripped of any
// trailing slash. "" means the collection itself was addressed.
func pathTail(path, prefix string) string {
	tail := strings.TrimPrefix(path, prefix)
	return strings.Trim(tail, "/")
}
