// internal/adapters/in/http/handlers/user_handler.go
package handlers

import (
	"net/http"
	"strings"

	usecase "github.com/ridoy-softworldit/bdm-bazar-backend/internal/application/usecase"
	userdom "github.com/ridoy-softworldit/bdm-bazar-backend/internal/domain/user"
)

// UserHandler serves the /users endpoints (read-only).
type UserHandler struct {
	uc *usecase.UserUsecase
}

func NewUserHandler(uc *usecase.UserUsecase) http.Handler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	tail := pathTail(r.URL.Path, "/users")

	switch {
	case tail == "" && r.Method == http.MethodGet:
		h.list(w, r)
	case tail != "" && r.Method == http.MethodGet:
		h.get(w, r, tail)
	default:
		methodNotAllowed(w)
	}
}

// GET /users
func (h *UserHandler) list(w http.ResponseWriter, r *http.Request) {
	docs, meta, err := h.uc.List(r.Context(), queryParams(r))
	if err != nil {
		writeUserErr(w, err)
		return
	}
	writeList(w, docs, meta)
}

// GET /users/{id}
func (h *UserHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	id = strings.TrimSpace(id)
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	u, err := h.uc.GetByID(r.Context(), id)
	if err != nil {
		writeUserErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func writeUserErr(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch err {
	case userdom.ErrInvalidID:
		code = http.StatusBadRequest
	case userdom.ErrNotFound:
		code = http.StatusNotFound
	}
	writeError(w, code, err.Error())
}
