// internal/adapters/in/http/handlers/review_handler.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	usecase "github.com/ridoy-softworldit/bdm-bazar-backend/internal/application/usecase"
	reviewdom "github.com/ridoy-softworldit/bdm-bazar-backend/internal/domain/review"
)

// ReviewHandler serves the /reviews endpoints.
type ReviewHandler struct {
	uc *usecase.ReviewUsecase
}

func NewReviewHandler(uc *usecase.ReviewUsecase) http.Handler {
	return &ReviewHandler{uc: uc}
}

func (h *ReviewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	tail := pathTail(r.URL.Path, "/reviews")

	switch {
	case tail == "" && r.Method == http.MethodGet:
		h.listByProduct(w, r)
	case tail == "" && r.Method == http.MethodPost:
		h.create(w, r)
	case tail != "" && r.Method == http.MethodDelete:
		h.delete(w, r, tail)
	default:
		methodNotAllowed(w)
	}
}

type createReviewDTO struct {
	ProductID string `json:"productId"`
	UserID    string `json:"userId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// GET /reviews?productId=...
func (h *ReviewHandler) listByProduct(w http.ResponseWriter, r *http.Request) {
	productID := strings.TrimSpace(r.URL.Query().Get("productId"))
	if productID == "" {
		writeError(w, http.StatusBadRequest, "productId is required")
		return
	}

	docs, meta, err := h.uc.ListByProduct(r.Context(), productID, queryParams(r))
	if err != nil {
		writeReviewErr(w, err)
		return
	}
	writeList(w, docs, meta)
}

// POST /reviews
func (h *ReviewHandler) create(w http.ResponseWriter, r *http.Request) {
	var dto createReviewDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	rv, err := reviewdom.New(dto.ProductID, dto.UserID, dto.Rating, dto.Comment)
	if err != nil {
		writeReviewErr(w, err)
		return
	}

	created, err := h.uc.Create(r.Context(), rv)
	if err != nil {
		writeReviewErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// DELETE /reviews/{id}
func (h *ReviewHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.uc.Delete(r.Context(), id); err != nil {
		writeReviewErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func writeReviewErr(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch err {
	case reviewdom.ErrNotFound:
		code = http.StatusNotFound
	case reviewdom.ErrInvalidID, reviewdom.ErrInvalidTarget, reviewdom.ErrInvalidRating:
		code = http.StatusBadRequest
	}
	writeError(w, code, err.Error())
}
