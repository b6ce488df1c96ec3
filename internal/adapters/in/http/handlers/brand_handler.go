// internal/adapters/in/http/handlers/brand_handler.go
package handlers

import (
	"encoding/json"
	"net/http"

	usecase "github.com/ridoy-softworldit/bdm-bazar-backend/internal/application/usecase"
	branddom "github.com/ridoy-softworldit/bdm-bazar-backend/internal/domain/brand"
)

// BrandHandler serves the /brands endpoints.
type BrandHandler struct {
	uc *usecase.BrandUsecase
}

func NewBrandHandler(uc *usecase.BrandUsecase) http.Handler {
	return &BrandHandler{uc: uc}
}

func (h *BrandHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	tail := pathTail(r.URL.Path, "/brands")

	switch {
	case tail == "" && r.Method == http.MethodGet:
		h.list(w, r)
	case tail == "" && r.Method == http.MethodPost:
		h.create(w, r)

	case tail != "" && r.Method == http.MethodGet:
		h.get(w, r, tail)
	case tail != "" && (r.Method == http.MethodPatch || r.Method == http.MethodPut):
		h.update(w, r, tail)
	case tail != "" && r.Method == http.MethodDelete:
		h.delete(w, r, tail)

	default:
		methodNotAllowed(w)
	}
}

type createBrandDTO struct {
	Name    string           `json:"name"`
	Slug    string           `json:"slug"`
	Details string           `json:"details"`
	Icon    branddom.Icon    `json:"icon"`
	Images  []branddom.Image `json:"images"`
}

type updateBrandDTO struct {
	Name    *string           `json:"name"`
	Slug    *string           `json:"slug"`
	Details *string           `json:"details"`
	Icon    *branddom.Icon    `json:"icon"`
	Images  *[]branddom.Image `json:"images"`
}

func (h *BrandHandler) list(w http.ResponseWriter, r *http.Request) {
	docs, meta, err := h.uc.List(r.Context(), queryParams(r))
	if err != nil {
		writeBrandErr(w, err)
		return
	}
	writeList(w, docs, meta)
}

func (h *BrandHandler) create(w http.ResponseWriter, r *http.Request) {
	var dto createBrandDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	b, err := branddom.New(dto.Name, dto.Slug, dto.Details, dto.Icon, dto.Images)
	if err != nil {
		writeBrandErr(w, err)
		return
	}

	created, err := h.uc.Create(r.Context(), b)
	if err != nil {
		writeBrandErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *BrandHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	b, err := h.uc.GetByID(r.Context(), id)
	if err != nil {
		writeBrandErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BrandHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	var dto updateBrandDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	patch := branddom.Patch{
		Name:    dto.Name,
		Slug:    dto.Slug,
		Details: dto.Details,
		Icon:    dto.Icon,
		Images:  dto.Images,
	}

	b, err := h.uc.Update(r.Context(), id, patch)
	if err != nil {
		writeBrandErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BrandHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.uc.Delete(r.Context(), id); err != nil {
		writeBrandErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func writeBrandErr(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch err {
	case branddom.ErrNotFound:
		code = http.StatusNotFound
	case branddom.ErrConflict:
		code = http.StatusConflict
	case branddom.ErrInvalidID, branddom.ErrInvalidName:
		code = http.StatusBadRequest
	}
	writeError(w, code, err.Error())
}
