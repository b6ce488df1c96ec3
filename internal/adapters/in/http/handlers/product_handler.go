// internal/adapters/in/http/handlers/product_handler.go
package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	usecase "github.com/ridoy-softworldit/bdm-bazar-backend/internal/application/usecase"
	productdom "github.com/ridoy-softworldit/bdm-bazar-backend/internal/domain/product"
)

// maxImageBytes bounds featured-image uploads (8 MiB).
const maxImageBytes = 8 << 20

// ProductHandler serves the /products endpoints.
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

func NewProductHandler(uc *usecase.ProductUsecase) http.Handler {
	return &ProductHandler{uc: uc}
}

func (h *ProductHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	tail := pathTail(r.URL.Path, "/products")

	switch {
	case tail == "" && r.Method == http.MethodGet:
		h.list(w, r)
	case tail == "" && r.Method == http.MethodPost:
		h.create(w, r)

	case tail == "search" && r.Method == http.MethodGet:
		h.quickSearch(w, r)

	case strings.HasSuffix(tail, "/featured-image") && r.Method == http.MethodPut:
		h.featuredImage(w, r, strings.TrimSuffix(tail, "/featured-image"))

	case tail != "" && r.Method == http.MethodGet:
		h.get(w, r, tail)
	case tail != "" && (r.Method == http.MethodPatch || r.Method == http.MethodPut):
		h.update(w, r, tail)
	case tail != "" && r.Method == http.MethodDelete:
		h.delete(w, r, tail)

	case tail == "":
		methodNotAllowed(w)
	default:
		notFound(w)
	}
}

type createProductDTO struct {
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	BrandID     string   `json:"brandId"`
	Price       float64  `json:"price"`
	SalePrice   float64  `json:"salePrice"`
	Stock       int      `json:"stock"`
	Gallery     []string `json:"gallery"`
}

type updateProductDTO struct {
	Name        *string   `json:"name"`
	Slug        *string   `json:"slug"`
	Description *string   `json:"description"`
	BrandID     *string   `json:"brandId"`
	Price       *float64  `json:"price"`
	SalePrice   *float64  `json:"salePrice"`
	Stock       *int      `json:"stock"`
	FeaturedImg *string   `json:"featuredImg"`
	Gallery     *[]string `json:"gallery"`
}

// GET /products
func (h *ProductHandler) list(w http.ResponseWriter, r *http.Request) {
	docs, meta, err := h.uc.List(r.Context(), queryParams(r))
	if err != nil {
		writeProductErr(w, err)
		return
	}
	writeList(w, docs, meta)
}

// GET /products/search?q=term
func (h *ProductHandler) quickSearch(w http.ResponseWriter, r *http.Request) {
	term := strings.TrimSpace(r.URL.Query().Get("q"))
	docs, err := h.uc.QuickSearch(r.Context(), term)
	if err != nil {
		writeProductErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": docs})
}

// POST /products
func (h *ProductHandler) create(w http.ResponseWriter, r *http.Request) {
	var dto createProductDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	p, err := productdom.New(dto.Name, dto.Slug, dto.Description, dto.BrandID, dto.Price, dto.SalePrice, dto.Stock)
	if err != nil {
		writeProductErr(w, err)
		return
	}
	p.Gallery = dto.Gallery

	created, err := h.uc.Create(r.Context(), p)
	if err != nil {
		writeProductErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// GET /products/{id}
func (h *ProductHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	p, err := h.uc.GetByID(r.Context(), id)
	if err != nil {
		writeProductErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// PATCH /products/{id}
func (h *ProductHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	var dto updateProductDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	patch := productdom.Patch{
		Name:        dto.Name,
		Slug:        dto.Slug,
		Description: dto.Description,
		BrandID:     dto.BrandID,
		Price:       dto.Price,
		SalePrice:   dto.SalePrice,
		Stock:       dto.Stock,
		FeaturedImg: dto.FeaturedImg,
		Gallery:     dto.Gallery,
	}

	p, err := h.uc.Update(r.Context(), id, patch)
	if err != nil {
		writeProductErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// DELETE /products/{id}
func (h *ProductHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.uc.Delete(r.Context(), id); err != nil {
		writeProductErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// PUT /products/{id}/featured-image
// Body is the raw image; Content-Type tells the store what it is.
func (h *ProductHandler) featuredImage(w http.ResponseWriter, r *http.Request, id string) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxImageBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read body")
		return
	}
	if len(data) == 0 {
		writeError(w, http.StatusBadRequest, "empty image body")
		return
	}
	if len(data) > maxImageBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "image too large")
		return
	}

	p, err := h.uc.SaveFeaturedImage(r.Context(), id, r.Header.Get("Content-Type"), data)
	if err != nil {
		writeProductErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func writeProductErr(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch err {
	case productdom.ErrNotFound:
		code = http.StatusNotFound
	case productdom.ErrConflict:
		code = http.StatusConflict
	case productdom.ErrInvalidID, productdom.ErrInvalidName, productdom.ErrInvalidPrice:
		code = http.StatusBadRequest
	case usecase.ErrMediaUnavailable:
		code = http.StatusServiceUnavailable
	}
	writeError(w, code, err.Error())
}
