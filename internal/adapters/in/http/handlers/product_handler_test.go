package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qb "github.com/ridoy-softworldit/bdm-bazar-backend/internal/application/querybuilder"
	usecase "github.com/ridoy-softworldit/bdm-bazar-backend/internal/application/usecase"
	productdom "github.com/ridoy-softworldit/bdm-bazar-backend/internal/domain/product"
)

type stubProductRepo struct {
	products map[string]productdom.Product
	docs     []qb.Document
}

func (r *stubProductRepo) GetByID(_ context.Context, id string) (productdom.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return productdom.Product{}, productdom.ErrNotFound
	}
	return p, nil
}

func (r *stubProductRepo) GetByIDs(_ context.Context, ids []string) ([]productdom.Product, error) {
	var out []productdom.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) Docs() qb.Source { return stubSource(r.docs) }

func (r *stubProductRepo) Create(_ context.Context, p productdom.Product) (productdom.Product, error) {
	p.ID = "new-id"
	p.CreatedAt = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	r.products[p.ID] = p
	return p, nil
}

func (r *stubProductRepo) Update(_ context.Context, id string, _ productdom.Patch) (productdom.Product, error) {
	return r.products[id], nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return productdom.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

type stubSource []qb.Document

func (s stubSource) Fetch(_ context.Context) ([]qb.Document, error) { return s, nil }

func newProductHandler() (http.Handler, *stubProductRepo) {
	repo := &stubProductRepo{
		products: map[string]productdom.Product{
			"p1": {ID: "p1", Name: "Kettle", Price: 30},
			"p2": {ID: "p2", Name: "Pan", Price: 20},
		},
		docs: []qb.Document{
			{"id": "p1", "name": "Kettle", "price": 30.0, "createdAt": time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
			{"id": "p2", "name": "Pan", "price": 20.0, "createdAt": time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)},
		},
	}
	return NewProductHandler(usecase.NewProductUsecase(repo)), repo
}

func TestProductListEnvelope(t *testing.T) {
	h, _ := newProductHandler()

	req := httptest.NewRequest(http.MethodGet, "/products?limit=1&sort=-price", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Meta qb.Meta       `json:"meta"`
		Data []qb.Document `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, qb.Meta{Page: 1, Limit: 1, Total: 2, TotalPage: 2}, body.Meta)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "p1", body.Data[0]["id"])
}

func TestProductGetByID(t *testing.T) {
	h, _ := newProductHandler()

	req := httptest.NewRequest(http.MethodGet, "/products/p2", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got productdom.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Pan", got.Name)
}

func TestProductGetUnknownIs404(t *testing.T) {
	h, _ := newProductHandler()

	req := httptest.NewRequest(http.MethodGet, "/products/nope", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductCreate(t *testing.T) {
	h, repo := newProductHandler()

	body := `{"name":"Mug","slug":"mug","price":9.5,"stock":3}`
	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, repo.products, "new-id")
}

func TestProductCreateValidation(t *testing.T) {
	h, _ := newProductHandler()

	tests := []struct {
		name string
		body string
	}{
		{"not json", `{{`},
		{"missing name", `{"slug":"x","price":1}`},
		{"negative price", `{"name":"X","price":-5}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestProductQuickSearchRoute(t *testing.T) {
	h, _ := newProductHandler()

	req := httptest.NewRequest(http.MethodGet, "/products/search?q=kett", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data []qb.Document `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "p1", body.Data[0]["id"])
}

func TestProductFeaturedImageWithoutStoreIs503(t *testing.T) {
	h, _ := newProductHandler()

	req := httptest.NewRequest(http.MethodPut, "/products/p1/featured-image", strings.NewReader("png-bytes"))
	req.Header.Set("Content-Type", "image/png")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestProductMethodNotAllowed(t *testing.T) {
	h, _ := newProductHandler()

	req := httptest.NewRequest(http.MethodDelete, "/products", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
