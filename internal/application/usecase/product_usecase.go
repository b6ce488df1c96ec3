// internal/application/usecase/product_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"

	qb "github.com/ridoy-softworldit/bdm-bazar-backend/internal/application/querybuilder"
	productdom "github.com/ridoy-softworldit/bdm-bazar-backend/internal/domain/product"
)

// quickSearchLimit caps the lightweight "?q=" search box results.
const quickSearchLimit = 10

// ErrMediaUnavailable means no media bucket was configured at startup.
var ErrMediaUnavailable = errors.New("media store not configured")

// MediaStore persists binary media and returns a public URL.
type MediaStore interface {
	Save(ctx context.Context, objectPath, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, objectPath string) error
}

type ProductUsecase struct {
	repo  productdom.Repository
	media MediaStore // optional
}

func NewProductUsecase(repo productdom.Repository) *ProductUsecase {
	return &ProductUsecase{repo: repo}
}

func (u *ProductUsecase) WithMediaStore(m MediaStore) *ProductUsecase {
	u.media = m
	return u
}

// ==============================
// Queries
// ==============================

func (u *ProductUsecase) GetByID(ctx context.Context, id string) (productdom.Product, error) {
	return u.repo.GetByID(ctx, strings.TrimSpace(id))
}

func (u *ProductUsecase) List(ctx context.Context, params map[string]string) ([]qb.Document, qb.Meta, error) {
	q := qb.New(u.repo.Docs(), params).
		Search(productdom.SearchableFields...).
		Filter().
		Sort().
		Paginate().
		Fields()

	return q.ExecuteWithMeta(ctx)
}

// QuickSearch backs the storefront search box: substring match over the
// searchable fields, first page only, capped hard.
func (u *ProductUsecase) QuickSearch(ctx context.Context, term string) ([]qb.Document, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, nil
	}
	params := map[string]string{
		qb.ParamSearchTerm: term,
		qb.ParamLimit:      strconv.Itoa(quickSearchLimit),
	}
	return qb.New(u.repo.Docs(), params).
		Search(productdom.SearchableFields...).
		Sort().
		Paginate().
		Fields().
		Execute(ctx)
}

// ==============================
// Commands
// ==============================

func (u *ProductUsecase) Create(ctx context.Context, p productdom.Product) (productdom.Product, error) {
	return u.repo.Create(ctx, p)
}

func (u *ProductUsecase) Update(ctx context.Context, id string, patch productdom.Patch) (productdom.Product, error) {
	id = strings.TrimSpace(id)
	if _, err := u.repo.GetByID(ctx, id); err != nil {
		return productdom.Product{}, err
	}
	return u.repo.Update(ctx, id, patch)
}

// Delete removes the product and, best-effort, its stored featured image.
func (u *ProductUsecase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if err := u.repo.Delete(ctx, id); err != nil {
		return err
	}
	if u.media != nil {
		if err := u.media.Delete(ctx, featuredImagePath(id)); err != nil {
			log.Printf("[product] WARN: featured image cleanup for %s failed: %v", id, err)
		}
	}
	return nil
}

// SaveFeaturedImage stores the raw image bytes in the media bucket and
// points the product's featuredImg at the resulting URL.
func (u *ProductUsecase) SaveFeaturedImage(ctx context.Context, id, contentType string, data []byte) (productdom.Product, error) {
	id = strings.TrimSpace(id)
	if u.media == nil {
		return productdom.Product{}, ErrMediaUnavailable
	}
	if _, err := u.repo.GetByID(ctx, id); err != nil {
		return productdom.Product{}, err
	}
	url, err := u.media.Save(ctx, featuredImagePath(id), contentType, data)
	if err != nil {
		return productdom.Product{}, err
	}
	return u.repo.Update(ctx, id, productdom.Patch{FeaturedImg: &url})
}

func featuredImagePath(id string) string {
	return "products/" + id + "/featured"
}
