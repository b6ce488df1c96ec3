// internal/adapters/out/firestore/product_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	fscommon "github.com/ridoy-softworldit/bdm-bazar-backend/internal/adapters/out/firestore/common"
	qb "github.com/ridoy-softworldit/bdm-bazar-backend/internal/application/querybuilder"
	productdom "github.com/ridoy-softworldit/bdm-bazar-backend/internal/domain/product"
)

type ProductRepositoryFS struct {
	Client *firestore.Client
}

func NewProductRepositoryFS(client *firestore.Client) *ProductRepositoryFS {
	return &ProductRepositoryFS{Client: client}
}

var _ productdom.Repository = (*ProductRepositoryFS)(nil)

func (r *ProductRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("products")
}

func (r *ProductRepositoryFS) Docs() qb.Source {
	return fscommon.CollectionSource{Col: r.col()}
}

func (r *ProductRepositoryFS) GetByID(ctx context.Context, id string) (productdom.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return productdom.Product{}, productdom.ErrNotFound
	}
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return productdom.Product{}, productdom.ErrNotFound
		}
		return productdom.Product{}, err
	}
	return docToProduct(snap.Ref.ID, snap.Data()), nil
}

// GetByIDs resolves many products preserving input order; missing IDs are
// skipped (deleted products simply drop out of "recently ordered").
func (r *ProductRepositoryFS) GetByIDs(ctx context.Context, ids []string) ([]productdom.Product, error) {
	out := make([]productdom.Product, 0, len(ids))
	for _, id := range ids {
		p, err := r.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, productdom.ErrNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *ProductRepositoryFS) Create(ctx context.Context, p productdom.Product) (productdom.Product, error) {
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}

	var ref *firestore.DocumentRef
	if strings.TrimSpace(p.ID) == "" {
		ref = r.col().NewDoc()
		p.ID = ref.ID
	} else {
		ref = r.col().Doc(p.ID)
	}

	if _, err := ref.Create(ctx, productToDoc(p)); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return productdom.Product{}, productdom.ErrConflict
		}
		return productdom.Product{}, err
	}
	return p, nil
}

func (r *ProductRepositoryFS) Update(ctx context.Context, id string, patch productdom.Patch) (productdom.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return productdom.Product{}, productdom.ErrNotFound
	}

	updates := []firestore.Update{{Path: "updatedAt", Value: time.Now().UTC()}}
	if patch.Name != nil {
		updates = append(updates, firestore.Update{Path: "name", Value: *patch.Name})
	}
	if patch.Slug != nil {
		updates = append(updates, firestore.Update{Path: "slug", Value: *patch.Slug})
	}
	if patch.Description != nil {
		updates = append(updates, firestore.Update{Path: "description", Value: *patch.Description})
	}
	if patch.BrandID != nil {
		updates = append(updates, firestore.Update{Path: "brandId", Value: *patch.BrandID})
	}
	if patch.Price != nil {
		updates = append(updates, firestore.Update{Path: "price", Value: *patch.Price})
	}
	if patch.SalePrice != nil {
		updates = append(updates, firestore.Update{Path: "salePrice", Value: *patch.SalePrice})
	}
	if patch.Stock != nil {
		updates = append(updates, firestore.Update{Path: "stock", Value: *patch.Stock})
	}
	if patch.FeaturedImg != nil {
		updates = append(updates, firestore.Update{Path: "featuredImg", Value: *patch.FeaturedImg})
	}
	if patch.Gallery != nil {
		updates = append(updates, firestore.Update{Path: "gallery", Value: *patch.Gallery})
	}

	ref := r.col().Doc(id)
	if _, err := ref.Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return productdom.Product{}, productdom.ErrNotFound
		}
		return productdom.Product{}, err
	}

	snap, err := ref.Get(ctx)
	if err != nil {
		return productdom.Product{}, err
	}
	return docToProduct(snap.Ref.ID, snap.Data()), nil
}

func (r *ProductRepositoryFS) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return productdom.ErrNotFound
	}
	// verify existence first: Firestore deletes are no-ops on missing docs
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	_, err := r.col().Doc(id).Delete(ctx)
	return err
}

// ========================
// mappers
// ========================

func docToProduct(id string, data map[string]any) productdom.Product {
	return productdom.Product{
		ID:          id,
		Name:        fscommon.GetString(data, "name"),
		Slug:        fscommon.GetString(data, "slug"),
		Description: fscommon.GetString(data, "description"),
		BrandID:     fscommon.GetString(data, "brandId"),
		Price:       fscommon.GetFloat(data, "price"),
		SalePrice:   fscommon.GetFloat(data, "salePrice"),
		Stock:       fscommon.GetInt(data, "stock"),
		FeaturedImg: fscommon.GetString(data, "featuredImg"),
		Gallery:     fscommon.GetStringSlice(data, "gallery"),
		CreatedAt:   fscommon.GetTime(data, "createdAt"),
		UpdatedAt:   fscommon.GetTimePtr(data, "updatedAt"),
	}
}

func productToDoc(p productdom.Product) map[string]any {
	doc := map[string]any{
		"name":        p.Name,
		"slug":        p.Slug,
		"description": p.Description,
		"brandId":     p.BrandID,
		"price":       p.Price,
		"salePrice":   p.SalePrice,
		"stock":       p.Stock,
		"featuredImg": p.FeaturedImg,
		"gallery":     p.Gallery,
		"createdAt":   p.CreatedAt,
	}
	if p.UpdatedAt != nil {
		doc["updatedAt"] = p.UpdatedAt.UTC()
	}
	return doc
}
