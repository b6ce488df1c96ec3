// internal/adapters/out/firestore/brand_repository_fs.go
package firestore

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	fscommon "github.com/ridoy-softworldit/bdm-bazar-backend/internal/adapters/out/firestore/common"
	qb "github.com/ridoy-softworldit/bdm-bazar-backend/internal/application/querybuilder"
	branddom "github.com/ridoy-softworldit/bdm-bazar-backend/internal/domain/brand"
)

type BrandRepositoryFS struct {
	Client *firestore.Client
}

func NewBrandRepositoryFS(client *firestore.Client) *BrandRepositoryFS {
	return &BrandRepositoryFS{Client: client}
}

var _ branddom.Repository = (*BrandRepositoryFS)(nil)

func (r *BrandRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("brands")
}

func (r *BrandRepositoryFS) Docs() qb.Source {
	return fscommon.CollectionSource{Col: r.col()}
}

func (r *BrandRepositoryFS) GetByID(ctx context.Context, id string) (branddom.Brand, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return branddom.Brand{}, branddom.ErrNotFound
	}
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return branddom.Brand{}, branddom.ErrNotFound
		}
		return branddom.Brand{}, err
	}
	return docToBrand(snap.Ref.ID, snap.Data()), nil
}

func (r *BrandRepositoryFS) Create(ctx context.Context, b branddom.Brand) (branddom.Brand, error) {
	now := time.Now().UTC()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}

	var ref *firestore.DocumentRef
	if strings.TrimSpace(b.ID) == "" {
		ref = r.col().NewDoc()
		b.ID = ref.ID
	} else {
		ref = r.col().Doc(b.ID)
	}

	if _, err := ref.Create(ctx, brandToDoc(b)); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return branddom.Brand{}, branddom.ErrConflict
		}
		return branddom.Brand{}, err
	}
	return b, nil
}

func (r *BrandRepositoryFS) Update(ctx context.Context, id string, patch branddom.Patch) (branddom.Brand, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return branddom.Brand{}, branddom.ErrNotFound
	}

	updates := []firestore.Update{{Path: "updatedAt", Value: time.Now().UTC()}}
	if patch.Name != nil {
		updates = append(updates, firestore.Update{Path: "name", Value: *patch.Name})
	}
	if patch.Slug != nil {
		updates = append(updates, firestore.Update{Path: "slug", Value: *patch.Slug})
	}
	if patch.Details != nil {
		updates = append(updates, firestore.Update{Path: "details", Value: *patch.Details})
	}
	if patch.Icon != nil {
		updates = append(updates, firestore.Update{Path: "icon", Value: iconToDoc(*patch.Icon)})
	}
	if patch.Images != nil {
		updates = append(updates, firestore.Update{Path: "images", Value: imagesToDoc(*patch.Images)})
	}

	ref := r.col().Doc(id)
	if _, err := ref.Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return branddom.Brand{}, branddom.ErrNotFound
		}
		return branddom.Brand{}, err
	}

	snap, err := ref.Get(ctx)
	if err != nil {
		return branddom.Brand{}, err
	}
	return docToBrand(snap.Ref.ID, snap.Data()), nil
}

func (r *BrandRepositoryFS) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return branddom.ErrNotFound
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	_, err := r.col().Doc(id).Delete(ctx)
	return err
}

// ========================
// mappers
// ========================

func docToBrand(id string, data map[string]any) branddom.Brand {
	b := branddom.Brand{
		ID:        id,
		Name:      fscommon.GetString(data, "name"),
		Slug:      fscommon.GetString(data, "slug"),
		Details:   fscommon.GetString(data, "details"),
		CreatedAt: fscommon.GetTime(data, "createdAt"),
		UpdatedAt: fscommon.GetTimePtr(data, "updatedAt"),
	}

	icon := fscommon.GetMap(data, "icon")
	b.Icon = branddom.Icon{
		Name: fscommon.GetString(icon, "name"),
		URL:  fscommon.GetString(icon, "url"),
	}

	for _, raw := range fscommon.GetSlice(data, "images") {
		if m, ok := raw.(map[string]any); ok {
			b.Images = append(b.Images, branddom.Image{
				Layout: fscommon.GetString(m, "layout"),
				Image:  fscommon.GetString(m, "image"),
			})
		}
	}
	return b
}

func brandToDoc(b branddom.Brand) map[string]any {
	doc := map[string]any{
		"name":      b.Name,
		"slug":      b.Slug,
		"details":   b.Details,
		"icon":      iconToDoc(b.Icon),
		"images":    imagesToDoc(b.Images),
		"createdAt": b.CreatedAt,
	}
	if b.UpdatedAt != nil {
		doc["updatedAt"] = b.UpdatedAt.UTC()
	}
	return doc
}

func iconToDoc(i branddom.Icon) map[string]any {
	return map[string]any{"name": i.Name, "url": i.URL}
}

func imagesToDoc(images []branddom.Image) []any {
	out := make([]any, 0, len(images))
	for _, img := range images {
		out = append(out, map[string]any{"layout": img.Layout, "image": img.Image})
	}
	return out
}
