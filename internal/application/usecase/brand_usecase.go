// internal/application/usecase/brand_usecase.go
package usecase

import (
	"context"
	"strings"

	qb "github.com/ridoy-softworldit/bdm-bazar-backend/internal/application/querybuilder"
	branddom "github.com/ridoy-softworldit/bdm-bazar-backend/internal/domain/brand"
)

type BrandUsecase struct {
	repo branddom.Repository
}

func NewBrandUsecase(repo branddom.Repository) *BrandUsecase {
	return &BrandUsecase{repo: repo}
}

func (u *BrandUsecase) GetByID(ctx context.Context, id string) (branddom.Brand, error) {
	return u.repo.GetByID(ctx, strings.TrimSpace(id))
}

func (u *BrandUsecase) List(ctx context.Context, params map[string]string) ([]qb.Document, qb.Meta, error) {
	q := qb.New(u.repo.Docs(), params).
		Search(branddom.SearchableFields...).
		Filter().
		Sort().
		Paginate().
		Fields()

	return q.ExecuteWithMeta(ctx)
}

func (u *BrandUsecase) Create(ctx context.Context, b branddom.Brand) (branddom.Brand, error) {
	return u.repo.Create(ctx, b)
}

func (u *BrandUsecase) Update(ctx context.Context, id string, patch branddom.Patch) (branddom.Brand, error) {
	id = strings.TrimSpace(id)
	if _, err := u.repo.GetByID(ctx, id); err != nil {
		return branddom.Brand{}, err
	}
	return u.repo.Update(ctx, id, patch)
}

func (u *BrandUsecase) Delete(ctx context.Context, id string) error {
	return u.repo.Delete(ctx, strings.TrimSpace(id))
}
