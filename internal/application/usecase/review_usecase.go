// internal/application/usecase/review_usecase.go
package usecase

import (
	"context"
	"strings"

	qb "github.com/ridoy-softworldit/bdm-bazar-backend/internal/application/querybuilder"
	reviewdom "github.com/ridoy-softworldit/bdm-bazar-backend/internal/domain/review"
)

type ReviewUsecase struct {
	repo reviewdom.Repository
}

func NewReviewUsecase(repo reviewdom.Repository) *ReviewUsecase {
	return &ReviewUsecase{repo: repo}
}

// ListByProduct pages the reviews of one product, newest first by default.
func (u *ReviewUsecase) ListByProduct(ctx context.Context, productID string, params map[string]string) ([]qb.Document, qb.Meta, error) {
	base := qb.Condition{Field: "productId", Op: qb.OpEq, Value: strings.TrimSpace(productID)}
	q := qb.New(u.repo.Docs(), params, base).
		Filter().
		Sort().
		Paginate().
		Fields()

	return q.ExecuteWithMeta(ctx)
}

func (u *ReviewUsecase) Create(ctx context.Context, r reviewdom.Review) (reviewdom.Review, error) {
	return u.repo.Create(ctx, r)
}

func (u *ReviewUsecase) Delete(ctx context.Context, id string) error {
	return u.repo.Delete(ctx, strings.TrimSpace(id))
}
