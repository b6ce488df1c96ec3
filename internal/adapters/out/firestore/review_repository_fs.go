// internal/adapters/out/firestore/review_repository_fs.go
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
	reviewdom "github.com/ridoy-softworldit/bdm-bazar-backend/internal/domain/review"
)

type ReviewRepositoryFS struct {
	Client *firestore.Client
}

func NewReviewRepositoryFS(client *firestore.Client) *ReviewRepositoryFS {
	return &ReviewRepositoryFS{Client: client}
}

var _ reviewdom.Repository = (*ReviewRepositoryFS)(nil)

func (r *ReviewRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("reviews")
}

func (r *ReviewRepositoryFS) Docs() qb.Source {
	return fscommon.CollectionSource{Col: r.col()}
}

func (r *ReviewRepositoryFS) Create(ctx context.Context, rv reviewdom.Review) (reviewdom.Review, error) {
	if rv.CreatedAt.IsZero() {
		rv.CreatedAt = time.Now().UTC()
	}

	ref := r.col().NewDoc()
	rv.ID = ref.ID

	if _, err := ref.Create(ctx, map[string]any{
		"productId": rv.ProductID,
		"userId":    rv.UserID,
		"rating":    rv.Rating,
		"comment":   rv.Comment,
		"createdAt": rv.CreatedAt,
	}); err != nil {
		return reviewdom.Review{}, err
	}
	return rv, nil
}

func (r *ReviewRepositoryFS) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return reviewdom.ErrNotFound
	}
	if _, err := r.col().Doc(id).Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return reviewdom.ErrNotFound
		}
		return err
	}
	_, err := r.col().Doc(id).Delete(ctx)
	return err
}
