// internal/domain/review/repository_port.go
package review

import (
	"context"

	qb "github.com/ridoy-softworldit/bdm-bazar-backend/internal/application/querybuilder"
)

type Repository interface {
	Docs() qb.Source
	Create(ctx context.Context, r Review) (Review, error)
	Delete(ctx context.Context, id string) error
}
