// internal/domain/brand/repository_port.go
package brand

import (
	"context"

	qb "github.com/ridoy-softworldit/bdm-bazar-backend/internal/application/querybuilder"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (Brand, error)
	Docs() qb.Source

	Create(ctx context.Context, b Brand) (Brand, error)
	Update(ctx context.Context, id string, patch Patch) (Brand, error)
	Delete(ctx context.Context, id string) error
}
