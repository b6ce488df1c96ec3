// internal/domain/product/repository_port.go
package product

import (
	"context"

	qb "github.com/ridoy-softworldit/bdm-bazar-backend/internal/application/querybuilder"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (Product, error)
	// GetByIDs resolves many products at once; missing IDs are silently
	// skipped, and the result preserves the order of ids.
	GetByIDs(ctx context.Context, ids []string) ([]Product, error)
	Docs() qb.Source

	Create(ctx context.Context, p Product) (Product, error)
	Update(ctx context.Context, id string, patch Patch) (Product, error)
	Delete(ctx context.Context, id string) error
}
