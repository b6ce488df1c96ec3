// internal/domain/user/repository_port.go
package user

import (
	"context"

	qb "github.com/ridoy-softworldit/bdm-bazar-backend/internal/application/querybuilder"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (User, error)
	Docs() qb.Source
}
