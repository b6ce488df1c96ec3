// internal/application/usecase/user_usecase.go
package usecase

import (
	"context"
	"strings"

	qb "github.com/ridoy-softworldit/bdm-bazar-backend/internal/application/querybuilder"
	userdom "github.com/ridoy-softworldit/bdm-bazar-backend/internal/domain/user"
)

type UserUsecase struct {
	repo userdom.Repository
}

func NewUserUsecase(repo userdom.Repository) *UserUsecase {
	return &UserUsecase{repo: repo}
}

func (u *UserUsecase) GetByID(ctx context.Context, id string) (userdom.User, error) {
	usr, err := u.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return userdom.User{}, err
	}
	usr.Password = "" // the hash never leaves the backend
	return usr, nil
}

// List pages users. The password hash is excluded by default projection;
// the handler additionally strips it even when the caller asked for it.
func (u *UserUsecase) List(ctx context.Context, params map[string]string) ([]qb.Document, qb.Meta, error) {
	q := qb.New(u.repo.Docs(), params).
		Search(userdom.SearchableFields...).
		Filter().
		Sort().
		Paginate().
		Fields(userdom.InternalFields...)

	data, meta, err := q.ExecuteWithMeta(ctx)
	if err != nil {
		return nil, qb.Meta{}, err
	}
	for _, doc := range data {
		for _, f := range userdom.InternalFields {
			delete(doc, f)
		}
	}
	return data, meta, nil
}
