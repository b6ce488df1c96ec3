// internal/adapters/out/firestore/user_repository_fs.go
package firestore

import (
	"context"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	fscommon "github.com/ridoy-softworldit/bdm-bazar-backend/internal/adapters/out/firestore/common"
	qb "github.com/ridoy-softworldit/bdm-bazar-backend/internal/application/querybuilder"
	userdom "github.com/ridoy-softworldit/bdm-bazar-backend/internal/domain/user"
)

type UserRepositoryFS struct {
	Client *firestore.Client
}

func NewUserRepositoryFS(client *firestore.Client) *UserRepositoryFS {
	return &UserRepositoryFS{Client: client}
}

var _ userdom.Repository = (*UserRepositoryFS)(nil)

func (r *UserRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("users")
}

func (r *UserRepositoryFS) Docs() qb.Source {
	return fscommon.CollectionSource{Col: r.col()}
}

func (r *UserRepositoryFS) GetByID(ctx context.Context, id string) (userdom.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return userdom.User{}, userdom.ErrNotFound
	}
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return userdom.User{}, userdom.ErrNotFound
		}
		return userdom.User{}, err
	}

	data := snap.Data()
	return userdom.User{
		ID:        snap.Ref.ID,
		Name:      fscommon.GetString(data, "name"),
		Email:     fscommon.GetString(data, "email"),
		Role:      userdom.Role(fscommon.GetString(data, "role")),
		Status:    userdom.AccountStatus(fscommon.GetString(data, "status")),
		Password:  fscommon.GetString(data, "password"),
		CreatedAt: fscommon.GetTime(data, "createdAt"),
		UpdatedAt: fscommon.GetTimePtr(data, "updatedAt"),
	}, nil
}
