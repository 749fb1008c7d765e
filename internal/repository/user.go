package repository

import (
	"context"

	"github.com/yefeblgn/TodoListApp/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user model.User) (model.User, error)
	GetByID(ctx context.Context, id string) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	UpdateUsername(ctx context.Context, id, username string) error
	UpdatePasswordHash(ctx context.Context, id, passwordHash string) error
	DeleteByEmail(ctx context.Context, email string) error
}
