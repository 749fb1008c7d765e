package repository

import (
	"context"

	"github.com/yefeblgn/TodoListApp/internal/model"
)

type TaskRepository interface {
	Create(ctx context.Context, task model.Task) (model.Task, error)
	GetByID(ctx context.Context, userID, taskID string) (model.Task, error)
	Update(ctx context.Context, task model.Task) (model.Task, error)
	Delete(ctx context.Context, userID, taskID string) error
	ListByUser(ctx context.Context, userID string) ([]model.Task, error)
}
