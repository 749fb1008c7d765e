package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/yefeblgn/TodoListApp/internal/model"
)

type PostgresTaskRepository struct {
	db *sql.DB
}

func NewPostgresTask(db *sql.DB) *PostgresTaskRepository {
	return &PostgresTaskRepository{db: db}
}

func (r *PostgresTaskRepository) Create(ctx context.Context, task model.Task) (model.Task, error) {
	query := `
		INSERT INTO todos (id, user_id, title, description, due_at, is_completed)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, title, description, due_at, is_completed, created_at, updated_at`

	row := r.db.QueryRowContext(ctx, query,
		uuid.NewString(), task.UserID, task.Title, task.Description, task.DueAt, task.IsCompleted,
	)

	return scanTask(row)
}

func (r *PostgresTaskRepository) GetByID(ctx context.Context, userID, taskID string) (model.Task, error) {
	query := `
		SELECT id, user_id, title, description, due_at, is_completed, created_at, updated_at
		FROM todos
		WHERE id = $1 AND user_id = $2`

	row := r.db.QueryRowContext(ctx, query, taskID, userID)
	return scanTask(row)
}

func (r *PostgresTaskRepository) Update(ctx context.Context, task model.Task) (model.Task, error) {
	query := `
		UPDATE todos
		SET title = $1, description = $2, due_at = $3, is_completed = $4, updated_at = now()
		WHERE id = $5 AND user_id = $6
		RETURNING id, user_id, title, description, due_at, is_completed, created_at, updated_at`

	row := r.db.QueryRowContext(ctx, query,
		task.Title, task.Description, task.DueAt, task.IsCompleted, task.ID, task.UserID,
	)

	return scanTask(row)
}

func (r *PostgresTaskRepository) Delete(ctx context.Context, userID, taskID string) error {
	query := `DELETE FROM todos WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, taskID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *PostgresTaskRepository) ListByUser(ctx context.Context, userID string) ([]model.Task, error) {
	query := `
		SELECT id, user_id, title, description, due_at, is_completed, created_at, updated_at
		FROM todos
		WHERE user_id = $1
		ORDER BY due_at ASC NULLS FIRST, created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		task, err := scanTaskFromRows(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate todos: %w", err)
	}

	return tasks, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanTask(row scannable) (model.Task, error) {
	var t model.Task
	var dueAt sql.NullTime
	err := row.Scan(
		&t.ID, &t.UserID, &t.Title, &t.Description,
		&dueAt, &t.IsCompleted, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return model.Task{}, err
	}
	if dueAt.Valid {
		t.DueAt = &dueAt.Time
	}
	return t, nil
}

func scanTaskFromRows(rows *sql.Rows) (model.Task, error) {
	var t model.Task
	var dueAt sql.NullTime
	err := rows.Scan(
		&t.ID, &t.UserID, &t.Title, &t.Description,
		&dueAt, &t.IsCompleted, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to scan todo row: %w", err)
	}
	if dueAt.Valid {
		t.DueAt = &dueAt.Time
	}
	return t, nil
}

// ensure compile-time interface compliance
var _ TaskRepository = (*PostgresTaskRepository)(nil)
