package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yefeblgn/TodoListApp/internal/model"
	"github.com/yefeblgn/TodoListApp/internal/repository"
)

// parseDueAt parses an RFC3339 string into *time.Time.
// Returns nil if input is nil.
func parseDueAt(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid due_at format, expected RFC3339", ErrInvalidInput)
	}
	return &t, nil
}

type CreateTaskInput struct {
	Title       string
	Description string
	DueAt       *string // RFC3339 string, parsed here
}

type UpdateTaskInput struct {
	Title       *string
	Description *string
	IsCompleted *bool
	DueAt       *string
}

type TaskService struct {
	repo repository.TaskRepository
}

func NewTaskService(repo repository.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

func (s *TaskService) Create(ctx context.Context, userID string, input CreateTaskInput) (model.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return model.Task{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	dueAt, err := parseDueAt(input.DueAt)
	if err != nil {
		return model.Task{}, err
	}

	task := model.Task{
		UserID:      userID,
		Title:       title,
		Description: input.Description,
		DueAt:       dueAt,
		IsCompleted: false,
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to create todo: %w", err)
	}

	return created, nil
}

func (s *TaskService) GetByID(ctx context.Context, userID, taskID string) (model.Task, error) {
	task, err := s.repo.GetByID(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to get todo: %w", err)
	}
	return task, nil
}

func (s *TaskService) Update(ctx context.Context, userID, taskID string, input UpdateTaskInput) (model.Task, error) {
	existing, err := s.repo.GetByID(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to get todo for update: %w", err)
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return model.Task{}, fmt.Errorf("%w: title cannot be empty", ErrInvalidInput)
		}
		existing.Title = title
	}
	if input.Description != nil {
		existing.Description = *input.Description
	}
	if input.IsCompleted != nil {
		existing.IsCompleted = *input.IsCompleted
	}
	if input.DueAt != nil {
		dueAt, err := parseDueAt(input.DueAt)
		if err != nil {
			return model.Task{}, err
		}
		existing.DueAt = dueAt
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to update todo: %w", err)
	}

	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID string) error {
	err := s.repo.Delete(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return nil
}

func (s *TaskService) List(ctx context.Context, userID string) ([]model.Task, error) {
	tasks, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return tasks, nil
}
