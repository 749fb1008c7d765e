// Package taskstore is the client-side view of the signed-in user's tasks.
// It mediates every mutation against the remote task service and commits the
// local cache only after the server confirms, so what the user sees never
// diverges from durable state.
package taskstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/yefeblgn/TodoListApp/internal/api"
	"github.com/yefeblgn/TodoListApp/internal/model"
	"github.com/yefeblgn/TodoListApp/internal/notify"
	"github.com/yefeblgn/TodoListApp/internal/session"
)

var (
	// ErrValidation covers local pre-flight failures; nothing reaches the
	// network when it is returned.
	ErrValidation = errors.New("validation error")

	// ErrLoggedOut is returned by mutations when no session exists.
	// Load treats logged-out as a valid empty state instead.
	ErrLoggedOut = errors.New("not signed in")
)

const reminderTitle = "Task due"

// SessionReader is the slice of the session store the task store needs.
type SessionReader interface {
	Load() (*session.Session, error)
}

// Remote is the slice of the API client the task store needs.
type Remote interface {
	ListTodos(ctx context.Context, userID string) ([]model.Task, error)
	AddTodo(ctx context.Context, input api.AddTodoInput) (string, error)
	EditTodo(ctx context.Context, input api.EditTodoInput) error
	DeleteTodo(ctx context.Context, id, userID string) error
}

// Store caches the signed-in user's tasks in memory. The remote service is
// the source of truth; the cache changes only after a round-trip succeeds.
//
// Operations do not serialize per task id: two concurrent edits race and the
// last response to commit wins, matching the original client. The mutex only
// keeps the cache itself consistent.
type Store struct {
	remote Remote
	sess   SessionReader
	sched  notify.Scheduler
	now    func() time.Time

	mu    sync.Mutex
	tasks []model.Task // insertion order preserved for the sorted view tie
}

func New(remote Remote, sess SessionReader, sched notify.Scheduler) *Store {
	return &Store{
		remote: remote,
		sess:   sess,
		sched:  sched,
		now:    time.Now,
	}
}

// Load replaces the whole cache with the server's task set and re-arms
// reminders for every task still due in the future. Safe to call repeatedly.
// When nobody is signed in it empties the cache and returns nil: logged out
// is a state, not a failure.
func (s *Store) Load(ctx context.Context) error {
	sess, err := s.sess.Load()
	if err != nil {
		return fmt.Errorf("failed to read session: %w", err)
	}
	if sess == nil {
		s.mu.Lock()
		s.tasks = nil
		s.mu.Unlock()
		return nil
	}

	tasks, err := s.remote.ListTodos(ctx, sess.User.ID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.tasks = tasks
	s.mu.Unlock()

	now := s.now()
	for _, t := range tasks {
		if t.DueAt != nil && t.DueAt.After(now) {
			s.scheduleReminder(t)
		}
	}
	return nil
}

// Add validates locally, creates the task remotely, and appends the
// server-identified task to the cache. New tasks always start incomplete.
func (s *Store) Add(ctx context.Context, title, description string, dueAt *time.Time) (model.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Task{}, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if dueAt != nil && !dueAt.After(s.now()) {
		return model.Task{}, fmt.Errorf("%w: due date is in the past", ErrValidation)
	}

	userID, err := s.ownerID()
	if err != nil {
		return model.Task{}, err
	}

	id, err := s.remote.AddTodo(ctx, api.AddTodoInput{
		UserID:      userID,
		Title:       title,
		Description: description,
		DueAt:       dueAt,
	})
	if err != nil {
		return model.Task{}, err
	}

	task := model.Task{
		ID:          id,
		UserID:      userID,
		Title:       title,
		Description: description,
		DueAt:       dueAt,
		IsCompleted: false,
	}

	s.mu.Lock()
	s.tasks = append(s.tasks, task)
	s.mu.Unlock()

	if dueAt != nil && dueAt.After(s.now()) {
		s.scheduleReminder(task)
	}
	return task, nil
}

// Edit sends the full updated fields and replaces the cached entry on
// success. A past due date is deliberately not re-validated here: editing an
// existing task to a time that has already passed records a missed deadline.
func (s *Store) Edit(ctx context.Context, task model.Task) error {
	title := strings.TrimSpace(task.Title)
	if title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	task.Title = title

	userID, err := s.ownerID()
	if err != nil {
		return err
	}
	task.UserID = userID

	// Always sent: an empty due string clears the server-side due date.
	due := ""
	if task.DueAt != nil {
		due = task.DueAt.Format(time.RFC3339)
	}
	err = s.remote.EditTodo(ctx, api.EditTodoInput{
		ID:          task.ID,
		UserID:      userID,
		Title:       &task.Title,
		Description: &task.Description,
		IsCompleted: &task.IsCompleted,
		DueAt:       &due,
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	replaced := false
	for i := range s.tasks {
		if s.tasks[i].ID == task.ID {
			s.tasks[i] = task
			replaced = true
			break
		}
	}
	if !replaced {
		s.tasks = append(s.tasks, task)
	}
	s.mu.Unlock()

	if task.DueAt != nil && task.DueAt.After(s.now()) {
		s.scheduleReminder(task)
	} else {
		s.sched.Cancel(task.ID)
	}
	return nil
}

// Toggle sends the negation of current and flips the cached flag in place on
// success. The flip does not trust a body echo, so minimal server responses
// are fine. Overdue gating is the caller's job, not the store's.
func (s *Store) Toggle(ctx context.Context, id string, current bool) error {
	userID, err := s.ownerID()
	if err != nil {
		return err
	}

	next := !current
	err = s.remote.EditTodo(ctx, api.EditTodoInput{
		ID:          id,
		UserID:      userID,
		IsCompleted: &next,
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].IsCompleted = !s.tasks[i].IsCompleted
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// Delete always makes the network call, then drops the cached entry and any
// pending reminder. Deleting an id the cache no longer holds is a local no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	userID, err := s.ownerID()
	if err != nil {
		return err
	}

	if err := s.remote.DeleteTodo(ctx, id, userID); err != nil {
		return err
	}

	s.mu.Lock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.sched.Cancel(id)
	return nil
}

// Tasks returns a snapshot of the cache in insertion order.
func (s *Store) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Task(nil), s.tasks...)
}

// SortedByDueDate returns a snapshot ordered by ascending due time.
// Tasks without a due date sort first, keeping their relative order.
func (s *Store) SortedByDueDate() []model.Task {
	tasks := s.Tasks()
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i].DueAt, tasks[j].DueAt
		switch {
		case a == nil && b == nil:
			return false
		case a == nil:
			return true
		case b == nil:
			return false
		default:
			return a.Before(*b)
		}
	})
	return tasks
}

func (s *Store) ownerID() (string, error) {
	sess, err := s.sess.Load()
	if err != nil {
		return "", fmt.Errorf("failed to read session: %w", err)
	}
	if sess == nil {
		return "", ErrLoggedOut
	}
	return sess.User.ID, nil
}

func (s *Store) scheduleReminder(t model.Task) {
	s.sched.Schedule(notify.Reminder{
		TaskID: t.ID,
		Title:  reminderTitle,
		Body:   t.Title,
		At:     *t.DueAt,
	})
}
