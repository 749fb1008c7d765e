package taskstore

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yefeblgn/TodoListApp/internal/api"
	"github.com/yefeblgn/TodoListApp/internal/model"
	"github.com/yefeblgn/TodoListApp/internal/notify"
	"github.com/yefeblgn/TodoListApp/internal/session"
)

type fakeRemote struct {
	listFn   func(ctx context.Context, userID string) ([]model.Task, error)
	addFn    func(ctx context.Context, input api.AddTodoInput) (string, error)
	editFn   func(ctx context.Context, input api.EditTodoInput) error
	deleteFn func(ctx context.Context, id, userID string) error
}

func (f *fakeRemote) ListTodos(ctx context.Context, userID string) ([]model.Task, error) {
	return f.listFn(ctx, userID)
}

func (f *fakeRemote) AddTodo(ctx context.Context, input api.AddTodoInput) (string, error) {
	return f.addFn(ctx, input)
}

func (f *fakeRemote) EditTodo(ctx context.Context, input api.EditTodoInput) error {
	return f.editFn(ctx, input)
}

func (f *fakeRemote) DeleteTodo(ctx context.Context, id, userID string) error {
	return f.deleteFn(ctx, id, userID)
}

// memoryRemote is a stateful backend: mutations change the held task set and
// ListTodos returns it, so cache-vs-server round trips can be exercised.
type memoryRemote struct {
	tasks  map[string]model.Task
	order  []string
	nextID int
}

func newMemoryRemote() *memoryRemote {
	return &memoryRemote{tasks: make(map[string]model.Task)}
}

func (m *memoryRemote) ListTodos(ctx context.Context, userID string) ([]model.Task, error) {
	out := make([]model.Task, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.tasks[id])
	}
	return out, nil
}

func (m *memoryRemote) AddTodo(ctx context.Context, input api.AddTodoInput) (string, error) {
	m.nextID++
	id := fmt.Sprintf("srv-%d", m.nextID)
	m.tasks[id] = model.Task{
		ID:          id,
		UserID:      input.UserID,
		Title:       input.Title,
		Description: input.Description,
		DueAt:       input.DueAt,
	}
	m.order = append(m.order, id)
	return id, nil
}

func (m *memoryRemote) EditTodo(ctx context.Context, input api.EditTodoInput) error {
	task, ok := m.tasks[input.ID]
	if !ok {
		return &api.RemoteError{Status: http.StatusNotFound, Message: "resource not found"}
	}
	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.IsCompleted != nil {
		task.IsCompleted = *input.IsCompleted
	}
	if input.DueAt != nil {
		if *input.DueAt == "" {
			task.DueAt = nil
		} else {
			at, err := time.Parse(time.RFC3339, *input.DueAt)
			if err != nil {
				return &api.RemoteError{Status: http.StatusBadRequest, Message: "invalid due_at"}
			}
			task.DueAt = &at
		}
	}
	m.tasks[input.ID] = task
	return nil
}

func (m *memoryRemote) DeleteTodo(ctx context.Context, id, userID string) error {
	if _, ok := m.tasks[id]; !ok {
		return &api.RemoteError{Status: http.StatusNotFound, Message: "resource not found"}
	}
	delete(m.tasks, id)
	for i, held := range m.order {
		if held == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

type fakeSession struct {
	sess *session.Session
	err  error
}

func (f *fakeSession) Load() (*session.Session, error) { return f.sess, f.err }

type recordingScheduler struct {
	scheduled []notify.Reminder
	canceled  []string
}

func (r *recordingScheduler) Schedule(rem notify.Reminder) { r.scheduled = append(r.scheduled, rem) }
func (r *recordingScheduler) Cancel(taskID string)         { r.canceled = append(r.canceled, taskID) }

func signedIn() *fakeSession {
	return &fakeSession{sess: &session.Session{
		User: session.User{ID: "user-1", Username: "alice", Email: "alice@example.com"},
	}}
}

func newTestStore(remote Remote, sess SessionReader, sched notify.Scheduler, now time.Time) *Store {
	s := New(remote, sess, sched)
	s.now = func() time.Time { return now }
	return s
}

func TestLoad(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(2 * time.Hour)
	past := now.Add(-2 * time.Hour)

	t.Run("replaces cache and arms future reminders only", func(t *testing.T) {
		remote := &fakeRemote{
			listFn: func(ctx context.Context, userID string) ([]model.Task, error) {
				assert.Equal(t, "user-1", userID)
				return []model.Task{
					{ID: "t1", Title: "soon", DueAt: &future},
					{ID: "t2", Title: "missed", DueAt: &past},
					{ID: "t3", Title: "whenever"},
				}, nil
			},
		}
		sched := &recordingScheduler{}
		store := newTestStore(remote, signedIn(), sched, now)

		require.NoError(t, store.Load(context.Background()))

		assert.Len(t, store.Tasks(), 3)
		require.Len(t, sched.scheduled, 1)
		assert.Equal(t, "t1", sched.scheduled[0].TaskID)
		assert.Equal(t, future, sched.scheduled[0].At)
	})

	t.Run("logged out clears cache without error", func(t *testing.T) {
		store := newTestStore(&fakeRemote{}, &fakeSession{}, &recordingScheduler{}, now)
		store.tasks = []model.Task{{ID: "stale"}}

		require.NoError(t, store.Load(context.Background()))
		assert.Empty(t, store.Tasks())
	})

	t.Run("remote failure leaves cache untouched", func(t *testing.T) {
		remote := &fakeRemote{
			listFn: func(ctx context.Context, userID string) ([]model.Task, error) {
				return nil, &api.RemoteError{Status: http.StatusInternalServerError, Message: "boom"}
			},
		}
		store := newTestStore(remote, signedIn(), &recordingScheduler{}, now)
		store.tasks = []model.Task{{ID: "kept"}}

		err := store.Load(context.Background())
		require.Error(t, err)
		assert.Len(t, store.Tasks(), 1)
	})
}

func TestAdd(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	t.Run("new task starts incomplete and is cached after the round trip", func(t *testing.T) {
		var sent api.AddTodoInput
		remote := &fakeRemote{
			addFn: func(ctx context.Context, input api.AddTodoInput) (string, error) {
				sent = input
				return "server-id", nil
			},
		}
		sched := &recordingScheduler{}
		store := newTestStore(remote, signedIn(), sched, now)

		task, err := store.Add(context.Background(), "  buy milk  ", "2%", &future)
		require.NoError(t, err)

		assert.Equal(t, "buy milk", sent.Title)
		assert.Equal(t, "user-1", sent.UserID)
		assert.Equal(t, "server-id", task.ID)
		assert.False(t, task.IsCompleted)

		cached := store.Tasks()
		require.Len(t, cached, 1)
		assert.Equal(t, "server-id", cached[0].ID)

		require.Len(t, sched.scheduled, 1)
		assert.Equal(t, "server-id", sched.scheduled[0].TaskID)
	})

	t.Run("empty title never reaches the network", func(t *testing.T) {
		remote := &fakeRemote{
			addFn: func(ctx context.Context, input api.AddTodoInput) (string, error) {
				t.Fatal("unexpected network call")
				return "", nil
			},
		}
		store := newTestStore(remote, signedIn(), &recordingScheduler{}, now)

		_, err := store.Add(context.Background(), "   ", "", nil)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("past due date is rejected", func(t *testing.T) {
		store := newTestStore(&fakeRemote{}, signedIn(), &recordingScheduler{}, now)

		_, err := store.Add(context.Background(), "late", "", &past)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("remote failure leaves cache empty", func(t *testing.T) {
		remote := &fakeRemote{
			addFn: func(ctx context.Context, input api.AddTodoInput) (string, error) {
				return "", &api.RemoteError{Status: http.StatusBadRequest, Message: "no"}
			},
		}
		sched := &recordingScheduler{}
		store := newTestStore(remote, signedIn(), sched, now)

		_, err := store.Add(context.Background(), "task", "", &future)
		require.Error(t, err)
		assert.Empty(t, store.Tasks())
		assert.Empty(t, sched.scheduled)
	})

	t.Run("logged out", func(t *testing.T) {
		store := newTestStore(&fakeRemote{}, &fakeSession{}, &recordingScheduler{}, now)

		_, err := store.Add(context.Background(), "task", "", nil)
		assert.ErrorIs(t, err, ErrLoggedOut)
	})
}

func TestEdit(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	seed := func(store *Store) {
		store.tasks = []model.Task{{ID: "t1", UserID: "user-1", Title: "old", DueAt: &future}}
	}

	t.Run("cache reflects the edit after success", func(t *testing.T) {
		remote := &fakeRemote{
			editFn: func(ctx context.Context, input api.EditTodoInput) error {
				assert.Equal(t, "t1", input.ID)
				require.NotNil(t, input.Title)
				assert.Equal(t, "new title", *input.Title)
				return nil
			},
		}
		sched := &recordingScheduler{}
		store := newTestStore(remote, signedIn(), sched, now)
		seed(store)

		err := store.Edit(context.Background(), model.Task{ID: "t1", Title: "new title", DueAt: &future})
		require.NoError(t, err)

		cached := store.Tasks()
		require.Len(t, cached, 1)
		assert.Equal(t, "new title", cached[0].Title)
		assert.Len(t, sched.scheduled, 1)
	})

	t.Run("moving the due date into the past is allowed and cancels the reminder", func(t *testing.T) {
		remote := &fakeRemote{
			editFn: func(ctx context.Context, input api.EditTodoInput) error { return nil },
		}
		sched := &recordingScheduler{}
		store := newTestStore(remote, signedIn(), sched, now)
		seed(store)

		err := store.Edit(context.Background(), model.Task{ID: "t1", Title: "old", DueAt: &past})
		require.NoError(t, err)

		assert.Empty(t, sched.scheduled)
		assert.Equal(t, []string{"t1"}, sched.canceled)
	})

	t.Run("empty title is rejected locally", func(t *testing.T) {
		store := newTestStore(&fakeRemote{}, signedIn(), &recordingScheduler{}, now)
		seed(store)

		err := store.Edit(context.Background(), model.Task{ID: "t1", Title: " "})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("remote failure leaves cache unchanged", func(t *testing.T) {
		remote := &fakeRemote{
			editFn: func(ctx context.Context, input api.EditTodoInput) error {
				return &api.RemoteError{Status: http.StatusNotFound, Message: "resource not found"}
			},
		}
		store := newTestStore(remote, signedIn(), &recordingScheduler{}, now)
		seed(store)

		err := store.Edit(context.Background(), model.Task{ID: "t1", Title: "changed"})
		require.Error(t, err)
		assert.Equal(t, "old", store.Tasks()[0].Title)
	})
}

func TestToggle(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("sends the negation and flips the cache", func(t *testing.T) {
		remote := &fakeRemote{
			editFn: func(ctx context.Context, input api.EditTodoInput) error {
				require.NotNil(t, input.IsCompleted)
				assert.True(t, *input.IsCompleted)
				assert.Nil(t, input.Title)
				return nil
			},
		}
		store := newTestStore(remote, signedIn(), &recordingScheduler{}, now)
		store.tasks = []model.Task{{ID: "t1", IsCompleted: false}}

		require.NoError(t, store.Toggle(context.Background(), "t1", false))
		assert.True(t, store.Tasks()[0].IsCompleted)
	})

	t.Run("failure leaves the flag as it was", func(t *testing.T) {
		remote := &fakeRemote{
			editFn: func(ctx context.Context, input api.EditTodoInput) error {
				return &api.RemoteError{Status: http.StatusInternalServerError, Message: "boom"}
			},
		}
		store := newTestStore(remote, signedIn(), &recordingScheduler{}, now)
		store.tasks = []model.Task{{ID: "t1", IsCompleted: false}}

		err := store.Toggle(context.Background(), "t1", false)

		var remoteErr *api.RemoteError
		require.ErrorAs(t, err, &remoteErr)
		assert.False(t, store.Tasks()[0].IsCompleted)
	})
}

func TestDelete(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("removes from cache and cancels the reminder", func(t *testing.T) {
		remote := &fakeRemote{
			deleteFn: func(ctx context.Context, id, userID string) error {
				assert.Equal(t, "t1", id)
				assert.Equal(t, "user-1", userID)
				return nil
			},
		}
		sched := &recordingScheduler{}
		store := newTestStore(remote, signedIn(), sched, now)
		store.tasks = []model.Task{{ID: "t1"}, {ID: "t2"}}

		require.NoError(t, store.Delete(context.Background(), "t1"))

		cached := store.Tasks()
		require.Len(t, cached, 1)
		assert.Equal(t, "t2", cached[0].ID)
		assert.Equal(t, []string{"t1"}, sched.canceled)
	})

	t.Run("id not in cache still sends the request", func(t *testing.T) {
		called := false
		remote := &fakeRemote{
			deleteFn: func(ctx context.Context, id, userID string) error {
				called = true
				return nil
			},
		}
		store := newTestStore(remote, signedIn(), &recordingScheduler{}, now)

		require.NoError(t, store.Delete(context.Background(), "ghost"))
		assert.True(t, called)
	})

	t.Run("remote failure keeps the task", func(t *testing.T) {
		remote := &fakeRemote{
			deleteFn: func(ctx context.Context, id, userID string) error {
				return errors.New("network down")
			},
		}
		store := newTestStore(remote, signedIn(), &recordingScheduler{}, now)
		store.tasks = []model.Task{{ID: "t1"}}

		require.Error(t, store.Delete(context.Background(), "t1"))
		assert.Len(t, store.Tasks(), 1)
	})
}

func TestSortedByDueDate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	at := func(h int) *time.Time {
		v := now.Add(time.Duration(h) * time.Hour)
		return &v
	}

	store := newTestStore(&fakeRemote{}, signedIn(), &recordingScheduler{}, now)
	store.tasks = []model.Task{
		{ID: "t3", DueAt: at(3)},
		{ID: "none-a"},
		{ID: "t1", DueAt: at(1)},
		{ID: "none-b"},
		{ID: "t2", DueAt: at(2)},
	}

	sorted := store.SortedByDueDate()

	var ids []string
	for _, task := range sorted {
		ids = append(ids, task.ID)
	}
	// undated tasks first in insertion order, then ascending by due time
	assert.Equal(t, []string{"none-a", "none-b", "t1", "t2", "t3"}, ids)

	// the snapshot is a copy
	sorted[0].ID = "mutated"
	assert.Equal(t, "t3", store.Tasks()[0].ID)
}

func TestRoundTrip(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(time.Hour)
	ctx := context.Background()

	t.Run("delete then load never returns the deleted task", func(t *testing.T) {
		remote := newMemoryRemote()
		store := newTestStore(remote, signedIn(), &recordingScheduler{}, now)

		kept, err := store.Add(ctx, "kept", "", nil)
		require.NoError(t, err)
		doomed, err := store.Add(ctx, "doomed", "", nil)
		require.NoError(t, err)

		require.NoError(t, store.Delete(ctx, doomed.ID))
		require.NoError(t, store.Load(ctx))

		tasks := store.Tasks()
		require.Len(t, tasks, 1)
		assert.Equal(t, kept.ID, tasks[0].ID)
	})

	t.Run("edit then load returns the new title", func(t *testing.T) {
		remote := newMemoryRemote()
		store := newTestStore(remote, signedIn(), &recordingScheduler{}, now)

		task, err := store.Add(ctx, "draft title", "notes", &future)
		require.NoError(t, err)

		task.Title = "final title"
		require.NoError(t, store.Edit(ctx, task))
		require.NoError(t, store.Load(ctx))

		tasks := store.Tasks()
		require.Len(t, tasks, 1)
		assert.Equal(t, "final title", tasks[0].Title)
		assert.Equal(t, "notes", tasks[0].Description)
		require.NotNil(t, tasks[0].DueAt)
		assert.True(t, tasks[0].DueAt.Equal(future))
	})

	t.Run("clearing the due date survives a reload", func(t *testing.T) {
		remote := newMemoryRemote()
		store := newTestStore(remote, signedIn(), &recordingScheduler{}, now)

		task, err := store.Add(ctx, "deadline", "", &future)
		require.NoError(t, err)

		task.DueAt = nil
		require.NoError(t, store.Edit(ctx, task))
		require.NoError(t, store.Load(ctx))

		tasks := store.Tasks()
		require.Len(t, tasks, 1)
		assert.Nil(t, tasks[0].DueAt)
	})

	t.Run("toggle then load reflects completion", func(t *testing.T) {
		remote := newMemoryRemote()
		store := newTestStore(remote, signedIn(), &recordingScheduler{}, now)

		task, err := store.Add(ctx, "chore", "", nil)
		require.NoError(t, err)

		require.NoError(t, store.Toggle(ctx, task.ID, false))
		require.NoError(t, store.Load(ctx))

		tasks := store.Tasks()
		require.Len(t, tasks, 1)
		assert.True(t, tasks[0].IsCompleted)
	})
}

func TestLoadSessionReadFailure(t *testing.T) {
	store := newTestStore(&fakeRemote{}, &fakeSession{err: fmt.Errorf("disk error")}, &recordingScheduler{}, time.Now())

	err := store.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session")
}
