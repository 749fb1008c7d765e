package model

import "time"

type Task struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueAt       *time.Time `json:"due_at,omitempty"`
	IsCompleted bool       `json:"is_completed"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Overdue reports whether the task has a due time that is not after now.
// Overdue tasks stay toggleable at the store level; callers gate the control.
func (t Task) Overdue(now time.Time) bool {
	return t.DueAt != nil && !t.DueAt.After(now)
}
