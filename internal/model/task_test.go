package model_test

import (
	"testing"
	"time"

	"github.com/yefeblgn/TodoListApp/internal/model"
)

func TestTaskOverdue(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name string
		due  *time.Time
		want bool
	}{
		{name: "no due date", due: nil, want: false},
		{name: "due in the past", due: &past, want: true},
		{name: "due exactly now", due: &now, want: true},
		{name: "due in the future", due: &future, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := model.Task{DueAt: tt.due}
			if got := task.Overdue(now); got != tt.want {
				t.Errorf("Overdue() = %v, want %v", got, tt.want)
			}
		})
	}
}
