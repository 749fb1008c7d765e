// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/yefeblgn/TodoListApp/internal/model"
)

// DueLayout is how due times are rendered.
const DueLayout = "2006-01-02 15:04"

// FormatTask formats a single task line.
// Format: "{N:>4}  [{x| }] {TITLE}  (due {TIME}[, overdue])\n"
func FormatTask(w io.Writer, num int, task model.Task, now time.Time) {
	mark := " "
	if task.IsCompleted {
		mark = "x"
	}

	line := fmt.Sprintf("%4d  [%s] %s", num, mark, normalizeTitle(task.Title))
	if task.DueAt != nil {
		line += fmt.Sprintf("  (due %s", task.DueAt.Local().Format(DueLayout))
		if !task.IsCompleted && task.Overdue(now) {
			line += ", overdue"
		}
		line += ")"
	}
	fmt.Fprintln(w, line)
}

// FormatTaskDetail prints the full task record, one field per line.
func FormatTaskDetail(w io.Writer, task model.Task) {
	fmt.Fprintf(w, "id:          %s\n", task.ID)
	fmt.Fprintf(w, "title:       %s\n", normalizeTitle(task.Title))
	if task.Description != "" {
		fmt.Fprintf(w, "description: %s\n", task.Description)
	}
	if task.DueAt != nil {
		fmt.Fprintf(w, "due:         %s\n", task.DueAt.Local().Format(DueLayout))
	}
	fmt.Fprintf(w, "completed:   %t\n", task.IsCompleted)
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
