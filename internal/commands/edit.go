package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/yefeblgn/TodoListApp/internal/clientcfg"
	"github.com/yefeblgn/TodoListApp/internal/exitcode"
	"github.com/yefeblgn/TodoListApp/internal/model"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command.
type EditCmd struct {
	title       string
	description string
	due         string
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Update a task's fields" }
func (c *EditCmd) Usage() string {
	return "todo edit [--title <text>] [--desc <text>|none] [--due <when>|none] <id>"
}
func (c *EditCmd) NeedsAuth() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.title, "title", "", "")
	fs.StringVar(&c.description, "desc", "", "")
	fs.StringVar(&c.due, "due", "", "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *clientcfg.Config, app *App, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: task id required")
		return exitcode.UserError
	}
	id := args[0]

	if err := app.Tasks.Load(ctx); err != nil {
		return reportError(errOut, err)
	}

	var task *model.Task
	for _, t := range app.Tasks.Tasks() {
		if t.ID == id {
			task = &t
			break
		}
	}
	if task == nil {
		fmt.Fprintf(errOut, "error: task not found: %s\n", id)
		return exitcode.UserError
	}

	if c.title != "" {
		task.Title = c.title
	}
	switch c.description {
	case "":
		// keep existing description
	case "none":
		task.Description = ""
	default:
		task.Description = c.description
	}
	switch c.due {
	case "":
		// keep existing due date
	case "none":
		task.DueAt = nil
	default:
		dueAt, err := parseDueFlag(c.due)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		task.DueAt = dueAt
	}

	if err := app.Tasks.Edit(ctx, *task); err != nil {
		return reportError(errOut, err)
	}

	fmt.Fprintln(out, "ok")
	return exitcode.Success
}
