package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/yefeblgn/TodoListApp/internal/clientcfg"
	"github.com/yefeblgn/TodoListApp/internal/exitcode"
	"github.com/yefeblgn/TodoListApp/internal/output"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
type ListCmd struct {
	all bool
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks ordered by due date" }
func (c *ListCmd) Usage() string     { return "todo list [--all]" }
func (c *ListCmd) NeedsAuth() bool   { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.all, "all", false, "")
	fs.BoolVar(&c.all, "a", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *clientcfg.Config, app *App, args []string, out, errOut io.Writer) int {
	if err := app.Tasks.Load(ctx); err != nil {
		return reportError(errOut, err)
	}

	now := time.Now()
	printed := 0
	for _, task := range app.Tasks.SortedByDueDate() {
		if task.IsCompleted && !c.all {
			continue
		}
		printed++
		output.FormatTask(out, printed, task, now)
	}

	if printed == 0 {
		fmt.Fprintln(out, "no tasks found")
	}
	return exitcode.Success
}
