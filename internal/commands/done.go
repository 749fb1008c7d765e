package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/yefeblgn/TodoListApp/internal/clientcfg"
	"github.com/yefeblgn/TodoListApp/internal/exitcode"
)

func init() {
	Register(&DoneCmd{})
	Register(&UndoneCmd{})
}

// DoneCmd marks a task completed.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"complete"} }
func (c *DoneCmd) Synopsis() string  { return "Mark a task completed" }
func (c *DoneCmd) Usage() string     { return "todo done <id>" }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *clientcfg.Config, app *App, args []string, out, errOut io.Writer) int {
	return runToggle(ctx, app, args, true, out, errOut)
}

// UndoneCmd marks a task not completed.
type UndoneCmd struct{}

func (c *UndoneCmd) Name() string      { return "undone" }
func (c *UndoneCmd) Aliases() []string { return []string{"reopen"} }
func (c *UndoneCmd) Synopsis() string  { return "Mark a task not completed" }
func (c *UndoneCmd) Usage() string     { return "todo undone <id>" }
func (c *UndoneCmd) NeedsAuth() bool   { return true }

func (c *UndoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UndoneCmd) Run(ctx context.Context, cfg *clientcfg.Config, app *App, args []string, out, errOut io.Writer) int {
	return runToggle(ctx, app, args, false, out, errOut)
}

// runToggle is the shared implementation for done and undone.
func runToggle(ctx context.Context, app *App, args []string, wantCompleted bool, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: task id required")
		return exitcode.UserError
	}
	id := args[0]

	if err := app.Tasks.Load(ctx); err != nil {
		return reportError(errOut, err)
	}

	for _, task := range app.Tasks.Tasks() {
		if task.ID != id {
			continue
		}
		if task.IsCompleted == wantCompleted {
			fmt.Fprintln(out, "ok")
			return exitcode.Success
		}
		if err := app.Tasks.Toggle(ctx, id, task.IsCompleted); err != nil {
			return reportError(errOut, err)
		}
		fmt.Fprintln(out, "ok")
		return exitcode.Success
	}

	fmt.Fprintf(errOut, "error: task not found: %s\n", id)
	return exitcode.UserError
}
