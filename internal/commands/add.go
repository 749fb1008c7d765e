package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/yefeblgn/TodoListApp/internal/clientcfg"
	"github.com/yefeblgn/TodoListApp/internal/exitcode"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	description string
	due         string
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string     { return "todo add [--desc <text>] [--due <when>] <title...>" }
func (c *AddCmd) NeedsAuth() bool   { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.description, "desc", "", "")
	fs.StringVar(&c.due, "due", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *clientcfg.Config, app *App, args []string, out, errOut io.Writer) int {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	dueAt, err := parseDueFlag(c.due)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	task, err := app.Tasks.Add(ctx, title, c.description, dueAt)
	if err != nil {
		return reportError(errOut, err)
	}

	fmt.Fprintf(out, "added %s\n", task.ID)
	return exitcode.Success
}
