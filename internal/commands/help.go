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
	Register(&HelpCmd{})
	Register(&VersionCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "todo help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *clientcfg.Config, app *App, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  todo                                           List open tasks by due date
  todo list [--all]                              List tasks (--all includes completed)
  todo add [--desc <text>] [--due <when>] <title...>
  todo edit [--title <text>] [--desc <text>|none] [--due <when>|none] <id>
  todo done <id>
  todo undone <id>
  todo rm <id>
  todo register --username <name> --email <addr> --password <pw> [--confirm <pw>]
  todo login --email <addr> --password <pw>
  todo logout
  todo whoami
  todo set-username <name>
  todo set-password --old <pw> --new <pw>
  todo delete-account --password <pw>
  todo help
  todo version

Due dates accept RFC3339, "2006-01-02 15:04", or "2006-01-02".
Pass "none" to --desc or --due to clear the field.

Common flags:
  --config <dir>   Override config directory
`

// Version is the application version. Set at build time.
var Version = "0.1.0"

// VersionCmd implements the version command.
type VersionCmd struct{}

func (c *VersionCmd) Name() string      { return "version" }
func (c *VersionCmd) Aliases() []string { return nil }
func (c *VersionCmd) Synopsis() string  { return "Print the version" }
func (c *VersionCmd) Usage() string     { return "todo version" }
func (c *VersionCmd) NeedsAuth() bool   { return false }

func (c *VersionCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *VersionCmd) Run(ctx context.Context, cfg *clientcfg.Config, app *App, args []string, out, errOut io.Writer) int {
	fmt.Fprintf(out, "todo %s\n", Version)
	return exitcode.Success
}
