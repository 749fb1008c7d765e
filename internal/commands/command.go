// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"github.com/yefeblgn/TodoListApp/internal/api"
	"github.com/yefeblgn/TodoListApp/internal/clientcfg"
	"github.com/yefeblgn/TodoListApp/internal/session"
	"github.com/yefeblgn/TodoListApp/internal/taskstore"
)

// Account is the slice of the API client the account commands use.
// *api.Client satisfies it.
type Account interface {
	Register(ctx context.Context, username, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (api.LoginResult, error)
	DeleteAccount(ctx context.Context, email, password string) error
	UpdateUsername(ctx context.Context, id, email, username string) error
	UpdatePassword(ctx context.Context, id, email, oldPassword, newPassword string) error
}

// App bundles the client-side state a command can touch.
type App struct {
	Account  Account
	Sessions *session.Store
	Tasks    *taskstore.Store
}

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsAuth returns true if the command requires a signed-in session.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command and returns an exit code.
	Run(ctx context.Context, cfg *clientcfg.Config, app *App, args []string, out, errOut io.Writer) int
}
