package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/yefeblgn/TodoListApp/internal/clientcfg"
	"github.com/yefeblgn/TodoListApp/internal/exitcode"
	"github.com/yefeblgn/TodoListApp/internal/session"
)

func init() {
	Register(&DeleteAccountCmd{})
	Register(&SetUsernameCmd{})
	Register(&SetPasswordCmd{})
}

// requireSession loads the session for commands that act on the account.
func requireSession(app *App, errOut io.Writer) (*session.Session, int) {
	sess, err := app.Sessions.Load()
	if err != nil {
		fmt.Fprintf(errOut, "error: failed to read session: %v\n", err)
		return nil, exitcode.AuthError
	}
	if sess == nil {
		fmt.Fprintln(errOut, "error: not logged in (run: todo login)")
		return nil, exitcode.AuthError
	}
	return sess, exitcode.Success
}

// DeleteAccountCmd deletes the account and all its tasks.
type DeleteAccountCmd struct {
	password string
}

func (c *DeleteAccountCmd) Name() string      { return "delete-account" }
func (c *DeleteAccountCmd) Aliases() []string { return nil }
func (c *DeleteAccountCmd) Synopsis() string  { return "Delete the account and all its tasks" }
func (c *DeleteAccountCmd) Usage() string     { return "todo delete-account --password <pw>" }
func (c *DeleteAccountCmd) NeedsAuth() bool   { return true }

func (c *DeleteAccountCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.password, "password", "", "")
}

func (c *DeleteAccountCmd) Run(ctx context.Context, cfg *clientcfg.Config, app *App, args []string, out, errOut io.Writer) int {
	if c.password == "" {
		fmt.Fprintln(errOut, "error: password required")
		return exitcode.UserError
	}

	sess, code := requireSession(app, errOut)
	if code != exitcode.Success {
		return code
	}

	if err := app.Account.DeleteAccount(ctx, sess.User.Email, c.password); err != nil {
		return reportError(errOut, err)
	}

	// The account is gone either way; a failed cleanup only leaves a stale file.
	if err := app.Sessions.Clear(); err != nil {
		fmt.Fprintf(errOut, "warning: failed to remove session: %v\n", err)
	}

	fmt.Fprintln(out, "account deleted")
	return exitcode.Success
}

// SetUsernameCmd changes the display name.
type SetUsernameCmd struct{}

func (c *SetUsernameCmd) Name() string      { return "set-username" }
func (c *SetUsernameCmd) Aliases() []string { return nil }
func (c *SetUsernameCmd) Synopsis() string  { return "Change the username" }
func (c *SetUsernameCmd) Usage() string     { return "todo set-username <name>" }
func (c *SetUsernameCmd) NeedsAuth() bool   { return true }

func (c *SetUsernameCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *SetUsernameCmd) Run(ctx context.Context, cfg *clientcfg.Config, app *App, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: username required")
		return exitcode.UserError
	}
	username := args[0]
	if err := validateUsername(username); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	sess, code := requireSession(app, errOut)
	if code != exitcode.Success {
		return code
	}

	if err := app.Account.UpdateUsername(ctx, sess.User.ID, sess.User.Email, username); err != nil {
		return reportError(errOut, err)
	}

	sess.User.Username = username
	if err := app.Sessions.Save(*sess); err != nil {
		fmt.Fprintf(errOut, "warning: failed to update session: %v\n", err)
	}

	fmt.Fprintln(out, "ok")
	return exitcode.Success
}

// SetPasswordCmd changes the account password.
type SetPasswordCmd struct {
	oldPassword string
	newPassword string
}

func (c *SetPasswordCmd) Name() string      { return "set-password" }
func (c *SetPasswordCmd) Aliases() []string { return nil }
func (c *SetPasswordCmd) Synopsis() string  { return "Change the password" }
func (c *SetPasswordCmd) Usage() string     { return "todo set-password --old <pw> --new <pw>" }
func (c *SetPasswordCmd) NeedsAuth() bool   { return true }

func (c *SetPasswordCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.oldPassword, "old", "", "")
	fs.StringVar(&c.newPassword, "new", "", "")
}

func (c *SetPasswordCmd) Run(ctx context.Context, cfg *clientcfg.Config, app *App, args []string, out, errOut io.Writer) int {
	if c.oldPassword == "" {
		fmt.Fprintln(errOut, "error: old password required")
		return exitcode.UserError
	}
	if err := validatePassword(c.newPassword); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	sess, code := requireSession(app, errOut)
	if code != exitcode.Success {
		return code
	}

	if err := app.Account.UpdatePassword(ctx, sess.User.ID, sess.User.Email, c.oldPassword, c.newPassword); err != nil {
		return reportError(errOut, err)
	}

	fmt.Fprintln(out, "ok")
	return exitcode.Success
}
