package commands

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/yefeblgn/TodoListApp/internal/api"
	"github.com/yefeblgn/TodoListApp/internal/exitcode"
	"github.com/yefeblgn/TodoListApp/internal/taskstore"
)

// reportError prints err and maps it to an exit code. Server rejections of
// the request itself count as user errors; transport failures and 5xx count
// against the backend.
func reportError(errOut io.Writer, err error) int {
	switch {
	case errors.Is(err, taskstore.ErrLoggedOut):
		fmt.Fprintln(errOut, "error: not logged in (run: todo login)")
		return exitcode.AuthError
	case errors.Is(err, taskstore.ErrValidation):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	var remote *api.RemoteError
	if errors.As(err, &remote) {
		fmt.Fprintf(errOut, "error: %s\n", remote.Message)
		switch {
		case remote.Status == http.StatusUnauthorized:
			return exitcode.AuthError
		case remote.Status >= 400 && remote.Status < 500:
			return exitcode.UserError
		default:
			return exitcode.BackendError
		}
	}

	fmt.Fprintf(errOut, "error: %v\n", err)
	return exitcode.BackendError
}
