package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound matches 404 responses from edit/delete when the id/owner pair
// does not exist on the server.
var ErrNotFound = errors.New("not found")

// RemoteError is any failure reported by (or on the way to) the remote task
// service: a success:false body, a non-2xx status, or a transport error.
type RemoteError struct {
	Status  int // 0 when the request never reached the server
	Message string
}

func (e *RemoteError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("remote: %s", e.Message)
	}
	return fmt.Sprintf("remote: %s (status %d)", e.Message, e.Status)
}

func (e *RemoteError) Unwrap() error {
	if e.Status == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}
