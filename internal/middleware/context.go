package middleware

import (
	"context"
	"net/http"
)

// ctxKey is unexported so only this package can populate request identity.
type ctxKey int

const userIDKey ctxKey = iota

// SetUserID records the verified token subject on the request context.
func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID returns the verified user id, or "" when the request carried no
// token (anonymous mode).
func GetUserID(r *http.Request) string {
	v, _ := r.Context().Value(userIDKey).(string)
	return v
}
