package middleware

import (
	"net/http"
	"strings"

	"github.com/yefeblgn/TodoListApp/internal/token"
)

// Paths that authenticate by themselves (or not at all).
var openPaths = map[string]bool{
	"/health":             true,
	"/api/newuser":        true,
	"/api/userlogin":      true,
	"/api/delete-account": true,
}

type AuthConfig struct {
	// Required rejects token-less requests on protected paths.
	// Off by default: the original mobile clients send only a body user_id.
	Required bool
	Verifier *token.Signer
}

type Auth struct {
	cfg AuthConfig
}

func NewAuth(cfg AuthConfig) *Auth {
	return &Auth{cfg: cfg}
}

// Middleware verifies a bearer session token when one is presented and stores
// the token's user id in the request context. Handlers cross-check it against
// the body user_id.
func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if openPaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			if a.cfg.Required {
				writeAuthError(w, "authorization header required")
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		tokenStr, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			writeAuthError(w, "invalid authorization header format")
			return
		}

		userID, err := a.cfg.Verifier.Verify(tokenStr)
		if err != nil {
			writeAuthError(w, "invalid or expired token")
			return
		}

		ctx := SetUserID(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"success":false,"error":"` + message + `"}`))
}
