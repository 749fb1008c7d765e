package middleware_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/yefeblgn/TodoListApp/internal/middleware"
)

func TestGetUserID_AnonymousRequest(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/list-todo", nil)

	if got := middleware.GetUserID(req); got != "" {
		t.Errorf("expected empty user id on anonymous request, got %q", got)
	}
}

func TestGetUserID_AfterSet(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/add-todo", nil)
	req = req.WithContext(middleware.SetUserID(req.Context(), "user-abc"))

	if got := middleware.GetUserID(req); got != "user-abc" {
		t.Errorf("expected user-abc, got %q", got)
	}
}

func TestSetUserID_Overwrites(t *testing.T) {
	ctx := middleware.SetUserID(context.Background(), "first")
	ctx = middleware.SetUserID(ctx, "second")

	req := httptest.NewRequest("GET", "/", nil).WithContext(ctx)
	if got := middleware.GetUserID(req); got != "second" {
		t.Errorf("expected the later value to win, got %q", got)
	}
}

func TestGetUserID_ForeignKeyDoesNotLeak(t *testing.T) {
	// A value stored under a look-alike key must not be visible through the
	// package's unexported key.
	type lookalike string
	ctx := context.WithValue(context.Background(), lookalike("user_id"), "spoofed")
	req := httptest.NewRequest("GET", "/", nil).WithContext(ctx)

	if got := middleware.GetUserID(req); got != "" {
		t.Errorf("expected foreign context value to be invisible, got %q", got)
	}
}
