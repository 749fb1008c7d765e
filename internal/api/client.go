// Package api is the typed client for the remote task service.
// Every call normalizes failures into *RemoteError so callers never
// have to look at raw HTTP responses.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yefeblgn/TodoListApp/internal/model"
)

// DefaultTimeout bounds every request. The original client waited forever;
// a hung request left the UI pending indefinitely.
const DefaultTimeout = 15 * time.Second

type Client struct {
	baseURL string
	httpc   *http.Client
	token   string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
	}
}

// SetToken attaches a session token to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// --- Request/response types ---

type AddTodoInput struct {
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueAt       *time.Time `json:"due_at,omitempty"`
}

// EditTodoInput carries only the fields being changed; nil means keep.
// DueAt is the raw RFC3339 string because the server distinguishes an absent
// field (keep) from an empty one (clear), which a time value cannot express.
type EditTodoInput struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	IsCompleted *bool   `json:"is_completed,omitempty"`
	DueAt       *string `json:"due_at,omitempty"`
}

type LoginResult struct {
	User  model.User
	Token string
}

// --- Operations ---

func (c *Client) Register(ctx context.Context, username, email, password string) (string, error) {
	var out struct {
		UserID string `json:"user_id"`
	}
	err := c.post(ctx, "/api/newuser", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return "", err
	}
	return out.UserID, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	var out struct {
		User  model.User `json:"user"`
		Token string     `json:"token"`
	}
	err := c.post(ctx, "/api/userlogin", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return LoginResult{}, err
	}
	c.token = out.Token
	return LoginResult{User: out.User, Token: out.Token}, nil
}

func (c *Client) ListTodos(ctx context.Context, userID string) ([]model.Task, error) {
	var out struct {
		Todos []model.Task `json:"todos"`
	}
	err := c.post(ctx, "/api/list-todo", map[string]string{"user_id": userID}, &out)
	if err != nil {
		return nil, err
	}
	return out.Todos, nil
}

func (c *Client) AddTodo(ctx context.Context, input AddTodoInput) (string, error) {
	var out struct {
		TodoID string `json:"todo_id"`
	}
	if err := c.post(ctx, "/api/add-todo", input, &out); err != nil {
		return "", err
	}
	return out.TodoID, nil
}

func (c *Client) EditTodo(ctx context.Context, input EditTodoInput) error {
	return c.post(ctx, "/api/edit-todo", input, nil)
}

func (c *Client) DeleteTodo(ctx context.Context, id, userID string) error {
	return c.post(ctx, "/api/delete-todo", map[string]string{
		"id":      id,
		"user_id": userID,
	}, nil)
}

func (c *Client) DeleteAccount(ctx context.Context, email, password string) error {
	return c.post(ctx, "/api/delete-account", map[string]string{
		"email":    email,
		"password": password,
	}, nil)
}

func (c *Client) UpdateUsername(ctx context.Context, id, email, username string) error {
	return c.post(ctx, "/api/update-username", map[string]string{
		"id":       id,
		"email":    email,
		"username": username,
	}, nil)
}

func (c *Client) UpdatePassword(ctx context.Context, id, email, oldPassword, newPassword string) error {
	return c.post(ctx, "/api/update-password", map[string]string{
		"id":           id,
		"email":        email,
		"old_password": oldPassword,
		"new_password": newPassword,
	}, nil)
}

// post sends a JSON body and decodes the success envelope. The backend is
// loosely typed; everything is parsed into concrete structs right here at
// the boundary and nothing downstream sees raw JSON.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return &RemoteError{Message: connectivityMessage(err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return &RemoteError{Status: resp.StatusCode, Message: "failed to read server response"}
	}

	var env struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return &RemoteError{Status: resp.StatusCode, Message: "malformed server response"}
	}

	if !env.Success || resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := env.Error
		if msg == "" {
			msg = "request failed"
		}
		return &RemoteError{Status: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return &RemoteError{Status: resp.StatusCode, Message: "malformed server response"}
		}
	}
	return nil
}

func connectivityMessage(err error) string {
	return fmt.Sprintf("cannot reach server: %v", err)
}
