package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/yefeblgn/TodoListApp/internal/middleware"
	"github.com/yefeblgn/TodoListApp/internal/model"
	"github.com/yefeblgn/TodoListApp/internal/service"
)

const maxBodySize = 1 << 20 // 1 MB

// TaskHandler serves the todo endpoints of the form-POST contract.
type TaskHandler struct {
	svc *service.TaskService
}

func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// ServeHTTP routes /api/list-todo, /api/add-todo, /api/edit-todo, /api/delete-todo.
func (h *TaskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/")
	path = strings.TrimRight(path, "/")

	switch path {
	case "list-todo":
		requirePost(w, r, h.handleList)
	case "add-todo":
		requirePost(w, r, h.handleAdd)
	case "edit-todo":
		requirePost(w, r, h.handleEdit)
	case "delete-todo":
		requirePost(w, r, h.handleDelete)
	default:
		WriteError(w, http.StatusNotFound, "endpoint not found")
	}
}

func requirePost(w http.ResponseWriter, r *http.Request, handler func(http.ResponseWriter, *http.Request)) {
	if r.Method != http.MethodPost {
		WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	handler(w, r)
}

// --- DTOs ---

type listTodoRequest struct {
	UserID string `json:"user_id"`
}

type listTodoResponse struct {
	Success bool         `json:"success"`
	Todos   []model.Task `json:"todos"`
}

type addTodoRequest struct {
	UserID      string  `json:"user_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DueAt       *string `json:"due_at,omitempty"`
}

type addTodoResponse struct {
	Success bool   `json:"success"`
	TodoID  string `json:"todo_id"`
}

type editTodoRequest struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	IsCompleted *bool   `json:"is_completed,omitempty"`
	DueAt       *string `json:"due_at,omitempty"`
}

type deleteTodoRequest struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
}

type okResponse struct {
	Success bool `json:"success"`
}

// --- Handlers ---

func (h *TaskHandler) handleList(w http.ResponseWriter, r *http.Request) {
	var req listTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userID, err := resolveUserID(r, req.UserID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	todos, err := h.svc.List(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, listTodoResponse{Success: true, Todos: todos})
}

func (h *TaskHandler) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req addTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userID, err := resolveUserID(r, req.UserID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	todo, err := h.svc.Create(r.Context(), userID, service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueAt:       req.DueAt,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, addTodoResponse{Success: true, TodoID: todo.ID})
}

func (h *TaskHandler) handleEdit(w http.ResponseWriter, r *http.Request) {
	var req editTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ID == "" {
		WriteError(w, http.StatusBadRequest, "id is required")
		return
	}

	userID, err := resolveUserID(r, req.UserID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	_, err = h.svc.Update(r.Context(), userID, req.ID, service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		IsCompleted: req.IsCompleted,
		DueAt:       req.DueAt,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, okResponse{Success: true})
}

func (h *TaskHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	var req deleteTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ID == "" {
		WriteError(w, http.StatusBadRequest, "id is required")
		return
	}

	userID, err := resolveUserID(r, req.UserID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if err := h.svc.Delete(r.Context(), userID, req.ID); err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, okResponse{Success: true})
}

// resolveUserID reconciles the body user_id with the one the auth middleware
// put in the context. The contract carries user_id in every body; when a
// bearer token is also present the two must agree.
func resolveUserID(r *http.Request, bodyUserID string) (string, error) {
	ctxUserID := middleware.GetUserID(r)

	switch {
	case ctxUserID != "" && bodyUserID != "" && ctxUserID != bodyUserID:
		return "", service.ErrForbidden
	case ctxUserID != "":
		return ctxUserID, nil
	case bodyUserID != "":
		return bodyUserID, nil
	default:
		return "", fmt.Errorf("%w: user_id is required", service.ErrInvalidInput)
	}
}

func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		WriteError(w, http.StatusNotFound, "resource not found")
	case errors.Is(err, service.ErrInvalidInput):
		WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrForbidden):
		WriteError(w, http.StatusForbidden, "access denied")
	case errors.Is(err, service.ErrEmailTaken):
		WriteError(w, http.StatusConflict, "a user with this email already exists")
	case errors.Is(err, service.ErrBadCredentials):
		WriteError(w, http.StatusUnauthorized, "invalid email or password")
	default:
		WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
