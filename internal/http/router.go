package http

import (
	"net/http"

	"github.com/yefeblgn/TodoListApp/internal/http/handler"
	"github.com/yefeblgn/TodoListApp/internal/service"
)

func NewRouter(taskSvc *service.TaskService, authSvc *service.AuthService) http.Handler {
	mux := http.NewServeMux()

	// Health check lives outside /api for load balancer compatibility
	mux.Handle("/health", handler.NewHealthHandler())

	authHandler := handler.NewAuthHandler(authSvc)
	for _, p := range []string{
		"/api/newuser",
		"/api/userlogin",
		"/api/delete-account",
		"/api/update-username",
		"/api/update-password",
	} {
		mux.Handle(p, authHandler)
	}

	taskHandler := handler.NewTaskHandler(taskSvc)
	for _, p := range []string{
		"/api/list-todo",
		"/api/add-todo",
		"/api/edit-todo",
		"/api/delete-todo",
	} {
		mux.Handle(p, taskHandler)
	}

	return mux
}
