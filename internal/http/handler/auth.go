package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/yefeblgn/TodoListApp/internal/model"
	"github.com/yefeblgn/TodoListApp/internal/service"
)

// AuthHandler serves the account endpoints of the form-POST contract.
type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// ServeHTTP routes /api/newuser, /api/userlogin, /api/delete-account,
// /api/update-username, /api/update-password.
func (h *AuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/")
	path = strings.TrimRight(path, "/")

	switch path {
	case "newuser":
		requirePost(w, r, h.handleRegister)
	case "userlogin":
		requirePost(w, r, h.handleLogin)
	case "delete-account":
		requirePost(w, r, h.handleDeleteAccount)
	case "update-username":
		requirePost(w, r, h.handleUpdateUsername)
	case "update-password":
		requirePost(w, r, h.handleUpdatePassword)
	default:
		WriteError(w, http.StatusNotFound, "endpoint not found")
	}
}

// --- DTOs ---

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	Success bool   `json:"success"`
	UserID  string `json:"user_id"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type loginResponse struct {
	Success bool      `json:"success"`
	User    loginUser `json:"user"`
	Token   string    `json:"token"`
}

type deleteAccountRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateUsernameRequest struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type updatePasswordRequest struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// --- Handlers ---

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userID, err := h.svc.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, registerResponse{Success: true, UserID: userID})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	out, err := h.svc.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, loginResponse{
		Success: true,
		User:    toLoginUser(out.User),
		Token:   out.Token,
	})
}

func (h *AuthHandler) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	var req deleteAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.DeleteAccount(r.Context(), service.DeleteAccountInput{
		Email:    req.Email,
		Password: req.Password,
	}); err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, okResponse{Success: true})
}

func (h *AuthHandler) handleUpdateUsername(w http.ResponseWriter, r *http.Request) {
	var req updateUsernameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.UpdateUsername(r.Context(), service.UpdateUsernameInput{
		UserID:   req.ID,
		Email:    req.Email,
		Username: req.Username,
	}); err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, okResponse{Success: true})
}

func (h *AuthHandler) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req updatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.UpdatePassword(r.Context(), service.UpdatePasswordInput{
		UserID:      req.ID,
		Email:       req.Email,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	}); err != nil {
		handleServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, okResponse{Success: true})
}

func toLoginUser(u model.User) loginUser {
	return loginUser{ID: u.ID, Username: u.Username, Email: u.Email}
}
