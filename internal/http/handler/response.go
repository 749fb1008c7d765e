package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Every response carries a success flag; failures add a human-readable
// error string. Mobile clients branch on the flag, not the status code.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, errorResponse{Success: false, Error: message})
}
