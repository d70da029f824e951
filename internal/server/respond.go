package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/acmcompass/compass/internal/gitsync"
	"github.com/acmcompass/compass/internal/store"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, code int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "failed to encode response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(data)
}

func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, errorResponse{Error: message})
}

// statusFromErr maps domain errors to HTTP status codes.
func statusFromErr(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if errors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, gitsync.ErrRemoteNotConfigured) {
		return http.StatusBadRequest
	}
	var toolErr *gitsync.ToolError
	if errors.As(err, &toolErr) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
