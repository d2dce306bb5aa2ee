package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/abhisek/codekitchen/internal/catalog"
	"github.com/abhisek/codekitchen/internal/progression"
	"github.com/abhisek/codekitchen/internal/reorder"
	"github.com/abhisek/codekitchen/internal/session"
)

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, catalog.ErrNotFound), errors.Is(err, progression.ErrNoSession):
		return http.StatusNotFound
	case errors.Is(err, progression.ErrLocked):
		return http.StatusForbidden
	case errors.Is(err, reorder.ErrInvalidMove):
		return http.StatusBadRequest
	case errors.Is(err, progression.ErrAckPending), errors.Is(err, session.ErrSessionComplete):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err with its mapped status.
func fail(w http.ResponseWriter, err error) {
	Error(w, statusFor(err), err.Error())
}
