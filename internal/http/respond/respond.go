package respond

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/MrJamesThe3rd/presence/internal/backend"
)

type errorResponse struct {
	Error string `json:"error"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Error writes a JSON {"error": msg} body.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, errorResponse{Error: msg})
}

// BackendError maps a failed backend call to a gateway response.
func BackendError(w http.ResponseWriter, err error) {
	var se *backend.StatusError

	switch {
	case errors.Is(err, backend.ErrInvalidCredentials):
		Error(w, http.StatusUnauthorized, "invalid credentials")
	case errors.As(err, &se) && se.Code == http.StatusUnauthorized:
		Error(w, http.StatusUnauthorized, se.Message)
	case errors.Is(err, context.DeadlineExceeded):
		Error(w, http.StatusGatewayTimeout, err.Error())
	default:
		slog.Error("backend request failed", "error", err)
		Error(w, http.StatusBadGateway, err.Error())
	}
}
