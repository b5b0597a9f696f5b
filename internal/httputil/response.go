package httputil

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse is the error body shape used by every endpoint.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// Message is a plain confirmation body, e.g. after a delete.
type Message struct {
	Message string `json:"message"`
}

// RespondJSON sends a JSON response with the given status code.
// Logs encoding errors to avoid silent failures.
func RespondJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err.Error())
	}
}

// RespondError sends a JSON error response with the given detail message.
func RespondError(w http.ResponseWriter, detail string, statusCode int) {
	RespondJSON(w, ErrorResponse{Detail: detail}, statusCode)
}
