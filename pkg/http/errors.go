package http

import (
	"encoding/json"
	"net/http"
	"time"
)

// ErrorResponse is the uniform failure envelope returned to clients.
// No stack traces or internal state ever leak through it.
type ErrorResponse struct {
	Status    int    `json:"status"`              // HTTP status code
	Reason    string `json:"reason"`              // Status reason phrase
	Message   string `json:"message"`             // Human-readable message
	Timestamp string `json:"timestamp"`           // RFC 3339
	Details   string `json:"details,omitempty"`   // Optional additional context
}

// WriteError writes a JSON error response with the given status code
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteErrorWithDetails(w, statusCode, message, "")
}

// WriteErrorWithDetails writes a JSON error response with additional details
func WriteErrorWithDetails(w http.ResponseWriter, statusCode int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := ErrorResponse{
		Status:    statusCode,
		Reason:    http.StatusText(statusCode),
		Message:   message,
		Timestamp: time.Now().Format(time.RFC3339),
		Details:   details,
	}

	// Encoding errors are not recoverable at this point
	_ = json.NewEncoder(w).Encode(resp)
}

// Common error writers for consistency
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message)
}

func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, message)
}

func WriteForbidden(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusForbidden, message)
}

func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message)
}

func WriteConflict(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusConflict, message)
}

func WriteTooManyRequests(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusTooManyRequests, message)
}

func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message)
}
