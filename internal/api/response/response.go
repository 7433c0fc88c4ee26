// Package response writes JSON bodies for the HTTP API.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/bargainhunt/backend/internal/logger"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse acknowledges a mutation
type SuccessResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	NewCount *int   `json:"newCount,omitempty"`
}

// JSON writes a JSON response with the given status code
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			logger.Warn("failed to encode response", "error", err)
		}
	}
}

// OK writes data with status 200
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Success writes {"success":true} with an optional message
func Success(w http.ResponseWriter, message string) {
	OK(w, SuccessResponse{Success: true, Message: message})
}

// Error writes an error response
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorResponse{Error: message})
}

// NotFound writes a 404 not found response
func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Resource not found"
	}
	Error(w, http.StatusNotFound, message)
}

// BadRequest writes a 400 bad request response
func BadRequest(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Bad request"
	}
	Error(w, http.StatusBadRequest, message)
}

// Forbidden writes a 403 forbidden response
func Forbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Forbidden"
	}
	Error(w, http.StatusForbidden, message)
}

// InternalError writes a 500 internal server error response
func InternalError(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Internal server error"
	}
	Error(w, http.StatusInternalServerError, message)
}

// TooManyRequests writes a 429 rate limit exceeded response
func TooManyRequests(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Rate limit exceeded"
	}
	Error(w, http.StatusTooManyRequests, message)
}

// NotModified writes a 304 not modified response
func NotModified(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNotModified)
}
