package handlers

import (
	"errors"
	"net/http"

	"github.com/bargainhunt/backend/internal/api/response"
	"github.com/bargainhunt/backend/internal/middleware"
	"github.com/bargainhunt/backend/internal/service"
)

const (
	msgQuotaExceeded = "Daily limit reached"
	msgUpstream      = "Failed to find deals. Please try again."
	msgUserNotFound  = "User not found"
	msgUserIDMissing = "userId is required"
)

// writeError maps a service error to a status code. invalidMsg is used for bad input.
// Unexpected errors are logged and never echoed to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error, invalidMsg string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		response.BadRequest(w, invalidMsg)
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(w, msgUserNotFound)
	case errors.Is(err, service.ErrQuotaExceeded):
		response.Forbidden(w, msgQuotaExceeded)
	case errors.Is(err, service.ErrUpstream):
		response.InternalError(w, msgUpstream)
	default:
		middleware.Log(r.Context()).Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		response.InternalError(w, "")
	}
}
