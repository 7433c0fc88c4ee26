package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/bargainhunt/backend/internal/api/response"
)

// Recoverer turns a handler panic into a 500 response
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				Log(r.Context()).Error("panic recovered",
					"panic", rec,
					"stack", string(debug.Stack()),
				)
				response.InternalError(w, "")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
