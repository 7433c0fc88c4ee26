package middleware

import (
	"net/http"
	"slices"

	"github.com/go-chi/cors"
)

// CORS allows browser clients from origins. A "*" entry allows any origin without credentials.
func CORS(origins []string) func(next http.Handler) http.Handler {
	wildcard := len(origins) == 0 || slices.Contains(origins, "*")
	if wildcard {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", RequestIDHeader, "If-None-Match"},
		ExposedHeaders:   []string{RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "ETag"},
		AllowCredentials: !wildcard,
		MaxAge:           300,
	})
}
