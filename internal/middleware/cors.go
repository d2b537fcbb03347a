package middleware

import (
	"net/http"
	"slices"

	"github.com/rs/cors"
)

// Cors allows the given origins, or any origin when none are given.
func Cors(origins []string) Middleware {
	options := cors.Options{
		AllowOriginFunc: func(origin string) bool {
			return len(origins) == 0 || slices.Contains(origins, origin)
		},
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{"X-Request-ID"},
	}
	return cors.New(options).Handler
}
