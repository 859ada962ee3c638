package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows the single-page client to call the API from the configured origins.
func CORS(origins []string) func(http.Handler) http.Handler {
	allowCredentials := true
	for _, o := range origins {
		if o == "*" {
			allowCredentials = false
			break
		}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", TraceHeader},
		ExposedHeaders:   []string{TraceHeader, "Content-Disposition"},
		AllowCredentials: allowCredentials,
		MaxAge:           300,
	})
}
