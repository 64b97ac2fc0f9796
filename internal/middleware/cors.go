package middleware

import (
	"net/http"

	"github.com/rs/cors"

	"showroom-backend/internal/config"
)

// CORS builds the cross-origin handler from config, defaulting to a
// permissive localhost setup for development.
func CORS(cfg *config.Config) func(http.Handler) http.Handler {
	origins := cfg.Server.CorsAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	methods := cfg.Server.CorsAllowedMethods
	if len(methods) == 0 {
		methods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	headers := cfg.Server.CorsAllowedHeaders
	if len(headers) == 0 {
		headers = []string{"Authorization", "Content-Type"}
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   methods,
		AllowedHeaders:   headers,
		AllowCredentials: true,
	})
	return c.Handler
}
