package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"

	"github.com/angelmondragon/daypass-backend/pkg/config"
)

var defaultCORSOrigins = []string{
	"http://localhost:5173", // vite dev server
}

// CORS returns middleware that applies the configured allowed origin policy.
func CORS(cfg config.HTTPConfig) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins(cfg.AllowedOrigins),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}

func allowedOrigins(configured []string) []string {
	out := make([]string, 0, len(configured))
	for _, origin := range configured {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultCORSOrigins
	}
	return out
}
