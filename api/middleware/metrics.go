package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

const unmatchedRoute = "unmatched"

// HTTPObserver receives one observation per completed request.
type HTTPObserver interface {
	Observe(method, path string, status int, elapsed time.Duration)
}

// Metrics records request counts and latency labeled by the chi route
// pattern, so path parameters do not explode label cardinality.
func Metrics(observer HTTPObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if observer == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()
			next.ServeHTTP(rec, r)

			pattern := unmatchedRoute
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" && p != "/*" {
					pattern = p
				}
			}
			observer.Observe(r.Method, pattern, rec.statusCode(), time.Since(start))
		})
	}
}
