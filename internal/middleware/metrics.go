package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// Recorder is satisfied by *metrics.Metrics.
type Recorder interface {
	RecordHTTPRequest(ctx context.Context, method, route string, status int, duration time.Duration)
}

// Metrics records every request against its chi route pattern. Requests that
// matched no route are recorded as "unmatched".
func Metrics(rec Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := wrap(w)

			next.ServeHTTP(wrapped, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}
			rec.RecordHTTPRequest(r.Context(), r.Method, route, wrapped.statusCode, time.Since(start))
		})
	}
}
