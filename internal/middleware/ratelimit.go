package middleware

import (
	"net/http"

	"github.com/go-chi/render"
	"golang.org/x/time/rate"
)

// RateLimit admits at most rpm requests per minute across all clients, with
// a burst of a sixth of rpm (at least one). Rejected requests get 429.
func RateLimit(rpm int) func(http.Handler) http.Handler {
	burst := max(rpm/6, 1)
	limiter := rate.NewLimiter(rate.Limit(float64(rpm)/60.0), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				render.Status(r, http.StatusTooManyRequests)
				render.JSON(w, r, map[string]string{
					"error":   "rate_limited",
					"message": "Rate limit exceeded",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
