package middleware

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-RestaurantBooking/internal/api/handlers"
)

const msgRateLimited = "слишком много запросов, повторите позже"

// RateLimit ограничивает общий поток запросов token bucket'ом (rps, burst)
func RateLimit(rps float64, burst int) mux.MiddlewareFunc {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Retry-After", "1")
				handlers.RespondTooManyRequests(w, msgRateLimited)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(int(rps)))
			next.ServeHTTP(w, r)
		})
	}
}
