package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RestaurantBooking/internal/api/handlers"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Logging пишет строку лога на каждый запрос и перехватывает панику хендлера
func Logging(log Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			requestID := GetRequestID(r.Context())

			defer func() {
				if p := recover(); p != nil {
					log.Error("%s %s - panic recovered: request_id=%s, panic=%v", r.Method, r.URL.Path, requestID, p)
					handlers.RespondInternalError(rec)
				}

				log.Info("%s %s - %d in %s, request_id=%s",
					r.Method, r.URL.Path, rec.status, time.Since(started).Round(time.Microsecond), requestID)
			}()

			next.ServeHTTP(rec, r)
		})
	}
}
