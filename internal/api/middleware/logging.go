package middleware

import (
	"net/http"
	"time"
)

// Logger is the logging interface the middleware needs.
type Logger interface {
	Info(format string, v ...interface{})
}

// Logging logs one line per request with method, path and latency.
func Logging(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			next.ServeHTTP(w, r)
			logger.Info("%s %s completed in %s", r.Method, r.URL.Path, time.Since(started))
		})
	}
}
