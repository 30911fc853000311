package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/opsboard/internal/logger"
)

// withLogging emits one access-log line per request with method, URI,
// status, payload size and duration. It pulls the trace-bound logger from
// the request context, so it needs no state of its own.
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		start := time.Now()

		lw := &responseWriter{ResponseWriter: w}
		next.ServeHTTP(lw, r)

		log.Info().
			Str("uri", r.RequestURI).
			Str("method", r.Method).
			Int("status", lw.status).
			Dur("duration", time.Since(start)).
			Int("size", lw.size).
			Send()
	})
}
