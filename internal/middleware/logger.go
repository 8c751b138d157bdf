package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

const requestIDHeader = "X-Request-Id"

// RequestLogger puts a request-scoped logger carrying a request id into the
// context and writes one access line per request.
func RequestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	access := hlog.AccessHandler(func(r *http.Request, status, size int, dur time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", dur).
			Msg("request")
	})
	return func(next http.Handler) http.Handler {
		inner := access(next)
		withID := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(requestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, id)
			l := zerolog.Ctx(r.Context()).With().Str("request_id", id).Logger()
			inner.ServeHTTP(w, r.WithContext(l.WithContext(r.Context())))
		})
		return hlog.NewHandler(log)(withID)
	}
}
