package middleware

import (
	"net/http"
	"runtime/debug"

	"qrt-tracker/internal/utils"

	"github.com/rs/zerolog"
)

// Recoverer turns a panic into a 500 JSON body; the stack is included unless
// running in production.
func Recoverer(l zerolog.Logger, production bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					stack := string(debug.Stack())
					l.Error().Interface("panic", rec).Str("stack", stack).Msg("panic")
					if production {
						stack = ""
					}
					utils.ErrorWithStack(w, http.StatusInternalServerError, "internal error", stack)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
