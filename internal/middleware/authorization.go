package middleware

import (
	"net/http"

	"qrt-tracker/internal/utils"
)

// RequireAdmin lets the request through only for admins. It must run after
// Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := utils.CurrentUser(r.Context())
		if !ok || !u.IsAdmin {
			utils.Error(w, http.StatusUnauthorized, "Not authorized as an admin")
			return
		}
		next.ServeHTTP(w, r)
	})
}
