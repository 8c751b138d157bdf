package handlers

import (
	"context"
	"net/http"
	"time"

	"qrt-tracker/internal/utils"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// Health reports ok when the store answers a ping; db may be nil.
func Health(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				utils.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
