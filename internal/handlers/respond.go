package handlers

import (
	"errors"
	"net/http"
	"runtime/debug"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"qrt-tracker/internal/service"
	"qrt-tracker/internal/utils"
)

// Responder writes service failures as JSON with a status derived from the
// error kind. Outside production the body also carries the goroutine trace
// of the failing handler.
type Responder struct {
	production bool
}

func NewResponder(production bool) *Responder { return &Responder{production: production} }

func (rs *Responder) Fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		hlog.FromRequest(r).Error().Err(err).Msg("request failed")
		msg = "internal error"
	}
	if rs.production {
		utils.Error(w, status, msg)
		return
	}
	utils.ErrorWithStack(w, status, msg, string(debug.Stack()))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrConflict), errors.Is(err, service.ErrInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// pathID parses a positive integer URL parameter.
func pathID(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func ack(w http.ResponseWriter, msg string) {
	utils.JSON(w, http.StatusOK, map[string]string{"message": msg})
}
