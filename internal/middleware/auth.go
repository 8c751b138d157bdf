package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"qrt-tracker/internal/models"
	"qrt-tracker/internal/repository"
	"qrt-tracker/internal/utils"

	"github.com/rs/zerolog/hlog"
)

type TokenVerifier interface {
	Verify(token string) (subject string, err error)
}

type UserLookup interface {
	GetByID(ctx context.Context, id int) (*models.User, error)
}

const (
	msgNoToken     = "Not authorized, no token"
	msgTokenFailed = "Not authorized, token failed"
)

// Authenticate requires "Authorization: Bearer <token>", resolves the token
// subject to a user and attaches it to the request context.
func Authenticate(tokens TokenVerifier, users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := bearerToken(r)
			if tok == "" {
				utils.Error(w, http.StatusUnauthorized, msgNoToken)
				return
			}
			u, err := resolve(r.Context(), tok, tokens, users)
			if err != nil {
				if errors.Is(err, errRejected) {
					hlog.FromRequest(r).Debug().Err(err).Msg("token rejected")
					utils.Error(w, http.StatusUnauthorized, msgTokenFailed)
					return
				}
				lookupFailed(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(utils.WithUser(r.Context(), u)))
		})
	}
}

// Identify attaches the user when a valid token is present and otherwise
// lets the request through anonymously.
func Identify(tokens TokenVerifier, users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tok := bearerToken(r); tok != "" {
				u, err := resolve(r.Context(), tok, tokens, users)
				switch {
				case err == nil:
					r = r.WithContext(utils.WithUser(r.Context(), u))
				case !errors.Is(err, errRejected):
					lookupFailed(w, r, err)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	scheme, tok, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(tok)
}

// errRejected marks a token that is invalid or names no existing user.
var errRejected = errors.New("token rejected")

// resolve maps a token to its user. Failures caused by the token itself wrap
// errRejected; anything else is a store error.
func resolve(ctx context.Context, tok string, tokens TokenVerifier, users UserLookup) (*models.User, error) {
	sub, err := tokens.Verify(tok)
	if err != nil {
		return nil, errors.Join(errRejected, err)
	}
	id, err := strconv.Atoi(sub)
	if err != nil {
		return nil, errors.Join(errRejected, err)
	}
	u, err := users.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errors.Join(errRejected, err)
	}
	return u, err
}

func lookupFailed(w http.ResponseWriter, r *http.Request, err error) {
	hlog.FromRequest(r).Error().Err(err).Msg("user lookup failed")
	utils.Error(w, http.StatusInternalServerError, "internal error")
}
