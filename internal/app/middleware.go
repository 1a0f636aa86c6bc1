package app

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/moneta-app/moneta/internal/auth"
	"github.com/moneta-app/moneta/internal/config"
	"github.com/moneta-app/moneta/internal/rest"
	"github.com/moneta-app/moneta/pkg/user"
	log "github.com/sirupsen/logrus"
)

// SetupMiddleware attaches the current user to every request of r. Requests without a known
// user are rejected before reaching the handlers.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) {
	switch cfg.Auth.Mode {
	case config.AuthModeGoogle:
		r.Use(googleIdentity(deps))
	default:
		r.Use(headerIdentity(deps))
	}
}

// headerIdentity propagates the X-User-Id header set by an authenticating proxy.
func headerIdentity(deps *Dependencies) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			log.Debug("Propagating user ID header")

			userIdHeader := req.Header.Get("X-User-Id")
			if userIdHeader == "" {
				http.Error(w, "user not found", http.StatusForbidden)
				return
			}

			ctx := req.Context()
			u, err := deps.UserService.GetUserByUid(ctx, userIdHeader)
			if err != nil {
				if errors.Is(err, user.ErrUserNotFound) {
					log.Debugf("user not found: %s", userIdHeader)
					http.Error(w, "user not found", http.StatusForbidden)
					return
				}
				log.Errorf("failed to get user: %v", err)
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			log.Debugf("user found: %s", u.Uid)
			next.ServeHTTP(w, req.WithContext(user.WithUser(ctx, u)))
		})
	}
}

// googleIdentity validates the Google ID token and registers unknown subjects on first sight.
func googleIdentity(deps *Dependencies) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			token, err := auth.BearerToken(req)
			if err != nil {
				rest.WriteError(w, http.StatusUnauthorized, "Unauthorized", err.Error())
				return
			}

			ctx := req.Context()
			claims, err := deps.AuthTokenValidator.Validate(ctx, token)
			if err != nil {
				rest.WriteError(w, http.StatusUnauthorized, "Unauthorized", "")
				return
			}

			u, err := deps.UserService.GetOrCreateByUid(ctx, user.User{
				Uid:         claims.Subject,
				Email:       claims.Email,
				DisplayName: claims.Name,
			})
			if err != nil {
				if errors.Is(err, user.ErrUserDataInvalid) {
					http.Error(w, "user not found", http.StatusForbidden)
					return
				}
				log.Errorf("failed to get user: %v", err)
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			next.ServeHTTP(w, req.WithContext(user.WithUser(ctx, u)))
		})
	}
}
