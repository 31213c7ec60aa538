package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	gorillasessions "github.com/gorilla/sessions"

	"inkwell/app/models"
	"inkwell/app/services"
)

const (
	// SessionName is the cookie name for the signed session.
	SessionName = "inkwell_session"
	// TokenKey is the session key holding the opaque auth token.
	TokenKey = "token"
)

type contextKey string

const userContextKey = contextKey("current_user")

// Logger logs information about each request
func Logger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"duration", time.Since(start),
			)
		})
	}
}

// Recoverer recovers from panics and logs the error
func Recoverer(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.Error("panic recovered", "error", err, "path", r.URL.Path)
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// CurrentUser resolves the session cookie to an authenticated user and
// places it on the request context. Anonymous requests pass through with
// no user set.
func CurrentUser(auth *services.AuthService, store gorillasessions.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, SessionName)
			if err != nil {
				// Tampered or stale cookie; treat as anonymous.
				next.ServeHTTP(w, r)
				return
			}

			token, ok := session.Values[TokenKey].(string)
			if !ok || token == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := auth.UserForToken(token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated user for the request, or nil
// when the request is anonymous.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}

// WithUser returns a copy of ctx carrying the given user. Used by tests.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// RequireAdmin rejects any request whose session does not belong to the
// reserved admin account. The wrapped handler never runs on rejection.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := UserFromContext(r.Context())
		if !user.IsAdmin() {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
