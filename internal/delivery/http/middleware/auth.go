package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"volunteerhub/internal/delivery/http/helpers"
	"volunteerhub/internal/domain"
)

type contextKey string

const userKey contextKey = "user"

// SetUser returns a context carrying the authenticated user. Used by auth middleware.
func SetUser(ctx context.Context, u *domain.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// UserFromContext returns the authenticated user from the context, if present.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(userKey).(*domain.User)
	return u, ok && u != nil
}

// Authenticator resolves a bearer token to the user it was issued for.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// RequireAuth returns a wrapper that validates the Bearer token, loads the user it names
// and sets it in the request context. If the token is missing, invalid or expired, or the
// user no longer exists, it responds with 401 and does not call next.
func RequireAuth(auth Authenticator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "No token provided")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(header, prefix) {
				helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(header[len(prefix):])
			if token == "" {
				helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "No token provided")
				return
			}
			u, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				if !errors.Is(err, domain.ErrTokenInvalid) && !errors.Is(err, domain.ErrTokenExpired) {
					logger.ErrorContext(r.Context(), "authenticate failed", "path", r.URL.Path, "err", err)
					helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "Internal server error")
					return
				}
				helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "Invalid or expired token")
				return
			}
			next.ServeHTTP(w, r.WithContext(SetUser(r.Context(), u)))
		})
	}
}

// RequireEventManager rejects callers whose role cannot manage events with 403.
// It must run after RequireAuth.
func RequireEventManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := UserFromContext(r.Context())
		if !ok {
			helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "Unauthorized: User not authenticated")
			return
		}
		if !u.Role.CanManageEvents() {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "Forbidden: admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
