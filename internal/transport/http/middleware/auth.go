package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-contacts-api/internal/domain"
)

type contextKey string

const (
	userKey    contextKey = "user"
	contactKey contextKey = "contact"
)

type tokenVerifier interface {
	Verify(token string) (string, error)
}

type userLoader interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

// Auth returns middleware that validates the Bearer JWT, loads its user and injects
// the user into the request context.
func Auth(verifier tokenVerifier, users userLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scheme, tokenStr, _ := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
			tokenStr = strings.TrimSpace(tokenStr)
			if tokenStr == "" {
				WriteJSONError(w, http.StatusUnauthorized, "No token provided")
				return
			}
			if scheme != "Bearer" {
				WriteJSONError(w, http.StatusUnauthorized, "Token type is not valid")
				return
			}
			userID, err := verifier.Verify(tokenStr)
			if err != nil {
				WriteJSONError(w, http.StatusUnauthorized, "Not authorized")
				return
			}
			u, err := users.Get(r.Context(), userID)
			if err != nil {
				if !errors.Is(err, domain.ErrNotFound) {
					slog.Error("auth user lookup failed", "user_id", userID, "err", err)
				}
				WriteJSONError(w, http.StatusUnauthorized, "Not authorized")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}

// UserFromContext returns the authenticated user injected by Auth.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(userKey).(*domain.User)
	return u, ok
}

// WithUser returns a copy of ctx carrying u.
func WithUser(ctx context.Context, u *domain.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}
