package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-contacts-api/internal/domain"
)

type contactLoader interface {
	Get(ctx context.Context, ownerID, contactID string) (*domain.Contact, error)
}

// ContactOwner loads the contact named by the "id" route parameter, scoped to the
// authenticated user. Unknown, malformed and foreign ids all answer 404.
// Must run after Auth.
func ContactOwner(contacts contactLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := UserFromContext(r.Context())
			if !ok {
				WriteJSONError(w, http.StatusUnauthorized, "Not authorized")
				return
			}
			c, err := contacts.Get(r.Context(), u.UserID, chi.URLParam(r, "id"))
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					WriteJSONError(w, http.StatusNotFound, "Not found")
					return
				}
				slog.Error("contact lookup failed", "user_id", u.UserID, "err", err)
				WriteJSONError(w, http.StatusInternalServerError, "Server error")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithContact(r.Context(), c)))
		})
	}
}

// ContactFromContext returns the contact loaded by ContactOwner.
func ContactFromContext(ctx context.Context) (*domain.Contact, bool) {
	c, ok := ctx.Value(contactKey).(*domain.Contact)
	return c, ok
}

// WithContact returns a copy of ctx carrying c.
func WithContact(ctx context.Context, c *domain.Contact) context.Context {
	return context.WithValue(ctx, contactKey, c)
}
