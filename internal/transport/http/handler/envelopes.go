package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-contacts-api/internal/domain"
	"github.com/go-contacts-api/internal/transport/http/middleware"
)

const maxJSONBody = 1 << 20

// MessageEnvelope is the generic response wrapper; every error body uses it.
type MessageEnvelope struct {
	Message string `json:"message"`
}

// PublicUser is the user as shown to its owner.
type PublicUser struct {
	Email        string `json:"email"`
	Subscription string `json:"subscription"`
	AvatarURL    string `json:"avatarUrl,omitempty"`
}

// RegisterEnvelope wraps the register response.
type RegisterEnvelope struct {
	User PublicUser `json:"user"`
}

// LoginEnvelope wraps the login response.
type LoginEnvelope struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}

// AvatarEnvelope wraps the avatar upload response.
type AvatarEnvelope struct {
	AvatarURL string `json:"avatarUrl"`
}

// ContactItem is a contact in list responses; the owner reference is omitted.
type ContactItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Favorite bool   `json:"favorite"`
}

// PaginatedContactsEnvelope wraps paginated contact list responses.
type PaginatedContactsEnvelope struct {
	Items       []ContactItem `json:"items"`
	TotalPages  int           `json:"totalPages"`
	CurrentPage int           `json:"currentPage"`
}

func toPublicUser(u *domain.User, withAvatar bool) PublicUser {
	p := PublicUser{Email: u.Email, Subscription: u.Subscription}
	if withAvatar {
		p.AvatarURL = u.AvatarURL
	}
	return p
}

func toContactItem(c *domain.Contact) ContactItem {
	return ContactItem{ID: c.ContactID, Name: c.Name, Email: c.Email, Phone: c.Phone, Favorite: c.Favorite}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	middleware.WriteJSONError(w, status, msg)
}

// decodeJSON reads a single JSON object from the request body. A malformed body
// answers 400 and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "missing request body")
		} else {
			writeError(w, http.StatusBadRequest, "invalid request body")
		}
		return false
	}
	return true
}

// statusFor maps an error kind to its HTTP status. Unknown errors are 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidQuery),
		errors.Is(err, domain.ErrAlreadyVerified):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrEmailNotVerified),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrExpiredToken):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrEmailInUse):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError writes err with its mapped status. Server errors are logged and
// answered with a generic message.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		writeError(w, status, "Server error")
		return
	}
	writeError(w, status, domain.PublicMessage(err, http.StatusText(status)))
}
