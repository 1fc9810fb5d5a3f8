package http

import (
	"context"
	"io"

	"github.com/go-contacts-api/internal/domain"
	imaginginfra "github.com/go-contacts-api/internal/infrastructure/imaging"
)

// UserRepository is the minimal interface the router requires from a user store.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// GetByVerificationToken matches both pending and already consumed tokens.
	GetByVerificationToken(ctx context.Context, token string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) (*domain.User, error)
	Ping(ctx context.Context) error
}

// ContactRepository is the minimal interface the router requires from a contact store.
// Every lookup and write is scoped to an owner.
type ContactRepository interface {
	Put(ctx context.Context, c *domain.Contact) error
	GetOwned(ctx context.Context, contactID, ownerID string) (*domain.Contact, error)
	List(ctx context.Context, f domain.ContactFilter, skip, limit int) ([]domain.Contact, int, error)
	Update(ctx context.Context, contactID, ownerID string, updates map[string]interface{}) (*domain.Contact, error)
	Delete(ctx context.Context, contactID, ownerID string) error
}

// ObjectStore is the minimal interface the router requires from an object storage backend.
type ObjectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

type Mailer interface {
	SendEmail(to, subject, body string) error
}

type TokenProvider interface {
	Sign(userID string) (string, error)
	Verify(token string) (string, error)
}

type ImageResizer interface {
	Resize(r io.Reader, filename string) (*imaginginfra.Image, error)
}

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo    UserRepository
	ContactRepo ContactRepository
	ObjectStore ObjectStore
	Mailer      Mailer
	JWTProvider TokenProvider
	Resizer     ImageResizer
}
