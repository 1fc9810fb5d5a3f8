package domain

import "errors"

// Sentinel error kinds. Every failure surfaced to a client wraps exactly one of these,
// so the transport layer can map it to a status code without inspecting messages.
var (
	ErrValidation         = errors.New("validation error")
	ErrInvalidQuery       = errors.New("invalid query")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrNotFound           = errors.New("not found")
	ErrEmailInUse         = errors.New("email in use")
	ErrAlreadyVerified    = errors.New("already verified")
	ErrStorage            = errors.New("storage error")

	// Token Service results; the auth middleware folds both into ErrUnauthenticated.
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)

// Error pairs a sentinel kind with a message that is safe to return to clients.
type Error struct {
	Kind    error
	Message string
	Err     error // optional cause, never exposed
}

// E builds an *Error of the given kind.
func E(kind error, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Wrap builds an *Error of the given kind that keeps cause for logging.
func Wrap(kind error, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Err: cause}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// PublicMessage returns the client-safe message carried by err, or fallback when err
// carries none.
func PublicMessage(err error, fallback string) string {
	var de *Error
	if errors.As(err, &de) && de.Message != "" {
		return de.Message
	}
	return fallback
}
