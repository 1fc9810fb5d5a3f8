package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-contacts-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	cases := map[error]int{
		domain.ErrValidation:         http.StatusBadRequest,
		domain.ErrInvalidQuery:       http.StatusBadRequest,
		domain.ErrAlreadyVerified:    http.StatusBadRequest,
		domain.ErrUnauthenticated:    http.StatusUnauthorized,
		domain.ErrInvalidCredentials: http.StatusUnauthorized,
		domain.ErrEmailNotVerified:   http.StatusUnauthorized,
		domain.ErrInvalidToken:       http.StatusUnauthorized,
		domain.ErrExpiredToken:       http.StatusUnauthorized,
		domain.ErrNotFound:           http.StatusNotFound,
		domain.ErrEmailInUse:         http.StatusConflict,
		domain.ErrStorage:            http.StatusInternalServerError,
		errors.New("anything else"):  http.StatusInternalServerError,
	}
	for kind, want := range cases {
		wrapped := fmt.Errorf("layer: %w", domain.E(kind, "msg"))
		assert.Equal(t, want, statusFor(wrapped), kind.Error())
	}
}
