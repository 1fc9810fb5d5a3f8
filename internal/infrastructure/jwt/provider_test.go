package jwtinfra

import (
	"errors"
	"testing"
	"time"

	"github.com/go-contacts-api/internal/config"
	"github.com/go-contacts-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T, expiry time.Duration) *Provider {
	t.Helper()
	p, err := NewProvider(&config.Config{JWTSecret: "test-secret", JWTExpiry: expiry})
	require.NoError(t, err)
	return p
}

func TestNewProvider_RequiresSecret(t *testing.T) {
	_, err := NewProvider(&config.Config{})
	assert.Error(t, err)
}

func TestSignVerify_RoundTrip(t *testing.T) {
	p := newTestProvider(t, 0)

	signed, err := p.Sign("u1")
	require.NoError(t, err)

	userID, err := p.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
}

func TestVerify_Malformed(t *testing.T) {
	p := newTestProvider(t, 0)
	_, err := p.Verify("not-a-real-token")
	assert.True(t, errors.Is(err, domain.ErrInvalidToken))
}

func TestVerify_WrongSecret(t *testing.T) {
	signer := newTestProvider(t, 0)
	signed, err := signer.Sign("u1")
	require.NoError(t, err)

	other, err := NewProvider(&config.Config{JWTSecret: "another-secret"})
	require.NoError(t, err)
	_, err = other.Verify(signed)
	assert.True(t, errors.Is(err, domain.ErrInvalidToken))
}

func TestVerify_Expired(t *testing.T) {
	p := newTestProvider(t, time.Hour)
	p.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	signed, err := p.Sign("u1")
	require.NoError(t, err)

	p.now = time.Now
	_, err = p.Verify(signed)
	assert.True(t, errors.Is(err, domain.ErrExpiredToken))
	assert.False(t, errors.Is(err, domain.ErrInvalidToken))
}

func TestVerify_RejectsNoneAlgorithm(t *testing.T) {
	p := newTestProvider(t, 0)
	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "u1"})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = p.Verify(signed)
	assert.True(t, errors.Is(err, domain.ErrInvalidToken))
}

func TestVerify_MissingUserID(t *testing.T) {
	p := newTestProvider(t, 0)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = p.Verify(signed)
	assert.True(t, errors.Is(err, domain.ErrInvalidToken))
}
