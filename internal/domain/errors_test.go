package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsKindThroughWrapping(t *testing.T) {
	err := fmt.Errorf("get contact: %w", E(ErrNotFound, "Not found"))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "Not found", PublicMessage(err, "Server error"))
}

func TestWrap_KeepsCauseButHidesIt(t *testing.T) {
	cause := errors.New("rename /tmp/x: permission denied")
	err := Wrap(ErrStorage, "Server error", cause)

	assert.True(t, errors.Is(err, ErrStorage))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "Server error", PublicMessage(err, "fallback"))
	assert.Contains(t, err.Error(), "permission denied")
}

func TestPublicMessage_Fallback(t *testing.T) {
	assert.Equal(t, "Server error", PublicMessage(errors.New("dynamo exploded"), "Server error"))
}
