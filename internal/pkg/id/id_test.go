package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_IsValidAndUnique(t *testing.T) {
	a, b := New(), New()
	assert.True(t, Valid(a))
	assert.True(t, Valid(b))
	assert.NotEqual(t, a, b)
}

func TestValid_RejectsMalformed(t *testing.T) {
	for _, s := range []string{"", "123", "not-an-id", "64b7f0e2c1a2b3c4d5e6f7a8", "01HZZZZZZZZZZZZZZZZZZZZZZ!"} {
		assert.False(t, Valid(s), s)
	}
}
