package smtp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildMessage_Headers(t *testing.T) {
	msg := string(buildMessage("noreply@example.com", "a@b.com", "Verify your email", "<p>hi</p>"))

	assert.Contains(t, msg, "From: noreply@example.com\r\n")
	assert.Contains(t, msg, "To: a@b.com\r\n")
	assert.Contains(t, msg, "Subject: Verify your email\r\n")
	assert.Contains(t, msg, "Content-Type: text/html")
	assert.Contains(t, msg, "\r\n\r\n<p>hi</p>")
}

func TestBuildMessage_StripsHeaderInjection(t *testing.T) {
	msg := string(buildMessage("noreply@example.com", "a@b.com\r\nBcc: evil@example.com", "s", "b"))
	assert.NotContains(t, msg, "\r\nBcc:")
}
