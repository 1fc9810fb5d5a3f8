// Package gravatar derives default avatar URLs from email addresses.
package gravatar

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"strings"
)

const baseURL = "https://s.gravatar.com/avatar/"

// URL returns the 250px, pg-rated, "retro" fallback gravatar for email.
// The address is trimmed and lower-cased before hashing, as gravatar requires.
func URL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	q := url.Values{}
	q.Set("s", "250")
	q.Set("r", "pg")
	q.Set("d", "retro")
	return baseURL + hex.EncodeToString(sum[:]) + "?" + q.Encode()
}
