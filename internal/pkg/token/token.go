package token

import (
	"strings"

	"github.com/google/uuid"
)

// NewSessionToken generates an opaque 32-character session token:
// a random UUID with the dashes stripped.
func NewSessionToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
