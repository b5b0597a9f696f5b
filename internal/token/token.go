// Package token issues and validates the stateless bearer tokens used for
// authentication. Tokens carry a subject (the user's email) and an absolute
// expiry; there is no revocation, a token stays valid for its full lifetime.
package token

import (
	"errors"
	"time"
)

// ErrInvalidToken is returned for every validation failure: bad signature,
// expired token, missing subject, malformed input. Callers must not be able
// to tell which check failed.
var ErrInvalidToken = errors.New("invalid token")

// Claims are the facts embedded in a token.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// Service issues and validates signed, time-limited bearer tokens.
// Implementations: JWTService (HS256) and PasetoService (PASETO v4.local).
type Service interface {
	Issue(subject string) (string, error)
	Validate(tokenStr string) (Claims, error)
}
