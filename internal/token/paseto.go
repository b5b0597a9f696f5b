package token

import (
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
)

// PasetoService encrypts tokens as PASETO v4.local
// (symmetric encryption with XChaCha20-Poly1305).
type PasetoService struct {
	symmetricKey paseto.V4SymmetricKey
	expiry       time.Duration
}

func NewPasetoService(symmetricKey []byte, expiry time.Duration) (*PasetoService, error) {
	if len(symmetricKey) != 32 {
		return nil, fmt.Errorf("symmetric key must be exactly 32 bytes, got %d", len(symmetricKey))
	}

	key, err := paseto.V4SymmetricKeyFromBytes(symmetricKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create symmetric key: %w", err)
	}

	return &PasetoService{symmetricKey: key, expiry: expiry}, nil
}

// Issue creates a v4.local token with the subject and an expiry of now + the
// configured duration.
func (s *PasetoService) Issue(subject string) (string, error) {
	now := time.Now()

	t := paseto.NewToken()
	t.SetIssuedAt(now)
	t.SetExpiration(now.Add(s.expiry))
	t.SetSubject(subject)

	return t.V4Encrypt(s.symmetricKey, nil), nil
}

// Validate decrypts the token and returns the claims. Every failure
// collapses to ErrInvalidToken.
func (s *PasetoService) Validate(tokenStr string) (Claims, error) {
	parser := paseto.NewParser()

	t, err := parser.ParseV4Local(s.symmetricKey, tokenStr, nil)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	subject, err := t.GetSubject()
	if err != nil || subject == "" {
		return Claims{}, ErrInvalidToken
	}

	expiresAt, err := t.GetExpiration()
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	// The parser's rule only rejects once now is strictly past exp; a token
	// is already invalid at the expiry instant itself.
	if !time.Now().Before(expiresAt) {
		return Claims{}, ErrInvalidToken
	}

	return Claims{
		Subject:   subject,
		ExpiresAt: expiresAt,
	}, nil
}
