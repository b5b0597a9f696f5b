package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTService signs HS256 JWTs with a symmetric secret.
type JWTService struct {
	secret []byte
	expiry time.Duration
}

func NewJWTService(secret []byte, expiry time.Duration) *JWTService {
	return &JWTService{secret: secret, expiry: expiry}
}

// Issue creates a token with the subject and an expiry of now + the
// configured duration.
func (s *JWTService) Issue(subject string) (string, error) {
	now := time.Now()

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Validate verifies the signature and expiry and returns the claims.
// A token is valid only strictly before its expiry instant, and only with a
// non-empty subject.
func (s *JWTService) Validate(tokenStr string) (Claims, error) {
	claims := &jwt.RegisteredClaims{}

	parsed, err := jwt.ParseWithClaims(tokenStr, claims,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}

	if claims.Subject == "" {
		return Claims{}, ErrInvalidToken
	}

	return Claims{
		Subject:   claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
