// Package auth authenticates requests: it exchanges credentials for bearer
// tokens and resolves inbound tokens to live users.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/taskhive/taskhive/internal/password"
	"github.com/taskhive/taskhive/internal/token"
	"github.com/taskhive/taskhive/internal/user"
)

// ErrIncorrectCredentials is returned for an unknown email and for a wrong
// password alike.
var ErrIncorrectCredentials = errors.New("incorrect email or password")

// UserFinder is the slice of the user directory the auth layer needs.
type UserFinder interface {
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}

// Service handles credential verification and token issuance.
type Service struct {
	users  UserFinder
	tokens token.Service
}

func NewService(users UserFinder, tokens token.Service) *Service {
	return &Service{users: users, tokens: tokens}
}

// Login verifies the email/password pair and returns a fresh access token
// whose subject is the user's email.
func (s *Service) Login(ctx context.Context, email, plainPassword string) (string, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", ErrIncorrectCredentials
		}
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	if !password.Verify(u.PasswordHash, plainPassword) {
		return "", ErrIncorrectCredentials
	}

	accessToken, err := s.tokens.Issue(u.Email)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	return accessToken, nil
}

// Refresh issues a new token for an already-authenticated user.
func (s *Service) Refresh(u *user.User) (string, error) {
	accessToken, err := s.tokens.Issue(u.Email)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return accessToken, nil
}
