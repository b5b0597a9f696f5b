package user

import (
	"context"
	"fmt"

	"github.com/taskhive/taskhive/internal/password"
)

// UpdateInput carries the replacement fields for a user update.
type UpdateInput struct {
	Username string
	Email    string
	Password string
}

// Service handles user directory business logic.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new user. The password is stored only as a hash.
func (s *Service) Create(ctx context.Context, username, email, plainPassword string) (*User, error) {
	passwordHash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return s.repo.Create(ctx, username, email, passwordHash)
}

// List returns users in id order. The listing is global and unauthenticated.
func (s *Service) List(ctx context.Context, offset, limit int) ([]User, error) {
	return s.repo.List(ctx, offset, limit)
}

// Get returns the user with the given id.
func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByEmail returns the user with the given email.
func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.GetByEmail(ctx, email)
}

// Update replaces the user's fields. Only the user themselves may update
// their record; the password is re-hashed before storage. The repository
// performs the existence and uniqueness checks together with the write.
func (s *Service) Update(ctx context.Context, id, requesterID int64, input UpdateInput) (*User, error) {
	if id != requesterID {
		return nil, ErrForbidden
	}

	passwordHash, err := password.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return s.repo.Update(ctx, &User{
		ID:           id,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: passwordHash,
	})
}

// Delete removes the user's own record.
func (s *Service) Delete(ctx context.Context, id, requesterID int64) error {
	if id != requesterID {
		return ErrForbidden
	}

	return s.repo.Delete(ctx, id)
}
