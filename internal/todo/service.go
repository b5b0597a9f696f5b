package todo

import (
	"context"
	"fmt"
)

// CreateInput carries the fields for a new todo. State defaults to draft
// when empty.
type CreateInput struct {
	Title       string
	Description string
	State       State
}

// Service handles todo business logic. The owner id always comes from the
// resolved session, never from request input.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a new todo owned by ownerID.
func (s *Service) Create(ctx context.Context, ownerID int64, input CreateInput) (*Todo, error) {
	state := input.State
	if state == "" {
		state = StateDraft
	}
	if !state.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidState, state)
	}

	return s.repo.Create(ctx, &Todo{
		Title:       input.Title,
		Description: input.Description,
		State:       state,
		UserID:      ownerID,
	})
}

// List returns the owner's todos after filtering and pagination. A limit of
// zero is an empty result, not "no limit".
func (s *Service) List(ctx context.Context, ownerID int64, filter Filter, offset, limit int) ([]Todo, error) {
	if filter.State != "" && !filter.State.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidState, filter.State)
	}
	if limit <= 0 {
		return []Todo{}, nil
	}

	return s.repo.List(ctx, ownerID, filter, offset, limit)
}

// Update applies the patch to the owner's todo. Fields absent from the patch
// keep their prior values; the repository merges and writes atomically. A
// todo owned by someone else reports ErrNotFound.
func (s *Service) Update(ctx context.Context, ownerID, id int64, patch Patch) (*Todo, error) {
	if patch.State != nil && !patch.State.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidState, *patch.State)
	}

	return s.repo.Update(ctx, ownerID, id, patch)
}

// Delete removes the owner's todo.
func (s *Service) Delete(ctx context.Context, ownerID, id int64) error {
	return s.repo.Delete(ctx, ownerID, id)
}
