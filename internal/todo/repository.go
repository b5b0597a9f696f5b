package todo

import "context"

// Filter restricts a listing. Title and Description are case-insensitive
// substring matches; State is an exact match. Zero values mean "no filter".
type Filter struct {
	Title       string
	Description string
	State       State
}

// Repository defines the interface for todo persistence. Every operation is
// scoped to the owning user; a todo belonging to someone else is
// indistinguishable from one that does not exist.
//
// Update reads, merges and writes atomically, so two concurrent patches of
// different fields both land instead of the later write reverting the
// earlier one.
type Repository interface {
	Create(ctx context.Context, t *Todo) (*Todo, error)
	List(ctx context.Context, ownerID int64, filter Filter, offset, limit int) ([]Todo, error)
	Update(ctx context.Context, ownerID, id int64, patch Patch) (*Todo, error)
	Delete(ctx context.Context, ownerID, id int64) error
}
