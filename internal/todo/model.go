package todo

import "errors"

var (
	ErrNotFound     = errors.New("task not found")
	ErrInvalidState = errors.New("invalid todo state")
)

// State is the closed set of todo states. The "state" member is part of the
// wire contract and kept for compatibility with existing clients.
type State string

const (
	StateDraft State = "draft"
	StateTodo  State = "todo"
	StateState State = "state"
	StateDoing State = "doing"
	StateDone  State = "done"
	StateTrash State = "trash"
)

// Valid reports whether s is a member of the state enumeration.
func (s State) Valid() bool {
	switch s {
	case StateDraft, StateTodo, StateState, StateDoing, StateDone, StateTrash:
		return true
	}
	return false
}

type Todo struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	State       State  `json:"state"`
	UserID      int64  `json:"-"` // owner, never taken from request input
}

// Patch is a typed partial update: only non-nil fields are applied.
type Patch struct {
	Title       *string
	Description *string
	State       *State
}

// Apply overlays the patch's set fields onto t, leaving the rest untouched.
func (p Patch) Apply(t *Todo) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.State != nil {
		t.State = *p.State
	}
}
