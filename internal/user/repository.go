package user

import "context"

// Repository defines the interface for user persistence.
type Repository interface {
	Create(ctx context.Context, username, email, passwordHash string) (*User, error)
	List(ctx context.Context, offset, limit int) ([]User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, u *User) (*User, error)
	Delete(ctx context.Context, id int64) error
}
