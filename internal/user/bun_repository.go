package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/taskhive/taskhive/internal/database"
)

// BunRepository persists users in Postgres through bun.
type BunRepository struct {
	db *bun.DB
}

func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{db: db}
}

// Create inserts a new user. The uniqueness checks inside the transaction are
// the fast path for a precise error; the unique constraints on the table are
// the final arbiter under concurrent registrations.
func (r *BunRepository) Create(ctx context.Context, username, email, passwordHash string) (*User, error) {
	dbUser := &database.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}

	err := r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		// Email is checked before username so that a record colliding on both
		// always reports the email conflict.
		emailTaken, err := tx.NewSelect().
			Model((*database.User)(nil)).
			Where("email = ?", email).
			Exists(ctx)
		if err != nil {
			return fmt.Errorf("failed to check email uniqueness: %w", err)
		}
		if emailTaken {
			return ErrDuplicateEmail
		}

		usernameTaken, err := tx.NewSelect().
			Model((*database.User)(nil)).
			Where("username = ?", username).
			Exists(ctx)
		if err != nil {
			return fmt.Errorf("failed to check username uniqueness: %w", err)
		}
		if usernameTaken {
			return ErrDuplicateUsername
		}

		if _, err := tx.NewInsert().Model(dbUser).Returning("*").Exec(ctx); err != nil {
			if dup := mapConstraintErr(err); dup != nil {
				return dup
			}
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return mapDBUserToModel(dbUser), nil
}

// List returns users in id order.
func (r *BunRepository) List(ctx context.Context, offset, limit int) ([]User, error) {
	var dbUsers []database.User
	err := r.db.NewSelect().
		Model(&dbUsers).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]User, 0, len(dbUsers))
	for i := range dbUsers {
		users = append(users, *mapDBUserToModel(&dbUsers[i]))
	}
	return users, nil
}

// GetByID retrieves a user by ID
func (r *BunRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	dbUser := new(database.User)
	err := r.db.NewSelect().
		Model(dbUser).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// GetByEmail retrieves a user by email
func (r *BunRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	dbUser := new(database.User)
	err := r.db.NewSelect().
		Model(dbUser).
		Where("email = ?", email).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// Update replaces username, email and password hash in one transaction. As
// in Create, the in-transaction uniqueness checks give a precise error and
// the table constraints remain the final arbiter under concurrent writes.
func (r *BunRepository) Update(ctx context.Context, u *User) (*User, error) {
	dbUser := &database.User{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		UpdatedAt:    time.Now(),
	}

	err := r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		emailTaken, err := tx.NewSelect().
			Model((*database.User)(nil)).
			Where("email = ?", u.Email).
			Where("id != ?", u.ID).
			Exists(ctx)
		if err != nil {
			return fmt.Errorf("failed to check email uniqueness: %w", err)
		}
		if emailTaken {
			return ErrDuplicateEmail
		}

		usernameTaken, err := tx.NewSelect().
			Model((*database.User)(nil)).
			Where("username = ?", u.Username).
			Where("id != ?", u.ID).
			Exists(ctx)
		if err != nil {
			return fmt.Errorf("failed to check username uniqueness: %w", err)
		}
		if usernameTaken {
			return ErrDuplicateUsername
		}

		result, err := tx.NewUpdate().
			Model(dbUser).
			Column("username", "email", "password_hash", "updated_at").
			WherePK().
			Returning("*").
			Exec(ctx)
		if err != nil {
			if dup := mapConstraintErr(err); dup != nil {
				return dup
			}
			return fmt.Errorf("failed to update user: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return mapDBUserToModel(dbUser), nil
}

// Delete removes a user by ID.
func (r *BunRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.NewDelete().
		Model((*database.User)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// mapConstraintErr translates a Postgres unique violation into the matching
// duplicate error, or returns nil if the error is something else.
func mapConstraintErr(err error) error {
	msg := err.Error()
	if !strings.Contains(msg, "duplicate key value violates unique constraint") {
		return nil
	}
	if strings.Contains(msg, "users_username_key") {
		return ErrDuplicateUsername
	}
	return ErrDuplicateEmail
}

// mapDBUserToModel converts database model to domain model
func mapDBUserToModel(dbu *database.User) *User {
	return &User{
		ID:           dbu.ID,
		Username:     dbu.Username,
		Email:        dbu.Email,
		PasswordHash: dbu.PasswordHash,
		CreatedAt:    dbu.CreatedAt,
		UpdatedAt:    dbu.UpdatedAt,
	}
}
