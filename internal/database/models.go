package database

import (
	"time"

	"github.com/uptrace/bun"
)

// User is the bun row model for the users table.
type User struct {
	bun.BaseModel `bun:"table:users"`

	ID           int64     `bun:"id,pk,autoincrement"`
	Username     string    `bun:"username,notnull,unique"`
	Email        string    `bun:"email,notnull,unique"`
	PasswordHash string    `bun:"password_hash,notnull"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// Todo is the bun row model for the todos table.
type Todo struct {
	bun.BaseModel `bun:"table:todos"`

	ID          int64  `bun:"id,pk,autoincrement"`
	Title       string `bun:"title,notnull"`
	Description string `bun:"description,notnull"`
	State       string `bun:"state,notnull"`
	UserID      int64  `bun:"user_id,notnull"`
}
