package todo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"

	"github.com/taskhive/taskhive/internal/database"
)

// BunRepository persists todos in Postgres through bun.
type BunRepository struct {
	db *bun.DB
}

func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{db: db}
}

// Create inserts a new todo for its owner.
func (r *BunRepository) Create(ctx context.Context, t *Todo) (*Todo, error) {
	dbTodo := &database.Todo{
		Title:       t.Title,
		Description: t.Description,
		State:       string(t.State),
		UserID:      t.UserID,
	}

	if _, err := r.db.NewInsert().Model(dbTodo).Returning("*").Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	return mapDBTodoToModel(dbTodo), nil
}

// List returns the owner's todos in id order, filtered then paginated.
func (r *BunRepository) List(ctx context.Context, ownerID int64, filter Filter, offset, limit int) ([]Todo, error) {
	var dbTodos []database.Todo

	q := r.db.NewSelect().
		Model(&dbTodos).
		Where("user_id = ?", ownerID)

	if filter.Title != "" {
		q = q.Where(`title ILIKE ? ESCAPE '\'`, "%"+escapeLike(filter.Title)+"%")
	}
	if filter.Description != "" {
		q = q.Where(`description ILIKE ? ESCAPE '\'`, "%"+escapeLike(filter.Description)+"%")
	}
	if filter.State != "" {
		q = q.Where("state = ?", string(filter.State))
	}

	err := q.Order("id ASC").
		Offset(offset).
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}

	todos := make([]Todo, 0, len(dbTodos))
	for i := range dbTodos {
		todos = append(todos, *mapDBTodoToModel(&dbTodos[i]))
	}
	return todos, nil
}

// Update applies the patch to the owner's todo. The select locks the row for
// the rest of the transaction, so concurrent patches of different fields
// serialize instead of the later write reverting the earlier one.
func (r *BunRepository) Update(ctx context.Context, ownerID, id int64, patch Patch) (*Todo, error) {
	dbTodo := new(database.Todo)

	err := r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().
			Model(dbTodo).
			Where("id = ?", id).
			Where("user_id = ?", ownerID).
			For("UPDATE").
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to get todo: %w", err)
		}

		merged := mapDBTodoToModel(dbTodo)
		patch.Apply(merged)
		dbTodo.Title = merged.Title
		dbTodo.Description = merged.Description
		dbTodo.State = string(merged.State)

		if _, err := tx.NewUpdate().
			Model(dbTodo).
			Column("title", "description", "state").
			WherePK().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to update todo: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return mapDBTodoToModel(dbTodo), nil
}

// Delete removes a todo scoped to its owner.
func (r *BunRepository) Delete(ctx context.Context, ownerID, id int64) error {
	result, err := r.db.NewDelete().
		Model((*database.Todo)(nil)).
		Where("id = ?", id).
		Where("user_id = ?", ownerID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
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

// escapeLike escapes LIKE wildcards so filter input matches literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

func mapDBTodoToModel(dbt *database.Todo) *Todo {
	return &Todo{
		ID:          dbt.ID,
		Title:       dbt.Title,
		Description: dbt.Description,
		State:       State(dbt.State),
		UserID:      dbt.UserID,
	}
}
