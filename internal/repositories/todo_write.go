package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-todo-list/internal/logger"
	"github.com/sbilibin2017/gw-todo-list/internal/models"
)

// TodoWriteRepository handles todo write operations.
// Every write is a single statement, so a failed write leaves no partial state.
type TodoWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewTodoWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *TodoWriteRepository {
	return &TodoWriteRepository{db: db, txGetter: txGetter}
}

func (r *TodoWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Insert persists a new todo and returns the created record.
func (r *TodoWriteRepository) Insert(ctx context.Context, scope models.Scope, text string, color *string) (*models.TodoDB, error) {
	query := `
		INSERT INTO todos (id, user_id, text, color, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, FALSE, NOW(), NOW())
		RETURNING id, user_id, text, color, completed, created_at, updated_at
	`
	args := []any{uuid.New(), scope.OwnerID(), text, color}

	var todo models.TodoDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &todo, query, args...)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &todo, nil
}

// Update applies the provided fields to a todo visible in the scope and
// refreshes updated_at. Nil fields keep their prior values. Returns nil
// if no todo matches.
func (r *TodoWriteRepository) Update(ctx context.Context, scope models.Scope, id uuid.UUID, text *string, completed *bool, color *string) (*models.TodoDB, error) {
	query := `
		UPDATE todos
		SET text = COALESCE($3, text),
		    completed = COALESCE($4, completed),
		    color = COALESCE($5, color),
		    updated_at = NOW()
		WHERE id = $1 AND user_id IS NOT DISTINCT FROM $2
		RETURNING id, user_id, text, color, completed, created_at, updated_at
	`
	args := []any{id, scope.OwnerID(), text, completed, color}

	var todo models.TodoDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &todo, query, args...)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

// Toggle flips the completion flag of a todo visible in the scope and
// refreshes updated_at. Returns nil if no todo matches.
func (r *TodoWriteRepository) Toggle(ctx context.Context, scope models.Scope, id uuid.UUID) (*models.TodoDB, error) {
	query := `
		UPDATE todos
		SET completed = NOT completed, updated_at = NOW()
		WHERE id = $1 AND user_id IS NOT DISTINCT FROM $2
		RETURNING id, user_id, text, color, completed, created_at, updated_at
	`
	args := []any{id, scope.OwnerID()}

	var todo models.TodoDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &todo, query, args...)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

// Delete removes a todo visible in the scope and returns the deleted record.
// Returns nil if no todo matches.
func (r *TodoWriteRepository) Delete(ctx context.Context, scope models.Scope, id uuid.UUID) (*models.TodoDB, error) {
	query := `
		DELETE FROM todos
		WHERE id = $1 AND user_id IS NOT DISTINCT FROM $2
		RETURNING id, user_id, text, color, completed, created_at, updated_at
	`
	args := []any{id, scope.OwnerID()}

	var todo models.TodoDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &todo, query, args...)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

// DeleteAll removes every todo in the scope and returns the number removed.
func (r *TodoWriteRepository) DeleteAll(ctx context.Context, scope models.Scope) (int64, error) {
	query := `DELETE FROM todos WHERE user_id IS NOT DISTINCT FROM $1`
	args := []any{scope.OwnerID()}

	res, err := r.executor(ctx).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("query executed",
		"query", query,
		"args", args,
		"result", rowsAffected,
		"error", err,
	)

	return rowsAffected, err
}
