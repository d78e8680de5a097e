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

// TodoReadRepository handles todo read operations
type TodoReadRepository struct {
	db *sqlx.DB
}

func NewTodoReadRepository(db *sqlx.DB) *TodoReadRepository {
	return &TodoReadRepository{db: db}
}

// List returns all todos in the scope, newest first.
func (r *TodoReadRepository) List(ctx context.Context, scope models.Scope) ([]models.TodoDB, error) {
	const query = `
		SELECT id, user_id, text, color, completed, created_at, updated_at
		FROM todos
		WHERE user_id IS NOT DISTINCT FROM $1
		ORDER BY created_at DESC
	`

	var todos []models.TodoDB
	err := r.db.SelectContext(ctx, &todos, query, scope.OwnerID())

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{scope.OwnerID()},
		"rows", len(todos),
		"error", err,
	)

	return todos, err
}

// ListCompleted returns completed todos in the scope, newest first.
func (r *TodoReadRepository) ListCompleted(ctx context.Context, scope models.Scope) ([]models.TodoDB, error) {
	const query = `
		SELECT id, user_id, text, color, completed, created_at, updated_at
		FROM todos
		WHERE user_id IS NOT DISTINCT FROM $1 AND completed = TRUE
		ORDER BY created_at DESC
	`

	var todos []models.TodoDB
	err := r.db.SelectContext(ctx, &todos, query, scope.OwnerID())

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{scope.OwnerID()},
		"rows", len(todos),
		"error", err,
	)

	return todos, err
}

// Get returns the todo with the given id if it is visible in the scope,
// or nil if there is no such todo.
func (r *TodoReadRepository) Get(ctx context.Context, scope models.Scope, id uuid.UUID) (*models.TodoDB, error) {
	const query = `
		SELECT id, user_id, text, color, completed, created_at, updated_at
		FROM todos
		WHERE id = $1 AND user_id IS NOT DISTINCT FROM $2
	`

	var todo models.TodoDB
	err := r.db.GetContext(ctx, &todo, query, id, scope.OwnerID())

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id, scope.OwnerID()},
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

// Count returns the number of todos in the scope.
func (r *TodoReadRepository) Count(ctx context.Context, scope models.Scope) (int64, error) {
	const query = `SELECT COUNT(*) FROM todos WHERE user_id IS NOT DISTINCT FROM $1`

	var count int64
	err := r.db.GetContext(ctx, &count, query, scope.OwnerID())

	logger.Log.Infow("query executed",
		"query", query,
		"args", []any{scope.OwnerID()},
		"result", count,
		"error", err,
	)

	return count, err
}

// CountGuest returns the number of todos in the shared guest pool.
func (r *TodoReadRepository) CountGuest(ctx context.Context) (int64, error) {
	return r.Count(ctx, models.GuestScope())
}
