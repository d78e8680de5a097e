package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-todo-list/internal/logger"
	"github.com/sbilibin2017/gw-todo-list/internal/models"
)

// TodoCacheRepository caches per-scope todo lists in Redis.
type TodoCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration duration for cached lists
}

// NewTodoCacheRepository creates a new repository instance with the given TTL.
func NewTodoCacheRepository(client *redis.Client, expiration time.Duration) *TodoCacheRepository {
	return &TodoCacheRepository{
		client: client,
		exp:    expiration,
	}
}

// listKey builds the cache key for a scope.
func listKey(scope models.Scope) string {
	if ownerID := scope.OwnerID(); ownerID != nil {
		return "todos:user:" + ownerID.String()
	}
	return "todos:guest"
}

// GetList returns the cached todo list for the scope, or nil on a cache miss.
func (r *TodoCacheRepository) GetList(ctx context.Context, scope models.Scope) ([]models.TodoDB, error) {
	key := listKey(scope)

	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		logger.Log.Errorw("cache get failed", "key", key, "error", err)
		return nil, err
	}

	var todos []models.TodoDB
	if err := json.Unmarshal(val, &todos); err != nil {
		logger.Log.Errorw("cache payload unmarshal failed", "key", key, "error", err)
		return nil, err
	}

	return todos, nil
}

// SetList caches the todo list for the scope with expiration.
func (r *TodoCacheRepository) SetList(ctx context.Context, scope models.Scope, todos []models.TodoDB) error {
	key := listKey(scope)

	val, err := json.Marshal(todos)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, key, val, r.exp).Err()

	logger.Log.Infow("cache set",
		"key", key,
		"rows", len(todos),
		"error", err,
	)

	return err
}

// Invalidate drops the cached list for the scope.
func (r *TodoCacheRepository) Invalidate(ctx context.Context, scope models.Scope) error {
	key := listKey(scope)
	err := r.client.Del(ctx, key).Err()

	logger.Log.Infow("cache invalidated",
		"key", key,
		"error", err,
	)

	return err
}
