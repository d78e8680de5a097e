package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/sbilibin2017/gw-todo-list/internal/models"
)

func TestTodoCacheRepository(t *testing.T) {
	ctx := context.Background()

	// Start Redis container
	req := testcontainers.ContainerRequest{
		Image:        "redis:7.0-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}
	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	assert.NoError(t, err)
	defer redisC.Terminate(ctx)

	host, err := redisC.Host(ctx)
	assert.NoError(t, err)
	port, err := redisC.MappedPort(ctx, "6379")
	assert.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port.Port()),
	})
	defer rdb.Close()

	err = rdb.Ping(ctx).Err()
	assert.NoError(t, err)

	repo := NewTodoCacheRepository(rdb, 2*time.Second)

	userID := uuid.New()
	userScope := models.UserScope(userID)
	guestScope := models.GuestScope()

	todos := []models.TodoDB{
		{ID: uuid.New(), UserID: &userID, Text: "cached task", CreatedAt: time.Now().UTC().Truncate(time.Second), UpdatedAt: time.Now().UTC().Truncate(time.Second)},
	}

	t.Run("Set and Get list", func(t *testing.T) {
		err := repo.SetList(ctx, userScope, todos)
		assert.NoError(t, err)

		got, err := repo.GetList(ctx, userScope)
		assert.NoError(t, err)
		assert.Len(t, got, 1)
		assert.Equal(t, todos[0].ID, got[0].ID)
		assert.Equal(t, "cached task", got[0].Text)
	})

	t.Run("Scopes use distinct keys", func(t *testing.T) {
		got, err := repo.GetList(ctx, guestScope)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Invalidate removes the list", func(t *testing.T) {
		err := repo.SetList(ctx, userScope, todos)
		assert.NoError(t, err)

		err = repo.Invalidate(ctx, userScope)
		assert.NoError(t, err)

		got, err := repo.GetList(ctx, userScope)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Entries expire", func(t *testing.T) {
		err := repo.SetList(ctx, userScope, todos)
		assert.NoError(t, err)

		time.Sleep(3 * time.Second)

		got, err := repo.GetList(ctx, userScope)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})
}
