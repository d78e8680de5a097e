package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUserSaveAndGet(t *testing.T) {
	db, cleanup := setupPostgres(t)
	defer cleanup()
	ctx := context.Background()

	writer := NewUserWriteRepository(db)
	reader := NewUserReadRepository(db)

	saved, err := writer.Save(ctx, "alice@example.com", "hashed-password", "Alice")
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, saved.UserID)
	assert.Equal(t, "alice@example.com", saved.Email)
	assert.Equal(t, "hashed-password", saved.PasswordHash)
	assert.Equal(t, "Alice", saved.Name)

	byEmail, err := reader.GetByEmail(ctx, "alice@example.com")
	assert.NoError(t, err)
	assert.NotNil(t, byEmail)
	assert.Equal(t, saved.UserID, byEmail.UserID)

	byID, err := reader.GetByID(ctx, saved.UserID)
	assert.NoError(t, err)
	assert.NotNil(t, byID)
	assert.Equal(t, "alice@example.com", byID.Email)
}

func TestUserGetMissing(t *testing.T) {
	db, cleanup := setupPostgres(t)
	defer cleanup()
	ctx := context.Background()

	reader := NewUserReadRepository(db)

	// Unknown email and id yield nil, not an error.
	byEmail, err := reader.GetByEmail(ctx, "ghost@example.com")
	assert.NoError(t, err)
	assert.Nil(t, byEmail)

	byID, err := reader.GetByID(ctx, uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, byID)
}

func TestUserEmailUnique(t *testing.T) {
	db, cleanup := setupPostgres(t)
	defer cleanup()
	ctx := context.Background()

	writer := NewUserWriteRepository(db)

	_, err := writer.Save(ctx, "alice@example.com", "hash1", "Alice")
	assert.NoError(t, err)

	// The unique constraint backs the conflict check in the service.
	_, err = writer.Save(ctx, "alice@example.com", "hash2", "Other Alice")
	assert.Error(t, err)
}

func TestUserEmailExactMatch(t *testing.T) {
	db, cleanup := setupPostgres(t)
	defer cleanup()
	ctx := context.Background()

	writer := NewUserWriteRepository(db)
	reader := NewUserReadRepository(db)

	_, err := writer.Save(ctx, "alice@example.com", "hash", "Alice")
	assert.NoError(t, err)

	// Lookup is byte exact, no case folding.
	byEmail, err := reader.GetByEmail(ctx, "ALICE@example.com")
	assert.NoError(t, err)
	assert.Nil(t, byEmail)
}
