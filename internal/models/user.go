package models

import (
	"time"

	"github.com/google/uuid"
)

// UserDB represents a user record in the database
type UserDB struct {
	UserID       uuid.UUID `db:"id"`            // Primary key
	Email        string    `db:"email"`         // Unique email, exact-match
	PasswordHash string    `db:"password_hash"` // bcrypt hash, never returned to callers
	Name         string    `db:"name"`          // Display name
	CreatedAt    time.Time `db:"created_at"`    // Creation timestamp
	UpdatedAt    time.Time `db:"updated_at"`    // Last update timestamp
}

// User is the public profile of a user, safe to return from handlers.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Profile converts a database record to its public profile.
func (u *UserDB) Profile() *User {
	return &User{
		ID:        u.UserID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
