package models

import (
	"time"

	"github.com/google/uuid"
)

// TodoDB represents a todo record in the database
type TodoDB struct {
	ID        uuid.UUID  `json:"id" db:"id"`                // Primary key
	UserID    *uuid.UUID `json:"user_id" db:"user_id"`      // Owning user, nil for the shared guest pool
	Text      string     `json:"text" db:"text"`            // Todo text, never empty
	Color     *string    `json:"color" db:"color"`          // Optional color label
	Completed bool       `json:"completed" db:"completed"`  // Completion flag
	CreatedAt time.Time  `json:"createdAt" db:"created_at"` // Creation timestamp, immutable
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"` // Refreshed on every mutation
}
