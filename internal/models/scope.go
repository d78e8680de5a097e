package models

import "github.com/google/uuid"

// Scope is the caller identity a todo operation is evaluated under:
// a registered user or the shared guest pool.
type Scope struct {
	userID     uuid.UUID
	registered bool
}

// GuestScope returns the scope of the shared guest pool.
func GuestScope() Scope {
	return Scope{}
}

// UserScope returns the scope of a registered user.
func UserScope(userID uuid.UUID) Scope {
	return Scope{userID: userID, registered: true}
}

// IsGuest reports whether the scope is the shared guest pool.
func (s Scope) IsGuest() bool {
	return !s.registered
}

// OwnerID returns the owning user id for query binding, nil for the guest pool.
func (s Scope) OwnerID() *uuid.UUID {
	if !s.registered {
		return nil
	}
	id := s.userID
	return &id
}
