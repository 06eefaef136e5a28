// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the identity that owns contacts and authenticates against the API.
type User struct {
	ID           uuid.UUID // Time-ordered identifier (UUIDv7).
	Username     string    // Unique login name, also the session token subject.
	Email        string    // Unique address; subject of verification and reset tokens.
	PasswordHash string    // bcrypt hash; changed only through the password reset flow.
	Role         Role      // Either RoleUser or RoleAdmin.
	AvatarURL    string    // Public avatar location; empty when none could be resolved.
	Confirmed    bool      // Flips to true once the email address is verified.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Clone returns a copy that shares no state with u.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u

	return &c
}

// HasRole reports whether the user holds role.
func (u *User) HasRole(role Role) bool {
	return u != nil && u.Role == role
}
