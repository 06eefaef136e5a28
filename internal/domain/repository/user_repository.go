// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"contactbook/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository is the identity store.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByUsername retrieves a single user by login name.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user. A taken username or email yields domain errors.ErrUserAlreadyExists.
	Create(ctx context.Context, user *entity.User) error

	// The setters below return ErrUserNotFound when no user has the email.
	SetConfirmed(ctx context.Context, email string) error
	SetAvatar(ctx context.Context, email, url string) error
	SetPasswordHash(ctx context.Context, email, hash string) error
}
