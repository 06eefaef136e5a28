package service

import (
	"context"

	"contactbook/internal/domain/entity"
)

// IdentityCache is a read-through cache of users keyed by username.
// Only successful lookups are cached. Returned users are copies.
type IdentityCache interface {
	// Lookup returns the user, consulting the identity store on a miss.
	// A missing user yields repository.ErrUserNotFound.
	Lookup(ctx context.Context, username string) (*entity.User, error)

	// Invalidate drops any cached entry for username.
	Invalidate(username string)
}
