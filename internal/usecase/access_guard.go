package usecase

import (
	"context"

	"contactbook/internal/domain/entity"
)

// AccessGuard turns a bearer token into a principal and checks roles.
type AccessGuard interface {
	// Resolve fails with an Unauthenticated error for any token problem and
	// with an Unavailable error when the identity store cannot be reached.
	Resolve(ctx context.Context, bearerToken string) (*entity.User, error)

	// RequireRole fails with Forbidden when principal lacks role.
	RequireRole(principal *entity.User, role entity.Role) error
}
