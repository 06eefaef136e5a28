package service

import "context"

// AvatarResolver derives a default avatar URL for a new account.
type AvatarResolver interface {
	Resolve(ctx context.Context, email string) (string, error)
}
