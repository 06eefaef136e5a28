// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"io"

	"contactbook/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	// Host is the public base URL, with a trailing slash, used in mailed links.
	Host string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Username string
	Password string
}

// ResetPasswordInput requests a password change that takes effect once the
// mailed link is followed.
type ResetPasswordInput struct {
	Email    string
	Password string
	Host     string
}

// UpdateAvatarInput carries an uploaded avatar image.
type UpdateAvatarInput struct {
	File        io.Reader
	Size        int64
	ContentType string
}

// --- Output DTOs ---

// LoginOutput returns the session token after a successful login.
type LoginOutput struct {
	AccessToken string
	TokenType   string
}

// UserUsecase defines the interface for account-related business operations.
type UserUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*entity.User, error)
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)

	// ConfirmEmail reports whether the address had already been confirmed.
	ConfirmEmail(ctx context.Context, token string) (alreadyConfirmed bool, err error)
	// RequestEmail re-sends the verification mail. Unknown addresses are
	// not reported to the caller.
	RequestEmail(ctx context.Context, email, host string) (alreadyConfirmed bool, err error)

	ResetPassword(ctx context.Context, input ResetPasswordInput) error
	ConfirmResetPassword(ctx context.Context, token string) error

	UpdateAvatar(ctx context.Context, principal *entity.User, input UpdateAvatarInput) (*entity.User, error)
}
