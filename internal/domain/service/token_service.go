package service

import (
	"errors"
	"time"
)

// Purpose binds a token to the flow that issued it.
type Purpose string

const (
	PurposeSession           Purpose = "session"
	PurposeEmailVerification Purpose = "email_verification"
	PurposePasswordReset     Purpose = "password_reset"
)

// Token verification failures. None of them is worth retrying.
var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token expired")
	ErrMalformedToken = errors.New("malformed token")
)

// TokenClaims is the caller-visible part of a token.
type TokenClaims struct {
	// Subject is the username for session tokens and the email otherwise.
	Subject string
	// Password carries the pending password hash of a reset token.
	Password string
	Extra    map[string]string

	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService issues and verifies signed, expiring tokens.
type TokenService interface {
	// Issue signs claims for purpose. ttl == 0 selects the purpose default;
	// a negative ttl produces a token that is already expired.
	Issue(claims *TokenClaims, purpose Purpose, ttl time.Duration) (string, error)

	// Verify checks signature, expiry and purpose, returning one of
	// ErrInvalidToken, ErrExpiredToken or ErrMalformedToken on failure.
	Verify(token string, purpose Purpose) (*TokenClaims, error)
}
