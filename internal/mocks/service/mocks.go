// Package service provides testify doubles for the domain service interfaces.
package service

import (
	"context"
	"io"
	"testing"
	"time"

	"contactbook/internal/domain/entity"
	"contactbook/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

func register(t testing.TB, m *mock.Mock) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

// MockPasswordHasher is a mock type for the service.PasswordHasher type
type MockPasswordHasher struct {
	mock.Mock
}

func NewMockPasswordHasher(t testing.TB) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	register(t, &m.Mock)

	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}

// MockTokenService is a mock type for the service.TokenService type
type MockTokenService struct {
	mock.Mock
}

func NewMockTokenService(t testing.TB) *MockTokenService {
	m := &MockTokenService{}
	register(t, &m.Mock)

	return m
}

func (m *MockTokenService) Issue(claims *service.TokenClaims, purpose service.Purpose, ttl time.Duration) (string, error) {
	args := m.Called(claims, purpose, ttl)

	return args.String(0), args.Error(1)
}

func (m *MockTokenService) Verify(token string, purpose service.Purpose) (*service.TokenClaims, error) {
	args := m.Called(token, purpose)

	var claims *service.TokenClaims
	if v := args.Get(0); v != nil {
		claims = v.(*service.TokenClaims)
	}

	return claims, args.Error(1)
}

// MockIdentityCache is a mock type for the service.IdentityCache type
type MockIdentityCache struct {
	mock.Mock
}

func NewMockIdentityCache(t testing.TB) *MockIdentityCache {
	m := &MockIdentityCache{}
	register(t, &m.Mock)

	return m
}

func (m *MockIdentityCache) Lookup(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)

	var user *entity.User
	if v := args.Get(0); v != nil {
		user = v.(*entity.User)
	}

	return user, args.Error(1)
}

func (m *MockIdentityCache) Invalidate(username string) {
	m.Called(username)
}

// MockAvatarResolver is a mock type for the service.AvatarResolver type
type MockAvatarResolver struct {
	mock.Mock
}

func NewMockAvatarResolver(t testing.TB) *MockAvatarResolver {
	m := &MockAvatarResolver{}
	register(t, &m.Mock)

	return m
}

func (m *MockAvatarResolver) Resolve(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)

	return args.String(0), args.Error(1)
}

// MockMailSender is a mock type for the service.MailSender type
type MockMailSender struct {
	mock.Mock
}

func NewMockMailSender(t testing.TB) *MockMailSender {
	m := &MockMailSender{}
	register(t, &m.Mock)

	return m
}

func (m *MockMailSender) Send(ctx context.Context, msg *service.MailMessage) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MockMailSender) Close() error {
	return m.Called().Error(0)
}

// MockFileHost is a mock type for the service.FileHost type
type MockFileHost struct {
	mock.Mock
}

func NewMockFileHost(t testing.TB) *MockFileHost {
	m := &MockFileHost{}
	register(t, &m.Mock)

	return m
}

func (m *MockFileHost) Upload(ctx context.Context, r io.Reader, size int64, contentType, identifier string) (string, error) {
	args := m.Called(ctx, r, size, contentType, identifier)

	return args.String(0), args.Error(1)
}
