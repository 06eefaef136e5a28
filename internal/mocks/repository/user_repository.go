// Package repository provides testify doubles for the persistence interfaces.
package repository

import (
	"context"
	"testing"

	"contactbook/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock type for the repository.UserRepository type
type MockUserRepository struct {
	mock.Mock
}

// NewMockUserRepository creates a new instance of MockUserRepository and
// asserts its expectations when the test ends.
func NewMockUserRepository(t testing.TB) *MockUserRepository {
	m := &MockUserRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func userResult(args mock.Arguments) (*entity.User, error) {
	var user *entity.User
	if v := args.Get(0); v != nil {
		user = v.(*entity.User)
	}

	return user, args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return userResult(m.Called(ctx, id))
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return userResult(m.Called(ctx, username))
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return userResult(m.Called(ctx, email))
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) SetConfirmed(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockUserRepository) SetAvatar(ctx context.Context, email, url string) error {
	return m.Called(ctx, email, url).Error(0)
}

func (m *MockUserRepository) SetPasswordHash(ctx context.Context, email, hash string) error {
	return m.Called(ctx, email, hash).Error(0)
}
