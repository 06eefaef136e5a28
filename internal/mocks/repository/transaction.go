package repository

import (
	"context"
	"testing"

	"contactbook/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

// MockTransactionManager runs fn immediately against the configured factory
// unless the expectation returns an error of its own.
type MockTransactionManager struct {
	mock.Mock

	Factory repository.RepositoryFactory
}

func NewMockTransactionManager(t testing.TB, factory repository.RepositoryFactory) *MockTransactionManager {
	m := &MockTransactionManager{Factory: factory}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTransactionManager) Execute(ctx context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	if err := m.Called(ctx).Error(0); err != nil {
		return err
	}

	return fn(m.Factory)
}

// StaticRepositoryFactory hands out fixed repositories.
type StaticRepositoryFactory struct {
	Users    repository.UserRepository
	Contacts repository.ContactRepository
}

func (f *StaticRepositoryFactory) NewUserRepository() repository.UserRepository {
	return f.Users
}

func (f *StaticRepositoryFactory) NewContactRepository() repository.ContactRepository {
	return f.Contacts
}
