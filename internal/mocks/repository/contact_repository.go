package repository

import (
	"context"
	"testing"

	"contactbook/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockContactRepository is a mock type for the repository.ContactRepository type
type MockContactRepository struct {
	mock.Mock
}

func NewMockContactRepository(t testing.TB) *MockContactRepository {
	m := &MockContactRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func contactsResult(args mock.Arguments) ([]*entity.Contact, error) {
	var contacts []*entity.Contact
	if v := args.Get(0); v != nil {
		contacts = v.([]*entity.Contact)
	}

	return contacts, args.Error(1)
}

func (m *MockContactRepository) Search(ctx context.Context, ownerID uuid.UUID, filter entity.ContactFilter, page entity.Page) ([]*entity.Contact, error) {
	return contactsResult(m.Called(ctx, ownerID, filter, page))
}

func (m *MockContactRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*entity.Contact, error) {
	args := m.Called(ctx, ownerID, id)

	var contact *entity.Contact
	if v := args.Get(0); v != nil {
		contact = v.(*entity.Contact)
	}

	return contact, args.Error(1)
}

func (m *MockContactRepository) Create(ctx context.Context, contact *entity.Contact) error {
	return m.Called(ctx, contact).Error(0)
}

func (m *MockContactRepository) Update(ctx context.Context, contact *entity.Contact) error {
	return m.Called(ctx, contact).Error(0)
}

func (m *MockContactRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return m.Called(ctx, ownerID, id).Error(0)
}

func (m *MockContactRepository) ExistsByEmailOrPhone(ctx context.Context, ownerID uuid.UUID, email, phone string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, ownerID, email, phone, excludeID)

	return args.Bool(0), args.Error(1)
}

func (m *MockContactRepository) FindBirthdaysInWindow(ctx context.Context, ownerID uuid.UUID, window entity.BirthdayWindow) ([]*entity.Contact, error) {
	return contactsResult(m.Called(ctx, ownerID, window))
}
