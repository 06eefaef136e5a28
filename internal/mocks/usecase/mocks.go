// Package usecase provides testify doubles for the use case interfaces.
package usecase

import (
	"context"
	"testing"

	"contactbook/internal/domain/entity"
	"contactbook/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func register(t testing.TB, m *mock.Mock) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

func userResult(args mock.Arguments) (*entity.User, error) {
	var user *entity.User
	if v := args.Get(0); v != nil {
		user = v.(*entity.User)
	}

	return user, args.Error(1)
}

func contactResult(args mock.Arguments) (*entity.Contact, error) {
	var contact *entity.Contact
	if v := args.Get(0); v != nil {
		contact = v.(*entity.Contact)
	}

	return contact, args.Error(1)
}

func contactsResult(args mock.Arguments) ([]*entity.Contact, error) {
	var contacts []*entity.Contact
	if v := args.Get(0); v != nil {
		contacts = v.([]*entity.Contact)
	}

	return contacts, args.Error(1)
}

// MockAccessGuard is a mock type for the usecase.AccessGuard type
type MockAccessGuard struct {
	mock.Mock
}

func NewMockAccessGuard(t testing.TB) *MockAccessGuard {
	m := &MockAccessGuard{}
	register(t, &m.Mock)

	return m
}

func (m *MockAccessGuard) Resolve(ctx context.Context, bearerToken string) (*entity.User, error) {
	return userResult(m.Called(ctx, bearerToken))
}

func (m *MockAccessGuard) RequireRole(principal *entity.User, role entity.Role) error {
	return m.Called(principal, role).Error(0)
}

// MockUserUsecase is a mock type for the usecase.UserUsecase type
type MockUserUsecase struct {
	mock.Mock
}

func NewMockUserUsecase(t testing.TB) *MockUserUsecase {
	m := &MockUserUsecase{}
	register(t, &m.Mock)

	return m
}

func (m *MockUserUsecase) Register(ctx context.Context, input usecase.RegisterInput) (*entity.User, error) {
	return userResult(m.Called(ctx, input))
}

func (m *MockUserUsecase) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	args := m.Called(ctx, input)

	var out *usecase.LoginOutput
	if v := args.Get(0); v != nil {
		out = v.(*usecase.LoginOutput)
	}

	return out, args.Error(1)
}

func (m *MockUserUsecase) ConfirmEmail(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)

	return args.Bool(0), args.Error(1)
}

func (m *MockUserUsecase) RequestEmail(ctx context.Context, email, host string) (bool, error) {
	args := m.Called(ctx, email, host)

	return args.Bool(0), args.Error(1)
}

func (m *MockUserUsecase) ResetPassword(ctx context.Context, input usecase.ResetPasswordInput) error {
	return m.Called(ctx, input).Error(0)
}

func (m *MockUserUsecase) ConfirmResetPassword(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockUserUsecase) UpdateAvatar(ctx context.Context, principal *entity.User, input usecase.UpdateAvatarInput) (*entity.User, error) {
	return userResult(m.Called(ctx, principal, input))
}

// MockContactUsecase is a mock type for the usecase.ContactUsecase type
type MockContactUsecase struct {
	mock.Mock
}

func NewMockContactUsecase(t testing.TB) *MockContactUsecase {
	m := &MockContactUsecase{}
	register(t, &m.Mock)

	return m
}

func (m *MockContactUsecase) Create(ctx context.Context, ownerID uuid.UUID, input usecase.ContactInput) (*entity.Contact, error) {
	return contactResult(m.Called(ctx, ownerID, input))
}

func (m *MockContactUsecase) Get(ctx context.Context, ownerID, id uuid.UUID) (*entity.Contact, error) {
	return contactResult(m.Called(ctx, ownerID, id))
}

func (m *MockContactUsecase) Update(ctx context.Context, ownerID, id uuid.UUID, input usecase.ContactInput) (*entity.Contact, error) {
	return contactResult(m.Called(ctx, ownerID, id, input))
}

func (m *MockContactUsecase) Delete(ctx context.Context, ownerID, id uuid.UUID) (*entity.Contact, error) {
	return contactResult(m.Called(ctx, ownerID, id))
}

// MockContactQuery is a mock type for the usecase.ContactQuery type
type MockContactQuery struct {
	mock.Mock
}

func NewMockContactQuery(t testing.TB) *MockContactQuery {
	m := &MockContactQuery{}
	register(t, &m.Mock)

	return m
}

func (m *MockContactQuery) Search(ctx context.Context, ownerID uuid.UUID, filter entity.ContactFilter, page entity.Page) ([]*entity.Contact, error) {
	return contactsResult(m.Called(ctx, ownerID, filter, page))
}

func (m *MockContactQuery) UpcomingBirthdays(ctx context.Context, ownerID uuid.UUID, days int) ([]*entity.Contact, error) {
	return contactsResult(m.Called(ctx, ownerID, days))
}
