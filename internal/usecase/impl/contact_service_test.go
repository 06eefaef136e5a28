package impl

import (
	"context"
	"testing"
	"time"

	"contactbook/internal/domain/entity"
	domainerrors "contactbook/internal/domain/errors"
	"contactbook/internal/domain/repository"
	mockRepo "contactbook/internal/mocks/repository"
	"contactbook/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type contactServiceFixtures struct {
	service   usecase.ContactUsecase
	txManager *mockRepo.MockTransactionManager
	contacts  *mockRepo.MockContactRepository
}

func createTestContactService(t *testing.T) contactServiceFixtures {
	contacts := mockRepo.NewMockContactRepository(t)
	txManager := mockRepo.NewMockTransactionManager(t, &mockRepo.StaticRepositoryFactory{Contacts: contacts})

	return contactServiceFixtures{
		service:   NewContactService(txManager, contacts, newDiscardLogger()),
		txManager: txManager,
		contacts:  contacts,
	}
}

func annInput() usecase.ContactInput {
	return usecase.ContactInput{
		FirstName:   "Ann",
		LastName:    "Lee",
		Email:       "ann@example.com",
		PhoneNumber: "+380501234567",
		BirthDate:   time.Date(1990, 3, 14, 0, 0, 0, 0, time.UTC),
	}
}

func TestContactService_Create_Success(t *testing.T) {
	fx := createTestContactService(t)
	owner := uuid.New()
	input := annInput()

	fx.txManager.On("Execute", mock.Anything).Return(nil)
	fx.contacts.On("ExistsByEmailOrPhone", mock.Anything, owner, input.Email, input.PhoneNumber, (*uuid.UUID)(nil)).Return(false, nil)
	fx.contacts.On("Create", mock.Anything, mock.MatchedBy(func(c *entity.Contact) bool {
		return c.OwnerID == owner && c.Email == input.Email
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Contact).ID = uuid.New()
	}).Return(nil)

	contact, err := fx.service.Create(context.Background(), owner, input)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, contact.ID)
	assert.Equal(t, owner, contact.OwnerID)
	assert.Equal(t, "Lee", contact.LastName)
}

func TestContactService_Create_DuplicatePerOwner(t *testing.T) {
	fx := createTestContactService(t)
	ownerA, ownerB := uuid.New(), uuid.New()
	input := annInput()

	fx.txManager.On("Execute", mock.Anything).Return(nil)
	fx.contacts.On("ExistsByEmailOrPhone", mock.Anything, ownerA, input.Email, input.PhoneNumber, (*uuid.UUID)(nil)).Return(true, nil)
	fx.contacts.On("ExistsByEmailOrPhone", mock.Anything, ownerB, input.Email, input.PhoneNumber, (*uuid.UUID)(nil)).Return(false, nil)
	fx.contacts.On("Create", mock.Anything, mock.MatchedBy(func(c *entity.Contact) bool {
		return c.OwnerID == ownerB
	})).Return(nil).Once()

	_, err := fx.service.Create(context.Background(), ownerA, input)
	assert.ErrorIs(t, err, domainerrors.ErrContactAlreadyExists)
	assert.Equal(t, domainerrors.KindConflict, domainerrors.KindOf(err))

	_, err = fx.service.Create(context.Background(), ownerB, input)
	assert.NoError(t, err)
}

func TestContactService_Get_NotFound(t *testing.T) {
	fx := createTestContactService(t)
	owner, id := uuid.New(), uuid.New()

	fx.contacts.On("FindByID", mock.Anything, owner, id).Return(nil, repository.ErrContactNotFound)

	_, err := fx.service.Get(context.Background(), owner, id)
	assert.ErrorIs(t, err, domainerrors.ErrContactNotFound)
	assert.Equal(t, domainerrors.KindNotFound, domainerrors.KindOf(err))
}

func TestContactService_Update_ExcludesItselfFromUniquenessCheck(t *testing.T) {
	fx := createTestContactService(t)
	owner, id := uuid.New(), uuid.New()
	existing := &entity.Contact{ID: id, OwnerID: owner, FirstName: "Old", Email: "ann@example.com", PhoneNumber: "+380501234567"}
	input := annInput()

	fx.txManager.On("Execute", mock.Anything).Return(nil)
	fx.contacts.On("FindByID", mock.Anything, owner, id).Return(existing, nil)
	fx.contacts.On("ExistsByEmailOrPhone", mock.Anything, owner, input.Email, input.PhoneNumber, &id).Return(false, nil)
	fx.contacts.On("Update", mock.Anything, existing).Return(nil)

	updated, err := fx.service.Update(context.Background(), owner, id, input)
	require.NoError(t, err)
	assert.Equal(t, "Ann", updated.FirstName)
	assert.Equal(t, id, updated.ID)
}

func TestContactService_Update_Conflict(t *testing.T) {
	fx := createTestContactService(t)
	owner, id := uuid.New(), uuid.New()
	input := annInput()

	fx.txManager.On("Execute", mock.Anything).Return(nil)
	fx.contacts.On("FindByID", mock.Anything, owner, id).Return(&entity.Contact{ID: id, OwnerID: owner}, nil)
	fx.contacts.On("ExistsByEmailOrPhone", mock.Anything, owner, input.Email, input.PhoneNumber, &id).Return(true, nil)

	_, err := fx.service.Update(context.Background(), owner, id, input)
	assert.ErrorIs(t, err, domainerrors.ErrContactAlreadyExists)
	fx.contacts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestContactService_Delete(t *testing.T) {
	fx := createTestContactService(t)
	owner, id := uuid.New(), uuid.New()
	existing := &entity.Contact{ID: id, OwnerID: owner, FirstName: "Ann"}

	fx.txManager.On("Execute", mock.Anything).Return(nil)
	fx.contacts.On("FindByID", mock.Anything, owner, id).Return(existing, nil)
	fx.contacts.On("Delete", mock.Anything, owner, id).Return(nil)

	removed, err := fx.service.Delete(context.Background(), owner, id)
	require.NoError(t, err)
	assert.Equal(t, existing, removed)
}

func TestContactService_Delete_OtherOwner(t *testing.T) {
	fx := createTestContactService(t)
	owner, id := uuid.New(), uuid.New()

	fx.txManager.On("Execute", mock.Anything).Return(nil)
	fx.contacts.On("FindByID", mock.Anything, owner, id).Return(nil, repository.ErrContactNotFound)

	_, err := fx.service.Delete(context.Background(), owner, id)
	assert.ErrorIs(t, err, domainerrors.ErrContactNotFound)
}

func TestContactService_StoreFailureIsUnavailable(t *testing.T) {
	fx := createTestContactService(t)
	owner, id := uuid.New(), uuid.New()

	fx.contacts.On("FindByID", mock.Anything, owner, id).
		Return(nil, domainerrors.NewDatabaseExecuteError(errors.New("timeout"), "failed to find contact"))

	_, err := fx.service.Get(context.Background(), owner, id)
	assert.Equal(t, domainerrors.KindUnavailable, domainerrors.KindOf(err))
}
