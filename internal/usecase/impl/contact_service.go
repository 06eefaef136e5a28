package impl

import (
	"context"
	"log/slog"

	deliverycontext "contactbook/internal/delivery/context"
	"contactbook/internal/domain/entity"
	domainerrors "contactbook/internal/domain/errors"
	"contactbook/internal/domain/repository"
	"contactbook/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// contactService implements the ContactUsecase interface.
type contactService struct {
	txManager repository.TransactionManager
	contacts  repository.ContactRepository
	logger    *slog.Logger
}

// NewContactService is the constructor for contactService.
func NewContactService(
	txManager repository.TransactionManager,
	contacts repository.ContactRepository,
	logger *slog.Logger,
) usecase.ContactUsecase {
	return &contactService{
		txManager: txManager,
		contacts:  contacts,
		logger:    logger,
	}
}

// Create stores a new contact unless the owner already has one with the same
// email or phone number.
func (srv *contactService) Create(ctx context.Context, ownerID uuid.UUID, input usecase.ContactInput) (*entity.Contact, error) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, srv.logger)

	contact := &entity.Contact{OwnerID: ownerID}
	applyContactInput(contact, input)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		contactRepo := repoFactory.NewContactRepository()

		exists, err := contactRepo.ExistsByEmailOrPhone(ctx, ownerID, contact.Email, contact.PhoneNumber, nil)
		if err != nil {
			return errors.Wrap(err, "failed to check contact uniqueness")
		}
		if exists {
			return duplicateContactError(contact)
		}

		if err := contactRepo.Create(ctx, contact); err != nil {
			return errors.Wrap(err, "failed to create contact")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("contact created", slog.String("contactID", contact.ID.String()))

	return contact, nil
}

func (srv *contactService) Get(ctx context.Context, ownerID, id uuid.UUID) (*entity.Contact, error) {
	contact, err := srv.contacts.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, mapContactLookupError(err)
	}

	return contact, nil
}

// Update replaces the editable fields of an existing contact.
func (srv *contactService) Update(ctx context.Context, ownerID, id uuid.UUID, input usecase.ContactInput) (*entity.Contact, error) {
	var updated *entity.Contact

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		contactRepo := repoFactory.NewContactRepository()

		contact, err := contactRepo.FindByID(ctx, ownerID, id)
		if err != nil {
			return mapContactLookupError(err)
		}
		applyContactInput(contact, input)

		exists, err := contactRepo.ExistsByEmailOrPhone(ctx, ownerID, contact.Email, contact.PhoneNumber, &contact.ID)
		if err != nil {
			return errors.Wrap(err, "failed to check contact uniqueness")
		}
		if exists {
			return duplicateContactError(contact)
		}

		if err := contactRepo.Update(ctx, contact); err != nil {
			return mapContactLookupError(err)
		}
		updated = contact

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (srv *contactService) Delete(ctx context.Context, ownerID, id uuid.UUID) (*entity.Contact, error) {
	var removed *entity.Contact

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		contactRepo := repoFactory.NewContactRepository()

		contact, err := contactRepo.FindByID(ctx, ownerID, id)
		if err != nil {
			return mapContactLookupError(err)
		}
		if err := contactRepo.Delete(ctx, ownerID, id); err != nil {
			return mapContactLookupError(err)
		}
		removed = contact

		return nil
	})
	if err != nil {
		return nil, err
	}

	return removed, nil
}

func applyContactInput(contact *entity.Contact, input usecase.ContactInput) {
	contact.FirstName = input.FirstName
	contact.LastName = input.LastName
	contact.Email = input.Email
	contact.PhoneNumber = input.PhoneNumber
	contact.BirthDate = input.BirthDate
	contact.Info = input.Info
}

func duplicateContactError(contact *entity.Contact) error {
	return domainerrors.ErrContactAlreadyExists.WithDetails(
		"contact with '" + contact.Email + "' email or '" + contact.PhoneNumber + "' phone number already exists",
	)
}

func mapContactLookupError(err error) error {
	if errors.Is(err, repository.ErrContactNotFound) {
		return errors.Wrap(domainerrors.ErrContactNotFound, err.Error())
	}

	return errors.Wrap(err, "contact store failure")
}
