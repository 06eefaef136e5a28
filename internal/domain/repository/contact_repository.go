package repository

import (
	"context"
	"errors"

	"contactbook/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrContactNotFound is returned when no contact with the given ID belongs to the owner.
var ErrContactNotFound = errors.New("contact not found")

// ContactRepository is the contact store. Every method is scoped to an owner
// and nothing reads contacts across owners.
type ContactRepository interface {
	// Search returns the owner's contacts matching filter, ordered by ID.
	Search(ctx context.Context, ownerID uuid.UUID, filter entity.ContactFilter, page entity.Page) ([]*entity.Contact, error)

	// FindByID returns ErrContactNotFound for missing IDs and for contacts of other owners alike.
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*entity.Contact, error)

	// Create and Update yield domain errors.ErrContactAlreadyExists when the
	// owner already uses the email or phone number.
	Create(ctx context.Context, contact *entity.Contact) error

	// Update overwrites the mutable fields of an existing contact.
	Update(ctx context.Context, contact *entity.Contact) error

	Delete(ctx context.Context, ownerID, id uuid.UUID) error

	// ExistsByEmailOrPhone reports whether the owner has another contact using
	// email or phone. A non-nil excludeID skips that contact.
	ExistsByEmailOrPhone(ctx context.Context, ownerID uuid.UUID, email, phone string, excludeID *uuid.UUID) (bool, error)

	// FindBirthdaysInWindow returns the owner's contacts whose birthday falls in window, in no particular order.
	FindBirthdaysInWindow(ctx context.Context, ownerID uuid.UUID, window entity.BirthdayWindow) ([]*entity.Contact, error)
}
