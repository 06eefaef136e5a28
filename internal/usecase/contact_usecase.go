package usecase

import (
	"context"
	"time"

	"contactbook/internal/domain/entity"

	"github.com/google/uuid"
)

// ContactInput holds the caller-editable fields of a contact.
type ContactInput struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	BirthDate   time.Time
	Info        *string
}

// ContactUsecase manages a single owner's contacts. A contact that belongs to
// someone else is reported exactly like a missing one.
type ContactUsecase interface {
	Create(ctx context.Context, ownerID uuid.UUID, input ContactInput) (*entity.Contact, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (*entity.Contact, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, input ContactInput) (*entity.Contact, error)
	// Delete returns the removed contact.
	Delete(ctx context.Context, ownerID, id uuid.UUID) (*entity.Contact, error)
}

// ContactQuery answers read-only questions over an owner's contacts.
type ContactQuery interface {
	Search(ctx context.Context, ownerID uuid.UUID, filter entity.ContactFilter, page entity.Page) ([]*entity.Contact, error)
	// UpcomingBirthdays lists contacts whose birthday falls within the next
	// days days, soonest first.
	UpcomingBirthdays(ctx context.Context, ownerID uuid.UUID, days int) ([]*entity.Contact, error)
}
