package impl

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"contactbook/internal/domain/entity"
	domainerrors "contactbook/internal/domain/errors"
	"contactbook/internal/domain/repository"
	"contactbook/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Clock returns the current time. Tests swap it for a fixed date.
type Clock func() time.Time

type contactQuery struct {
	contacts repository.ContactRepository
	now      Clock
	logger   *slog.Logger
}

// NewContactQuery is the constructor for contactQuery.
func NewContactQuery(contacts repository.ContactRepository, logger *slog.Logger) usecase.ContactQuery {
	return newContactQuery(contacts, time.Now, logger)
}

func newContactQuery(contacts repository.ContactRepository, now Clock, logger *slog.Logger) *contactQuery {
	return &contactQuery{
		contacts: contacts,
		now:      now,
		logger:   logger,
	}
}

// Search returns the owner's contacts matching every non-empty filter field,
// ordered by id.
func (q *contactQuery) Search(ctx context.Context, ownerID uuid.UUID, filter entity.ContactFilter, page entity.Page) ([]*entity.Contact, error) {
	if !page.Valid() {
		return nil, domainerrors.ErrInvalidArgument.WithDetails("skip must be >= 0 and limit within 1..100")
	}

	contacts, err := q.contacts.Search(ctx, ownerID, filter, page)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search contacts")
	}

	return contacts, nil
}

// UpcomingBirthdays sorts by distance from today's month/day, then by id.
func (q *contactQuery) UpcomingBirthdays(ctx context.Context, ownerID uuid.UUID, days int) ([]*entity.Contact, error) {
	if days < 0 {
		return nil, domainerrors.ErrInvalidArgument.WithDetails("days must be >= 0")
	}

	window := entity.NewBirthdayWindow(q.now(), days)

	contacts, err := q.contacts.FindBirthdaysInWindow(ctx, ownerID, window)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find upcoming birthdays")
	}

	sort.SliceStable(contacts, func(i, j int) bool {
		di, dj := window.DaysUntil(contacts[i].BirthDate), window.DaysUntil(contacts[j].BirthDate)
		if di != dj {
			return di < dj
		}

		return contacts[i].ID.String() < contacts[j].ID.String()
	})

	return contacts, nil
}
