package impl

import (
	"context"
	"testing"
	"time"

	"contactbook/internal/domain/entity"
	domainerrors "contactbook/internal/domain/errors"
	mockRepo "contactbook/internal/mocks/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fixedClock(y int, m time.Month, d int) Clock {
	return func() time.Time { return time.Date(y, m, d, 15, 30, 0, 0, time.UTC) }
}

func birthday(m time.Month, d int) time.Time {
	return time.Date(1988, m, d, 0, 0, 0, 0, time.UTC)
}

func TestContactQuery_UpcomingBirthdays_OrdersAcrossNewYear(t *testing.T) {
	contacts := mockRepo.NewMockContactRepository(t)
	q := newContactQuery(contacts, fixedClock(2024, 12, 28), newDiscardLogger())
	owner := uuid.New()

	idA := uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	idB := uuid.MustParse("00000000-0000-0000-0000-00000000000b")
	jan2B := &entity.Contact{ID: idB, BirthDate: birthday(time.January, 2)}
	jan2A := &entity.Contact{ID: idA, BirthDate: birthday(time.January, 2)}
	dec30 := &entity.Contact{ID: uuid.New(), BirthDate: birthday(time.December, 30)}
	today := &entity.Contact{ID: uuid.New(), BirthDate: birthday(time.December, 28)}

	contacts.On("FindBirthdaysInWindow", mock.Anything, owner, mock.MatchedBy(func(w entity.BirthdayWindow) bool {
		return w.Start == 1228 && w.End == 104 && w.Wraps()
	})).Return([]*entity.Contact{jan2B, dec30, jan2A, today}, nil)

	got, err := q.UpcomingBirthdays(context.Background(), owner, 7)
	require.NoError(t, err)
	assert.Equal(t, []*entity.Contact{today, dec30, jan2A, jan2B}, got)
}

func TestContactQuery_UpcomingBirthdays_NegativeDays(t *testing.T) {
	contacts := mockRepo.NewMockContactRepository(t)
	q := newContactQuery(contacts, fixedClock(2024, 12, 28), newDiscardLogger())

	_, err := q.UpcomingBirthdays(context.Background(), uuid.New(), -1)
	assert.Equal(t, domainerrors.KindInvalidArgument, domainerrors.KindOf(err))
	contacts.AssertNotCalled(t, "FindBirthdaysInWindow", mock.Anything, mock.Anything, mock.Anything)
}

func TestContactQuery_Search(t *testing.T) {
	contacts := mockRepo.NewMockContactRepository(t)
	q := NewContactQuery(contacts, newDiscardLogger())
	owner := uuid.New()
	filter := entity.ContactFilter{LastName: "Doe"}
	page := entity.Page{Skip: 10, Limit: 10}
	want := []*entity.Contact{{ID: uuid.New(), LastName: "Doe", OwnerID: owner}}

	contacts.On("Search", mock.Anything, owner, filter, page).Return(want, nil)

	got, err := q.Search(context.Background(), owner, filter, page)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestContactQuery_Search_InvalidPage(t *testing.T) {
	contacts := mockRepo.NewMockContactRepository(t)
	q := NewContactQuery(contacts, newDiscardLogger())

	for _, page := range []entity.Page{{Skip: -1, Limit: 10}, {Limit: 0}, {Limit: entity.MaxPageLimit + 1}} {
		_, err := q.Search(context.Background(), uuid.New(), entity.ContactFilter{}, page)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidArgument, "page %+v", page)
	}
}
