package postgres

import (
	"context"
	"testing"
	"time"

	"contactbook/internal/domain/entity"
	domainerrors "contactbook/internal/domain/errors"
	"contactbook/internal/domain/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var contactColumns = []string{"id", "first_name", "last_name", "email", "phone_number", "birth_date", "info", "owner_id", "created_at", "updated_at"}

func contactRow(rows *sqlmock.Rows, id, owner uuid.UUID, first, email string, birth time.Time) *sqlmock.Rows {
	now := time.Now()

	return rows.AddRow(id, first, "Doe", email, "+380501234567", birth, nil, owner, now, now)
}

func TestContainsPattern(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "%ann%", containsPattern("ann"))
	assert.Equal(t, `%50\%\_off\\%`, containsPattern(`50%_off\`))
}

func TestContactRepository_SearchScopesAndOrders(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewContactRepository(db)

	owner := uuid.New()
	id := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "contacts" WHERE owner_id = \$1 AND first_name LIKE \$2 ESCAPE .* AND email LIKE \$3 ESCAPE .* ORDER BY id ASC`).
		WillReturnRows(contactRow(sqlmock.NewRows(contactColumns), id, owner, "Ann", "ann@example.com", time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)))

	got, err := repo.Search(context.Background(), owner,
		entity.ContactFilter{FirstName: "Ann", Email: "example"},
		entity.Page{Skip: 0, Limit: 10})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, id, got[0].ID)
	assert.Equal(t, owner, got[0].OwnerID)
	assert.Nil(t, got[0].Info)
}

func TestContactRepository_SearchNoFilter(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewContactRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "contacts" WHERE owner_id = \$1 ORDER BY id ASC`).
		WillReturnRows(sqlmock.NewRows(contactColumns))

	got, err := repo.Search(context.Background(), uuid.New(), entity.ContactFilter{}, entity.Page{Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestContactRepository_FindByID_OtherOwnerIsNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewContactRepository(db)

	owner, id := uuid.New(), uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "contacts" WHERE owner_id = \$1 AND id = \$2`).
		WillReturnRows(sqlmock.NewRows(contactColumns))

	_, err := repo.FindByID(context.Background(), owner, id)
	assert.ErrorIs(t, err, repository.ErrContactNotFound)
}

func TestContactRepository_Update(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewContactRepository(db)

	contact := &entity.Contact{ID: uuid.New(), OwnerID: uuid.New(), FirstName: "Ann", LastName: "Lee", Email: "ann@example.com", PhoneNumber: "1234567"}

	mock.ExpectExec(`UPDATE "contacts" SET .* WHERE owner_id = \$\d+ AND id = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Update(context.Background(), contact))
	assert.False(t, contact.UpdatedAt.IsZero())
}

func TestContactRepository_UpdateConflict(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewContactRepository(db)

	mock.ExpectExec(`UPDATE "contacts" SET`).
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_contacts_owner_email" (SQLSTATE 23505)`))

	err := repo.Update(context.Background(), &entity.Contact{ID: uuid.New(), OwnerID: uuid.New()})
	assert.ErrorIs(t, err, domainerrors.ErrContactAlreadyExists)
}

func TestContactRepository_UpdateMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewContactRepository(db)

	mock.ExpectExec(`UPDATE "contacts" SET`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &entity.Contact{ID: uuid.New(), OwnerID: uuid.New()})
	assert.ErrorIs(t, err, repository.ErrContactNotFound)
}

func TestContactRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewContactRepository(db)

	owner, id := uuid.New(), uuid.New()
	mock.ExpectExec(`DELETE FROM "contacts" WHERE owner_id = \$1 AND id = \$2`).
		WithArgs(owner, id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "contacts"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), owner, id))
	assert.ErrorIs(t, repo.Delete(context.Background(), owner, id), repository.ErrContactNotFound)
}

func TestContactRepository_ExistsByEmailOrPhone(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewContactRepository(db)

	owner, exclude := uuid.New(), uuid.New()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "contacts" WHERE owner_id = \$1 AND \(email = \$2 OR phone_number = \$3\) AND id <> \$4`).
		WithArgs(owner, "ann@example.com", "1234567", exclude).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ExistsByEmailOrPhone(context.Background(), owner, "ann@example.com", "1234567", &exclude)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestContactRepository_ExistsByEmailOrPhone_ScopesOrToOwner(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewContactRepository(db)

	owner := uuid.New()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "contacts" WHERE owner_id = \$1 AND \(email = \$2 OR phone_number = \$3\)$`).
		WithArgs(owner, "ann@example.com", "1234567").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	exists, err := repo.ExistsByEmailOrPhone(context.Background(), owner, "ann@example.com", "1234567", nil)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestContactRepository_FindBirthdaysInWindow(t *testing.T) {
	owner := uuid.New()
	today := time.Date(2024, 12, 28, 0, 0, 0, 0, time.UTC)

	t.Run("wrapping window", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewContactRepository(db)

		mock.ExpectQuery(`WHERE owner_id = \$1 AND .*EXTRACT\(MONTH FROM birth_date\).* >= \$2 OR .* <= \$3`).
			WithArgs(owner, 1228, 104).
			WillReturnRows(contactRow(sqlmock.NewRows(contactColumns), uuid.New(), owner, "Jan", "jan@example.com", time.Date(1990, 1, 2, 0, 0, 0, 0, time.UTC)))

		got, err := repo.FindBirthdaysInWindow(context.Background(), owner, entity.NewBirthdayWindow(today, 7))
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("plain window", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewContactRepository(db)

		mock.ExpectQuery(`WHERE owner_id = \$1 AND .*BETWEEN \$2 AND \$3`).
			WithArgs(owner, 501, 508).
			WillReturnRows(sqlmock.NewRows(contactColumns))

		_, err := repo.FindBirthdaysInWindow(context.Background(), owner, entity.NewBirthdayWindow(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), 7))
		require.NoError(t, err)
	})

	t.Run("full year has no position filter", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewContactRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "contacts" WHERE owner_id = \$1$`).
			WithArgs(owner).
			WillReturnRows(sqlmock.NewRows(contactColumns))

		_, err := repo.FindBirthdaysInWindow(context.Background(), owner, entity.NewBirthdayWindow(today, 400))
		require.NoError(t, err)
	})
}
