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

var userColumns = []string{"id", "username", "email", "password_hash", "role", "avatar_url", "confirmed", "created_at", "updated_at"}

func TestUserRepository_FindByUsername(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	id := uuid.New()
	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE username = \$1 ORDER BY "users"."id" LIMIT`).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(id, "alice", "alice@example.com", "hash", "admin", "http://a/1", true, now, now))

	user, err := repo.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, entity.RoleAdmin, user.Role)
	assert.True(t, user.Confirmed)
	assert.Equal(t, "http://a/1", user.AvatarURL)
}

func TestUserRepository_FindByEmail_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows(userColumns))

	user, err := repo.FindByEmail(context.Background(), "nobody@example.com")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_FindByID_StorageFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WillReturnError(errors.New("connection reset by peer"))

	_, err := repo.FindByID(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, domainerrors.KindUnavailable, domainerrors.KindOf(err))
	assert.NotErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_SetConfirmed(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(`UPDATE "users" SET "confirmed"=\$1,"updated_at"=\$2 WHERE email = \$3`).
		WithArgs(true, sqlmock.AnyArg(), "alice@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetConfirmed(context.Background(), "alice@example.com"))
}

func TestUserRepository_SetPasswordHash_NoRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(`UPDATE "users" SET "password_hash"=\$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetPasswordHash(context.Background(), "ghost@example.com", "hash")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_SetAvatar_Failure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(`UPDATE "users" SET "avatar_url"=\$1`).
		WillReturnError(errors.New("timeout"))

	err := repo.SetAvatar(context.Background(), "alice@example.com", "http://cdn/a")
	assert.Equal(t, domainerrors.KindUnavailable, domainerrors.KindOf(err))
}

func TestUserMappers_UnknownRoleDefaultsToUser(t *testing.T) {
	m := fromUserDomain(&entity.User{Username: "bob", Role: "superuser"})
	assert.Equal(t, "user", m.Role)

	m.Role = "root"
	assert.Equal(t, entity.RoleUser, toUserDomain(m).Role)
}
