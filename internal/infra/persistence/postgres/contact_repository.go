package postgres

import (
	"context"
	"strings"
	"time"

	"contactbook/internal/domain/entity"
	domainerrors "contactbook/internal/domain/errors"
	"contactbook/internal/domain/repository"
	"contactbook/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// birthdayPositionSQL must agree with entity.BirthdayPosition.
const birthdayPositionSQL = "(EXTRACT(MONTH FROM birth_date)::int * 100 + EXTRACT(DAY FROM birth_date)::int)"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching value as a literal substring.
func containsPattern(value string) string {
	return "%" + likeEscaper.Replace(value) + "%"
}

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository returns a GORM backed repository.ContactRepository.
func NewContactRepository(db *gorm.DB) repository.ContactRepository {
	return &contactRepository{db: db}
}

func (repo *contactRepository) owned(ctx context.Context, ownerID uuid.UUID) *gorm.DB {
	return repo.db.WithContext(ctx).Model(&model.ContactModel{}).Where("owner_id = ?", ownerID)
}

func (repo *contactRepository) Search(ctx context.Context, ownerID uuid.UUID, filter entity.ContactFilter, page entity.Page) ([]*entity.Contact, error) {
	q := repo.owned(ctx, ownerID)
	if !filter.IsEmpty() {
		q = applyContactFilter(q, filter)
	}

	var rows []model.ContactModel
	if err := q.Order("id ASC").Offset(page.Skip).Limit(page.Limit).Find(&rows).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to search contacts")
	}

	return toContactsDomain(rows), nil
}

// applyContactFilter ANDs a literal substring match for every set field.
func applyContactFilter(q *gorm.DB, filter entity.ContactFilter) *gorm.DB {
	for _, f := range []struct{ column, value string }{
		{"first_name", filter.FirstName},
		{"last_name", filter.LastName},
		{"email", filter.Email},
	} {
		if f.value != "" {
			q = q.Where(f.column+` LIKE ? ESCAPE '\'`, containsPattern(f.value))
		}
	}

	return q
}

func (repo *contactRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*entity.Contact, error) {
	var row model.ContactModel
	if err := repo.owned(ctx, ownerID).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrContactNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find contact")
	}

	return toContactDomain(&row), nil
}

func (repo *contactRepository) Create(ctx context.Context, contact *entity.Contact) error {
	if contact.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "generate contact id")
		}
		contact.ID = id
	}

	row := fromContactDomain(contact)
	if err := repo.db.WithContext(ctx).Create(row).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrContactAlreadyExists.WrapMessage("unique index rejected contact")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("contact owner does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create contact")
	}

	contact.CreatedAt = row.CreatedAt
	contact.UpdatedAt = row.UpdatedAt

	return nil
}

func (repo *contactRepository) Update(ctx context.Context, contact *entity.Contact) error {
	now := time.Now()
	result := repo.owned(ctx, contact.OwnerID).
		Where("id = ?", contact.ID).
		Updates(map[string]any{
			"first_name":   contact.FirstName,
			"last_name":    contact.LastName,
			"email":        contact.Email,
			"phone_number": contact.PhoneNumber,
			"birth_date":   contact.BirthDate,
			"info":         contact.Info,
			"updated_at":   now,
		})
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrContactAlreadyExists.WrapMessage("unique index rejected contact")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update contact")
	}
	if result.RowsAffected == 0 {
		return repository.ErrContactNotFound
	}
	contact.UpdatedAt = now

	return nil
}

func (repo *contactRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		Delete(&model.ContactModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete contact")
	}
	if result.RowsAffected == 0 {
		return repository.ErrContactNotFound
	}

	return nil
}

func (repo *contactRepository) ExistsByEmailOrPhone(ctx context.Context, ownerID uuid.UUID, email, phone string, excludeID *uuid.UUID) (bool, error) {
	q := repo.owned(ctx, ownerID).Where("email = ? OR phone_number = ?", email, phone)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, domainerrors.NewDatabaseExecuteError(err, "failed to check contact uniqueness")
	}

	return count > 0, nil
}

func (repo *contactRepository) FindBirthdaysInWindow(ctx context.Context, ownerID uuid.UUID, window entity.BirthdayWindow) ([]*entity.Contact, error) {
	q := repo.owned(ctx, ownerID)
	switch {
	case window.Full:
	case window.Wraps():
		q = q.Where(birthdayPositionSQL+" >= ? OR "+birthdayPositionSQL+" <= ?", window.Start, window.End)
	default:
		q = q.Where(birthdayPositionSQL+" BETWEEN ? AND ?", window.Start, window.End)
	}

	var rows []model.ContactModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find upcoming birthdays")
	}

	return toContactsDomain(rows), nil
}

// --- Mapper Functions ---

func toContactDomain(data *model.ContactModel) *entity.Contact {
	if data == nil {
		return nil
	}

	return &entity.Contact{
		ID:          data.ID,
		FirstName:   data.FirstName,
		LastName:    data.LastName,
		Email:       data.Email,
		PhoneNumber: data.PhoneNumber,
		BirthDate:   data.BirthDate,
		Info:        data.Info,
		OwnerID:     data.OwnerID,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func toContactsDomain(rows []model.ContactModel) []*entity.Contact {
	contacts := make([]*entity.Contact, 0, len(rows))
	for i := range rows {
		contacts = append(contacts, toContactDomain(&rows[i]))
	}

	return contacts
}

func fromContactDomain(data *entity.Contact) *model.ContactModel {
	return &model.ContactModel{
		ID:          data.ID,
		FirstName:   data.FirstName,
		LastName:    data.LastName,
		Email:       data.Email,
		PhoneNumber: data.PhoneNumber,
		BirthDate:   data.BirthDate,
		Info:        data.Info,
		OwnerID:     data.OwnerID,
	}
}
