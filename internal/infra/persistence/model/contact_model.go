package model

import (
	"time"

	"github.com/google/uuid"
)

// ContactModel mirrors the 'contacts' table. Email and phone are unique per owner only.
type ContactModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName   string    `gorm:"type:varchar(50);not null;index"`
	LastName    string    `gorm:"type:varchar(50);not null;index"`
	Email       string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_contacts_owner_email,priority:2"`
	PhoneNumber string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_contacts_owner_phone,priority:2"`
	BirthDate   time.Time `gorm:"type:date;not null"`
	Info        *string   `gorm:"type:varchar(500)"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_contacts_owner_email,priority:1;uniqueIndex:idx_contacts_owner_phone,priority:1"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ContactModel) TableName() string {
	return "contacts"
}
