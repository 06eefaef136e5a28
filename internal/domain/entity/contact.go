package entity

import (
	"time"

	"github.com/google/uuid"
)

// Contact is a personal contact record. It always belongs to exactly one User.
type Contact struct {
	ID          uuid.UUID
	FirstName   string
	LastName    string
	Email       string // Unique per owner.
	PhoneNumber string // Unique per owner.
	BirthDate   time.Time
	Info        *string
	OwnerID     uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ContactFilter narrows a search. Empty fields are ignored; the rest are
// case-sensitive substring matches combined with AND.
type ContactFilter struct {
	FirstName string
	LastName  string
	Email     string
}

// IsEmpty reports whether no filter field is set.
func (f ContactFilter) IsEmpty() bool {
	return f.FirstName == "" && f.LastName == "" && f.Email == ""
}

// MaxPageLimit caps the page size of any contact listing.
const MaxPageLimit = 100

// Page is an offset pagination request.
type Page struct {
	Skip  int
	Limit int
}

// Valid reports whether the page is within bounds.
func (p Page) Valid() bool {
	return p.Skip >= 0 && p.Limit > 0 && p.Limit <= MaxPageLimit
}
