package handler

import (
	"time"

	"contactbook/internal/domain/entity"
	"contactbook/internal/usecase"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// --- Requests ---

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=100"`
	// bcrypt ignores input past 72 bytes.
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest accepts both JSON and OAuth2 password form posts.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type RequestEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type ContactRequest struct {
	FirstName   string  `json:"first_name" validate:"required,min=2,max=50"`
	LastName    string  `json:"last_name" validate:"required,min=2,max=50"`
	Email       string  `json:"email" validate:"required,min=7,max=100,email"`
	PhoneNumber string  `json:"phone_number" validate:"required,min=7,max=20"`
	BirthDate   string  `json:"birth_date" validate:"required,datetime=2006-01-02"`
	Info        *string `json:"info" validate:"omitempty,max=500"`
}

// toInput assumes the request already passed validation.
func (r *ContactRequest) toInput() usecase.ContactInput {
	birthDate, _ := time.Parse(dateLayout, r.BirthDate)

	return usecase.ContactInput{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		PhoneNumber: r.PhoneNumber,
		BirthDate:   birthDate,
		Info:        r.Info,
	}
}

type ListContactsQuery struct {
	FirstName string `query:"first_name"`
	LastName  string `query:"last_name"`
	Email     string `query:"email"`
	Skip      int    `query:"skip"`
	Limit     int    `query:"limit"`
}

type BirthdaysQuery struct {
	Days int `query:"days"`
}

// --- Responses ---

type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Avatar   string    `json:"avatar"`
	Role     string    `json:"role"`
}

func newUserResponse(u *entity.User) *UserResponse {
	return &UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Avatar:   u.AvatarURL,
		Role:     u.Role.String(),
	}
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type ContactResponse struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	BirthDate   string    `json:"birth_date"`
	Info        *string   `json:"info"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newContactResponse(c *entity.Contact) *ContactResponse {
	return &ContactResponse{
		ID:          c.ID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
		BirthDate:   c.BirthDate.Format(dateLayout),
		Info:        c.Info,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func newContactResponses(contacts []*entity.Contact) []*ContactResponse {
	out := make([]*ContactResponse, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, newContactResponse(c))
	}

	return out
}
