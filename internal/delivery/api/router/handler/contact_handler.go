package handler

import (
	"net/http"

	"contactbook/internal/delivery/api/response"
	deliverycontext "contactbook/internal/delivery/context"
	"contactbook/internal/domain/entity"
	domainerrors "contactbook/internal/domain/errors"
	"contactbook/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	defaultPageLimit    = 10
	defaultBirthdayDays = 7
)

// ContactHandler serves the owner-scoped contact endpoints.
type ContactHandler struct {
	contacts usecase.ContactUsecase
	query    usecase.ContactQuery
}

// NewContactHandler is the constructor for ContactHandler, injected by Fx.
func NewContactHandler(contacts usecase.ContactUsecase, query usecase.ContactQuery) *ContactHandler {
	return &ContactHandler{contacts: contacts, query: query}
}

func ownerID(c echo.Context) (uuid.UUID, error) {
	principal := deliverycontext.GetPrincipal(c)
	if principal == nil {
		return uuid.Nil, domainerrors.ErrUnauthenticated
	}

	return principal.ID, nil
}

func (h *ContactHandler) List(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}

	q := ListContactsQuery{Limit: defaultPageLimit}
	if err := bindQuery(c, &q); err != nil {
		return err
	}

	contacts, err := h.query.Search(c.Request().Context(), owner,
		entity.ContactFilter{FirstName: q.FirstName, LastName: q.LastName, Email: q.Email},
		entity.Page{Skip: q.Skip, Limit: q.Limit},
	)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newContactResponses(contacts))
}

func (h *ContactHandler) Birthdays(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}

	q := BirthdaysQuery{Days: defaultBirthdayDays}
	if err := bindQuery(c, &q); err != nil {
		return err
	}

	contacts, err := h.query.UpcomingBirthdays(c.Request().Context(), owner, q.Days)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newContactResponses(contacts))
}

func (h *ContactHandler) Get(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	contact, err := h.contacts.Get(c.Request().Context(), owner, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newContactResponse(contact))
}

func (h *ContactHandler) Create(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}

	var req ContactRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	contact, err := h.contacts.Create(c.Request().Context(), owner, req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newContactResponse(contact))
}

func (h *ContactHandler) Update(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req ContactRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	contact, err := h.contacts.Update(c.Request().Context(), owner, id, req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newContactResponse(contact))
}

func (h *ContactHandler) Delete(c echo.Context) error {
	owner, err := ownerID(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	contact, err := h.contacts.Delete(c.Request().Context(), owner, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newContactResponse(contact))
}
