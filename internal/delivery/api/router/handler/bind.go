package handler

import (
	domainerrors "contactbook/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// bindAndValidate binds the request body and runs the echo validator.
func bindAndValidate(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return domainerrors.ErrInvalidArgument.WithDetails("malformed request body")
	}

	return c.Validate(dst)
}

func bindQuery(c echo.Context, dst any) error {
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, dst); err != nil {
		return domainerrors.ErrInvalidArgument.WithDetails("malformed query parameters")
	}

	return nil
}

func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.ErrInvalidArgument.WithDetails(name + " must be a UUID")
	}

	return id, nil
}
