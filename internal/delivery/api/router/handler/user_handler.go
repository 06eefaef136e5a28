// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"

	"contactbook/internal/delivery/api/response"
	deliverycontext "contactbook/internal/delivery/context"
	domainerrors "contactbook/internal/domain/errors"
	"contactbook/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler serves the authenticated account endpoints.
type UserHandler struct {
	uc usecase.UserUsecase
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

// Me returns the authenticated principal.
func (h *UserHandler) Me(c echo.Context) error {
	principal := deliverycontext.GetPrincipal(c)
	if principal == nil {
		return domainerrors.ErrUnauthenticated
	}

	return response.Success(c, http.StatusOK, newUserResponse(principal))
}

// UpdateAvatar accepts a multipart "file" field.
func (h *UserHandler) UpdateAvatar(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return domainerrors.ErrInvalidArgument.WithDetails("multipart field 'file' is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "open uploaded file")
	}
	defer file.Close()

	user, err := h.uc.UpdateAvatar(c.Request().Context(), deliverycontext.GetPrincipal(c), usecase.UpdateAvatarInput{
		File:        file,
		Size:        fileHeader.Size,
		ContentType: fileHeader.Header.Get(echo.HeaderContentType),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newUserResponse(user))
}
