package context

import (
	"contactbook/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// KeyPrincipal is the echo.Context key holding the authenticated user.
const KeyPrincipal ContextKey = "principal"

// SetPrincipal stores the authenticated user on the request.
func SetPrincipal(c echo.Context, user *entity.User) {
	c.Set(string(KeyPrincipal), user)
}

// GetPrincipal returns the authenticated user, or nil outside authenticated routes.
func GetPrincipal(c echo.Context) *entity.User {
	if user, ok := c.Get(string(KeyPrincipal)).(*entity.User); ok {
		return user
	}

	return nil
}
