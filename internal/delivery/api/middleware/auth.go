package middleware

import (
	"strings"

	deliverycontext "contactbook/internal/delivery/context"
	"contactbook/internal/domain/entity"
	domainerrors "contactbook/internal/domain/errors"
	"contactbook/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthMiddleware authenticates bearer tokens and gates routes by role.
type AuthMiddleware struct {
	guard usecase.AccessGuard
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(guard usecase.AccessGuard) *AuthMiddleware {
	return &AuthMiddleware{guard: guard}
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
// The scheme is matched case-insensitively.
func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}

	return strings.TrimSpace(token)
}

// Authenticate resolves the principal and stores it on the echo context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if token == "" {
			return domainerrors.ErrUnauthenticated.WrapMessage("missing or malformed authorization header")
		}

		principal, err := m.guard.Resolve(c.Request().Context(), token)
		if err != nil {
			return errors.WithStack(err)
		}
		deliverycontext.SetPrincipal(c, principal)

		return next(c)
	}
}

// RequireRole must run after Authenticate.
func (m *AuthMiddleware) RequireRole(role entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := m.guard.RequireRole(deliverycontext.GetPrincipal(c), role); err != nil {
				return errors.WithStack(err)
			}

			return next(c)
		}
	}
}
