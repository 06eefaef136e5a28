package impl

import (
	"context"
	"log/slog"

	deliverycontext "contactbook/internal/delivery/context"
	"contactbook/internal/domain/entity"
	domainerrors "contactbook/internal/domain/errors"
	"contactbook/internal/domain/repository"
	"contactbook/internal/domain/service"
	"contactbook/internal/usecase"

	"github.com/pkg/errors"
)

type accessGuard struct {
	tokens service.TokenService
	cache  service.IdentityCache
	logger *slog.Logger
}

// NewAccessGuard is the constructor for accessGuard.
func NewAccessGuard(tokens service.TokenService, cache service.IdentityCache, logger *slog.Logger) usecase.AccessGuard {
	return &accessGuard{
		tokens: tokens,
		cache:  cache,
		logger: logger,
	}
}

// Resolve verifies a session token and loads its principal through the
// identity cache.
func (g *accessGuard) Resolve(ctx context.Context, bearerToken string) (*entity.User, error) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, g.logger)

	if bearerToken == "" {
		return nil, domainerrors.ErrUnauthenticated.WrapMessage("missing bearer token")
	}

	claims, err := g.tokens.Verify(bearerToken, service.PurposeSession)
	if err != nil {
		logger.Debug("session token rejected", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrUnauthenticated, err.Error())
	}
	if claims.Subject == "" {
		return nil, domainerrors.ErrUnauthenticated.WrapMessage("token has no subject")
	}

	user, err := g.cache.Lookup(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUnauthenticated.WrapMessage("token subject does not exist")
		}
		logger.Error("identity lookup failed", slog.String("username", claims.Subject), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrUnavailable, err.Error())
	}

	return user, nil
}

func (g *accessGuard) RequireRole(principal *entity.User, role entity.Role) error {
	if principal == nil {
		return domainerrors.ErrUnauthenticated.WrapMessage("no principal")
	}
	if !principal.HasRole(role) {
		return domainerrors.ErrForbidden.WithDetails("requires role " + role.String())
	}

	return nil
}
