package handler

import (
	"context"
	"log/slog"
	"net/http"

	"contactbook/internal/delivery/api/response"
	deliverycontext "contactbook/internal/delivery/context"
	"contactbook/internal/infra/persistence/postgres"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// HealthHandler serves liveness and database readiness checks.
type HealthHandler struct {
	ping   func(ctx context.Context) error
	logger *slog.Logger
}

func NewHealthHandler(db *gorm.DB, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		ping:   func(ctx context.Context) error { return postgres.Ping(ctx, db) },
		logger: logger,
	}
}

// HealthCheck is a liveness probe.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Healthchecker verifies the database answers a trivial query.
func (h *HealthHandler) Healthchecker(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.ping(ctx); err != nil {
		deliverycontext.GetLoggerOrDefault(ctx, h.logger).Error("database health check failed", slog.Any("error", err))

		return response.InternalServerError(c, "DATABASE_UNAVAILABLE", "Error connecting to the database")
	}

	return response.SuccessMessage(c, http.StatusOK, "Welcome to contactbook!")
}
