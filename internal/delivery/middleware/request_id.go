package middleware

import (
	"log/slog"

	deliverycontext "contactbook/internal/delivery/context"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Client supplied IDs are echoed into logs and headers, so they must be
// printable ASCII of bounded length.
const requestIDRules = "required,max=128,printascii"

// RequestIDMiddleware tags every request with an ID and a logger carrying it.
type RequestIDMiddleware struct {
	logger   *slog.Logger
	validate *validator.Validate
}

// NewRequestIDMiddleware creates a new Request ID middleware
func NewRequestIDMiddleware(logger *slog.Logger) *RequestIDMiddleware {
	return &RequestIDMiddleware{
		logger:   logger,
		validate: validator.New(),
	}
}

// Process reuses a well-formed X-Request-Id header or generates a new ID,
// then stores the ID and a child logger in both the echo and request contexts.
func (m *RequestIDMiddleware) Process(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get(deliverycontext.HeaderXRequestID)
		if m.validate.Var(requestID, requestIDRules) != nil {
			requestID = uuid.New().String()
		}

		deliverycontext.SetRequestID(c, requestID)
		c.Response().Header().Set(deliverycontext.HeaderXRequestID, requestID)

		ctx, _ := deliverycontext.WithRequestScope(c.Request().Context(), m.logger, requestID)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
