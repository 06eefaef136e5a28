// Package response renders the API's JSON envelopes.
package response

import (
	"net/http"

	deliverycontext "contactbook/internal/delivery/context"
	domainerrors "contactbook/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// Message is the body of endpoints that only report an outcome.
type Message struct {
	Message string `json:"message"`
}

func meta(c echo.Context) *domainerrors.MetaInfo {
	return &domainerrors.MetaInfo{RequestID: deliverycontext.GetRequestID(c)}
}

// Success returns a successful response
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, domainerrors.SuccessResponse{
		Data: data,
		Meta: meta(c),
	})
}

// SuccessMessage wraps a plain message in the success envelope.
func SuccessMessage(c echo.Context, statusCode int, message string) error {
	return Success(c, statusCode, Message{Message: message})
}

// Error returns an error response
func Error(c echo.Context, statusCode int, errorCode string, message string, details any) error {
	return c.JSON(statusCode, domainerrors.ErrorResponse{
		Error: domainerrors.NewErrorInfo(statusCode, errorCode, message, details),
		Meta:  meta(c),
	})
}

// InternalServerError returns a 500 error
func InternalServerError(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusInternalServerError, errorCode, message, nil)
}
