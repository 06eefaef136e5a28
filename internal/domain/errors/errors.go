package errors

import (
	"net/http"

	"contactbook/internal/errors"
)

// Kind classifies an error by how the caller should react to it.
type Kind string

const (
	KindUnauthenticated Kind = "UNAUTHENTICATED"
	KindForbidden       Kind = "FORBIDDEN"
	KindInvalidArgument Kind = "INVALID_ARGUMENT"
	KindConflict        Kind = "CONFLICT"
	KindNotFound        Kind = "NOT_FOUND"
	KindUnavailable     Kind = "UNAVAILABLE"
	KindInternal        Kind = "INTERNAL"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	Kind() Kind        // Error category
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	kind      Kind
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(kind Kind, httpCode int, errorCode, message string) *BaseError {
	return &BaseError{
		kind:      kind,
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.details != "" {
		return e.message + ": " + e.details
	}

	return e.message
}

// Is matches errors derived from the same predefined error via WithDetails.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode && e.kind == t.kind
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// Kind returns the error category
func (e *BaseError) Kind() Kind {
	return e.kind
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		kind:      e.kind,
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// KindOf returns the kind of the first AppError in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.Kind()
	}

	return KindInternal
}

// Predefined error types
var (
	// Authentication and authorization
	ErrUnauthenticated = NewBaseError(
		KindUnauthenticated,
		http.StatusUnauthorized,
		"UNAUTHENTICATED",
		"Could not validate credentials",
	)

	ErrInvalidCredentials = NewBaseError(
		KindUnauthenticated,
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Incorrect username or password",
	)

	ErrEmailNotConfirmed = NewBaseError(
		KindUnauthenticated,
		http.StatusUnauthorized,
		"EMAIL_NOT_CONFIRMED",
		"Email address is not confirmed",
	)

	ErrForbidden = NewBaseError(
		KindForbidden,
		http.StatusForbidden,
		"FORBIDDEN",
		"Permission denied",
	)

	// Caller input
	ErrInvalidArgument = NewBaseError(
		KindInvalidArgument,
		http.StatusBadRequest,
		"INVALID_ARGUMENT",
		"Invalid request parameters",
	)

	ErrValidationFailed = NewBaseError(
		KindInvalidArgument,
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
	)

	ErrInvalidVerificationToken = NewBaseError(
		KindInvalidArgument,
		http.StatusUnprocessableEntity,
		"INVALID_VERIFICATION_TOKEN",
		"Invalid email verification token",
	)

	ErrVerificationFailed = NewBaseError(
		KindInvalidArgument,
		http.StatusBadRequest,
		"VERIFICATION_FAILED",
		"Verification error",
	)

	ErrUnsupportedFile = NewBaseError(
		KindInvalidArgument,
		http.StatusBadRequest,
		"UNSUPPORTED_FILE",
		"Unsupported avatar file",
	)

	// Conflicts
	ErrUserAlreadyExists = NewBaseError(
		KindConflict,
		http.StatusConflict,
		"USER_ALREADY_EXISTS",
		"Account already exists",
	)

	ErrContactAlreadyExists = NewBaseError(
		KindConflict,
		http.StatusConflict,
		"CONTACT_ALREADY_EXISTS",
		"Contact with this email or phone number already exists",
	)

	// Not found
	ErrUserNotFound = NewBaseError(
		KindNotFound,
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
	)

	ErrContactNotFound = NewBaseError(
		KindNotFound,
		http.StatusNotFound,
		"CONTACT_NOT_FOUND",
		"Contact not found",
	)

	// Infrastructure
	ErrUnavailable = NewBaseError(
		KindUnavailable,
		http.StatusServiceUnavailable,
		"UNAVAILABLE",
		"Service temporarily unavailable",
	)

	ErrInternalError = NewBaseError(
		KindInternal,
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap exposes the driver error.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// Kind reports storage failures as unavailable.
func (e *DatabaseExecuteError) Kind() Kind {
	return KindUnavailable
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusServiceUnavailable
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
