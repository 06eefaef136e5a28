package errors

import (
	"net/http"
	"testing"

	"contactbook/internal/errors"

	"github.com/stretchr/testify/assert"
)

func TestBaseError_WithDetailsKeepsIdentity(t *testing.T) {
	detailed := ErrContactNotFound.WithDetails("id=42")

	assert.True(t, errors.Is(detailed, ErrContactNotFound))
	assert.False(t, errors.Is(detailed, ErrUserNotFound))
	assert.Equal(t, "Contact not found: id=42", detailed.Error())
	assert.Equal(t, http.StatusNotFound, detailed.HTTPCode())
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "wrapped forbidden", err: ErrForbidden.WrapMessage("admin only"), want: KindForbidden},
		{name: "unauthenticated", err: ErrUnauthenticated, want: KindUnauthenticated},
		{name: "conflict with details", err: ErrContactAlreadyExists.WithDetails("a@b.c"), want: KindConflict},
		{name: "database failure", err: NewDatabaseExecuteError(errors.New("conn reset"), "search"), want: KindUnavailable},
		{name: "plain error", err: errors.New("boom"), want: KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestNewErrorInfo_WithholdsDetails(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		details any
		want    any
	}{
		{name: "validation keeps details", status: http.StatusBadRequest, details: "email: required", want: "email: required"},
		{name: "conflict keeps structured details", status: http.StatusConflict, details: map[string]string{"email": "taken"}, want: map[string]string{"email": "taken"}},
		{name: "empty string dropped", status: http.StatusNotFound, details: "", want: nil},
		{name: "unauthorized dropped", status: http.StatusUnauthorized, details: "token expired", want: nil},
		{name: "forbidden dropped", status: http.StatusForbidden, details: "admin only", want: nil},
		{name: "server error dropped", status: http.StatusServiceUnavailable, details: "dial tcp: refused", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			info := NewErrorInfo(tt.status, "CODE", "msg", tt.details)
			assert.Equal(t, "CODE", info.Code)
			assert.Equal(t, tt.want, info.Details)
		})
	}
}
