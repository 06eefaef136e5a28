package mail

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net"
	"strings"
	"testing"

	"contactbook/config"
	"contactbook/internal/domain/service"
	"contactbook/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomail "github.com/wneessen/go-mail"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRenderer_VerifyEmail(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	body, err := r.Render(service.TemplateVerifyEmail, map[string]string{
		"host":     "http://localhost:8080/",
		"username": "alice",
		"token":    "tok123",
	})
	require.NoError(t, err)

	assert.Contains(t, body, "Hi alice,")
	assert.Contains(t, body, `href="http://localhost:8080/api/auth/confirmed_email/tok123"`)
}

func TestRenderer_ResetPasswordEscapes(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	body, err := r.Render(service.TemplateResetPassword, map[string]string{
		"username":   "<script>",
		"reset_link": "http://localhost/api/auth/confirm_reset_password/abc",
	})
	require.NoError(t, err)

	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
	assert.Contains(t, body, "confirm_reset_password/abc")
}

func TestRenderer_UnknownTemplate(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	_, err = r.Render("welcome", nil)
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}

func TestSMTPSender_NewMessage(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	s, err := NewSMTPSender(config.SMTPConfig{Host: "smtp.example.com", Port: 465, From: "no-reply@example.com", FromName: "Contactbook"}, r, newDiscardLogger())
	require.NoError(t, err)

	m, err := s.newMessage("alice@example.com", "Confirm your email", "<p>hello</p>")
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	raw := buf.String()

	head, body, found := strings.Cut(raw, "\r\n\r\n")
	require.True(t, found)
	assert.Contains(t, head, "Contactbook")
	assert.Contains(t, head, "<no-reply@example.com>")
	assert.Contains(t, head, "alice@example.com")
	assert.Contains(t, head, "Subject: Confirm your email")
	assert.Contains(t, head, "@smtp.example.com>")
	assert.Contains(t, raw, "text/html")
	assert.Contains(t, body, "<p>hello</p>")
}

func TestSMTPSender_NewMessageRejectsBadRecipient(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	s, err := NewSMTPSender(config.SMTPConfig{Host: "smtp.example.com", From: "no-reply@example.com"}, r, newDiscardLogger())
	require.NoError(t, err)

	_, err = s.newMessage("not an address", "x", "y")
	assert.Error(t, err)
}

func TestClientOptions_TLSModes(t *testing.T) {
	t.Parallel()

	plain := clientOptions(config.SMTPConfig{Host: "smtp.example.com"})
	withAuth := clientOptions(config.SMTPConfig{Host: "smtp.example.com", Port: 587, StartTLS: true, Username: "u", Password: "p"})

	assert.Len(t, plain, 3)
	assert.Len(t, withAuth, 7)

	for _, cfg := range []config.SMTPConfig{
		{Host: "smtp.example.com"},
		{Host: "smtp.example.com", Port: 465, SSL: true},
		{Host: "smtp.example.com", Port: 587, StartTLS: true, Username: "u", Password: "p"},
	} {
		_, err := gomail.NewClient(cfg.Host, clientOptions(cfg)...)
		assert.NoError(t, err, "%+v", cfg)
	}
}

func TestNewSMTPSender_Validation(t *testing.T) {
	_, err := NewSMTPSender(config.SMTPConfig{From: "a@b.c"}, nil, newDiscardLogger())
	assert.Error(t, err)

	_, err = NewSMTPSender(config.SMTPConfig{Host: "smtp.example.com"}, nil, newDiscardLogger())
	assert.Error(t, err)
}

func TestSMTPSender_UnknownTemplateIsPermanent(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	s, err := NewSMTPSender(config.SMTPConfig{Host: "smtp.example.com", From: "no-reply@example.com"}, r, newDiscardLogger())
	require.NoError(t, err)

	err = s.Send(context.Background(), &service.MailMessage{Template: "nope", Recipient: "a@example.com"})
	require.Error(t, err)
	assert.False(t, IsTransient(err))
}

func TestIsTransient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "permanent relay rejection", err: errors.Wrap(&gomail.SendError{Reason: gomail.ErrSMTPRcptTo}, "deliver"), want: false},
		{name: "dial failure", err: errors.Wrap(&net.OpError{Op: "dial", Err: errors.New("refused")}, "dial smtp"), want: true},
		{name: "deadline", err: errors.Wrap(context.DeadlineExceeded, "send"), want: true},
		{name: "render failure", err: ErrUnknownTemplate, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}
