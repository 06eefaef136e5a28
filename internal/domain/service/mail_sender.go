package service

import "context"

// Mail templates known to the renderer.
const (
	TemplateVerifyEmail   = "verify_email"
	TemplateResetPassword = "reset_password"
)

// MailMessage is a templated email. It is also the payload of mail events
// handed to the mail worker.
type MailMessage struct {
	RequestID string            `json:"request_id,omitempty"` // For distributed tracing
	Template  string            `json:"template"`
	Recipient string            `json:"recipient"`
	Subject   string            `json:"subject"`
	Variables map[string]string `json:"variables"`
}

// MailSender delivers or enqueues a message. Callers log failures and move on.
type MailSender interface {
	Send(ctx context.Context, msg *MailMessage) error

	// Close releases any resources held by the sender
	Close() error
}
