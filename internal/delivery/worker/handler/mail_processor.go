package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	deliverycontext "contactbook/internal/delivery/context"
	"contactbook/internal/domain/constants"
	"contactbook/internal/domain/service"
	"contactbook/internal/errors"
	"contactbook/internal/infra/mail"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// retryableError marks a failure the broker should redeliver.
type retryableError struct {
	err error
}

func (e *retryableError) Error() string {
	return fmt.Sprintf("retryable: %v", e.err)
}

func (e *retryableError) Unwrap() error {
	return e.err
}

func newRetryableError(err error) error {
	return &retryableError{err: err}
}

// IsRetryable reports whether err came from a delivery attempt worth repeating.
func IsRetryable(err error) bool {
	var re *retryableError

	return errors.As(err, &re)
}

// MailProcessor decodes queued mail events and hands them to the SMTP relay.
type MailProcessor struct {
	sender      service.MailSender
	isTransient func(error) bool
	logger      *slog.Logger
}

// MailProcessorParams holds dependencies for the MailProcessor
type MailProcessorParams struct {
	fx.In

	Sender service.MailSender
	Logger *slog.Logger
}

func NewMailProcessor(params MailProcessorParams) *MailProcessor {
	return &MailProcessor{
		sender:      params.Sender,
		isTransient: mail.IsTransient,
		logger:      params.Logger,
	}
}

// Process delivers one encoded service.MailMessage. Malformed payloads and
// permanent SMTP rejections are returned as plain errors; anything that may
// succeed later is wrapped so IsRetryable reports true.
func (p *MailProcessor) Process(ctx context.Context, data []byte, attributes map[string]string) error {
	var msg service.MailMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return errors.Wrap(err, "decode mail event")
	}
	if msg.Recipient == "" || msg.Template == "" {
		return errors.New("mail event without recipient or template")
	}

	requestID := extractRequestID(ctx, attributes, &msg)
	msg.RequestID = requestID
	ctx, logger := deliverycontext.WithRequestScope(ctx, p.logger, requestID)

	logger.Info("[Worker] Delivering mail", slog.String("template", msg.Template))

	if err := p.sender.Send(ctx, &msg); err != nil {
		if p.isTransient(err) {
			return newRetryableError(err)
		}

		return errors.Wrap(err, "send mail")
	}

	return nil
}

// extractRequestID prefers message attributes, then the event body, then the
// incoming context, and finally generates a fresh ID.
func extractRequestID(ctx context.Context, attributes map[string]string, msg *service.MailMessage) string {
	if requestID := attributes[constants.AttrRequestID]; requestID != "" {
		return requestID
	}
	if msg.RequestID != "" {
		return msg.RequestID
	}
	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	return uuid.New().String()
}
