package mail

import (
	"context"
	"log/slog"

	"contactbook/internal/domain/service"
)

// noopSender only logs; it is the default when no transport is configured.
type noopSender struct {
	logger *slog.Logger
}

func (s *noopSender) Send(_ context.Context, msg *service.MailMessage) error {
	s.logger.Debug("[NoopMail] Mail delivery disabled, skipping",
		slog.String("template", msg.Template),
		slog.String("request_id", msg.RequestID),
	)

	return nil
}

func (s *noopSender) Close() error {
	return nil
}
