package mail

import (
	"context"
	"log/slog"

	"contactbook/config"
	"contactbook/internal/domain/constants"
	"contactbook/internal/domain/service"
	"contactbook/internal/errors"
	"contactbook/internal/infra/mq"
	"contactbook/internal/infra/pubsub"

	"go.uber.org/fx"
)

// SenderParams holds dependencies for MailSender, injected by Fx
type SenderParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewMailSender picks the transport named by mail.transport.
func NewMailSender(params SenderParams) (service.MailSender, error) {
	cfg := params.Config
	logger := params.Logger

	var sender service.MailSender
	switch cfg.Mail.Transport {
	case constants.MailTransportNoop, "":
		logger.Info("Mail transport not configured, using no-op sender")

		return &noopSender{logger: logger}, nil

	case constants.MailTransportSMTP:
		renderer, err := NewRenderer()
		if err != nil {
			return nil, err
		}
		smtpSender, err := NewSMTPSender(cfg.Mail.SMTP, renderer, logger)
		if err != nil {
			return nil, err
		}
		sender = smtpSender

	case constants.MailTransportPubSub:
		publisher, err := pubsub.NewPublisher(params.Ctx, cfg.PubSub, logger)
		if err != nil {
			return nil, err
		}
		sender = publisher

	case constants.MailTransportRabbitMQ:
		client, err := mq.NewClient(cfg.RabbitMQ)
		if err != nil {
			return nil, err
		}
		logger.Info("Using RabbitMQ mail publisher", slog.String("queue", cfg.RabbitMQ.Queue))
		sender = mq.NewMailPublisher(client, cfg.RabbitMQ.Queue, logger)

	default:
		return nil, errors.Errorf("unknown mail transport: %s", cfg.Mail.Transport)
	}

	// Register lifecycle hook to close sender on shutdown
	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			logger.Info("Closing MailSender")

			return sender.Close()
		},
	})

	return sender, nil
}

// NewWorkerSMTPSender builds the SMTP sender used by the mail worker,
// whatever transport the API is configured with.
func NewWorkerSMTPSender(cfg *config.Config, logger *slog.Logger) (*SMTPSender, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}

	return NewSMTPSender(cfg.Mail.SMTP, renderer, logger)
}
