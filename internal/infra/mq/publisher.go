package mq

import (
	"context"
	"encoding/json"
	"log/slog"

	"contactbook/internal/domain/constants"
	"contactbook/internal/domain/service"
	"contactbook/internal/errors"
)

type publisher interface {
	Publish(ctx context.Context, queue string, data []byte, attrs map[string]string) (string, error)
	Close() error
}

// mailPublisher enqueues mail events for the worker.
type mailPublisher struct {
	client publisher
	queue  string
	logger *slog.Logger
}

// NewMailPublisher returns a MailSender that publishes to queue.
func NewMailPublisher(client *Client, queue string, logger *slog.Logger) service.MailSender {
	return &mailPublisher{client: client, queue: queue, logger: logger}
}

func (p *mailPublisher) Send(ctx context.Context, msg *service.MailMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return errors.WithStack(err)
	}

	attrs := map[string]string{constants.AttrTemplate: msg.Template}
	if msg.RequestID != "" {
		attrs[constants.AttrRequestID] = msg.RequestID
	}

	id, err := p.client.Publish(ctx, p.queue, data, attrs)
	if err != nil {
		return err
	}

	p.logger.Debug("[RabbitMQ] Mail event queued",
		slog.String("queue", p.queue),
		slog.String("message_id", id),
	)

	return nil
}

func (p *mailPublisher) Close() error {
	return p.client.Close()
}
