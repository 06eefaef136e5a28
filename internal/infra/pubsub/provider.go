package pubsub

import (
	"context"
	"log/slog"

	"contactbook/config"
	"contactbook/internal/domain/constants"
	"contactbook/internal/domain/service"

	"github.com/pkg/errors"
)

// NewPublisher creates the Pub/Sub backed mail sender selected by pubsub.provider
func NewPublisher(ctx context.Context, cfg *config.PubSubConfig, logger *slog.Logger) (service.MailSender, error) {
	if cfg == nil {
		return nil, errors.New("pubsub is not configured")
	}

	switch cfg.Provider {
	case constants.PubSubProviderLocal:
		if cfg.LocalEndpoint == "" {
			return nil, errors.New("local endpoint is required for local provider")
		}
		logger.Info("Using local HTTP publisher for Pub/Sub",
			slog.String("endpoint", cfg.LocalEndpoint),
		)

		return NewLocalHTTPPublisher(cfg.LocalEndpoint, logger), nil

	case constants.PubSubProviderGoogle:
		if cfg.ProjectID == "" {
			return nil, errors.New("project ID is required for google provider")
		}
		if cfg.TopicID == "" {
			return nil, errors.New("topic ID is required for google provider")
		}
		logger.Info("Using Google Pub/Sub publisher",
			slog.String("project_id", cfg.ProjectID),
			slog.String("topic_id", cfg.TopicID),
		)

		return NewGooglePubSubPublisher(ctx, cfg.ProjectID, cfg.TopicID, logger)

	default:
		return nil, errors.Errorf("unknown pubsub provider: %s", cfg.Provider)
	}
}
