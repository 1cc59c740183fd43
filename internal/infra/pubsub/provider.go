// Package pubsub publishes domain events for the notifier worker.
package pubsub

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"pgbee/config"
	"pgbee/internal/domain/constants"
	"pgbee/internal/domain/lifecycle"
	"pgbee/internal/domain/service"
	"pgbee/internal/errors"
)

// noopPublisher drops events when no provider is configured.
type noopPublisher struct {
	logger *slog.Logger
}

func (p *noopPublisher) PublishEnquiryEvent(ctx context.Context, event *service.EnquiryEvent) error {
	p.logger.DebugContext(ctx, "Event publishing disabled, dropping event",
		slog.String("enquiry_id", event.EnquiryID),
	)

	return nil
}

func (p *noopPublisher) Close() error {
	return nil
}

// PublisherParams holds dependencies for EventPublisher, injected by Fx
type PublisherParams struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewEventPublisher picks the transport from pubsub.provider. An empty
// provider disables publishing without failing enquiry creation.
func NewEventPublisher(params PublisherParams) (service.EventPublisher, error) {
	cfg := params.Config.PubSub
	if cfg == nil || cfg.Provider == "" {
		params.Logger.Info("PubSub not configured, enquiry events will be dropped")

		return &noopPublisher{logger: params.Logger}, nil
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	publisher, err := buildPublisher(cfg, params.Logger)
	if err != nil {
		return nil, err
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return publisher.Close()
		},
	})

	return publisher, nil
}

func validateConfig(cfg *config.PubSubConfig) error {
	switch cfg.Provider {
	case constants.PubSubProviderLocal:
		if cfg.LocalEndpoint == "" {
			return errors.New("pubsub.localEndpoint is required for the local provider")
		}
	case constants.PubSubProviderGoogle:
		if cfg.ProjectID == "" {
			return errors.New("pubsub.projectId is required for the google provider")
		}
		if cfg.TopicID == "" {
			return errors.New("pubsub.topicId is required for the google provider")
		}
	default:
		return errors.Errorf("unknown pubsub provider: %s", cfg.Provider)
	}

	return nil
}

func buildPublisher(cfg *config.PubSubConfig, logger *slog.Logger) (service.EventPublisher, error) {
	if cfg.Provider == constants.PubSubProviderLocal {
		logger.Info("Publishing enquiry events over local HTTP", slog.String("endpoint", cfg.LocalEndpoint))

		return NewLocalHTTPPublisher(cfg.LocalEndpoint, logger), nil
	}

	logger.Info("Publishing enquiry events to Google Pub/Sub",
		slog.String("project_id", cfg.ProjectID),
		slog.String("topic_id", cfg.TopicID),
	)

	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	return NewGooglePubSubPublisher(ctx, cfg.ProjectID, cfg.TopicID, logger)
}
