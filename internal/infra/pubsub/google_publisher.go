package pubsub

import (
	"context"
	"log/slog"

	"cloud.google.com/go/pubsub/v2"
	pubsubpb "cloud.google.com/go/pubsub/v2/apiv1/pubsubpb"

	"pgbee/internal/domain/service"
	"pgbee/internal/errors"
)

type googlePubSubPublisher struct {
	client    *pubsub.Client
	publisher *pubsub.Publisher
	topic     string
	logger    *slog.Logger
}

// NewGooglePubSubPublisher fails fast when the topic does not exist.
func NewGooglePubSubPublisher(ctx context.Context, projectID, topicID string, logger *slog.Logger) (service.EventPublisher, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, errors.Wrap(err, "create pubsub client")
	}

	topic := "projects/" + projectID + "/topics/" + topicID
	if _, err := client.TopicAdminClient.GetTopic(ctx, &pubsubpb.GetTopicRequest{Topic: topic}); err != nil {
		_ = client.Close()

		return nil, errors.Wrapf(err, "topic %s is not reachable", topic)
	}

	return &googlePubSubPublisher{
		client:    client,
		publisher: client.Publisher(topicID),
		topic:     topic,
		logger:    logger,
	}, nil
}

// PublishEnquiryEvent blocks until the server assigns a message ID.
func (p *googlePubSubPublisher) PublishEnquiryEvent(ctx context.Context, event *service.EnquiryEvent) error {
	encoded, err := encodeEnquiryEvent(event)
	if err != nil {
		return err
	}

	serverID, err := p.publisher.Publish(ctx, &pubsub.Message{
		Data:       encoded.data,
		Attributes: encoded.attributes,
	}).Get(ctx)
	if err != nil {
		return errors.Wrapf(err, "publish to %s", p.topic)
	}

	p.logger.DebugContext(ctx, "Enquiry event published",
		slog.String("topic", p.topic),
		slog.String("enquiry_id", event.EnquiryID),
		slog.String("message_id", serverID),
	)

	return nil
}

// Close flushes pending messages before closing the client.
func (p *googlePubSubPublisher) Close() error {
	p.publisher.Stop()

	return errors.WithStack(p.client.Close())
}
