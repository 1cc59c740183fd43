// Package notification delivers push notifications through Firebase Cloud Messaging.
package notification

import (
	"context"
	"log/slog"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"pgbee/config"
	"pgbee/internal/domain/lifecycle"
	"pgbee/internal/domain/service"
	"pgbee/internal/errors"
)

type firebaseService struct {
	client *messaging.Client
}

// NewNotificationService falls back to a logging sender when Firebase
// credentials are not configured, which keeps local development working.
func NewNotificationService(cfg *config.Config, logger *slog.Logger) (service.NotificationService, error) {
	if cfg.Firebase == nil || cfg.Firebase.CredentialsPath == "" {
		logger.Warn("firebase not configured, notifications will only be logged")

		return &logSender{logger: logger}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	return NewFirebaseService(ctx, cfg.Firebase)
}

// NewFirebaseService creates a new Firebase notification service instance
func NewFirebaseService(ctx context.Context, cfg *config.FirebaseConfig) (service.NotificationService, error) {
	var appCfg *firebase.Config
	if cfg.ProjectID != "" {
		appCfg = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(ctx, appCfg, option.WithCredentialsFile(cfg.CredentialsPath))
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get messaging client")
	}

	return &firebaseService{client: client}, nil
}

// SendToTopic sends one message to every device subscribed to topic.
func (s *firebaseService) SendToTopic(ctx context.Context, topic, title, body string, data map[string]string) (string, error) {
	id, err := s.client.Send(ctx, topicMessage(topic, title, body, data))
	if err != nil {
		return "", errors.Wrapf(err, "failed to send notification to topic %s", topic)
	}

	return id, nil
}

// IsRetryable reports whether a send failure may succeed if attempted again.
func IsRetryable(err error) bool {
	return messaging.IsUnavailable(err) || messaging.IsInternal(err) || messaging.IsQuotaExceeded(err)
}

func topicMessage(topic, title, body string, data map[string]string) *messaging.Message {
	return &messaging.Message{
		Topic: topic,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
	}
}

type logSender struct {
	logger *slog.Logger
}

func (s *logSender) SendToTopic(ctx context.Context, topic, title, body string, data map[string]string) (string, error) {
	s.logger.InfoContext(ctx, "notification (not sent)",
		slog.String("topic", topic),
		slog.String("title", title),
		slog.String("body", body),
		slog.Any("data", data),
	)

	return "", nil
}
