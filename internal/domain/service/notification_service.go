package service

import "context"

// NotificationService sends push notifications.
type NotificationService interface {
	// SendToTopic notifies every device subscribed to topic and returns the provider message ID.
	SendToTopic(ctx context.Context, topic, title, body string, data map[string]string) (string, error)
}
