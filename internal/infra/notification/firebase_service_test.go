package notification

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pgbee/config"
)

func TestNewNotificationService_LogsWithoutCredentials(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	svc, err := NewNotificationService(&config.Config{}, logger)
	require.NoError(t, err)

	id, err := svc.SendToTopic(context.Background(), "owner-1", "New enquiry", "Someone asked about Sunrise PG", map[string]string{"enquiry_id": "e1"})
	require.NoError(t, err)
	assert.Empty(t, id)
	assert.Contains(t, buf.String(), "topic=owner-1")
}

func TestNewNotificationService_BadCredentials(t *testing.T) {
	_, err := NewNotificationService(&config.Config{
		Firebase: &config.FirebaseConfig{CredentialsPath: "/nonexistent/creds.json"},
	}, slog.Default())
	assert.Error(t, err)
}

func TestTopicMessage(t *testing.T) {
	msg := topicMessage("owner-42", "t", "b", map[string]string{"k": "v"})

	assert.Equal(t, "owner-42", msg.Topic)
	assert.Empty(t, msg.Token)
	assert.Equal(t, "t", msg.Notification.Title)
	assert.Equal(t, "b", msg.Notification.Body)
	assert.Equal(t, "v", msg.Data["k"])
	assert.Equal(t, "high", msg.Android.Priority)
}
