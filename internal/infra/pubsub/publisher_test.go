package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"

	"pgbee/config"
	"pgbee/internal/domain/constants"
	"pgbee/internal/domain/service"
)

func testEvent() *service.EnquiryEvent {
	return &service.EnquiryEvent{
		RequestID:  "req-1",
		EventType:  constants.EventTypeEnquiryCreated,
		EnquiryID:  "enq-1",
		HostelID:   "hostel-1",
		HostelName: "Sunrise PG",
		OwnerID:    "owner-1",
		StudentID:  "student-1",
		CreatedAt:  time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestLocalHTTPPublisher_PostsPushEnvelope(t *testing.T) {
	var got PushMessage
	var requestID string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	publisher := NewLocalHTTPPublisher(srv.URL, slog.Default())
	require.NoError(t, publisher.PublishEnquiryEvent(context.Background(), testEvent()))

	assert.Equal(t, "req-1", requestID)
	assert.Equal(t, "enq-1", got.Message.Attributes[AttrEnquiryID])
	assert.Equal(t, constants.EventTypeEnquiryCreated, got.Message.Attributes[AttrEventType])
	assert.Equal(t, "owner-1", got.Message.Attributes[AttrOwnerID])
	assert.Equal(t, localSubscription, got.Subscription)
	assert.NotEmpty(t, got.Message.MessageID)

	decoded, err := got.EnquiryEvent()
	require.NoError(t, err)
	assert.Equal(t, testEvent(), decoded)
}

func TestPushMessage_EnquiryEvent(t *testing.T) {
	t.Run("bad base64", func(t *testing.T) {
		var msg PushMessage
		msg.Message.Data = "%%%"

		_, err := msg.EnquiryEvent()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode message data")
	})

	t.Run("bad json", func(t *testing.T) {
		var msg PushMessage
		msg.Message.Data = base64.StdEncoding.EncodeToString([]byte("{"))

		_, err := msg.EnquiryEvent()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse enquiry event")
	})
}

func TestEncodeEnquiryEvent_OmitsEmptyRequestID(t *testing.T) {
	event := testEvent()
	event.RequestID = ""

	encoded, err := encodeEnquiryEvent(event)
	require.NoError(t, err)

	_, ok := encoded.attributes[AttrRequestID]
	assert.False(t, ok)

	msg := encoded.pushMessage("sub", time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC))
	assert.Equal(t, "2025-05-01T10:00:00Z", msg.Message.PublishTime)
	assert.Equal(t, "sub", msg.Subscription)
}

func TestLocalHTTPPublisher_WorkerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	err := NewLocalHTTPPublisher(srv.URL, slog.Default()).PublishEnquiryEvent(context.Background(), testEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}

func TestNewEventPublisher(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.PubSubConfig
		wantErr string
		noop    bool
	}{
		{name: "unconfigured", cfg: nil, noop: true},
		{name: "empty provider", cfg: &config.PubSubConfig{}, noop: true},
		{name: "local", cfg: &config.PubSubConfig{Provider: "local", LocalEndpoint: "http://localhost:8081/push"}},
		{name: "local without endpoint", cfg: &config.PubSubConfig{Provider: "local"}, wantErr: "pubsub.localEndpoint is required"},
		{name: "google without project", cfg: &config.PubSubConfig{Provider: "google"}, wantErr: "pubsub.projectId is required"},
		{name: "google without topic", cfg: &config.PubSubConfig{Provider: "google", ProjectID: "p"}, wantErr: "pubsub.topicId is required"},
		{name: "unknown", cfg: &config.PubSubConfig{Provider: "kafka"}, wantErr: "unknown pubsub provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lc := fxtest.NewLifecycle(t)
			publisher, err := NewEventPublisher(PublisherParams{
				Lc:     lc,
				Config: &config.Config{PubSub: tt.cfg},
				Logger: slog.Default(),
			})

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}
			require.NoError(t, err)

			_, isNoop := publisher.(*noopPublisher)
			assert.Equal(t, tt.noop, isNoop)
			if isNoop {
				require.NoError(t, publisher.PublishEnquiryEvent(context.Background(), testEvent()))
			}
		})
	}
}
