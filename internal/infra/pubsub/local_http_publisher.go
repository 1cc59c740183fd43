package pubsub

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	deliverycontext "pgbee/internal/delivery/context"
	"pgbee/internal/domain/service"
	"pgbee/internal/errors"
)

const (
	localSubscription  = "projects/local/subscriptions/enquiry-notifier"
	localPublishTimeout = 30 * time.Second
)

// localHTTPPublisher imitates a push subscription by POSTing each event to
// the notifier worker. Development only.
type localHTTPPublisher struct {
	endpoint   string
	httpClient *http.Client
	now        func() time.Time
	logger     *slog.Logger
}

// NewLocalHTTPPublisher posts to endpoint, normally the notifier's /push.
func NewLocalHTTPPublisher(endpoint string, logger *slog.Logger) service.EventPublisher {
	return &localHTTPPublisher{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: localPublishTimeout},
		now:        time.Now,
		logger:     logger,
	}
}

func (p *localHTTPPublisher) PublishEnquiryEvent(ctx context.Context, event *service.EnquiryEvent) error {
	encoded, err := encodeEnquiryEvent(event)
	if err != nil {
		return err
	}

	body, err := json.Marshal(encoded.pushMessage(localSubscription, p.now()))
	if err != nil {
		return errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if event.RequestID != "" {
		req.Header.Set(deliverycontext.HeaderXRequestID, event.RequestID)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "post to notifier")
	}
	defer resp.Body.Close()

	// A push endpoint acknowledges with any 2xx.
	if resp.StatusCode/100 != 2 {
		return errors.Errorf("notifier returned status %d", resp.StatusCode)
	}

	p.logger.DebugContext(ctx, "Enquiry event pushed to notifier",
		slog.String("endpoint", p.endpoint),
		slog.String("enquiry_id", event.EnquiryID),
		slog.Int("status", resp.StatusCode),
	)

	return nil
}

func (p *localHTTPPublisher) Close() error {
	p.httpClient.CloseIdleConnections()

	return nil
}
