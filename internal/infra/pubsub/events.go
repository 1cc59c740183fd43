package pubsub

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"pgbee/internal/domain/service"
	"pgbee/internal/errors"
)

// Attribute keys set on every enquiry message. Subscriptions may filter on them.
const (
	AttrEventType = "event_type"
	AttrEnquiryID = "enquiry_id"
	AttrOwnerID   = "owner_id"
	AttrRequestID = "request_id"
)

// PushMessage is the envelope Pub/Sub uses when pushing to HTTP endpoints.
type PushMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// EnquiryEvent decodes the base64 JSON payload.
func (m *PushMessage) EnquiryEvent() (*service.EnquiryEvent, error) {
	raw, err := base64.StdEncoding.DecodeString(m.Message.Data)
	if err != nil {
		return nil, errors.Wrap(err, "decode message data")
	}

	var event service.EnquiryEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return nil, errors.Wrap(err, "parse enquiry event")
	}

	return &event, nil
}

// encodedEvent is an enquiry event ready for either transport.
type encodedEvent struct {
	data       []byte
	attributes map[string]string
}

func encodeEnquiryEvent(event *service.EnquiryEvent) (*encodedEvent, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, errors.Wrap(err, "encode enquiry event")
	}

	attributes := map[string]string{
		AttrEventType: event.EventType,
		AttrEnquiryID: event.EnquiryID,
		AttrOwnerID:   event.OwnerID,
	}
	if event.RequestID != "" {
		attributes[AttrRequestID] = event.RequestID
	}

	return &encodedEvent{data: data, attributes: attributes}, nil
}

// pushMessage wraps the event the way a push subscription would deliver it.
func (e *encodedEvent) pushMessage(subscription string, now time.Time) *PushMessage {
	msg := &PushMessage{Subscription: subscription}
	msg.Message.Data = base64.StdEncoding.EncodeToString(e.data)
	msg.Message.Attributes = e.attributes
	msg.Message.MessageID = uuid.NewString()
	msg.Message.PublishTime = now.UTC().Format(time.RFC3339)

	return msg
}
