package service

import (
	"context"
	"time"
)

// EnquiryEvent is published when a student enquires about a hostel.
type EnquiryEvent struct {
	RequestID  string    `json:"request_id,omitempty"`
	EventType  string    `json:"event_type"`
	EnquiryID  string    `json:"enquiry_id"`
	HostelID   string    `json:"hostel_id"`
	HostelName string    `json:"hostel_name"`
	OwnerID    string    `json:"owner_id"`
	StudentID  string    `json:"student_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	PublishEnquiryEvent(ctx context.Context, event *EnquiryEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
