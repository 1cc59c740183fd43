package usecase

import (
	"context"

	"github.com/google/uuid"

	"pgbee/internal/domain/entity"
)

// EnquiryUsecase records student enquiries and notifies the hostel owner.
type EnquiryUsecase interface {
	// Create files an enquiry from the caller's student profile and publishes
	// an enquiry event for the owner.
	Create(ctx context.Context, userID, hostelID uuid.UUID) (*entity.Enquiry, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Enquiry, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]*entity.Enquiry, error)
	ListByHostel(ctx context.Context, hostelID uuid.UUID) ([]*entity.Enquiry, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*entity.Enquiry, error)
	Update(ctx context.Context, id uuid.UUID, open bool) (*entity.Enquiry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// EnquiryNotificationUsecase turns enquiry events into owner push notifications.
type EnquiryNotificationUsecase interface {
	NotifyOwner(ctx context.Context, event *EnquiryEventInput) (string, error)
}

// EnquiryEventInput is the decoded payload of an enquiry event.
type EnquiryEventInput struct {
	EnquiryID  string
	HostelID   string
	HostelName string
	OwnerID    string
	StudentID  string
}
