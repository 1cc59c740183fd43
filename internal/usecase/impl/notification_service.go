package impl

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	deliverycontext "pgbee/internal/delivery/context"
	"pgbee/internal/domain/constants"
	domainerrors "pgbee/internal/domain/errors"
	"pgbee/internal/domain/service"
	"pgbee/internal/errors"
	"pgbee/internal/usecase"
)

const enquiryNotificationTitle = "New enquiry"

type enquiryNotificationService struct {
	notificationSvc service.NotificationService
	logger          *slog.Logger
}

// NewEnquiryNotificationService creates the worker-side usecase that fans
// enquiry events out to the owner's devices.
func NewEnquiryNotificationService(notificationSvc service.NotificationService, logger *slog.Logger) usecase.EnquiryNotificationUsecase {
	return &enquiryNotificationService{
		notificationSvc: notificationSvc,
		logger:          logger,
	}
}

// NotifyOwner sends one message to the owner's topic and returns its message ID.
func (s *enquiryNotificationService) NotifyOwner(ctx context.Context, event *usecase.EnquiryEventInput) (string, error) {
	ownerID, err := uuid.Parse(event.OwnerID)
	if err != nil {
		return "", domainerrors.NewValidationError("ownerId must be a UUID")
	}
	if event.HostelID == "" {
		return "", domainerrors.NewValidationError("hostelId is required")
	}

	topic := constants.OwnerTopicPrefix + ownerID.String()
	body := "A student is interested in your hostel"
	if event.HostelName != "" {
		body = fmt.Sprintf("A student is interested in %s", event.HostelName)
	}

	data := map[string]string{
		"type":       constants.EventTypeEnquiryCreated,
		"enquiry_id": event.EnquiryID,
		"hostel_id":  event.HostelID,
		"student_id": event.StudentID,
	}

	messageID, err := s.notificationSvc.SendToTopic(ctx, topic, enquiryNotificationTitle, body, data)
	if err != nil {
		return "", errors.Wrap(err, "failed to notify owner")
	}

	deliverycontext.GetLoggerOrDefault(ctx, s.logger).Info("Owner notified",
		slog.String("topic", topic),
		slog.String("enquiryID", event.EnquiryID),
		slog.String("messageID", messageID),
	)

	return messageID, nil
}
