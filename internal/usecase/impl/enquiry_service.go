package impl

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"

	deliverycontext "pgbee/internal/delivery/context"
	"pgbee/internal/domain/constants"
	"pgbee/internal/domain/entity"
	"pgbee/internal/domain/repository"
	"pgbee/internal/domain/service"
	"pgbee/internal/errors"
	"pgbee/internal/usecase"
)

type enquiryService struct {
	enquiryRepo repository.EnquiryRepository
	hostelRepo  repository.HostelRepository
	studentRepo repository.StudentRepository
	publisher   service.EventPublisher
	now         func() time.Time
	logger      *slog.Logger
}

// EnquiryServiceParams holds dependencies for the enquiry service, injected by Fx.
type EnquiryServiceParams struct {
	fx.In

	EnquiryRepo repository.EnquiryRepository
	HostelRepo  repository.HostelRepository
	StudentRepo repository.StudentRepository
	Publisher   service.EventPublisher
	Logger      *slog.Logger
}

// NewEnquiryService creates a new enquiry service instance
func NewEnquiryService(params EnquiryServiceParams) usecase.EnquiryUsecase {
	return &enquiryService{
		enquiryRepo: params.EnquiryRepo,
		hostelRepo:  params.HostelRepo,
		studentRepo: params.StudentRepo,
		publisher:   params.Publisher,
		now:         time.Now,
		logger:      params.Logger,
	}
}

// Create records the enquiry, then tells the owner about it. Publishing is
// best effort: the enquiry stands even if the event is lost.
func (s *enquiryService) Create(ctx context.Context, userID, hostelID uuid.UUID) (*entity.Enquiry, error) {
	student, err := s.studentRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find student profile")
	}

	hostel, err := s.hostelRepo.FindByID(ctx, hostelID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find hostel")
	}

	enquiry := &entity.Enquiry{
		HostelID:  hostel.ID,
		StudentID: student.ID,
		Enquiry:   true,
	}
	if err := s.enquiryRepo.Create(ctx, enquiry); err != nil {
		return nil, errors.Wrap(err, "failed to create enquiry")
	}

	logger := deliverycontext.GetLoggerOrDefault(ctx, s.logger)

	event := &service.EnquiryEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		EventType:  constants.EventTypeEnquiryCreated,
		EnquiryID:  enquiry.ID.String(),
		HostelID:   hostel.ID.String(),
		HostelName: hostel.HostelName,
		OwnerID:    hostel.UserID.String(),
		StudentID:  student.ID.String(),
		CreatedAt:  s.now(),
	}
	if err := s.publisher.PublishEnquiryEvent(ctx, event); err != nil {
		logger.Warn("Failed to publish enquiry event",
			slog.Any("enquiryID", enquiry.ID), slog.String("error", err.Error()))
	}

	logger.Info("Enquiry created", slog.Any("enquiryID", enquiry.ID), slog.Any("hostelID", hostel.ID))

	return enquiry, nil
}

func (s *enquiryService) Get(ctx context.Context, id uuid.UUID) (*entity.Enquiry, error) {
	enquiry, err := s.enquiryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find enquiry")
	}

	return enquiry, nil
}

// ListMine lists the enquiries filed from the caller's student profile.
func (s *enquiryService) ListMine(ctx context.Context, userID uuid.UUID) ([]*entity.Enquiry, error) {
	student, err := s.studentRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find student profile")
	}

	return s.ListByStudent(ctx, student.ID)
}

func (s *enquiryService) ListByHostel(ctx context.Context, hostelID uuid.UUID) ([]*entity.Enquiry, error) {
	enquiries, err := s.enquiryRepo.FindByHostelID(ctx, hostelID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list hostel enquiries")
	}

	return enquiries, nil
}

func (s *enquiryService) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*entity.Enquiry, error) {
	enquiries, err := s.enquiryRepo.FindByStudentID(ctx, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list student enquiries")
	}

	return enquiries, nil
}

func (s *enquiryService) Update(ctx context.Context, id uuid.UUID, open bool) (*entity.Enquiry, error) {
	enquiry, err := s.enquiryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find enquiry")
	}

	enquiry.Enquiry = open
	if err := s.enquiryRepo.Update(ctx, enquiry); err != nil {
		return nil, errors.Wrap(err, "failed to update enquiry")
	}

	return enquiry, nil
}

func (s *enquiryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.enquiryRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete enquiry")
	}

	return nil
}
