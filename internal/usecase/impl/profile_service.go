package impl

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	deliverycontext "pgbee/internal/delivery/context"
	"pgbee/internal/domain/entity"
	domainerrors "pgbee/internal/domain/errors"
	"pgbee/internal/domain/repository"
	"pgbee/internal/errors"
	"pgbee/internal/usecase"
)

type ownerService struct {
	ownerRepo repository.OwnerRepository
	logger    *slog.Logger
}

// NewOwnerService creates a new owner profile service instance
func NewOwnerService(ownerRepo repository.OwnerRepository, logger *slog.Logger) usecase.OwnerUsecase {
	return &ownerService{
		ownerRepo: ownerRepo,
		logger:    logger,
	}
}

func (s *ownerService) Create(ctx context.Context, userID uuid.UUID, input *usecase.OwnerInput) (*entity.Owner, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domainerrors.NewValidationError("name is required")
	}

	owner := &entity.Owner{
		UserID:      userID,
		Name:        input.Name,
		HostelName:  input.HostelName,
		Phone:       input.Phone,
		Address:     input.Address,
		Curfew:      input.Curfew,
		Description: input.Description,
		Distance:    input.Distance,
		Location:    input.Location,
		Rent:        input.Rent,
		Files:       input.Files,
		Bedrooms:    input.Bedrooms,
		Bathrooms:   input.Bathrooms,
	}

	if err := s.ownerRepo.Create(ctx, owner); err != nil {
		return nil, errors.Wrap(err, "failed to create owner")
	}

	deliverycontext.GetLoggerOrDefault(ctx, s.logger).Info("Owner profile created",
		slog.Any("ownerID", owner.ID), slog.Any("userID", userID))

	return owner, nil
}

func (s *ownerService) List(ctx context.Context) ([]*entity.Owner, error) {
	owners, err := s.ownerRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list owners")
	}

	return owners, nil
}

func (s *ownerService) Get(ctx context.Context, id uuid.UUID) (*entity.Owner, error) {
	owner, err := s.ownerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find owner")
	}

	return owner, nil
}

func (s *ownerService) Update(ctx context.Context, id uuid.UUID, patch *usecase.OwnerPatch) (*entity.Owner, error) {
	owner, err := s.ownerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find owner")
	}

	setIf(&owner.Name, patch.Name)
	setIf(&owner.HostelName, patch.HostelName)
	setIf(&owner.Phone, patch.Phone)
	setIf(&owner.Address, patch.Address)
	setIf(&owner.Curfew, patch.Curfew)
	setIf(&owner.Description, patch.Description)
	setIf(&owner.Distance, patch.Distance)
	setIf(&owner.Location, patch.Location)
	setIf(&owner.Rent, patch.Rent)
	setIf(&owner.Files, patch.Files)
	setIf(&owner.Bedrooms, patch.Bedrooms)
	setIf(&owner.Bathrooms, patch.Bathrooms)

	if strings.TrimSpace(owner.Name) == "" {
		return nil, domainerrors.NewValidationError("name is required")
	}

	if err := s.ownerRepo.Update(ctx, owner); err != nil {
		return nil, errors.Wrap(err, "failed to update owner")
	}

	return owner, nil
}

func (s *ownerService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.ownerRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete owner")
	}

	return nil
}

type studentService struct {
	studentRepo repository.StudentRepository
	logger      *slog.Logger
}

// NewStudentService creates a new student profile service instance
func NewStudentService(studentRepo repository.StudentRepository, logger *slog.Logger) usecase.StudentUsecase {
	return &studentService{
		studentRepo: studentRepo,
		logger:      logger,
	}
}

// Create attaches a student profile to userID. The store rejects a second
// profile for the same user with a duplicate error.
func (s *studentService) Create(ctx context.Context, userID uuid.UUID, input *usecase.StudentInput) (*entity.Student, error) {
	if strings.TrimSpace(input.UserName) == "" {
		return nil, domainerrors.NewValidationError("userName is required")
	}

	student := &entity.Student{
		UserID:           userID,
		UserName:         input.UserName,
		DOB:              input.DOB,
		Country:          input.Country,
		PermanentAddress: input.PermanentAddress,
		PresentAddress:   input.PresentAddress,
		City:             input.City,
		PostalCode:       input.PostalCode,
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, errors.Wrap(err, "failed to create student")
	}

	deliverycontext.GetLoggerOrDefault(ctx, s.logger).Info("Student profile created",
		slog.Any("studentID", student.ID), slog.Any("userID", userID))

	return student, nil
}

func (s *studentService) GetByUser(ctx context.Context, userID uuid.UUID) (*entity.Student, error) {
	student, err := s.studentRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find student by user")
	}

	return student, nil
}

func (s *studentService) Get(ctx context.Context, id uuid.UUID) (*entity.Student, error) {
	student, err := s.studentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find student")
	}

	return student, nil
}

func (s *studentService) Update(ctx context.Context, id uuid.UUID, patch *usecase.StudentPatch) (*entity.Student, error) {
	student, err := s.studentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find student")
	}

	setIf(&student.UserName, patch.UserName)
	setIf(&student.DOB, patch.DOB)
	setIf(&student.Country, patch.Country)
	setIf(&student.PermanentAddress, patch.PermanentAddress)
	setIf(&student.PresentAddress, patch.PresentAddress)
	setIf(&student.City, patch.City)
	setIf(&student.PostalCode, patch.PostalCode)

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, errors.Wrap(err, "failed to update student")
	}

	return student, nil
}

func (s *studentService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.studentRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete student")
	}

	return nil
}
