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

type amenityService struct {
	amenityRepo repository.AmenityRepository
	hostelRepo  repository.HostelRepository
	logger      *slog.Logger
}

// NewAmenityService creates a new amenity service instance
func NewAmenityService(
	amenityRepo repository.AmenityRepository,
	hostelRepo repository.HostelRepository,
	logger *slog.Logger,
) usecase.AmenityUsecase {
	return &amenityService{
		amenityRepo: amenityRepo,
		hostelRepo:  hostelRepo,
		logger:      logger,
	}
}

func (s *amenityService) Create(ctx context.Context, hostelID uuid.UUID, input *usecase.AmenitiesInput) (*entity.Amenities, error) {
	if err := ensureHostel(ctx, s.hostelRepo, hostelID); err != nil {
		return nil, err
	}
	if err := validateStudentsCount(input.StudentsCount); err != nil {
		return nil, err
	}

	amenities := amenitiesFromInput(hostelID, input)
	if err := s.amenityRepo.Create(ctx, amenities); err != nil {
		return nil, errors.Wrap(err, "failed to create amenities")
	}

	deliverycontext.GetLoggerOrDefault(ctx, s.logger).Info("Amenities created", slog.Any("hostelID", hostelID))

	return amenities, nil
}

func (s *amenityService) Get(ctx context.Context, hostelID uuid.UUID) (*entity.Amenities, error) {
	amenities, err := s.amenityRepo.FindByHostelID(ctx, hostelID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find amenities")
	}

	return amenities, nil
}

// Update replaces every amenity flag of the hostel.
func (s *amenityService) Update(ctx context.Context, hostelID uuid.UUID, input *usecase.AmenitiesInput) (*entity.Amenities, error) {
	if err := validateStudentsCount(input.StudentsCount); err != nil {
		return nil, err
	}

	current, err := s.amenityRepo.FindByHostelID(ctx, hostelID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find amenities")
	}

	amenities := amenitiesFromInput(hostelID, input)
	amenities.ID = current.ID
	amenities.CreatedAt = current.CreatedAt

	if err := s.amenityRepo.Update(ctx, amenities); err != nil {
		return nil, errors.Wrap(err, "failed to update amenities")
	}

	return amenities, nil
}

func (s *amenityService) Delete(ctx context.Context, hostelID uuid.UUID) error {
	if err := s.amenityRepo.DeleteByHostelID(ctx, hostelID); err != nil {
		return errors.Wrap(err, "failed to delete amenities")
	}

	return nil
}

func amenitiesFromInput(hostelID uuid.UUID, in *usecase.AmenitiesInput) *entity.Amenities {
	return &entity.Amenities{
		HostelID:      hostelID,
		Wifi:          in.Wifi,
		AC:            in.AC,
		Kitchen:       in.Kitchen,
		Parking:       in.Parking,
		Laundry:       in.Laundry,
		TV:            in.TV,
		FirstAid:      in.FirstAid,
		Workspace:     in.Workspace,
		Security:      in.Security,
		CurrentBill:   in.CurrentBill,
		WaterBill:     in.WaterBill,
		Food:          in.Food,
		Furniture:     in.Furniture,
		Bed:           in.Bed,
		Water:         in.Water,
		StudentsCount: in.StudentsCount,
	}
}

func validateStudentsCount(n int) error {
	if n < 0 {
		return domainerrors.NewValidationError("studentsCount must not be negative")
	}

	return nil
}

type rentService struct {
	rentRepo   repository.RentRepository
	hostelRepo repository.HostelRepository
	logger     *slog.Logger
}

// NewRentService creates a new rent service instance
func NewRentService(
	rentRepo repository.RentRepository,
	hostelRepo repository.HostelRepository,
	logger *slog.Logger,
) usecase.RentUsecase {
	return &rentService{
		rentRepo:   rentRepo,
		hostelRepo: hostelRepo,
		logger:     logger,
	}
}

func (s *rentService) Create(ctx context.Context, hostelID uuid.UUID, input *usecase.RentInput) (*entity.Rent, error) {
	if err := validateRentInput(input); err != nil {
		return nil, err
	}
	if err := ensureHostel(ctx, s.hostelRepo, hostelID); err != nil {
		return nil, err
	}

	rent := &entity.Rent{
		HostelID:    hostelID,
		SharingType: normalizeSharingType(input.SharingType),
		Rent:        input.Rent,
	}
	if err := s.rentRepo.Create(ctx, rent); err != nil {
		return nil, errors.Wrap(err, "failed to create rent")
	}

	deliverycontext.GetLoggerOrDefault(ctx, s.logger).Info("Rent created",
		slog.Any("hostelID", hostelID), slog.String("sharingType", rent.SharingType))

	return rent, nil
}

func (s *rentService) List(ctx context.Context, hostelID uuid.UUID) ([]*entity.Rent, error) {
	rents, err := s.rentRepo.FindByHostelID(ctx, hostelID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list rents")
	}
	if len(rents) == 0 {
		return nil, domainerrors.ErrRentNotFound
	}

	return rents, nil
}

func (s *rentService) Update(ctx context.Context, hostelID uuid.UUID, input *usecase.RentInput) (*entity.Rent, error) {
	if err := validateRentInput(input); err != nil {
		return nil, err
	}

	rent, err := s.rentRepo.FindByHostelAndSharingType(ctx, hostelID, normalizeSharingType(input.SharingType))
	if err != nil {
		return nil, errors.Wrap(err, "failed to find rent")
	}

	rent.Rent = input.Rent
	if err := s.rentRepo.Update(ctx, rent); err != nil {
		return nil, errors.Wrap(err, "failed to update rent")
	}

	return rent, nil
}

func (s *rentService) Delete(ctx context.Context, hostelID uuid.UUID, sharingType string) error {
	deleted, err := s.rentRepo.DeleteByHostelID(ctx, hostelID, normalizeSharingType(sharingType))
	if err != nil {
		return errors.Wrap(err, "failed to delete rent")
	}
	if deleted == 0 {
		return domainerrors.ErrRentNotFound
	}

	return nil
}

func validateRentInput(in *usecase.RentInput) error {
	var violations []string
	if strings.TrimSpace(in.SharingType) == "" {
		violations = append(violations, "sharingType is required")
	}
	if in.Rent < 0 {
		violations = append(violations, "rent must not be negative")
	}
	if len(violations) > 0 {
		return domainerrors.NewValidationError(violations...)
	}

	return nil
}

func normalizeSharingType(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func ensureHostel(ctx context.Context, hostelRepo repository.HostelRepository, hostelID uuid.UUID) error {
	if _, err := hostelRepo.FindByID(ctx, hostelID); err != nil {
		return errors.Wrap(err, "failed to find hostel")
	}

	return nil
}
