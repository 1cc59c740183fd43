package impl

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	deliverycontext "pgbee/internal/delivery/context"
	"pgbee/internal/domain/entity"
	domainerrors "pgbee/internal/domain/errors"
	"pgbee/internal/domain/repository"
	"pgbee/internal/domain/service"
	"pgbee/internal/errors"
	"pgbee/internal/usecase"
)

const (
	defaultNearbyRadiusKm = 5.0
	maxNearbyRadiusKm     = 50.0
)

type hostelService struct {
	hostelRepo repository.HostelRepository
	qrService  service.QRCodeService
	logger     *slog.Logger
}

// NewHostelService creates a new hostel service instance
func NewHostelService(hostelRepo repository.HostelRepository, qrService service.QRCodeService, logger *slog.Logger) usecase.HostelUsecase {
	return &hostelService{
		hostelRepo: hostelRepo,
		qrService:  qrService,
		logger:     logger,
	}
}

func (s *hostelService) Create(ctx context.Context, userID uuid.UUID, input *usecase.HostelInput) (*entity.Hostel, error) {
	if err := validateCoordinates(input.Latitude, input.Longitude); err != nil {
		return nil, err
	}

	hostel := &entity.Hostel{
		UserID:      userID,
		HostelName:  input.HostelName,
		Phone:       input.Phone,
		Address:     input.Address,
		Curfew:      input.Curfew,
		Description: input.Description,
		Distance:    input.Distance,
		Location:    input.Location,
		Rent:        input.Rent,
		Gender:      input.Gender,
		Files:       input.Files,
		Bedrooms:    input.Bedrooms,
		Bathrooms:   input.Bathrooms,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
	}

	if err := s.hostelRepo.Create(ctx, hostel); err != nil {
		return nil, errors.Wrap(err, "failed to create hostel")
	}

	deliverycontext.GetLoggerOrDefault(ctx, s.logger).Info("Hostel created",
		slog.Any("hostelID", hostel.ID), slog.Any("userID", userID))

	return hostel, nil
}

// List returns every hostel, failing with ErrNoHostels when there are none.
func (s *hostelService) List(ctx context.Context) ([]*entity.Hostel, error) {
	hostels, err := s.hostelRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list hostels")
	}
	if len(hostels) == 0 {
		return nil, domainerrors.ErrNoHostels
	}

	return hostels, nil
}

func (s *hostelService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Hostel, error) {
	hostels, err := s.hostelRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list user hostels")
	}

	return hostels, nil
}

func (s *hostelService) Get(ctx context.Context, id uuid.UUID) (*entity.Hostel, error) {
	hostel, err := s.hostelRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find hostel")
	}

	return hostel, nil
}

func (s *hostelService) Update(ctx context.Context, userID, id uuid.UUID, patch *usecase.HostelPatch) (*entity.Hostel, error) {
	hostel, err := s.ownedHostel(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	applyHostelPatch(hostel, patch)
	if err := validateCoordinates(hostel.Latitude, hostel.Longitude); err != nil {
		return nil, err
	}

	if err := s.hostelRepo.Update(ctx, hostel); err != nil {
		return nil, errors.Wrap(err, "failed to update hostel")
	}

	return hostel, nil
}

func (s *hostelService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.ownedHostel(ctx, userID, id); err != nil {
		return err
	}

	if err := s.hostelRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete hostel")
	}

	deliverycontext.GetLoggerOrDefault(ctx, s.logger).Info("Hostel deleted", slog.Any("hostelID", id))

	return nil
}

// Nearby filters geolocated hostels to a radius around the query point,
// nearest first. The bounding box is checked before the haversine distance.
func (s *hostelService) Nearby(ctx context.Context, query *usecase.NearbyQuery) ([]*entity.NearbyHostel, error) {
	radiusKm := query.RadiusKm
	if radiusKm == 0 {
		radiusKm = defaultNearbyRadiusKm
	}
	if !isFinite(radiusKm) || radiusKm < 0 || radiusKm > maxNearbyRadiusKm {
		return nil, domainerrors.NewValidationError("radiusKm must be between 0 and 50")
	}
	lat, lng := query.Latitude, query.Longitude
	if err := validateCoordinates(&lat, &lng); err != nil {
		return nil, err
	}

	hostels, err := s.hostelRepo.FindWithCoordinates(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list geolocated hostels")
	}

	center := orb.Point{lng, lat}
	radiusM := radiusKm * 1000
	bound := geo.NewBoundAroundPoint(center, radiusM)

	nearby := make([]*entity.NearbyHostel, 0, len(hostels))
	for _, h := range hostels {
		if !h.HasCoordinates() {
			continue
		}

		p := orb.Point{*h.Longitude, *h.Latitude}
		if !bound.Contains(p) {
			continue
		}

		if d := geo.DistanceHaversine(center, p); d <= radiusM {
			nearby = append(nearby, &entity.NearbyHostel{Hostel: h, DistanceKm: d / 1000})
		}
	}

	sort.SliceStable(nearby, func(i, j int) bool {
		return nearby[i].DistanceKm < nearby[j].DistanceKm
	})

	return nearby, nil
}

// QRCode renders the share code of an existing hostel.
func (s *hostelService) QRCode(ctx context.Context, id uuid.UUID) ([]byte, error) {
	if _, err := s.hostelRepo.FindByID(ctx, id); err != nil {
		return nil, errors.Wrap(err, "failed to find hostel")
	}

	png, err := s.qrService.GenerateHostelQR(id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate hostel QR code")
	}

	return png, nil
}

func (s *hostelService) ownedHostel(ctx context.Context, userID, id uuid.UUID) (*entity.Hostel, error) {
	hostel, err := s.hostelRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find hostel")
	}
	if !hostel.OwnedBy(userID) {
		deliverycontext.GetLoggerOrDefault(ctx, s.logger).Warn("Hostel mutation by non-owner",
			slog.Any("hostelID", id), slog.Any("userID", userID))

		return nil, domainerrors.ErrHostelForbidden
	}

	return hostel, nil
}

func applyHostelPatch(h *entity.Hostel, p *usecase.HostelPatch) {
	setIf(&h.HostelName, p.HostelName)
	setIf(&h.Phone, p.Phone)
	setIf(&h.Address, p.Address)
	setIf(&h.Curfew, p.Curfew)
	setIf(&h.Description, p.Description)
	setIf(&h.Distance, p.Distance)
	setIf(&h.Location, p.Location)
	setIf(&h.Rent, p.Rent)
	setIf(&h.Gender, p.Gender)
	setIf(&h.Files, p.Files)
	setIf(&h.Bedrooms, p.Bedrooms)
	setIf(&h.Bathrooms, p.Bathrooms)
	if p.Latitude != nil {
		h.Latitude = p.Latitude
	}
	if p.Longitude != nil {
		h.Longitude = p.Longitude
	}
}

// setIf copies *src into dst when src is set.
func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func validateCoordinates(lat, lng *float64) error {
	if (lat == nil) != (lng == nil) {
		return domainerrors.NewValidationError("latitude and longitude must be given together")
	}
	if lat == nil {
		return nil
	}

	var violations []string
	if !isFinite(*lat) || *lat < -90 || *lat > 90 {
		violations = append(violations, "latitude must be between -90 and 90")
	}
	if !isFinite(*lng) || *lng < -180 || *lng > 180 {
		violations = append(violations, "longitude must be between -180 and 180")
	}
	if len(violations) > 0 {
		return domainerrors.NewValidationError(violations...)
	}

	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
