package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pgbee/internal/domain/entity"
	domainerrors "pgbee/internal/domain/errors"
	"pgbee/internal/domain/repository"
	"pgbee/internal/infra/persistence/model"
)

type hostelRepository struct {
	db *gorm.DB
}

func NewHostelRepository(db *gorm.DB) repository.HostelRepository {
	return &hostelRepository{db: db}
}

func (repo *hostelRepository) Create(ctx context.Context, hostel *entity.Hostel) error {
	hostelM := fromHostelDomain(hostel)
	if err := repo.db.WithContext(ctx).Create(hostelM).Error; err != nil {
		return translateError(err, nil, "failed to create hostel")
	}

	hostel.ID = hostelM.ID
	hostel.CreatedAt = hostelM.CreatedAt
	hostel.UpdatedAt = hostelM.UpdatedAt

	return nil
}

func (repo *hostelRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Hostel, error) {
	var hostelM model.HostelModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&hostelM).Error; err != nil {
		return nil, translateError(err, domainerrors.ErrHostelNotFound, "failed to find hostel")
	}

	return toHostelDomain(&hostelM), nil
}

func (repo *hostelRepository) FindAll(ctx context.Context) ([]*entity.Hostel, error) {
	return repo.find(repo.db.WithContext(ctx), "failed to list hostels")
}

func (repo *hostelRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Hostel, error) {
	return repo.find(repo.db.WithContext(ctx).Where("user_id = ?", userID), "failed to list user hostels")
}

func (repo *hostelRepository) FindWithCoordinates(ctx context.Context) ([]*entity.Hostel, error) {
	return repo.find(
		repo.db.WithContext(ctx).Where("latitude IS NOT NULL AND longitude IS NOT NULL"),
		"failed to list geolocated hostels",
	)
}

func (repo *hostelRepository) find(tx *gorm.DB, op string) ([]*entity.Hostel, error) {
	var rows []model.HostelModel
	if err := tx.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, translateError(err, nil, op)
	}

	hostels := make([]*entity.Hostel, 0, len(rows))
	for i := range rows {
		hostels = append(hostels, toHostelDomain(&rows[i]))
	}

	return hostels, nil
}

func (repo *hostelRepository) Update(ctx context.Context, hostel *entity.Hostel) error {
	hostelM := fromHostelDomain(hostel)

	result := repo.db.WithContext(ctx).Model(hostelM).
		Select("*").Omit("ID", "UserID", "CreatedAt", "User").
		Updates(hostelM)
	if result.Error != nil {
		return translateError(result.Error, nil, "failed to update hostel")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrHostelNotFound
	}

	hostel.UpdatedAt = hostelM.UpdatedAt

	return nil
}

func (repo *hostelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.HostelModel{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error, nil, "failed to delete hostel")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrHostelNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toHostelDomain(data *model.HostelModel) *entity.Hostel {
	return &entity.Hostel{
		ID:          data.ID,
		UserID:      data.UserID,
		HostelName:  data.HostelName,
		Phone:       data.Phone,
		Address:     data.Address,
		Curfew:      data.Curfew,
		Description: data.Description,
		Distance:    data.Distance,
		Location:    data.Location,
		Rent:        data.Rent,
		Gender:      data.Gender,
		Files:       data.Files,
		Bedrooms:    data.Bedrooms,
		Bathrooms:   data.Bathrooms,
		Latitude:    data.Latitude,
		Longitude:   data.Longitude,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromHostelDomain(data *entity.Hostel) *model.HostelModel {
	return &model.HostelModel{
		ID:          data.ID,
		UserID:      data.UserID,
		HostelName:  data.HostelName,
		Phone:       data.Phone,
		Address:     data.Address,
		Curfew:      data.Curfew,
		Description: data.Description,
		Distance:    data.Distance,
		Location:    data.Location,
		Rent:        data.Rent,
		Gender:      data.Gender,
		Files:       data.Files,
		Bedrooms:    data.Bedrooms,
		Bathrooms:   data.Bathrooms,
		Latitude:    data.Latitude,
		Longitude:   data.Longitude,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
