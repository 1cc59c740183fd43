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

type amenityRepository struct {
	db *gorm.DB
}

func NewAmenityRepository(db *gorm.DB) repository.AmenityRepository {
	return &amenityRepository{db: db}
}

// Create inserts the amenities row. A second row for the same hostel is
// rejected by the unique index on hostel_id.
func (repo *amenityRepository) Create(ctx context.Context, amenities *entity.Amenities) error {
	amenityM := fromAmenityDomain(amenities)
	if err := repo.db.WithContext(ctx).Create(amenityM).Error; err != nil {
		return translateError(err, nil, "failed to create amenities")
	}

	amenities.ID = amenityM.ID
	amenities.CreatedAt = amenityM.CreatedAt
	amenities.UpdatedAt = amenityM.UpdatedAt

	return nil
}

func (repo *amenityRepository) FindByHostelID(ctx context.Context, hostelID uuid.UUID) (*entity.Amenities, error) {
	var amenityM model.AmenityModel
	if err := repo.db.WithContext(ctx).Where("hostel_id = ?", hostelID).First(&amenityM).Error; err != nil {
		return nil, translateError(err, domainerrors.ErrAmenityNotFound, "failed to find amenities")
	}

	return toAmenityDomain(&amenityM), nil
}

func (repo *amenityRepository) Update(ctx context.Context, amenities *entity.Amenities) error {
	amenityM := fromAmenityDomain(amenities)

	result := repo.db.WithContext(ctx).Model(&model.AmenityModel{}).
		Where("hostel_id = ?", amenities.HostelID).
		Select("*").Omit("ID", "HostelID", "CreatedAt", "Hostel").
		Updates(amenityM)
	if result.Error != nil {
		return translateError(result.Error, nil, "failed to update amenities")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrAmenityNotFound
	}

	return nil
}

func (repo *amenityRepository) DeleteByHostelID(ctx context.Context, hostelID uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.AmenityModel{}, "hostel_id = ?", hostelID)
	if result.Error != nil {
		return translateError(result.Error, nil, "failed to delete amenities")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrAmenityNotFound
	}

	return nil
}

type rentRepository struct {
	db *gorm.DB
}

func NewRentRepository(db *gorm.DB) repository.RentRepository {
	return &rentRepository{db: db}
}

func (repo *rentRepository) Create(ctx context.Context, rent *entity.Rent) error {
	rentM := fromRentDomain(rent)
	if err := repo.db.WithContext(ctx).Create(rentM).Error; err != nil {
		return translateError(err, nil, "failed to create rent")
	}

	rent.ID = rentM.ID
	rent.CreatedAt = rentM.CreatedAt
	rent.UpdatedAt = rentM.UpdatedAt

	return nil
}

func (repo *rentRepository) FindByHostelID(ctx context.Context, hostelID uuid.UUID) ([]*entity.Rent, error) {
	var rows []model.RentModel
	err := repo.db.WithContext(ctx).
		Where("hostel_id = ?", hostelID).
		Order("sharing_type ASC").
		Find(&rows).Error
	if err != nil {
		return nil, translateError(err, nil, "failed to list rents")
	}

	rents := make([]*entity.Rent, 0, len(rows))
	for i := range rows {
		rents = append(rents, toRentDomain(&rows[i]))
	}

	return rents, nil
}

func (repo *rentRepository) FindByHostelAndSharingType(ctx context.Context, hostelID uuid.UUID, sharingType string) (*entity.Rent, error) {
	var rentM model.RentModel
	err := repo.db.WithContext(ctx).
		Where("hostel_id = ? AND sharing_type = ?", hostelID, sharingType).
		First(&rentM).Error
	if err != nil {
		return nil, translateError(err, domainerrors.ErrRentNotFound, "failed to find rent")
	}

	return toRentDomain(&rentM), nil
}

// Update changes the amount of the (hostel, sharing type) tier.
func (repo *rentRepository) Update(ctx context.Context, rent *entity.Rent) error {
	result := repo.db.WithContext(ctx).Model(&model.RentModel{}).
		Where("hostel_id = ? AND sharing_type = ?", rent.HostelID, rent.SharingType).
		Updates(map[string]any{"rent": rent.Rent})
	if result.Error != nil {
		return translateError(result.Error, nil, "failed to update rent")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrRentNotFound
	}

	return nil
}

func (repo *rentRepository) DeleteByHostelID(ctx context.Context, hostelID uuid.UUID, sharingType string) (int64, error) {
	tx := repo.db.WithContext(ctx).Where("hostel_id = ?", hostelID)
	if sharingType != "" {
		tx = tx.Where("sharing_type = ?", sharingType)
	}

	result := tx.Delete(&model.RentModel{})
	if result.Error != nil {
		return 0, translateError(result.Error, nil, "failed to delete rents")
	}

	return result.RowsAffected, nil
}

// --- Mapper Functions ---

func toAmenityDomain(data *model.AmenityModel) *entity.Amenities {
	return &entity.Amenities{
		ID:            data.ID,
		HostelID:      data.HostelID,
		Wifi:          data.Wifi,
		AC:            data.AC,
		Kitchen:       data.Kitchen,
		Parking:       data.Parking,
		Laundry:       data.Laundry,
		TV:            data.TV,
		FirstAid:      data.FirstAid,
		Workspace:     data.Workspace,
		Security:      data.Security,
		CurrentBill:   data.CurrentBill,
		WaterBill:     data.WaterBill,
		Food:          data.Food,
		Furniture:     data.Furniture,
		Bed:           data.Bed,
		Water:         data.Water,
		StudentsCount: data.StudentsCount,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

func fromAmenityDomain(data *entity.Amenities) *model.AmenityModel {
	return &model.AmenityModel{
		ID:            data.ID,
		HostelID:      data.HostelID,
		Wifi:          data.Wifi,
		AC:            data.AC,
		Kitchen:       data.Kitchen,
		Parking:       data.Parking,
		Laundry:       data.Laundry,
		TV:            data.TV,
		FirstAid:      data.FirstAid,
		Workspace:     data.Workspace,
		Security:      data.Security,
		CurrentBill:   data.CurrentBill,
		WaterBill:     data.WaterBill,
		Food:          data.Food,
		Furniture:     data.Furniture,
		Bed:           data.Bed,
		Water:         data.Water,
		StudentsCount: data.StudentsCount,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

func toRentDomain(data *model.RentModel) *entity.Rent {
	return &entity.Rent{
		ID:          data.ID,
		HostelID:    data.HostelID,
		SharingType: data.SharingType,
		Rent:        data.Rent,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromRentDomain(data *entity.Rent) *model.RentModel {
	return &model.RentModel{
		ID:          data.ID,
		HostelID:    data.HostelID,
		SharingType: data.SharingType,
		Rent:        data.Rent,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
