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

type enquiryRepository struct {
	db *gorm.DB
}

func NewEnquiryRepository(db *gorm.DB) repository.EnquiryRepository {
	return &enquiryRepository{db: db}
}

func (repo *enquiryRepository) Create(ctx context.Context, enquiry *entity.Enquiry) error {
	enquiryM := fromEnquiryDomain(enquiry)
	if err := repo.db.WithContext(ctx).Create(enquiryM).Error; err != nil {
		return translateError(err, nil, "failed to create enquiry")
	}

	enquiry.ID = enquiryM.ID
	enquiry.CreatedAt = enquiryM.CreatedAt
	enquiry.UpdatedAt = enquiryM.UpdatedAt

	return nil
}

func (repo *enquiryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Enquiry, error) {
	var enquiryM model.EnquiryModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&enquiryM).Error; err != nil {
		return nil, translateError(err, domainerrors.ErrEnquiryNotFound, "failed to find enquiry")
	}

	return toEnquiryDomain(&enquiryM), nil
}

func (repo *enquiryRepository) FindByHostelID(ctx context.Context, hostelID uuid.UUID) ([]*entity.Enquiry, error) {
	return repo.list(repo.db.WithContext(ctx).Where("hostel_id = ?", hostelID), "failed to list hostel enquiries")
}

func (repo *enquiryRepository) FindByStudentID(ctx context.Context, studentID uuid.UUID) ([]*entity.Enquiry, error) {
	return repo.list(repo.db.WithContext(ctx).Where("student_id = ?", studentID), "failed to list student enquiries")
}

func (repo *enquiryRepository) list(tx *gorm.DB, op string) ([]*entity.Enquiry, error) {
	var rows []model.EnquiryModel
	if err := tx.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, translateError(err, nil, op)
	}

	enquiries := make([]*entity.Enquiry, 0, len(rows))
	for i := range rows {
		enquiries = append(enquiries, toEnquiryDomain(&rows[i]))
	}

	return enquiries, nil
}

func (repo *enquiryRepository) Update(ctx context.Context, enquiry *entity.Enquiry) error {
	enquiryM := fromEnquiryDomain(enquiry)

	result := repo.db.WithContext(ctx).Model(enquiryM).
		Select("HostelID", "StudentID", "Enquiry", "UpdatedAt").
		Updates(enquiryM)
	if result.Error != nil {
		return translateError(result.Error, nil, "failed to update enquiry")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrEnquiryNotFound
	}

	enquiry.UpdatedAt = enquiryM.UpdatedAt

	return nil
}

func (repo *enquiryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.EnquiryModel{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error, nil, "failed to delete enquiry")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrEnquiryNotFound
	}

	return nil
}

func toEnquiryDomain(data *model.EnquiryModel) *entity.Enquiry {
	return &entity.Enquiry{
		ID:        data.ID,
		HostelID:  data.HostelID,
		StudentID: data.StudentID,
		Enquiry:   data.Enquiry,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func fromEnquiryDomain(data *entity.Enquiry) *model.EnquiryModel {
	return &model.EnquiryModel{
		ID:        data.ID,
		HostelID:  data.HostelID,
		StudentID: data.StudentID,
		Enquiry:   data.Enquiry,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
