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

type ownerRepository struct {
	db *gorm.DB
}

func NewOwnerRepository(db *gorm.DB) repository.OwnerRepository {
	return &ownerRepository{db: db}
}

func (repo *ownerRepository) Create(ctx context.Context, owner *entity.Owner) error {
	ownerM := fromOwnerDomain(owner)
	if err := repo.db.WithContext(ctx).Create(ownerM).Error; err != nil {
		return translateError(err, nil, "failed to create owner")
	}

	owner.ID = ownerM.ID
	owner.CreatedAt = ownerM.CreatedAt
	owner.UpdatedAt = ownerM.UpdatedAt

	return nil
}

func (repo *ownerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Owner, error) {
	var ownerM model.OwnerModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&ownerM).Error; err != nil {
		return nil, translateError(err, domainerrors.ErrOwnerNotFound, "failed to find owner")
	}

	return toOwnerDomain(&ownerM), nil
}

func (repo *ownerRepository) FindAll(ctx context.Context) ([]*entity.Owner, error) {
	var rows []model.OwnerModel
	if err := repo.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, translateError(err, nil, "failed to list owners")
	}

	owners := make([]*entity.Owner, 0, len(rows))
	for i := range rows {
		owners = append(owners, toOwnerDomain(&rows[i]))
	}

	return owners, nil
}

func (repo *ownerRepository) Update(ctx context.Context, owner *entity.Owner) error {
	ownerM := fromOwnerDomain(owner)

	result := repo.db.WithContext(ctx).Model(ownerM).
		Select("*").Omit("ID", "UserID", "CreatedAt", "User").
		Updates(ownerM)
	if result.Error != nil {
		return translateError(result.Error, nil, "failed to update owner")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrOwnerNotFound
	}

	owner.UpdatedAt = ownerM.UpdatedAt

	return nil
}

func (repo *ownerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.OwnerModel{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error, nil, "failed to delete owner")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrOwnerNotFound
	}

	return nil
}

type studentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) repository.StudentRepository {
	return &studentRepository{db: db}
}

func (repo *studentRepository) Create(ctx context.Context, student *entity.Student) error {
	studentM := fromStudentDomain(student)
	if err := repo.db.WithContext(ctx).Create(studentM).Error; err != nil {
		return translateError(err, nil, "failed to create student")
	}

	student.ID = studentM.ID
	student.CreatedAt = studentM.CreatedAt
	student.UpdatedAt = studentM.UpdatedAt

	return nil
}

func (repo *studentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Student, error) {
	var studentM model.StudentModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&studentM).Error; err != nil {
		return nil, translateError(err, domainerrors.ErrStudentNotFound, "failed to find student")
	}

	return toStudentDomain(&studentM), nil
}

func (repo *studentRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Student, error) {
	var studentM model.StudentModel
	if err := repo.db.WithContext(ctx).Where("user_id = ?", userID).First(&studentM).Error; err != nil {
		return nil, translateError(err, domainerrors.ErrStudentNotFound, "failed to find student by user")
	}

	return toStudentDomain(&studentM), nil
}

func (repo *studentRepository) Update(ctx context.Context, student *entity.Student) error {
	studentM := fromStudentDomain(student)

	result := repo.db.WithContext(ctx).Model(studentM).
		Select("*").Omit("ID", "UserID", "CreatedAt", "User").
		Updates(studentM)
	if result.Error != nil {
		return translateError(result.Error, nil, "failed to update student")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrStudentNotFound
	}

	student.UpdatedAt = studentM.UpdatedAt

	return nil
}

func (repo *studentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.StudentModel{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error, nil, "failed to delete student")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrStudentNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toOwnerDomain(data *model.OwnerModel) *entity.Owner {
	return &entity.Owner{
		ID:          data.ID,
		UserID:      data.UserID,
		Name:        data.Name,
		HostelName:  data.HostelName,
		Phone:       data.Phone,
		Address:     data.Address,
		Curfew:      data.Curfew,
		Description: data.Description,
		Distance:    data.Distance,
		Location:    data.Location,
		Rent:        data.Rent,
		Files:       data.Files,
		Bedrooms:    data.Bedrooms,
		Bathrooms:   data.Bathrooms,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromOwnerDomain(data *entity.Owner) *model.OwnerModel {
	return &model.OwnerModel{
		ID:          data.ID,
		UserID:      data.UserID,
		Name:        data.Name,
		HostelName:  data.HostelName,
		Phone:       data.Phone,
		Address:     data.Address,
		Curfew:      data.Curfew,
		Description: data.Description,
		Distance:    data.Distance,
		Location:    data.Location,
		Rent:        data.Rent,
		Files:       data.Files,
		Bedrooms:    data.Bedrooms,
		Bathrooms:   data.Bathrooms,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func toStudentDomain(data *model.StudentModel) *entity.Student {
	return &entity.Student{
		ID:               data.ID,
		UserID:           data.UserID,
		UserName:         data.UserName,
		DOB:              data.DOB,
		Country:          data.Country,
		PermanentAddress: data.PermanentAddress,
		PresentAddress:   data.PresentAddress,
		City:             data.City,
		PostalCode:       data.PostalCode,
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
}

func fromStudentDomain(data *entity.Student) *model.StudentModel {
	return &model.StudentModel{
		ID:               data.ID,
		UserID:           data.UserID,
		UserName:         data.UserName,
		DOB:              data.DOB,
		Country:          data.Country,
		PermanentAddress: data.PermanentAddress,
		PresentAddress:   data.PresentAddress,
		City:             data.City,
		PostalCode:       data.PostalCode,
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
}
