// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pgbee/internal/domain/entity"
	"pgbee/internal/domain/repository"
	"pgbee/internal/infra/persistence/model"
)

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user with its role.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("Role").
		Where("id = ?", id).
		First(&userM).Error
	if err != nil {
		return nil, translateError(err, repository.ErrUserNotFound, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a single user with its role by email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("Role").
		Where("email = ?", email).
		First(&userM).Error
	if err != nil {
		return nil, translateError(err, repository.ErrUserNotFound, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user. The unique index on email settles signup races.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Omit("Role").Create(userM).Error; err != nil {
		return translateError(err, nil, "failed to create user")
	}

	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// Update modifies every column of an existing user except its creation time.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	result := repo.db.WithContext(ctx).Model(userM).
		Select("*").Omit("ID", "CreatedAt", "Role").
		Updates(userM)
	if result.Error != nil {
		return translateError(result.Error, nil, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	user.UpdatedAt = userM.UpdatedAt

	return nil
}

func (repo *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.UserModel{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error, nil, "failed to delete user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// roleRepository implements repository.RoleRepository.
type roleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) repository.RoleRepository {
	return &roleRepository{db: db}
}

func (repo *roleRepository) FindByName(ctx context.Context, name entity.RoleName) (*entity.Role, error) {
	var roleM model.RoleModel
	if err := repo.db.WithContext(ctx).Where("name = ?", string(name)).First(&roleM).Error; err != nil {
		return nil, translateError(err, repository.ErrRoleNotFound, "failed to find role")
	}

	return toRoleDomain(&roleM), nil
}

// Create inserts the role, or adopts the existing row when a concurrent
// signup created the same name first. The conflict never aborts an
// enclosing transaction.
func (repo *roleRepository) Create(ctx context.Context, role *entity.Role) error {
	roleM := &model.RoleModel{ID: role.ID, Name: string(role.Name)}
	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(roleM).Error
	if err != nil {
		return translateError(err, nil, "failed to create role")
	}

	if roleM.ID == uuid.Nil {
		existing, err := repo.FindByName(ctx, role.Name)
		if err != nil {
			return err
		}
		roleM.ID = existing.ID
	}

	role.ID = roleM.ID

	return nil
}

// --- Mapper Functions ---

func toRoleDomain(data *model.RoleModel) *entity.Role {
	if data == nil {
		return nil
	}

	return &entity.Role{ID: data.ID, Name: entity.RoleName(data.Name)}
}

func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:           data.ID,
		Name:         data.Name,
		Email:        data.Email,
		PhoneNo:      data.PhoneNo,
		PasswordHash: data.Password,
		RoleID:       data.RoleID,
		Role:         toRoleDomain(data.Role),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:        data.ID,
		Name:      data.Name,
		Email:     data.Email,
		PhoneNo:   data.PhoneNo,
		Password:  data.PasswordHash,
		RoleID:    data.RoleID,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
