package postgres

import (
	"context"
	"strings"

	"saasadmin/internal/domain/entity"
	domainerrors "saasadmin/internal/domain/errors"
	"saasadmin/internal/domain/repository"
	"saasadmin/internal/domain/service"
	"saasadmin/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// accountRepository implements the domain.AccountRepository interface using GORM.
type accountRepository struct {
	db    *gorm.DB
	clock service.Clock
}

// NewAccountRepository is the constructor for accountRepository.
func NewAccountRepository(db *gorm.DB, clock service.Clock) repository.AccountRepository {
	return &accountRepository{
		db:    db,
		clock: clock,
	}
}

// CreateUser inserts the account. Emails are stored lower-cased.
func (repo *accountRepository) CreateUser(ctx context.Context, user *entity.NewUser) (*entity.User, error) {
	now := repo.clock.Now()
	roleID := user.RoleID
	userM := model.UserModel{
		Email:        strings.ToLower(strings.TrimSpace(user.Email)),
		PasswordHash: user.PasswordHash,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Phone:        user.Phone,
		Status:       string(user.Status),
		RoleID:       &roleID,
		TenantID:     user.TenantID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := repo.db.WithContext(ctx).Create(&userM).Error; err != nil {
		switch {
		case isUniqueConstraintViolation(err):
			return nil, repository.ErrEmailTaken
		case isForeignKeyConstraintViolation(err):
			return nil, domainerrors.NewDatabaseExecuteError(err, "role or tenant reference is invalid")
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	return toUserDomain(&userM), nil
}

// UpdateUser writes the non-nil fields of patch and reloads the row.
func (repo *accountRepository) UpdateUser(ctx context.Context, id int64, patch *entity.UserPatch) (*entity.User, error) {
	updates := map[string]any{"updated_at": repo.clock.Now()}
	if patch.FirstName != nil {
		updates["first_name"] = *patch.FirstName
	}
	if patch.LastName != nil {
		updates["last_name"] = *patch.LastName
	}
	if patch.Phone != nil {
		updates["phone"] = *patch.Phone
	}
	if patch.RoleID != nil {
		updates["role_id"] = *patch.RoleID
	}
	if patch.Status != nil {
		updates["status"] = string(*patch.Status)
	}

	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return nil, repository.ErrRoleNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(result.Error, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrUserNotFound
	}

	var userM model.UserModel
	if err := repo.db.WithContext(ctx).Omit("password_hash").Where("id = ?", id).Take(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to reload user")
	}

	return toUserDomain(&userM), nil
}

// DeleteUser removes the account row.
func (repo *accountRepository) DeleteUser(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.UserModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// EmailExists compares emails case-insensitively.
func (repo *accountRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64

	err := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error
	if err != nil {
		return false, domainerrors.NewDatabaseExecuteError(err, "failed to check email")
	}

	return count > 0, nil
}

// FindRoleByID loads a role. A malformed grant payload yields an empty grant set.
func (repo *accountRepository) FindRoleByID(ctx context.Context, id int64) (*entity.Role, error) {
	var roleM model.RoleModel

	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&roleM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRoleNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find role")
	}

	perms, _ := entity.ParsePermissions(roleM.Permissions)

	return &entity.Role{
		ID:          roleM.ID,
		Name:        roleM.Name,
		Permissions: perms,
	}, nil
}

func toUserDomain(data *model.UserModel) *entity.User {
	return &entity.User{
		ID:        data.ID,
		Email:     data.Email,
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Phone:     data.Phone,
		Status:    entity.UserStatus(data.Status),
		RoleID:    data.RoleID,
		TenantID:  data.TenantID,
		LastLogin: data.LastLogin,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
