package postgres

import (
	"context"
	"strings"

	"saasadmin/internal/domain/entity"
	domainerrors "saasadmin/internal/domain/errors"
	"saasadmin/internal/domain/repository"
	"saasadmin/internal/domain/service"
	"saasadmin/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// tenantRepository implements the domain.TenantRepository interface using GORM.
type tenantRepository struct {
	db    *gorm.DB
	clock service.Clock
}

// NewTenantRepository is the constructor for tenantRepository.
func NewTenantRepository(db *gorm.DB, clock service.Clock) repository.TenantRepository {
	return &tenantRepository{
		db:    db,
		clock: clock,
	}
}

// CreateTenant inserts the tenant. Slug and email uniqueness violations map to ErrTenantConflict.
func (repo *tenantRepository) CreateTenant(ctx context.Context, draft *entity.TenantDraft) (*entity.Tenant, error) {
	now := repo.clock.Now()
	tenantM := model.TenantModel{
		Name:             draft.Name,
		Slug:             draft.Slug,
		Email:            strings.ToLower(strings.TrimSpace(draft.Email)),
		Status:           draft.Status,
		SubscriptionPlan: draft.SubscriptionPlan,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := repo.db.WithContext(ctx).Create(&tenantM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return nil, repository.ErrTenantConflict
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to create tenant")
	}

	return &entity.Tenant{
		ID:               tenantM.ID,
		Name:             tenantM.Name,
		Slug:             tenantM.Slug,
		Email:            tenantM.Email,
		Status:           tenantM.Status,
		SubscriptionPlan: tenantM.SubscriptionPlan,
		CreatedAt:        tenantM.CreatedAt,
		UpdatedAt:        tenantM.UpdatedAt,
	}, nil
}

// UpdateTenant overwrites every writable column and reloads the tenant.
func (repo *tenantRepository) UpdateTenant(ctx context.Context, id int64, draft *entity.TenantDraft) (*entity.Tenant, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.TenantModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":              draft.Name,
			"slug":              draft.Slug,
			"email":             strings.ToLower(strings.TrimSpace(draft.Email)),
			"status":            draft.Status,
			"subscription_plan": draft.SubscriptionPlan,
			"updated_at":        repo.clock.Now(),
		})
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return nil, repository.ErrTenantConflict
		}

		return nil, domainerrors.NewDatabaseExecuteError(result.Error, "failed to update tenant")
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrTenantNotFound
	}

	return findTenant(ctx, repo.db, id)
}

// DeleteTenant removes the tenant row. Rows still referencing it surface as ErrTenantInUse.
func (repo *tenantRepository) DeleteTenant(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.TenantModel{})
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return repository.ErrTenantInUse
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete tenant")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTenantNotFound
	}

	return nil
}

// CountUsers counts the members of a tenant.
func (repo *tenantRepository) CountUsers(ctx context.Context, id int64) (int64, error) {
	var count int64

	err := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("tenant_id = ?", id).
		Count(&count).Error
	if err != nil {
		return 0, domainerrors.NewDatabaseExecuteError(err, "failed to count tenant users")
	}

	return count, nil
}

// SlugOrEmailTaken looks for another tenant using slug or email.
func (repo *tenantRepository) SlugOrEmailTaken(ctx context.Context, slug, email string, excludeID int64) (bool, error) {
	var count int64

	tx := repo.db.WithContext(ctx).
		Model(&model.TenantModel{}).
		Where("(slug = ? OR LOWER(email) = ?)", slug, strings.ToLower(strings.TrimSpace(email)))
	if excludeID > 0 {
		tx = tx.Where("id <> ?", excludeID)
	}

	if err := tx.Count(&count).Error; err != nil {
		return false, domainerrors.NewDatabaseExecuteError(err, "failed to check tenant uniqueness")
	}

	return count > 0, nil
}
