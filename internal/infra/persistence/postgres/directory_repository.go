package postgres

import (
	"context"
	"time"

	"saasadmin/internal/domain/entity"
	domainerrors "saasadmin/internal/domain/errors"
	"saasadmin/internal/domain/repository"

	"gorm.io/gorm"
)

// tenantRow is the scan target for a tenant with its member count.
type tenantRow struct {
	ID               int64
	Name             string
	Slug             string
	Email            *string
	Status           string
	SubscriptionPlan *string
	UserCount        int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// directoryRepository implements the read-only domain.DirectoryRepository using GORM.
type directoryRepository struct {
	db *gorm.DB
}

// NewDirectoryRepository is the constructor for directoryRepository.
func NewDirectoryRepository(db *gorm.DB) repository.DirectoryRepository {
	return &directoryRepository{db: db}
}

// userFilterScope applies every predicate of filter to a query over "users AS u".
func userFilterScope(filter repository.UserFilter) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if filter.TenantID != nil {
			tx = tx.Where("u.tenant_id = ?", *filter.TenantID)
		}
		if filter.RoleID != nil {
			tx = tx.Where("u.role_id = ?", *filter.RoleID)
		}
		if filter.Status != "" {
			tx = tx.Where("u.status = ?", string(filter.Status))
		}
		if filter.Search != "" {
			pattern := "%" + filter.Search + "%"
			tx = tx.Where("(u.first_name ILIKE ? OR u.last_name ILIKE ? OR u.email ILIKE ?)", pattern, pattern, pattern)
		}

		return tx
	}
}

// ListUsers returns one page of users, newest first, and the total match count.
func (repo *directoryRepository) ListUsers(ctx context.Context, filter repository.UserFilter) ([]*entity.UserView, int64, error) {
	var total int64

	err := repo.db.WithContext(ctx).
		Table("users AS u").
		Scopes(userFilterScope(filter)).
		Count(&total).Error
	if err != nil {
		return nil, 0, domainerrors.NewDatabaseExecuteError(err, "failed to count users")
	}
	if total == 0 {
		return []*entity.UserView{}, 0, nil
	}

	var rows []userViewRow
	err = repo.db.WithContext(ctx).
		Table("users AS u").
		Select(userViewColumns).
		Joins("LEFT JOIN roles r ON r.id = u.role_id").
		Joins("LEFT JOIN tenants t ON t.id = u.tenant_id").
		Scopes(userFilterScope(filter)).
		Order("u.created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, domainerrors.NewDatabaseExecuteError(err, "failed to list users")
	}

	users := make([]*entity.UserView, 0, len(rows))
	for i := range rows {
		view := toUserViewDomain(&rows[i])
		users = append(users, &view)
	}

	return users, total, nil
}

// FindUserByID loads a single user with role and tenant names.
func (repo *directoryRepository) FindUserByID(ctx context.Context, id int64) (*entity.UserView, error) {
	var rows []userViewRow

	err := repo.db.WithContext(ctx).
		Table("users AS u").
		Select(userViewColumns).
		Joins("LEFT JOIN roles r ON r.id = u.role_id").
		Joins("LEFT JOIN tenants t ON t.id = u.tenant_id").
		Where("u.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find user")
	}
	if len(rows) == 0 {
		return nil, repository.ErrUserNotFound
	}

	view := toUserViewDomain(&rows[0])

	return &view, nil
}

// FindTenantByID loads a tenant together with its member count.
func (repo *directoryRepository) FindTenantByID(ctx context.Context, id int64) (*entity.Tenant, error) {
	return findTenant(ctx, repo.db, id)
}

// tenantFilterScope applies every predicate of filter to a query over "tenants AS t".
func tenantFilterScope(filter repository.TenantFilter) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if filter.ID != nil {
			tx = tx.Where("t.id = ?", *filter.ID)
		}
		if filter.Status != "" {
			tx = tx.Where("t.status = ?", filter.Status)
		}
		if filter.SubscriptionPlan != "" {
			tx = tx.Where("t.subscription_plan = ?", filter.SubscriptionPlan)
		}
		if filter.Search != "" {
			pattern := "%" + filter.Search + "%"
			tx = tx.Where("(t.name ILIKE ? OR t.email ILIKE ? OR t.slug ILIKE ?)", pattern, pattern, pattern)
		}

		return tx
	}
}

// ListTenants returns one page of tenants with member counts, newest first.
func (repo *directoryRepository) ListTenants(ctx context.Context, filter repository.TenantFilter) ([]*entity.Tenant, int64, error) {
	var total int64

	err := repo.db.WithContext(ctx).
		Table("tenants AS t").
		Scopes(tenantFilterScope(filter)).
		Count(&total).Error
	if err != nil {
		return nil, 0, domainerrors.NewDatabaseExecuteError(err, "failed to count tenants")
	}
	if total == 0 {
		return []*entity.Tenant{}, 0, nil
	}

	var rows []tenantRow
	err = repo.db.WithContext(ctx).
		Table("tenants AS t").
		Select(tenantColumns).
		Scopes(tenantFilterScope(filter)).
		Order("t.created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, domainerrors.NewDatabaseExecuteError(err, "failed to list tenants")
	}

	tenants := make([]*entity.Tenant, 0, len(rows))
	for i := range rows {
		tenants = append(tenants, toTenantDomain(&rows[i]))
	}

	return tenants, total, nil
}

// UserStats groups the users of tenantID (or everyone) by status and role.
func (repo *directoryRepository) UserStats(ctx context.Context, tenantID *int64, since time.Time) (*entity.UserStats, error) {
	scope := func(tx *gorm.DB) *gorm.DB {
		tx = tx.Table("users AS u")
		if tenantID != nil {
			tx = tx.Where("u.tenant_id = ?", *tenantID)
		}

		return tx
	}
	stats := &entity.UserStats{}

	err := repo.db.WithContext(ctx).Scopes(scope).
		Select("u.status AS key, COUNT(*) AS count").
		Group("u.status").
		Order("u.status").
		Scan(&stats.ByStatus).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to count users by status")
	}

	err = repo.db.WithContext(ctx).Scopes(scope).
		Select("COALESCE(r.name, '') AS key, COUNT(*) AS count").
		Joins("LEFT JOIN roles r ON r.id = u.role_id").
		Group("r.name").
		Order("count DESC").
		Scan(&stats.ByRole).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to count users by role")
	}

	err = repo.db.WithContext(ctx).Scopes(scope).
		Select("to_char(u.created_at, 'YYYY-MM-DD') AS date, COUNT(*) AS count").
		Where("u.created_at >= ?", since).
		Group("to_char(u.created_at, 'YYYY-MM-DD')").
		Order("date").
		Scan(&stats.RecentRegistrations).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to count recent users")
	}

	return stats, nil
}

// topTenantsLimit bounds the ranking in TenantStats.
const topTenantsLimit = 10

// TenantStats groups tenantID (or every tenant) by status and plan and ranks by size.
func (repo *directoryRepository) TenantStats(ctx context.Context, tenantID *int64, since time.Time) (*entity.TenantStats, error) {
	scope := func(tx *gorm.DB) *gorm.DB {
		tx = tx.Table("tenants AS t")
		if tenantID != nil {
			tx = tx.Where("t.id = ?", *tenantID)
		}

		return tx
	}
	stats := &entity.TenantStats{}

	err := repo.db.WithContext(ctx).Scopes(scope).
		Select("t.status AS key, COUNT(*) AS count").
		Group("t.status").
		Order("t.status").
		Scan(&stats.ByStatus).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to count tenants by status")
	}

	err = repo.db.WithContext(ctx).Scopes(scope).
		Select("COALESCE(t.subscription_plan, '') AS key, COUNT(*) AS count").
		Group("t.subscription_plan").
		Order("t.subscription_plan").
		Scan(&stats.ByPlan).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to count tenants by plan")
	}

	err = repo.db.WithContext(ctx).Scopes(scope).
		Select("to_char(t.created_at, 'YYYY-MM-DD') AS date, COUNT(*) AS count").
		Where("t.created_at >= ?", since).
		Group("to_char(t.created_at, 'YYYY-MM-DD')").
		Order("date").
		Scan(&stats.RecentRegistrations).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to count recent tenants")
	}

	err = repo.db.WithContext(ctx).Scopes(scope).
		Select("t.name, t.slug, COUNT(u.id) AS user_count").
		Joins("LEFT JOIN users u ON u.tenant_id = t.id").
		Group("t.id, t.name, t.slug").
		Order("user_count DESC").
		Limit(topTenantsLimit).
		Scan(&stats.TopTenants).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to rank tenants")
	}

	return stats, nil
}

// tenantColumns selects a tenant over "tenants AS t" with its member count.
const tenantColumns = `t.id, t.name, t.slug, t.email, t.status, t.subscription_plan, t.created_at, t.updated_at,
	(SELECT COUNT(*) FROM users WHERE tenant_id = t.id) AS user_count`

// findTenant loads one tenant with its member count through db, which may be a transaction.
func findTenant(ctx context.Context, db *gorm.DB, id int64) (*entity.Tenant, error) {
	var rows []tenantRow

	err := db.WithContext(ctx).
		Table("tenants AS t").
		Select(tenantColumns).
		Where("t.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find tenant")
	}
	if len(rows) == 0 {
		return nil, repository.ErrTenantNotFound
	}

	return toTenantDomain(&rows[0]), nil
}

func toTenantDomain(row *tenantRow) *entity.Tenant {
	return &entity.Tenant{
		ID:               row.ID,
		Name:             row.Name,
		Slug:             row.Slug,
		Email:            deref(row.Email),
		Status:           row.Status,
		SubscriptionPlan: deref(row.SubscriptionPlan),
		UserCount:        row.UserCount,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
}
