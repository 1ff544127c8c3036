package postgres

import (
	"context"
	"strings"
	"time"

	"saasadmin/internal/domain/entity"
	domainerrors "saasadmin/internal/domain/errors"
	"saasadmin/internal/domain/repository"
	"saasadmin/internal/domain/service"
	"saasadmin/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userViewColumns selects a user joined with the display names of its role and tenant.
const userViewColumns = `u.id, u.email, u.first_name, u.last_name, u.phone, u.status,
	u.role_id, u.tenant_id, u.last_login, u.created_at, u.updated_at,
	r.name AS role_name, t.name AS tenant_name, t.slug AS tenant_slug`

// userViewRow is the scan target for userViewColumns. Joined columns are nullable.
type userViewRow struct {
	ID          int64
	Email       string
	FirstName   *string
	LastName    *string
	Phone       *string
	Status      string
	RoleID      *int64
	TenantID    *int64
	LastLogin   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	RoleName    *string
	TenantName  *string
	TenantSlug  *string
	Permissions *string
}

// identityRepository implements the domain.IdentityRepository interface using GORM.
type identityRepository struct {
	db    *gorm.DB
	clock service.Clock
}

// NewIdentityRepository is the constructor for identityRepository.
func NewIdentityRepository(db *gorm.DB, clock service.Clock) repository.IdentityRepository {
	return &identityRepository{
		db:    db,
		clock: clock,
	}
}

// FindIdentityByID loads the user with role permissions and tenant names. Status is not filtered here.
func (repo *identityRepository) FindIdentityByID(ctx context.Context, id int64) (*repository.IdentityRecord, error) {
	var rows []userViewRow

	err := repo.db.WithContext(ctx).
		Table("users AS u").
		Select(userViewColumns+", r.permissions AS permissions").
		Joins("LEFT JOIN roles r ON r.id = u.role_id").
		Joins("LEFT JOIN tenants t ON t.id = u.tenant_id").
		Where("u.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to load identity")
	}
	if len(rows) == 0 {
		return nil, repository.ErrUserNotFound
	}

	return &repository.IdentityRecord{
		View:           toUserViewDomain(&rows[0]),
		RawPermissions: deref(rows[0].Permissions),
	}, nil
}

// FindCredentialByEmail loads login material. Emails compare case-insensitively.
func (repo *identityRepository) FindCredentialByEmail(ctx context.Context, email string) (*entity.Credential, error) {
	var userM model.UserModel

	err := repo.db.WithContext(ctx).
		Select("id", "email", "password_hash", "status").
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Take(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find credential by email")
	}

	return toCredentialDomain(&userM), nil
}

// FindCredentialByID loads login material for a user ID.
func (repo *identityRepository) FindCredentialByID(ctx context.Context, id int64) (*entity.Credential, error) {
	var userM model.UserModel

	err := repo.db.WithContext(ctx).
		Select("id", "email", "password_hash", "status").
		Where("id = ?", id).
		Take(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find credential by id")
	}

	return toCredentialDomain(&userM), nil
}

// UpdatePassword replaces the stored hash of a user.
func (repo *identityRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"password_hash": passwordHash,
			"updated_at":    repo.clock.Now(),
		})
	if result.Error != nil {
		if isNotNullConstraintViolation(result.Error) {
			return domainerrors.NewDatabaseExecuteError(result.Error, "password hash is required")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update password")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// TouchLastLogin stamps the current time on the user's last_login.
func (repo *identityRepository) TouchLastLogin(ctx context.Context, id int64) error {
	err := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		UpdateColumn("last_login", repo.clock.Now()).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update last login")
	}

	return nil
}

// --- Mapper Functions ---

func toUserViewDomain(row *userViewRow) entity.UserView {
	return entity.UserView{
		User: entity.User{
			ID:        row.ID,
			Email:     row.Email,
			FirstName: deref(row.FirstName),
			LastName:  deref(row.LastName),
			Phone:     deref(row.Phone),
			Status:    entity.UserStatus(row.Status),
			RoleID:    row.RoleID,
			TenantID:  row.TenantID,
			LastLogin: row.LastLogin,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		},
		RoleName:   deref(row.RoleName),
		TenantName: deref(row.TenantName),
		TenantSlug: deref(row.TenantSlug),
	}
}

func toCredentialDomain(data *model.UserModel) *entity.Credential {
	return &entity.Credential{
		UserID:       data.ID,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		Status:       entity.UserStatus(data.Status),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
