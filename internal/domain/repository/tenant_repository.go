package repository

import (
	"context"

	"saasadmin/internal/domain/entity"

	"github.com/pkg/errors"
)

var (
	// ErrTenantConflict is returned when another tenant already uses the slug or email.
	ErrTenantConflict = errors.New("tenant slug or email already taken")
	// ErrTenantInUse is returned when rows still reference a tenant being deleted.
	ErrTenantInUse = errors.New("tenant still referenced")
)

// TenantRepository writes tenants.
type TenantRepository interface {
	// CreateTenant inserts a tenant and returns the stored row.
	CreateTenant(ctx context.Context, draft *entity.TenantDraft) (*entity.Tenant, error)

	// UpdateTenant replaces every writable field of the tenant.
	UpdateTenant(ctx context.Context, id int64, draft *entity.TenantDraft) (*entity.Tenant, error)

	// DeleteTenant removes the tenant. Missing tenants yield ErrTenantNotFound.
	DeleteTenant(ctx context.Context, id int64) error

	// CountUsers returns the number of users belonging to the tenant.
	CountUsers(ctx context.Context, id int64) (int64, error)

	// SlugOrEmailTaken reports whether a tenant other than excludeID uses slug or email.
	// excludeID 0 checks every tenant.
	SlugOrEmailTaken(ctx context.Context, slug, email string, excludeID int64) (bool, error)
}
