package repository

import (
	"context"
	"time"

	"saasadmin/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrTenantNotFound is returned when no tenant row matches.
var ErrTenantNotFound = errors.New("tenant not found")

// UserFilter narrows a directory listing. A nil TenantID lists every tenant.
type UserFilter struct {
	TenantID *int64
	RoleID   *int64
	Status   entity.UserStatus
	Search   string
	Limit    int
	Offset   int
}

// TenantFilter narrows a tenant listing. A non-nil ID restricts it to that tenant.
type TenantFilter struct {
	ID               *int64
	Status           string
	SubscriptionPlan string
	Search           string
	Limit            int
	Offset           int
}

// DirectoryRepository serves the read-only user and tenant listings and overviews.
type DirectoryRepository interface {
	// ListUsers returns one page of users and the total count matching filter.
	ListUsers(ctx context.Context, filter UserFilter) ([]*entity.UserView, int64, error)

	// FindUserByID loads a single user with role and tenant names.
	FindUserByID(ctx context.Context, id int64) (*entity.UserView, error)

	// FindTenantByID loads a tenant with its user count.
	FindTenantByID(ctx context.Context, id int64) (*entity.Tenant, error)

	// ListTenants returns one page of tenants with member counts and the total matching filter.
	ListTenants(ctx context.Context, filter TenantFilter) ([]*entity.Tenant, int64, error)

	// UserStats groups users by status and role and counts registrations since the given instant.
	// A nil tenantID covers every tenant.
	UserStats(ctx context.Context, tenantID *int64, since time.Time) (*entity.UserStats, error)

	// TenantStats groups tenants by status and plan, counts registrations since the given
	// instant and ranks the largest tenants. A nil tenantID covers every tenant.
	TenantStats(ctx context.Context, tenantID *int64, since time.Time) (*entity.TenantStats, error)
}
