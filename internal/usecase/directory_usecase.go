package usecase

import (
	"context"

	"saasadmin/internal/domain/entity"
)

// ListUsersInput describes one page of the user directory.
// TenantID is honoured only for superusers; everybody else is pinned to their own tenant.
type ListUsersInput struct {
	Page     int
	Limit    int
	Search   string
	Status   entity.UserStatus
	RoleID   *int64
	TenantID *int64
}

// Pagination reports the position of a page within the full result.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// ListUsersOutput is one page of users.
type ListUsersOutput struct {
	Users      []*entity.UserView
	Pagination Pagination
}

// ListTenantsInput describes one page of the tenant directory.
type ListTenantsInput struct {
	Page             int
	Limit            int
	Search           string
	Status           string
	SubscriptionPlan string
}

// ListTenantsOutput is one page of tenants.
type ListTenantsOutput struct {
	Tenants    []*entity.Tenant
	Pagination Pagination
}

// DirectoryUsecase serves tenant-scoped, read-only views of users and tenants.
// Non-superusers only ever see their own tenant.
type DirectoryUsecase interface {
	ListUsers(ctx context.Context, caller *entity.ResolvedIdentity, input *ListUsersInput) (*ListUsersOutput, error)
	GetUser(ctx context.Context, caller *entity.ResolvedIdentity, userID int64) (*entity.UserView, error)
	GetTenant(ctx context.Context, tenantID int64) (*entity.Tenant, error)
	ListTenantUsers(ctx context.Context, tenantID int64, input *ListUsersInput) (*ListUsersOutput, error)
	ListTenants(ctx context.Context, caller *entity.ResolvedIdentity, input *ListTenantsInput) (*ListTenantsOutput, error)
	UserStats(ctx context.Context, caller *entity.ResolvedIdentity) (*entity.UserStats, error)
	TenantStats(ctx context.Context, caller *entity.ResolvedIdentity) (*entity.TenantStats, error)
}

// TokenCleanupUsecase removes refresh tokens that can no longer be used.
type TokenCleanupUsecase interface {
	PurgeExpired(ctx context.Context) (int64, error)
}
