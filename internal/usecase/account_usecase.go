package usecase

import (
	"context"

	"saasadmin/internal/domain/entity"
)

// RegisterInput describes an account created by an administrator.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	RoleID    int64
	TenantID  *int64
}

// AccountUsecase manages accounts on behalf of an authenticated administrator.
// Targets outside the caller's tenant are reported as missing.
type AccountUsecase interface {
	Register(ctx context.Context, caller *entity.ResolvedIdentity, input *RegisterInput) (*entity.User, error)
	UpdateUser(ctx context.Context, caller *entity.ResolvedIdentity, userID int64, patch *entity.UserPatch) (*entity.User, error)
	DeleteUser(ctx context.Context, caller *entity.ResolvedIdentity, userID int64) error
}

// TenantUsecase manages tenants. Route permissions are enforced in the delivery layer.
type TenantUsecase interface {
	CreateTenant(ctx context.Context, draft *entity.TenantDraft) (*entity.Tenant, error)
	UpdateTenant(ctx context.Context, tenantID int64, draft *entity.TenantDraft) (*entity.Tenant, error)
	DeleteTenant(ctx context.Context, tenantID int64) error
}
