package impl

import (
	"context"
	"log/slog"

	deliverycontext "saasadmin/internal/delivery/context"
	"saasadmin/internal/domain/entity"
	domainerrors "saasadmin/internal/domain/errors"
	"saasadmin/internal/domain/repository"
	"saasadmin/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// tenantService implements the TenantUsecase interface.
type tenantService struct {
	txManager  repository.TransactionManager
	tenantRepo repository.TenantRepository
	logger     *slog.Logger
}

// TenantServiceParams holds dependencies for tenantService, injected by Fx.
type TenantServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	TenantRepo repository.TenantRepository
	Logger     *slog.Logger
}

// NewTenantService is the constructor for tenantService.
func NewTenantService(params TenantServiceParams) usecase.TenantUsecase {
	return &tenantService{
		txManager:  params.TxManager,
		tenantRepo: params.TenantRepo,
		logger:     params.Logger,
	}
}

func (srv *tenantService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.LoggerOr(ctx, srv.logger)
}

// CreateTenant rejects a slug or email already used by another tenant.
func (srv *tenantService) CreateTenant(ctx context.Context, draft *entity.TenantDraft) (*entity.Tenant, error) {
	filled := draft.WithDefaults()

	if err := srv.ensureUnique(ctx, &filled, 0); err != nil {
		return nil, err
	}

	tenant, err := srv.tenantRepo.CreateTenant(ctx, &filled)
	if err != nil {
		if errors.Is(err, repository.ErrTenantConflict) {
			return nil, errors.Wrap(domainerrors.ErrTenantConflict, "create tenant failed")
		}

		return nil, errors.Wrap(err, "failed to create tenant")
	}

	srv.log(ctx).Info("Tenant created", slog.Int64("tenantID", tenant.ID), slog.String("slug", tenant.Slug))

	return tenant, nil
}

// UpdateTenant replaces every writable field.
func (srv *tenantService) UpdateTenant(ctx context.Context, tenantID int64, draft *entity.TenantDraft) (*entity.Tenant, error) {
	filled := draft.WithDefaults()

	if err := srv.ensureUnique(ctx, &filled, tenantID); err != nil {
		return nil, err
	}

	tenant, err := srv.tenantRepo.UpdateTenant(ctx, tenantID, &filled)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrTenantNotFound):
			return nil, errors.Wrap(domainerrors.ErrTenantNotFound, "update tenant failed")
		case errors.Is(err, repository.ErrTenantConflict):
			return nil, errors.Wrap(domainerrors.ErrTenantConflict, "update tenant failed")
		}

		return nil, errors.Wrap(err, "failed to update tenant")
	}

	srv.log(ctx).Info("Tenant updated", slog.Int64("tenantID", tenantID))

	return tenant, nil
}

// DeleteTenant removes a tenant that no longer has members.
func (srv *tenantService) DeleteTenant(ctx context.Context, tenantID int64) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		tenantRepo := repoFactory.TenantRepo()

		count, err := tenantRepo.CountUsers(ctx, tenantID)
		if err != nil {
			return err
		}
		if count > 0 {
			return domainerrors.ErrTenantHasUsers
		}

		return tenantRepo.DeleteTenant(ctx, tenantID)
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrTenantNotFound):
			return errors.Wrap(domainerrors.ErrTenantNotFound, "delete tenant failed")
		case errors.Is(err, repository.ErrTenantInUse), errors.Is(err, domainerrors.ErrTenantHasUsers):
			return errors.Wrap(domainerrors.ErrTenantHasUsers, "delete tenant failed")
		}
		srv.log(ctx).Error("Failed to execute delete tenant transaction", slog.Int64("tenantID", tenantID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute delete tenant transaction")
	}

	srv.log(ctx).Info("Tenant deleted", slog.Int64("tenantID", tenantID))

	return nil
}

func (srv *tenantService) ensureUnique(ctx context.Context, draft *entity.TenantDraft, excludeID int64) error {
	taken, err := srv.tenantRepo.SlugOrEmailTaken(ctx, draft.Slug, draft.Email, excludeID)
	if err != nil {
		return errors.Wrap(err, "failed to check tenant uniqueness")
	}
	if taken {
		return errors.Wrap(domainerrors.ErrTenantConflict, "tenant uniqueness check failed")
	}

	return nil
}
