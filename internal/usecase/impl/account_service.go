package impl

import (
	"context"
	"log/slog"

	deliverycontext "saasadmin/internal/delivery/context"
	"saasadmin/internal/domain/access"
	"saasadmin/internal/domain/entity"
	domainerrors "saasadmin/internal/domain/errors"
	"saasadmin/internal/domain/repository"
	"saasadmin/internal/domain/service"
	"saasadmin/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager     repository.TransactionManager
	accountRepo   repository.AccountRepository
	directoryRepo repository.DirectoryRepository
	hasher        service.PasswordHasher
	logger        *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	AccountRepo   repository.AccountRepository
	DirectoryRepo repository.DirectoryRepository
	Hasher        service.PasswordHasher
	Logger        *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager:     params.TxManager,
		accountRepo:   params.AccountRepo,
		directoryRepo: params.DirectoryRepo,
		hasher:        params.Hasher,
		logger:        params.Logger,
	}
}

func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.LoggerOr(ctx, srv.logger)
}

// Register creates an active account. Non-superusers may only create members of
// their own tenant and may not hand out the superuser role.
func (srv *accountService) Register(ctx context.Context, caller *entity.ResolvedIdentity, input *usecase.RegisterInput) (*entity.User, error) {
	tenantID := input.TenantID
	if tenantID == nil && !access.IsSuperuser(caller) && caller != nil {
		tenantID = caller.TenantID
	}
	if !access.IsSuperuser(caller) && !access.CanAccessTenant(caller, tenantID) {
		srv.log(ctx).Warn("Cross-tenant registration denied", slog.Any("tenantID", tenantID))

		return nil, errors.Wrap(domainerrors.ErrTenantAccessDenied, "register failed")
	}

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		return nil, errors.WithStack(err)
	}

	if err := srv.checkRole(ctx, caller, input.RoleID); err != nil {
		return nil, err
	}

	if tenantID != nil {
		if _, err := srv.directoryRepo.FindTenantByID(ctx, *tenantID); err != nil {
			if errors.Is(err, repository.ErrTenantNotFound) {
				return nil, errors.Wrap(domainerrors.ErrInvalidTenantID, "register failed")
			}

			return nil, errors.Wrap(err, "failed to find tenant")
		}
	}

	exists, err := srv.accountRepo.EmailExists(ctx, input.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check email")
	}
	if exists {
		return nil, errors.Wrap(domainerrors.ErrEmailAlreadyExists, "register failed")
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	user, err := srv.accountRepo.CreateUser(ctx, &entity.NewUser{
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
		Status:       entity.UserStatusActive,
		RoleID:       input.RoleID,
		TenantID:     tenantID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, errors.Wrap(domainerrors.ErrEmailAlreadyExists, "register failed")
		}

		return nil, errors.Wrap(err, "failed to create user")
	}

	srv.log(ctx).Info("User registered", slog.Int64("userID", user.ID), slog.Int64("roleID", input.RoleID))

	return user, nil
}

// UpdateUser applies a partial update. Moving an account out of the active
// state revokes its refresh tokens in the same transaction.
func (srv *accountService) UpdateUser(ctx context.Context, caller *entity.ResolvedIdentity, userID int64, patch *entity.UserPatch) (*entity.User, error) {
	if patch.IsEmpty() {
		return nil, errors.Wrap(domainerrors.ErrNoFieldsToUpdate, "update user failed")
	}

	if err := srv.findVisible(ctx, caller, userID); err != nil {
		return nil, err
	}

	if patch.RoleID != nil {
		if err := srv.checkRole(ctx, caller, *patch.RoleID); err != nil {
			return nil, err
		}
	}

	var updated *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		user, err := repoFactory.AccountRepo().UpdateUser(ctx, userID, patch)
		if err != nil {
			return err
		}
		updated = user

		if patch.Deactivates() {
			if err := repoFactory.RefreshTokenRepo().RevokeAll(ctx, userID); err != nil {
				return errors.Wrap(err, "failed to revoke refresh tokens")
			}
		}

		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "update user failed")
		case errors.Is(err, repository.ErrRoleNotFound):
			return nil, errors.Wrap(domainerrors.ErrInvalidRoleID, "update user failed")
		}
		srv.log(ctx).Error("Failed to execute update user transaction", slog.Int64("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute update user transaction")
	}

	srv.log(ctx).Info("User updated", slog.Int64("userID", userID), slog.Bool("deactivated", patch.Deactivates()))

	return updated, nil
}

// DeleteUser removes an account and its refresh tokens. Callers cannot delete themselves.
func (srv *accountService) DeleteUser(ctx context.Context, caller *entity.ResolvedIdentity, userID int64) error {
	if caller != nil && caller.ID == userID {
		return errors.Wrap(domainerrors.ErrCannotDeleteSelf, "delete user failed")
	}

	if err := srv.findVisible(ctx, caller, userID); err != nil {
		return err
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.RefreshTokenRepo().RevokeAll(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to revoke refresh tokens")
		}

		return repoFactory.AccountRepo().DeleteUser(ctx, userID)
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrUserNotFound, "delete user failed")
		}
		srv.log(ctx).Error("Failed to execute delete user transaction", slog.Int64("userID", userID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute delete user transaction")
	}

	srv.log(ctx).Info("User deleted", slog.Int64("userID", userID))

	return nil
}

// findVisible reports out-of-tenant users as missing.
func (srv *accountService) findVisible(ctx context.Context, caller *entity.ResolvedIdentity, userID int64) error {
	user, err := srv.directoryRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrUserNotFound, "user lookup failed")
		}

		return errors.Wrap(err, "failed to find user")
	}

	if !access.CanAccessTenant(caller, user.TenantID) {
		srv.log(ctx).Warn("Cross-tenant account change denied", slog.Int64("userID", userID))

		return errors.Wrap(domainerrors.ErrUserNotFound, "user lookup failed")
	}

	return nil
}

// checkRole requires the role to exist. Only superusers may grant the superuser role.
func (srv *accountService) checkRole(ctx context.Context, caller *entity.ResolvedIdentity, roleID int64) error {
	role, err := srv.accountRepo.FindRoleByID(ctx, roleID)
	if err != nil {
		if errors.Is(err, repository.ErrRoleNotFound) {
			return errors.Wrap(domainerrors.ErrInvalidRoleID, "role check failed")
		}

		return errors.Wrap(err, "failed to find role")
	}

	if role.Name == access.SuperuserRole && !access.IsSuperuser(caller) {
		return errors.Wrap(domainerrors.ErrPermissionDenied.WithDetails("assigning the "+access.SuperuserRole+" role"), "role check failed")
	}

	return nil
}
