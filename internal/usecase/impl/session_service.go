package impl

import (
	"context"
	"log/slog"
	"sync"

	deliverycontext "saasadmin/internal/delivery/context"
	"saasadmin/internal/domain/entity"
	domainerrors "saasadmin/internal/domain/errors"
	"saasadmin/internal/domain/repository"
	"saasadmin/internal/domain/service"
	"saasadmin/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// unknownAccountPassword seeds the hash compared against when no account matches an email.
const unknownAccountPassword = "unknown-account-placeholder"

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	txManager        repository.TransactionManager
	identityRepo     repository.IdentityRepository
	refreshTokenRepo repository.RefreshTokenRepository
	resolver         usecase.IdentityResolver
	hasher           service.PasswordHasher
	codec            service.CredentialCodec
	metrics          service.AuthMetrics
	logger           *slog.Logger

	dummyHashOnce sync.Once
	dummyHash     string
}

// SessionServiceParams holds dependencies for sessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	IdentityRepo     repository.IdentityRepository
	RefreshTokenRepo repository.RefreshTokenRepository
	Resolver         usecase.IdentityResolver
	Hasher           service.PasswordHasher
	Codec            service.CredentialCodec
	Metrics          service.AuthMetrics
	Logger           *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		txManager:        params.TxManager,
		identityRepo:     params.IdentityRepo,
		refreshTokenRepo: params.RefreshTokenRepo,
		resolver:         params.Resolver,
		hasher:           params.Hasher,
		codec:            params.Codec,
		metrics:          params.Metrics,
		logger:           params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.LoggerOr(ctx, srv.logger)
}

// Login verifies the password first and the account status second, so an
// inactive account is only revealed to a caller who knows its password.
func (srv *sessionService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Debug("Starting user login", slog.String("email", input.Email))

	cred, err := srv.identityRepo.FindCredentialByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.burnPasswordCheck(input.Password)
			srv.metrics.ObserveLogin(service.OutcomeInvalidCredential)
			srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", domainerrors.ErrInvalidCredentials))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}
		srv.metrics.ObserveLogin(service.OutcomeError)

		return nil, errors.Wrap(err, "failed to load login credential")
	}

	if !srv.hasher.Check(input.Password, cred.PasswordHash) {
		srv.metrics.ObserveLogin(service.OutcomeInvalidCredential)
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	if !cred.Status.IsActive() {
		srv.metrics.ObserveLogin(service.OutcomeInactive)
		srv.log(ctx).Warn("Login rejected for inactive account", slog.Int64("userID", cred.UserID), slog.String("status", string(cred.Status)))

		return nil, errors.Wrap(domainerrors.ErrAccountNotActive, "login failed")
	}

	identity, err := srv.resolver.Resolve(ctx, cred.UserID)
	if err != nil {
		if errors.Is(err, usecase.ErrIdentityNotFound) {
			srv.metrics.ObserveLogin(service.OutcomeInactive)

			return nil, errors.Wrap(domainerrors.ErrAccountNotActive, "login failed")
		}
		srv.metrics.ObserveLogin(service.OutcomeError)

		return nil, errors.Wrap(err, "failed to resolve login identity")
	}

	accessToken, err := srv.codec.IssueAccess(identity.ID)
	if err != nil {
		srv.metrics.ObserveLogin(service.OutcomeError)

		return nil, errors.Wrap(err, "failed to issue access token")
	}

	refreshToken, expiresAt, err := srv.codec.IssueRefresh(identity.ID)
	if err != nil {
		srv.metrics.ObserveLogin(service.OutcomeError)

		return nil, errors.Wrap(err, "failed to issue refresh token")
	}

	if err := srv.refreshTokenRepo.Put(ctx, identity.ID, refreshToken, expiresAt); err != nil {
		srv.metrics.ObserveLogin(service.OutcomeError)
		srv.log(ctx).Error("Failed to store refresh token", slog.Int64("userID", identity.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to store refresh token during login")
	}

	// last_login is informational; a failed stamp must not fail the login.
	if err := srv.identityRepo.TouchLastLogin(ctx, identity.ID); err != nil {
		srv.log(ctx).Warn("Failed to update last login", slog.Int64("userID", identity.ID), slog.Any("error", err))
	}

	srv.metrics.ObserveLogin(service.OutcomeSuccess)
	srv.log(ctx).Debug("User logged in successfully", slog.Int64("userID", identity.ID))

	return &usecase.LoginOutput{
		User:                  identity,
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
	}, nil
}

// burnPasswordCheck runs one bcrypt comparison against a throwaway hash, so an
// unknown email takes as long as a wrong password.
func (srv *sessionService) burnPasswordCheck(password string) {
	srv.dummyHashOnce.Do(func() {
		hash, err := srv.hasher.Hash(unknownAccountPassword)
		if err != nil {
			srv.logger.Warn("Failed to prepare placeholder password hash", slog.Any("error", err))

			return
		}
		srv.dummyHash = hash
	})

	srv.hasher.Check(password, srv.dummyHash)
}

// Refresh issues a new access token. The presented refresh token stays valid.
func (srv *sessionService) Refresh(ctx context.Context, input *usecase.RefreshInput) (*usecase.RefreshOutput, error) {
	srv.log(ctx).Debug("Attempting to refresh access token")

	subjectID, err := srv.codec.Verify(input.RefreshToken, entity.TokenClassRefresh)
	if err != nil {
		srv.metrics.ObserveRefresh(service.OutcomeInvalidToken)

		return nil, errors.Wrap(domainerrors.ErrRefreshTokenInvalid, err.Error())
	}

	if _, err := srv.refreshTokenRepo.FindValid(ctx, input.RefreshToken, subjectID); err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			srv.metrics.ObserveRefresh(service.OutcomeInvalidToken)

			return nil, errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "refresh token not stored")
		}
		srv.metrics.ObserveRefresh(service.OutcomeError)
		srv.log(ctx).Error("Failed to look up refresh token", slog.Int64("userID", subjectID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to look up refresh token")
	}

	accessToken, err := srv.codec.IssueAccess(subjectID)
	if err != nil {
		srv.metrics.ObserveRefresh(service.OutcomeError)

		return nil, errors.Wrap(err, "failed to issue access token")
	}

	srv.metrics.ObserveRefresh(service.OutcomeSuccess)

	return &usecase.RefreshOutput{AccessToken: accessToken}, nil
}

// Logout revokes one refresh token of the caller. Unknown tokens are ignored.
func (srv *sessionService) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	if input.RefreshToken == "" {
		return nil
	}

	if err := srv.refreshTokenRepo.Revoke(ctx, input.RefreshToken, input.SubjectID); err != nil {
		srv.log(ctx).Error("Failed to revoke refresh token", slog.Int64("userID", input.SubjectID), slog.Any("error", err))

		return errors.Wrap(err, "failed to revoke refresh token")
	}

	srv.log(ctx).Debug("User logged out", slog.Int64("userID", input.SubjectID))

	return nil
}

// ChangePassword replaces the password and revokes every refresh token in the same transaction.
func (srv *sessionService) ChangePassword(ctx context.Context, input *usecase.ChangePasswordInput) error {
	if err := srv.hasher.ValidatePasswordStrength(input.NewPassword); err != nil {
		return errors.WithStack(err)
	}

	cred, err := srv.identityRepo.FindCredentialByID(ctx, input.SubjectID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrUserNotFound, "password change failed")
		}

		return errors.Wrap(err, "failed to load credential")
	}

	if !srv.hasher.Check(input.CurrentPassword, cred.PasswordHash) {
		srv.log(ctx).Warn("Password change rejected", slog.Int64("userID", input.SubjectID), slog.Any("error", domainerrors.ErrWrongCurrentPassword))

		return errors.Wrap(domainerrors.ErrWrongCurrentPassword, "password change failed")
	}

	newHash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(err, "failed to hash new password")
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.IdentityRepo().UpdatePassword(ctx, input.SubjectID, newHash); err != nil {
			return errors.Wrap(err, "failed to update password")
		}

		if err := repoFactory.RefreshTokenRepo().RevokeAll(ctx, input.SubjectID); err != nil {
			return errors.Wrap(err, "failed to revoke refresh tokens")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute change password transaction", slog.Int64("userID", input.SubjectID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute change password transaction")
	}

	srv.log(ctx).Info("Password changed, all sessions revoked", slog.Int64("userID", input.SubjectID))

	return nil
}

// Me describes the caller with its live session count.
func (srv *sessionService) Me(ctx context.Context, identity *entity.ResolvedIdentity) (*usecase.MeOutput, error) {
	count, err := srv.refreshTokenRepo.CountActive(ctx, identity.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count active sessions")
	}

	return &usecase.MeOutput{
		User:           identity,
		ActiveSessions: count,
	}, nil
}
