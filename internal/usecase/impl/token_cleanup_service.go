package impl

import (
	"context"
	"log/slog"

	"saasadmin/internal/domain/repository"
	"saasadmin/internal/domain/service"
	"saasadmin/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// tokenCleanupService implements the TokenCleanupUsecase interface.
type tokenCleanupService struct {
	refreshTokenRepo repository.RefreshTokenRepository
	clock            service.Clock
	logger           *slog.Logger
}

// TokenCleanupServiceParams holds dependencies for tokenCleanupService, injected by Fx.
type TokenCleanupServiceParams struct {
	fx.In

	RefreshTokenRepo repository.RefreshTokenRepository
	Clock            service.Clock
	Logger           *slog.Logger
}

// NewTokenCleanupService is the constructor for tokenCleanupService.
func NewTokenCleanupService(params TokenCleanupServiceParams) usecase.TokenCleanupUsecase {
	return &tokenCleanupService{
		refreshTokenRepo: params.RefreshTokenRepo,
		clock:            params.Clock,
		logger:           params.Logger,
	}
}

// PurgeExpired deletes every refresh token whose expiry has passed.
func (srv *tokenCleanupService) PurgeExpired(ctx context.Context) (int64, error) {
	deleted, err := srv.refreshTokenRepo.DeleteExpired(ctx, srv.clock.Now())
	if err != nil {
		return 0, errors.Wrap(err, "failed to purge expired refresh tokens")
	}

	if deleted > 0 {
		srv.logger.InfoContext(ctx, "Purged expired refresh tokens", slog.Int64("deleted", deleted))
	}

	return deleted, nil
}
