// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "saasadmin/internal/delivery/context"
	"saasadmin/internal/domain/entity"
	"saasadmin/internal/domain/repository"
	"saasadmin/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// identityResolver implements the IdentityResolver interface.
type identityResolver struct {
	identityRepo repository.IdentityRepository
	logger       *slog.Logger
}

// IdentityResolverParams holds dependencies for identityResolver, injected by Fx.
type IdentityResolverParams struct {
	fx.In

	IdentityRepo repository.IdentityRepository
	Logger       *slog.Logger
}

// NewIdentityResolver is the constructor for identityResolver.
func NewIdentityResolver(params IdentityResolverParams) usecase.IdentityResolver {
	return &identityResolver{
		identityRepo: params.IdentityRepo,
		logger:       params.Logger,
	}
}

func (r *identityResolver) log(ctx context.Context) *slog.Logger {
	return deliverycontext.LoggerOr(ctx, r.logger)
}

// Resolve loads the caller fresh from storage. Missing and inactive users are indistinguishable.
func (r *identityResolver) Resolve(ctx context.Context, subjectID int64) (*entity.ResolvedIdentity, error) {
	record, err := r.identityRepo.FindIdentityByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, usecase.ErrIdentityNotFound
		}

		return nil, errors.Wrap(err, "failed to load identity")
	}

	if !record.View.Status.IsActive() {
		r.log(ctx).Debug("Identity is not active", slog.Int64("userID", subjectID), slog.String("status", string(record.View.Status)))

		return nil, usecase.ErrIdentityNotFound
	}

	permissions, ok := entity.ParsePermissions(record.RawPermissions)
	if !ok {
		r.log(ctx).Warn("Role permissions are malformed, treating as empty",
			slog.Int64("userID", subjectID),
			slog.String("role", record.View.RoleName),
		)
	}

	return &entity.ResolvedIdentity{
		UserView:    record.View,
		Permissions: permissions,
	}, nil
}
