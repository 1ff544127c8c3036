package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "saasadmin/internal/delivery/context"
	"saasadmin/internal/domain/entity"
	domainerrors "saasadmin/internal/domain/errors"
	"saasadmin/internal/domain/service"
	"saasadmin/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const bearerScheme = "bearer"

// authenticatorService implements the AuthenticatorUsecase interface.
type authenticatorService struct {
	codec    service.CredentialCodec
	resolver usecase.IdentityResolver
	logger   *slog.Logger
}

// AuthenticatorServiceParams holds dependencies for authenticatorService, injected by Fx.
type AuthenticatorServiceParams struct {
	fx.In

	Codec    service.CredentialCodec
	Resolver usecase.IdentityResolver
	Logger   *slog.Logger
}

// NewAuthenticatorService is the constructor for authenticatorService.
func NewAuthenticatorService(params AuthenticatorServiceParams) usecase.AuthenticatorUsecase {
	return &authenticatorService{
		codec:    params.Codec,
		resolver: params.Resolver,
		logger:   params.Logger,
	}
}

func (srv *authenticatorService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.LoggerOr(ctx, srv.logger)
}

// bearerToken extracts the credential from "Bearer <token>". The scheme is case-insensitive.
func bearerToken(authorization string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(authorization), " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}

	token = strings.TrimSpace(token)

	return token, token != ""
}

// Authenticate validates the access token and resolves the caller.
func (srv *authenticatorService) Authenticate(ctx context.Context, authorization string) (*entity.ResolvedIdentity, error) {
	token, ok := bearerToken(authorization)
	if !ok {
		return nil, domainerrors.ErrMissingCredential
	}

	subjectID, err := srv.codec.Verify(token, entity.TokenClassAccess)
	if err != nil {
		if errors.Is(err, service.ErrTokenExpired) {
			return nil, errors.Wrap(domainerrors.ErrExpiredToken, err.Error())
		}

		return nil, errors.Wrap(domainerrors.ErrMalformedToken, err.Error())
	}

	identity, err := srv.resolver.Resolve(ctx, subjectID)
	if err != nil {
		if errors.Is(err, usecase.ErrIdentityNotFound) {
			return nil, domainerrors.ErrInactiveAccount
		}

		srv.log(ctx).Error("Failed to resolve identity", slog.Int64("userID", subjectID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to resolve identity")
	}

	return identity, nil
}

// OptionalAuthenticate never fails outward. Any failure yields an anonymous caller.
func (srv *authenticatorService) OptionalAuthenticate(ctx context.Context, authorization string) *entity.ResolvedIdentity {
	if strings.TrimSpace(authorization) == "" {
		return nil
	}

	identity, err := srv.Authenticate(ctx, authorization)
	if err != nil {
		srv.log(ctx).Debug("Optional authentication ignored", slog.Any("error", err))

		return nil
	}

	return identity
}
