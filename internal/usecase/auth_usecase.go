package usecase

import (
	"context"

	"saasadmin/internal/domain/entity"
	"saasadmin/internal/errors"
)

// ErrIdentityNotFound is returned by IdentityResolver for a missing user and for an inactive one alike.
var ErrIdentityNotFound = errors.New("identity not found or inactive")

// IdentityResolver materializes the caller of a request from storage.
type IdentityResolver interface {
	Resolve(ctx context.Context, subjectID int64) (*entity.ResolvedIdentity, error)
}

// AuthenticatorUsecase turns an Authorization header into a resolved identity.
type AuthenticatorUsecase interface {
	// Authenticate fails with a taxonomy error when the header does not name an active user.
	Authenticate(ctx context.Context, authorization string) (*entity.ResolvedIdentity, error)

	// OptionalAuthenticate returns nil instead of failing.
	OptionalAuthenticate(ctx context.Context, authorization string) *entity.ResolvedIdentity
}
