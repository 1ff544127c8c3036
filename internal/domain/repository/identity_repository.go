package repository

import (
	"context"

	"saasadmin/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrUserNotFound is returned when no user row matches.
var ErrUserNotFound = errors.New("user not found")

// IdentityRecord is a user row joined with its role and tenant, as stored.
// Permissions are still the raw serialized payload.
type IdentityRecord struct {
	View           entity.UserView
	RawPermissions string
}

// IdentityRepository reads the accounts that authenticate against this service.
type IdentityRepository interface {
	// FindIdentityByID loads the user joined with role and tenant, regardless of status.
	FindIdentityByID(ctx context.Context, id int64) (*IdentityRecord, error)

	// FindCredentialByEmail loads the login material for an email.
	FindCredentialByEmail(ctx context.Context, email string) (*entity.Credential, error)

	// FindCredentialByID loads the login material for a user.
	FindCredentialByID(ctx context.Context, id int64) (*entity.Credential, error)

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error

	// TouchLastLogin records a successful login.
	TouchLastLogin(ctx context.Context, id int64) error
}
