// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"time"

	"saasadmin/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrRefreshTokenNotFound is returned when no live refresh token matches.
// Unknown, revoked and expired tokens all map to this one error.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// RefreshTokenRepository stores issued refresh tokens. Values are hashed
// before they reach storage; callers always pass the raw token.
type RefreshTokenRepository interface {
	// Put persists a new refresh token. A subject may hold many live tokens (multi-device).
	Put(ctx context.Context, subjectID int64, value string, expiresAt time.Time) error

	// FindValid returns the record matching value and subjectID whose expiry is strictly in the future.
	FindValid(ctx context.Context, value string, subjectID int64) (*entity.RefreshToken, error)

	// Revoke deletes one token of subjectID. Deleting a missing token is not an error.
	Revoke(ctx context.Context, value string, subjectID int64) error

	// RevokeAll deletes every token of subjectID.
	RevokeAll(ctx context.Context, subjectID int64) error

	// CountActive returns the number of unexpired tokens of subjectID.
	CountActive(ctx context.Context, subjectID int64) (int64, error)

	// DeleteExpired removes tokens whose expiry is at or before the given instant.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
