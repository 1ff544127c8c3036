// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"saasadmin/internal/domain/entity"
	domainerrors "saasadmin/internal/domain/errors"
	"saasadmin/internal/domain/repository"
	"saasadmin/internal/domain/service"
	"saasadmin/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// refreshTokenRepository implements the domain.RefreshTokenRepository interface.
type refreshTokenRepository struct {
	db    *gorm.DB
	clock service.Clock
}

// NewRefreshTokenRepository is the constructor for refreshTokenRepository.
func NewRefreshTokenRepository(db *gorm.DB, clock service.Clock) repository.RefreshTokenRepository {
	return &refreshTokenRepository{
		db:    db,
		clock: clock,
	}
}

// hashToken returns the digest under which a refresh token is stored.
func hashToken(value string) string {
	sum := sha256.Sum256([]byte(value))

	return hex.EncodeToString(sum[:])
}

// Put persists a new refresh token for subjectID.
func (repo *refreshTokenRepository) Put(ctx context.Context, subjectID int64, value string, expiresAt time.Time) error {
	tokenM := &model.RefreshTokenModel{
		UserID:    subjectID,
		TokenHash: hashToken(value),
		ExpiresAt: expiresAt,
		CreatedAt: repo.clock.Now(),
	}

	if err := repo.db.WithContext(ctx).Create(tokenM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return errors.Wrap(repository.ErrUserNotFound, "refresh token references unknown user")
		}
		if isUniqueConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "refresh token already stored")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "missing required token information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to store refresh token")
	}

	return nil
}

// FindValid returns the live token matching value and subjectID.
func (repo *refreshTokenRepository) FindValid(ctx context.Context, value string, subjectID int64) (*entity.RefreshToken, error) {
	var tokenM model.RefreshTokenModel

	err := repo.db.WithContext(ctx).
		Where("token_hash = ? AND user_id = ? AND expires_at > ?", hashToken(value), subjectID, repo.clock.Now()).
		Take(&tokenM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRefreshTokenNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find refresh token")
	}

	return toRefreshTokenDomain(&tokenM), nil
}

// Revoke deletes one token of subjectID. Zero affected rows is fine.
func (repo *refreshTokenRepository) Revoke(ctx context.Context, value string, subjectID int64) error {
	err := repo.db.WithContext(ctx).
		Where("token_hash = ? AND user_id = ?", hashToken(value), subjectID).
		Delete(&model.RefreshTokenModel{}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to revoke refresh token")
	}

	return nil
}

// RevokeAll deletes every refresh token held by subjectID.
func (repo *refreshTokenRepository) RevokeAll(ctx context.Context, subjectID int64) error {
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", subjectID).
		Delete(&model.RefreshTokenModel{}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to revoke refresh tokens")
	}

	return nil
}

// CountActive returns the number of unexpired sessions for subjectID.
func (repo *refreshTokenRepository) CountActive(ctx context.Context, subjectID int64) (int64, error) {
	var count int64

	err := repo.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("user_id = ? AND expires_at > ?", subjectID, repo.clock.Now()).
		Count(&count).Error
	if err != nil {
		return 0, domainerrors.NewDatabaseExecuteError(err, "failed to count refresh tokens")
	}

	return count, nil
}

// DeleteExpired removes every token whose expiry is at or before the given instant.
func (repo *refreshTokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("expires_at <= ?", before).
		Delete(&model.RefreshTokenModel{})
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete expired refresh tokens")
	}

	return result.RowsAffected, nil
}

// --- Mapper Functions ---

// toRefreshTokenDomain converts a GORM RefreshTokenModel to a domain RefreshToken entity.
func toRefreshTokenDomain(data *model.RefreshTokenModel) *entity.RefreshToken {
	if data == nil {
		return nil
	}

	return &entity.RefreshToken{
		ID:        data.ID,
		UserID:    data.UserID,
		TokenHash: data.TokenHash,
		ExpiresAt: data.ExpiresAt,
		CreatedAt: data.CreatedAt,
	}
}
