package impl

import (
	"context"
	"testing"
	"time"

	mockRepo "saasadmin/internal/mocks/repository"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCleanupService_PurgeExpired(t *testing.T) {
	refreshRepo := mockRepo.NewMockRefreshTokenRepository(t)
	clock := &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	srv := NewTokenCleanupService(TokenCleanupServiceParams{
		RefreshTokenRepo: refreshRepo,
		Clock:            clock,
		Logger:           newDiscardLogger(),
	})
	ctx := context.Background()

	refreshRepo.On("DeleteExpired", ctx, clock.now).Return(int64(4), nil).Once()

	deleted, err := srv.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), deleted)

	clock.Advance(time.Hour)
	dbErr := errors.New("connection lost")
	refreshRepo.On("DeleteExpired", ctx, clock.now).Return(int64(0), dbErr).Once()

	_, err = srv.PurgeExpired(ctx)
	assert.ErrorIs(t, err, dbErr)
}
