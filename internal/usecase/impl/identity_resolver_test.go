package impl

import (
	"context"
	"testing"

	"saasadmin/internal/domain/entity"
	"saasadmin/internal/domain/repository"
	mockRepo "saasadmin/internal/mocks/repository"
	"saasadmin/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(t *testing.T) (usecase.IdentityResolver, *mockRepo.MockIdentityRepository) {
	identityRepo := mockRepo.NewMockIdentityRepository(t)
	resolver := NewIdentityResolver(IdentityResolverParams{
		IdentityRepo: identityRepo,
		Logger:       newDiscardLogger(),
	})

	return resolver, identityRepo
}

func TestIdentityResolver_Resolve_Success(t *testing.T) {
	resolver, identityRepo := newTestResolver(t)
	ctx := context.Background()

	identityRepo.On("FindIdentityByID", ctx, int64(42)).Return(&repository.IdentityRecord{
		View:           newUserView(42, "Tenant Admin", int64Ptr(5), entity.UserStatusActive),
		RawPermissions: `{"users":["read","update"],"tenants":["read"]}`,
	}, nil)

	identity, err := resolver.Resolve(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), identity.ID)
	assert.True(t, identity.Permissions.Contains("users", "update"))
	assert.True(t, identity.Permissions.Contains("tenants", "read"))
	assert.False(t, identity.Permissions.Contains("tenants", "delete"))
}

func TestIdentityResolver_Resolve_MissingAndInactiveLookTheSame(t *testing.T) {
	resolver, identityRepo := newTestResolver(t)
	ctx := context.Background()

	identityRepo.On("FindIdentityByID", ctx, int64(1)).Return(nil, repository.ErrUserNotFound)
	for i, status := range []entity.UserStatus{entity.UserStatusInactive, entity.UserStatusSuspended, ""} {
		id := int64(10 + i)
		identityRepo.On("FindIdentityByID", ctx, id).Return(&repository.IdentityRecord{
			View: newUserView(id, "Member", int64Ptr(5), status),
		}, nil)
	}

	for _, id := range []int64{1, 10, 11, 12} {
		_, err := resolver.Resolve(ctx, id)
		assert.Equal(t, usecase.ErrIdentityNotFound, err, "user %d", id)
	}
}

func TestIdentityResolver_Resolve_MalformedPermissionsBecomeEmpty(t *testing.T) {
	resolver, identityRepo := newTestResolver(t)
	ctx := context.Background()

	identityRepo.On("FindIdentityByID", ctx, int64(42)).Return(&repository.IdentityRecord{
		View:           newUserView(42, "Member", int64Ptr(5), entity.UserStatusActive),
		RawPermissions: `{"users": "read"`,
	}, nil)

	identity, err := resolver.Resolve(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, identity.Permissions)
	assert.False(t, identity.Permissions.Contains("users", "read"))
}

func TestIdentityResolver_Resolve_StorageFailure(t *testing.T) {
	resolver, identityRepo := newTestResolver(t)
	ctx := context.Background()
	dbErr := errors.New("connection refused")

	identityRepo.On("FindIdentityByID", ctx, int64(42)).Return(nil, dbErr)

	_, err := resolver.Resolve(ctx, 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, usecase.ErrIdentityNotFound)
}
