package impl

import (
	"context"
	"math"
	"testing"
	"time"

	"saasadmin/internal/domain/access"
	"saasadmin/internal/domain/entity"
	domainerrors "saasadmin/internal/domain/errors"
	"saasadmin/internal/domain/repository"
	mockRepo "saasadmin/internal/mocks/repository"
	"saasadmin/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var directoryNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestDirectoryService(t *testing.T) (usecase.DirectoryUsecase, *mockRepo.MockDirectoryRepository) {
	directoryRepo := mockRepo.NewMockDirectoryRepository(t)
	srv := NewDirectoryService(DirectoryServiceParams{
		DirectoryRepo: directoryRepo,
		Clock:         &fakeClock{now: directoryNow},
		Config:        newTestConfig(),
		Logger:        newDiscardLogger(),
	})

	return srv, directoryRepo
}

func TestDirectoryService_ListUsers_ScopesToCallerTenant(t *testing.T) {
	srv, directoryRepo := newTestDirectoryService(t)
	ctx := context.Background()
	caller := newResolvedIdentity(7, "Tenant Admin", int64Ptr(5), map[string][]string{"users": {"read"}})

	users := []*entity.UserView{{User: entity.User{ID: 7}}, {User: entity.User{ID: 8}}}
	directoryRepo.On("ListUsers", ctx, mock.MatchedBy(func(f repository.UserFilter) bool {
		return f.TenantID != nil && *f.TenantID == 5 && f.Limit == 10 && f.Offset == 10 && f.Search == "ali"
	})).Return(users, int64(21), nil)

	// A foreign tenant filter is ignored for non-superusers.
	out, err := srv.ListUsers(ctx, caller, &usecase.ListUsersInput{Page: 2, Search: " ali ", TenantID: int64Ptr(6)})
	require.NoError(t, err)
	assert.Len(t, out.Users, 2)
	assert.Equal(t, usecase.Pagination{Page: 2, Limit: 10, Total: 21, Pages: 3}, out.Pagination)
}

func TestDirectoryService_ListUsers_SuperuserMayFilterAnyTenant(t *testing.T) {
	srv, directoryRepo := newTestDirectoryService(t)
	ctx := context.Background()
	su := newResolvedIdentity(1, access.SuperuserRole, nil, nil)

	directoryRepo.On("ListUsers", ctx, mock.MatchedBy(func(f repository.UserFilter) bool {
		return f.TenantID != nil && *f.TenantID == 6 && f.Limit == 100 && f.Offset == 0
	})).Return([]*entity.UserView{}, int64(0), nil).Once()
	directoryRepo.On("ListUsers", ctx, mock.MatchedBy(func(f repository.UserFilter) bool {
		return f.TenantID == nil && f.Status == entity.UserStatusSuspended
	})).Return([]*entity.UserView{}, int64(0), nil).Once()

	out, err := srv.ListUsers(ctx, su, &usecase.ListUsersInput{Limit: 500, TenantID: int64Ptr(6)})
	require.NoError(t, err)
	assert.Equal(t, 100, out.Pagination.Limit)
	assert.Equal(t, int64(0), out.Pagination.Pages)

	_, err = srv.ListUsers(ctx, su, &usecase.ListUsersInput{Status: entity.UserStatusSuspended})
	require.NoError(t, err)
}

func TestDirectoryService_ListUsers_CallerWithoutTenantSeesNothing(t *testing.T) {
	srv, directoryRepo := newTestDirectoryService(t)
	caller := newResolvedIdentity(7, "Tenant Admin", nil, map[string][]string{"users": {"read"}})

	out, err := srv.ListUsers(context.Background(), caller, nil)
	require.NoError(t, err)
	assert.Empty(t, out.Users)
	assert.Equal(t, usecase.Pagination{Page: 1, Limit: 10}, out.Pagination)
	directoryRepo.AssertNotCalled(t, "ListUsers", mock.Anything, mock.Anything)
}

func TestDirectoryService_GetUser(t *testing.T) {
	ctx := context.Background()
	member := newResolvedIdentity(7, "Tenant Admin", int64Ptr(5), nil)
	su := newResolvedIdentity(1, access.SuperuserRole, nil, nil)
	colleague := &entity.UserView{User: entity.User{ID: 8, TenantID: int64Ptr(5)}}
	stranger := &entity.UserView{User: entity.User{ID: 9, TenantID: int64Ptr(6)}}
	platform := &entity.UserView{User: entity.User{ID: 10}}

	tests := []struct {
		name    string
		caller  *entity.ResolvedIdentity
		user    *entity.UserView
		wantErr error
	}{
		{name: "same tenant", caller: member, user: colleague},
		{name: "other tenant looks missing", caller: member, user: stranger, wantErr: domainerrors.ErrUserNotFound},
		{name: "platform user looks missing", caller: member, user: platform, wantErr: domainerrors.ErrUserNotFound},
		{name: "superuser sees other tenants", caller: su, user: stranger},
		{name: "superuser sees platform users", caller: su, user: platform},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, directoryRepo := newTestDirectoryService(t)
			directoryRepo.On("FindUserByID", ctx, tt.user.ID).Return(tt.user, nil)

			got, err := srv.GetUser(ctx, tt.caller, tt.user.ID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}
			require.NoError(t, err)
			assert.Same(t, tt.user, got)
		})
	}

	t.Run("unknown user", func(t *testing.T) {
		srv, directoryRepo := newTestDirectoryService(t)
		directoryRepo.On("FindUserByID", ctx, int64(404)).Return(nil, repository.ErrUserNotFound)

		_, err := srv.GetUser(ctx, su, 404)
		assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
	})
}

func TestDirectoryService_GetTenant(t *testing.T) {
	srv, directoryRepo := newTestDirectoryService(t)
	ctx := context.Background()
	tenant := &entity.Tenant{ID: 5, Name: "Acme", Slug: "acme", UserCount: 12}

	directoryRepo.On("FindTenantByID", ctx, int64(5)).Return(tenant, nil)
	directoryRepo.On("FindTenantByID", ctx, int64(6)).Return(nil, repository.ErrTenantNotFound)

	got, err := srv.GetTenant(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(12), got.UserCount)

	_, err = srv.GetTenant(ctx, 6)
	assert.ErrorIs(t, err, domainerrors.ErrTenantNotFound)
}

func TestDirectoryService_ListTenantUsers(t *testing.T) {
	srv, directoryRepo := newTestDirectoryService(t)
	ctx := context.Background()

	directoryRepo.On("ListUsers", ctx, mock.MatchedBy(func(f repository.UserFilter) bool {
		return f.TenantID != nil && *f.TenantID == 5 && f.Limit == 20 && f.Offset == 40
	})).Return([]*entity.UserView{{User: entity.User{ID: 8}}}, int64(41), nil)

	out, err := srv.ListTenantUsers(ctx, 5, &usecase.ListUsersInput{Page: 3, Limit: 20, TenantID: int64Ptr(99)})
	require.NoError(t, err)
	assert.Equal(t, int64(3), out.Pagination.Pages)
}

func TestDirectoryService_ListUsers_HugePageDoesNotOverflowOffset(t *testing.T) {
	srv, directoryRepo := newTestDirectoryService(t)
	ctx := context.Background()
	su := newResolvedIdentity(1, access.SuperuserRole, nil, nil)
	lastPage := math.MaxInt / 10

	directoryRepo.On("ListUsers", ctx, mock.MatchedBy(func(f repository.UserFilter) bool {
		return f.Offset >= 0 && f.Offset == (lastPage-1)*10 && f.Limit == 10
	})).Return([]*entity.UserView{}, int64(3), nil)

	out, err := srv.ListUsers(ctx, su, &usecase.ListUsersInput{Page: math.MaxInt, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, lastPage, out.Pagination.Page)
}

func TestDirectoryService_ListTenants(t *testing.T) {
	ctx := context.Background()

	t.Run("non-superuser sees only own tenant", func(t *testing.T) {
		srv, directoryRepo := newTestDirectoryService(t)
		caller := newResolvedIdentity(7, "Tenant Admin", int64Ptr(5), map[string][]string{"tenants": {"read"}})

		directoryRepo.On("ListTenants", ctx, mock.MatchedBy(func(f repository.TenantFilter) bool {
			return f.ID != nil && *f.ID == 5 && f.Search == "acme" && f.Limit == 10
		})).Return([]*entity.Tenant{{ID: 5, Slug: "acme"}}, int64(1), nil)

		out, err := srv.ListTenants(ctx, caller, &usecase.ListTenantsInput{Search: " acme "})
		require.NoError(t, err)
		require.Len(t, out.Tenants, 1)
		assert.Equal(t, usecase.Pagination{Page: 1, Limit: 10, Total: 1, Pages: 1}, out.Pagination)
	})

	t.Run("superuser filters by plan across tenants", func(t *testing.T) {
		srv, directoryRepo := newTestDirectoryService(t)
		su := newResolvedIdentity(1, access.SuperuserRole, nil, nil)

		directoryRepo.On("ListTenants", ctx, mock.MatchedBy(func(f repository.TenantFilter) bool {
			return f.ID == nil && f.SubscriptionPlan == entity.PlanPremium && f.Offset == 20
		})).Return([]*entity.Tenant{}, int64(21), nil)

		out, err := srv.ListTenants(ctx, su, &usecase.ListTenantsInput{Page: 3, SubscriptionPlan: entity.PlanPremium})
		require.NoError(t, err)
		assert.Equal(t, int64(3), out.Pagination.Pages)
	})

	t.Run("caller without tenant sees nothing", func(t *testing.T) {
		srv, directoryRepo := newTestDirectoryService(t)
		caller := newResolvedIdentity(7, "Auditor", nil, map[string][]string{"tenants": {"read"}})

		out, err := srv.ListTenants(ctx, caller, nil)
		require.NoError(t, err)
		assert.Empty(t, out.Tenants)
		directoryRepo.AssertNotCalled(t, "ListTenants", mock.Anything, mock.Anything)
	})
}

func TestDirectoryService_UserStats(t *testing.T) {
	ctx := context.Background()
	since := directoryNow.Add(-30 * 24 * time.Hour)

	t.Run("scoped to caller tenant over the last 30 days", func(t *testing.T) {
		srv, directoryRepo := newTestDirectoryService(t)
		caller := newResolvedIdentity(7, "Tenant Admin", int64Ptr(5), map[string][]string{"users": {"read"}})
		stats := &entity.UserStats{ByStatus: []entity.Count{{Key: "active", Count: 4}}}

		directoryRepo.On("UserStats", ctx, int64Ptr(5), since).Return(stats, nil)

		out, err := srv.UserStats(ctx, caller)
		require.NoError(t, err)
		assert.Same(t, stats, out)
	})

	t.Run("superuser sees every tenant", func(t *testing.T) {
		srv, directoryRepo := newTestDirectoryService(t)
		su := newResolvedIdentity(1, access.SuperuserRole, nil, nil)

		directoryRepo.On("UserStats", ctx, (*int64)(nil), since).Return(&entity.UserStats{}, nil)

		_, err := srv.UserStats(ctx, su)
		require.NoError(t, err)
	})

	t.Run("caller without tenant gets empty groups", func(t *testing.T) {
		srv, directoryRepo := newTestDirectoryService(t)
		caller := newResolvedIdentity(7, "Auditor", nil, nil)

		out, err := srv.UserStats(ctx, caller)
		require.NoError(t, err)
		assert.Empty(t, out.ByStatus)
		assert.NotNil(t, out.ByRole)
		directoryRepo.AssertNotCalled(t, "UserStats", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDirectoryService_TenantStats(t *testing.T) {
	ctx := context.Background()
	srv, directoryRepo := newTestDirectoryService(t)
	caller := newResolvedIdentity(7, "Tenant Admin", int64Ptr(5), map[string][]string{"tenants": {"read"}})

	directoryRepo.On("TenantStats", ctx, int64Ptr(5), directoryNow.Add(-30*24*time.Hour)).
		Return(nil, domainerrors.ErrTransactionFailed)

	_, err := srv.TenantStats(ctx, caller)
	assert.ErrorIs(t, err, domainerrors.ErrTransactionFailed)
}
