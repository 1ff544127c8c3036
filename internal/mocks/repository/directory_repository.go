package repository

import (
	"context"
	"time"

	"saasadmin/internal/domain/entity"
	"saasadmin/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

// MockDirectoryRepository is a mock of repository.DirectoryRepository.
type MockDirectoryRepository struct {
	mock.Mock
}

var _ repository.DirectoryRepository = (*MockDirectoryRepository)(nil)

// NewMockDirectoryRepository creates a mock and asserts its expectations at test cleanup.
func NewMockDirectoryRepository(t testingT) *MockDirectoryRepository {
	m := &MockDirectoryRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockDirectoryRepository) ListUsers(ctx context.Context, filter repository.UserFilter) ([]*entity.UserView, int64, error) {
	args := m.Called(ctx, filter)
	users, _ := args.Get(0).([]*entity.UserView)

	return users, args.Get(1).(int64), args.Error(2)
}

func (m *MockDirectoryRepository) FindUserByID(ctx context.Context, id int64) (*entity.UserView, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entity.UserView)

	return user, args.Error(1)
}

func (m *MockDirectoryRepository) FindTenantByID(ctx context.Context, id int64) (*entity.Tenant, error) {
	args := m.Called(ctx, id)
	tenant, _ := args.Get(0).(*entity.Tenant)

	return tenant, args.Error(1)
}

func (m *MockDirectoryRepository) ListTenants(ctx context.Context, filter repository.TenantFilter) ([]*entity.Tenant, int64, error) {
	args := m.Called(ctx, filter)
	tenants, _ := args.Get(0).([]*entity.Tenant)

	return tenants, args.Get(1).(int64), args.Error(2)
}

func (m *MockDirectoryRepository) UserStats(ctx context.Context, tenantID *int64, since time.Time) (*entity.UserStats, error) {
	args := m.Called(ctx, tenantID, since)
	stats, _ := args.Get(0).(*entity.UserStats)

	return stats, args.Error(1)
}

func (m *MockDirectoryRepository) TenantStats(ctx context.Context, tenantID *int64, since time.Time) (*entity.TenantStats, error) {
	args := m.Called(ctx, tenantID, since)
	stats, _ := args.Get(0).(*entity.TenantStats)

	return stats, args.Error(1)
}
