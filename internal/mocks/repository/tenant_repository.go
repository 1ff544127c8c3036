package repository

import (
	"context"

	"saasadmin/internal/domain/entity"
	"saasadmin/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

// MockTenantRepository is a mock of repository.TenantRepository.
type MockTenantRepository struct {
	mock.Mock
}

var _ repository.TenantRepository = (*MockTenantRepository)(nil)

// NewMockTenantRepository creates a mock and asserts its expectations at test cleanup.
func NewMockTenantRepository(t testingT) *MockTenantRepository {
	m := &MockTenantRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTenantRepository) CreateTenant(ctx context.Context, draft *entity.TenantDraft) (*entity.Tenant, error) {
	args := m.Called(ctx, draft)
	tenant, _ := args.Get(0).(*entity.Tenant)

	return tenant, args.Error(1)
}

func (m *MockTenantRepository) UpdateTenant(ctx context.Context, id int64, draft *entity.TenantDraft) (*entity.Tenant, error) {
	args := m.Called(ctx, id, draft)
	tenant, _ := args.Get(0).(*entity.Tenant)

	return tenant, args.Error(1)
}

func (m *MockTenantRepository) DeleteTenant(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockTenantRepository) CountUsers(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)

	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTenantRepository) SlugOrEmailTaken(ctx context.Context, slug, email string, excludeID int64) (bool, error) {
	args := m.Called(ctx, slug, email, excludeID)

	return args.Bool(0), args.Error(1)
}
