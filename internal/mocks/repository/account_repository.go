package repository

import (
	"context"

	"saasadmin/internal/domain/entity"
	"saasadmin/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock of repository.AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

var _ repository.AccountRepository = (*MockAccountRepository)(nil)

// NewMockAccountRepository creates a mock and asserts its expectations at test cleanup.
func NewMockAccountRepository(t testingT) *MockAccountRepository {
	m := &MockAccountRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAccountRepository) CreateUser(ctx context.Context, user *entity.NewUser) (*entity.User, error) {
	args := m.Called(ctx, user)
	created, _ := args.Get(0).(*entity.User)

	return created, args.Error(1)
}

func (m *MockAccountRepository) UpdateUser(ctx context.Context, id int64, patch *entity.UserPatch) (*entity.User, error) {
	args := m.Called(ctx, id, patch)
	updated, _ := args.Get(0).(*entity.User)

	return updated, args.Error(1)
}

func (m *MockAccountRepository) DeleteUser(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAccountRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)

	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) FindRoleByID(ctx context.Context, id int64) (*entity.Role, error) {
	args := m.Called(ctx, id)
	role, _ := args.Get(0).(*entity.Role)

	return role, args.Error(1)
}
