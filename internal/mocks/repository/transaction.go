package repository

import (
	"context"

	"saasadmin/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

// MockTransactionManager is a mock of repository.TransactionManager.
// When a Factory is set, Execute runs the callback against it and returns
// the callback's error unless the expectation overrides it.
type MockTransactionManager struct {
	mock.Mock

	Factory repository.RepositoryFactory
}

var _ repository.TransactionManager = (*MockTransactionManager)(nil)

// NewMockTransactionManager creates a mock and asserts its expectations at test cleanup.
func NewMockTransactionManager(t testingT) *MockTransactionManager {
	m := &MockTransactionManager{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTransactionManager) Execute(ctx context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	args := m.Called(ctx, fn)
	if m.Factory != nil {
		if err := fn(m.Factory); err != nil {
			return err
		}
	}

	return args.Error(0)
}

// MockRepositoryFactory is a mock of repository.RepositoryFactory.
type MockRepositoryFactory struct {
	mock.Mock
}

var _ repository.RepositoryFactory = (*MockRepositoryFactory)(nil)

// NewMockRepositoryFactory creates a mock and asserts its expectations at test cleanup.
func NewMockRepositoryFactory(t testingT) *MockRepositoryFactory {
	m := &MockRepositoryFactory{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRepositoryFactory) IdentityRepo() repository.IdentityRepository {
	return m.Called().Get(0).(repository.IdentityRepository)
}

func (m *MockRepositoryFactory) RefreshTokenRepo() repository.RefreshTokenRepository {
	return m.Called().Get(0).(repository.RefreshTokenRepository)
}

func (m *MockRepositoryFactory) AccountRepo() repository.AccountRepository {
	return m.Called().Get(0).(repository.AccountRepository)
}

func (m *MockRepositoryFactory) TenantRepo() repository.TenantRepository {
	return m.Called().Get(0).(repository.TenantRepository)
}
