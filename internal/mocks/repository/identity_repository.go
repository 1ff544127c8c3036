// Package repository provides testify mocks for the domain repository interfaces.
package repository

import (
	"context"

	"saasadmin/internal/domain/entity"
	"saasadmin/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

// MockIdentityRepository is a mock of repository.IdentityRepository.
type MockIdentityRepository struct {
	mock.Mock
}

var _ repository.IdentityRepository = (*MockIdentityRepository)(nil)

// NewMockIdentityRepository creates a mock and asserts its expectations at test cleanup.
func NewMockIdentityRepository(t testingT) *MockIdentityRepository {
	m := &MockIdentityRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockIdentityRepository) FindIdentityByID(ctx context.Context, id int64) (*repository.IdentityRecord, error) {
	args := m.Called(ctx, id)
	record, _ := args.Get(0).(*repository.IdentityRecord)

	return record, args.Error(1)
}

func (m *MockIdentityRepository) FindCredentialByEmail(ctx context.Context, email string) (*entity.Credential, error) {
	args := m.Called(ctx, email)
	cred, _ := args.Get(0).(*entity.Credential)

	return cred, args.Error(1)
}

func (m *MockIdentityRepository) FindCredentialByID(ctx context.Context, id int64) (*entity.Credential, error) {
	args := m.Called(ctx, id)
	cred, _ := args.Get(0).(*entity.Credential)

	return cred, args.Error(1)
}

func (m *MockIdentityRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func (m *MockIdentityRepository) TouchLastLogin(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type testingT interface {
	mock.TestingT
	Cleanup(func())
}
