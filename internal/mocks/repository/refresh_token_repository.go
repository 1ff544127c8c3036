package repository

import (
	"context"
	"time"

	"saasadmin/internal/domain/entity"
	"saasadmin/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

// MockRefreshTokenRepository is a mock of repository.RefreshTokenRepository.
type MockRefreshTokenRepository struct {
	mock.Mock
}

var _ repository.RefreshTokenRepository = (*MockRefreshTokenRepository)(nil)

// NewMockRefreshTokenRepository creates a mock and asserts its expectations at test cleanup.
func NewMockRefreshTokenRepository(t testingT) *MockRefreshTokenRepository {
	m := &MockRefreshTokenRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRefreshTokenRepository) Put(ctx context.Context, subjectID int64, value string, expiresAt time.Time) error {
	return m.Called(ctx, subjectID, value, expiresAt).Error(0)
}

func (m *MockRefreshTokenRepository) FindValid(ctx context.Context, value string, subjectID int64) (*entity.RefreshToken, error) {
	args := m.Called(ctx, value, subjectID)
	token, _ := args.Get(0).(*entity.RefreshToken)

	return token, args.Error(1)
}

func (m *MockRefreshTokenRepository) Revoke(ctx context.Context, value string, subjectID int64) error {
	return m.Called(ctx, value, subjectID).Error(0)
}

func (m *MockRefreshTokenRepository) RevokeAll(ctx context.Context, subjectID int64) error {
	return m.Called(ctx, subjectID).Error(0)
}

func (m *MockRefreshTokenRepository) CountActive(ctx context.Context, subjectID int64) (int64, error) {
	args := m.Called(ctx, subjectID)

	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRefreshTokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)

	return args.Get(0).(int64), args.Error(1)
}
