// Package usecase provides testify mocks for the usecase interfaces.
package usecase

import (
	"context"

	"saasadmin/internal/domain/entity"
	"saasadmin/internal/usecase"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockSessionUsecase is a mock of usecase.SessionUsecase.
type MockSessionUsecase struct {
	mock.Mock
}

var _ usecase.SessionUsecase = (*MockSessionUsecase)(nil)

// NewMockSessionUsecase creates a mock and asserts its expectations at test cleanup.
func NewMockSessionUsecase(t testingT) *MockSessionUsecase {
	m := &MockSessionUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockSessionUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*usecase.LoginOutput)

	return out, args.Error(1)
}

func (m *MockSessionUsecase) Refresh(ctx context.Context, input *usecase.RefreshInput) (*usecase.RefreshOutput, error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*usecase.RefreshOutput)

	return out, args.Error(1)
}

func (m *MockSessionUsecase) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	return m.Called(ctx, input).Error(0)
}

func (m *MockSessionUsecase) ChangePassword(ctx context.Context, input *usecase.ChangePasswordInput) error {
	return m.Called(ctx, input).Error(0)
}

func (m *MockSessionUsecase) Me(ctx context.Context, identity *entity.ResolvedIdentity) (*usecase.MeOutput, error) {
	args := m.Called(ctx, identity)
	out, _ := args.Get(0).(*usecase.MeOutput)

	return out, args.Error(1)
}

// MockAuthenticatorUsecase is a mock of usecase.AuthenticatorUsecase.
type MockAuthenticatorUsecase struct {
	mock.Mock
}

var _ usecase.AuthenticatorUsecase = (*MockAuthenticatorUsecase)(nil)

// NewMockAuthenticatorUsecase creates a mock and asserts its expectations at test cleanup.
func NewMockAuthenticatorUsecase(t testingT) *MockAuthenticatorUsecase {
	m := &MockAuthenticatorUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAuthenticatorUsecase) Authenticate(ctx context.Context, authorization string) (*entity.ResolvedIdentity, error) {
	args := m.Called(ctx, authorization)
	identity, _ := args.Get(0).(*entity.ResolvedIdentity)

	return identity, args.Error(1)
}

func (m *MockAuthenticatorUsecase) OptionalAuthenticate(ctx context.Context, authorization string) *entity.ResolvedIdentity {
	identity, _ := m.Called(ctx, authorization).Get(0).(*entity.ResolvedIdentity)

	return identity
}

// MockDirectoryUsecase is a mock of usecase.DirectoryUsecase.
type MockDirectoryUsecase struct {
	mock.Mock
}

var _ usecase.DirectoryUsecase = (*MockDirectoryUsecase)(nil)

// NewMockDirectoryUsecase creates a mock and asserts its expectations at test cleanup.
func NewMockDirectoryUsecase(t testingT) *MockDirectoryUsecase {
	m := &MockDirectoryUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockDirectoryUsecase) ListUsers(ctx context.Context, caller *entity.ResolvedIdentity, input *usecase.ListUsersInput) (*usecase.ListUsersOutput, error) {
	args := m.Called(ctx, caller, input)
	out, _ := args.Get(0).(*usecase.ListUsersOutput)

	return out, args.Error(1)
}

func (m *MockDirectoryUsecase) GetUser(ctx context.Context, caller *entity.ResolvedIdentity, userID int64) (*entity.UserView, error) {
	args := m.Called(ctx, caller, userID)
	user, _ := args.Get(0).(*entity.UserView)

	return user, args.Error(1)
}

func (m *MockDirectoryUsecase) GetTenant(ctx context.Context, tenantID int64) (*entity.Tenant, error) {
	args := m.Called(ctx, tenantID)
	tenant, _ := args.Get(0).(*entity.Tenant)

	return tenant, args.Error(1)
}

func (m *MockDirectoryUsecase) ListTenantUsers(ctx context.Context, tenantID int64, input *usecase.ListUsersInput) (*usecase.ListUsersOutput, error) {
	args := m.Called(ctx, tenantID, input)
	out, _ := args.Get(0).(*usecase.ListUsersOutput)

	return out, args.Error(1)
}

func (m *MockDirectoryUsecase) ListTenants(ctx context.Context, caller *entity.ResolvedIdentity, input *usecase.ListTenantsInput) (*usecase.ListTenantsOutput, error) {
	args := m.Called(ctx, caller, input)
	out, _ := args.Get(0).(*usecase.ListTenantsOutput)

	return out, args.Error(1)
}

func (m *MockDirectoryUsecase) UserStats(ctx context.Context, caller *entity.ResolvedIdentity) (*entity.UserStats, error) {
	args := m.Called(ctx, caller)
	stats, _ := args.Get(0).(*entity.UserStats)

	return stats, args.Error(1)
}

func (m *MockDirectoryUsecase) TenantStats(ctx context.Context, caller *entity.ResolvedIdentity) (*entity.TenantStats, error) {
	args := m.Called(ctx, caller)
	stats, _ := args.Get(0).(*entity.TenantStats)

	return stats, args.Error(1)
}

// MockAccountUsecase is a mock of usecase.AccountUsecase.
type MockAccountUsecase struct {
	mock.Mock
}

var _ usecase.AccountUsecase = (*MockAccountUsecase)(nil)

// NewMockAccountUsecase creates a mock and asserts its expectations at test cleanup.
func NewMockAccountUsecase(t testingT) *MockAccountUsecase {
	m := &MockAccountUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAccountUsecase) Register(ctx context.Context, caller *entity.ResolvedIdentity, input *usecase.RegisterInput) (*entity.User, error) {
	args := m.Called(ctx, caller, input)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *MockAccountUsecase) UpdateUser(ctx context.Context, caller *entity.ResolvedIdentity, userID int64, patch *entity.UserPatch) (*entity.User, error) {
	args := m.Called(ctx, caller, userID, patch)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *MockAccountUsecase) DeleteUser(ctx context.Context, caller *entity.ResolvedIdentity, userID int64) error {
	return m.Called(ctx, caller, userID).Error(0)
}

// MockTenantUsecase is a mock of usecase.TenantUsecase.
type MockTenantUsecase struct {
	mock.Mock
}

var _ usecase.TenantUsecase = (*MockTenantUsecase)(nil)

// NewMockTenantUsecase creates a mock and asserts its expectations at test cleanup.
func NewMockTenantUsecase(t testingT) *MockTenantUsecase {
	m := &MockTenantUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTenantUsecase) CreateTenant(ctx context.Context, draft *entity.TenantDraft) (*entity.Tenant, error) {
	args := m.Called(ctx, draft)
	tenant, _ := args.Get(0).(*entity.Tenant)

	return tenant, args.Error(1)
}

func (m *MockTenantUsecase) UpdateTenant(ctx context.Context, tenantID int64, draft *entity.TenantDraft) (*entity.Tenant, error) {
	args := m.Called(ctx, tenantID, draft)
	tenant, _ := args.Get(0).(*entity.Tenant)

	return tenant, args.Error(1)
}

func (m *MockTenantUsecase) DeleteTenant(ctx context.Context, tenantID int64) error {
	return m.Called(ctx, tenantID).Error(0)
}

// MockTokenCleanupUsecase is a mock of usecase.TokenCleanupUsecase.
type MockTokenCleanupUsecase struct {
	mock.Mock
}

var _ usecase.TokenCleanupUsecase = (*MockTokenCleanupUsecase)(nil)

// NewMockTokenCleanupUsecase creates a mock and asserts its expectations at test cleanup.
func NewMockTokenCleanupUsecase(t testingT) *MockTokenCleanupUsecase {
	m := &MockTokenCleanupUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTokenCleanupUsecase) PurgeExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)

	return args.Get(0).(int64), args.Error(1)
}
