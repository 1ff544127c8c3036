// Package service provides testify mocks for the domain service interfaces.
package service

import (
	"time"

	"saasadmin/internal/domain/entity"
	"saasadmin/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockCredentialCodec is a mock of service.CredentialCodec.
type MockCredentialCodec struct {
	mock.Mock
}

var _ service.CredentialCodec = (*MockCredentialCodec)(nil)

// NewMockCredentialCodec creates a mock and asserts its expectations at test cleanup.
func NewMockCredentialCodec(t testingT) *MockCredentialCodec {
	m := &MockCredentialCodec{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCredentialCodec) IssueAccess(subjectID int64) (string, error) {
	args := m.Called(subjectID)

	return args.String(0), args.Error(1)
}

func (m *MockCredentialCodec) IssueRefresh(subjectID int64) (string, time.Time, error) {
	args := m.Called(subjectID)

	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockCredentialCodec) Verify(token string, class entity.TokenClass) (int64, error) {
	args := m.Called(token, class)

	return args.Get(0).(int64), args.Error(1)
}

// MockPasswordHasher is a mock of service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

var _ service.PasswordHasher = (*MockPasswordHasher)(nil)

// NewMockPasswordHasher creates a mock and asserts its expectations at test cleanup.
func NewMockPasswordHasher(t testingT) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}

func (m *MockPasswordHasher) ValidatePasswordStrength(password string) error {
	return m.Called(password).Error(0)
}

// MockAuthMetrics is a mock of service.AuthMetrics.
type MockAuthMetrics struct {
	mock.Mock
}

var _ service.AuthMetrics = (*MockAuthMetrics)(nil)

// NewMockAuthMetrics creates a mock and asserts its expectations at test cleanup.
func NewMockAuthMetrics(t testingT) *MockAuthMetrics {
	m := &MockAuthMetrics{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAuthMetrics) ObserveLogin(outcome string) {
	m.Called(outcome)
}

func (m *MockAuthMetrics) ObserveRefresh(outcome string) {
	m.Called(outcome)
}

func (m *MockAuthMetrics) ObserveDenied(reason string) {
	m.Called(reason)
}
