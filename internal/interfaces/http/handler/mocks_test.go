package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/lms/backend/internal/domain/integration"
)

// MockConfigRepository implements integration.PlatformConfigRepository for testing
type MockConfigRepository struct {
	mock.Mock
}

func (m *MockConfigRepository) FindByID(ctx context.Context, id uuid.UUID) (*integration.PlatformConfig, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.PlatformConfig), args.Error(1)
}

func (m *MockConfigRepository) FindByTenantAndPlatform(ctx context.Context, tenantID uuid.UUID, code integration.PlatformCode) (*integration.PlatformConfig, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.PlatformConfig), args.Error(1)
}

func (m *MockConfigRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]integration.PlatformConfig, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]integration.PlatformConfig), args.Error(1)
}

func (m *MockConfigRepository) FindEnabledForTenant(ctx context.Context, tenantID uuid.UUID) ([]integration.PlatformConfig, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]integration.PlatformConfig), args.Error(1)
}

func (m *MockConfigRepository) Save(ctx context.Context, config *integration.PlatformConfig) error {
	args := m.Called(ctx, config)
	return args.Error(0)
}

func (m *MockConfigRepository) TryBeginSync(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockConfigRepository) UpdateSyncStatus(ctx context.Context, id uuid.UUID, status integration.SyncStatus, errorMessage string) error {
	args := m.Called(ctx, id, status, errorMessage)
	return args.Error(0)
}

// MockProgressRepository implements integration.ProgressRepository for testing
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) UpsertEnrollment(ctx context.Context, e *integration.ExternalEnrollment) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockProgressRepository) UpsertProgress(ctx context.Context, p *integration.ExternalProgressRecord) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProgressRepository) ListProgress(ctx context.Context, tenantID uuid.UUID, filter integration.ProgressFilter) ([]integration.ExternalProgressRecord, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]integration.ExternalProgressRecord), args.Get(1).(int64), args.Error(2)
}

func (m *MockProgressRepository) CountEnrollments(ctx context.Context, tenantID uuid.UUID, code integration.PlatformCode) (int64, error) {
	args := m.Called(ctx, tenantID, code)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProgressRepository) Summary(ctx context.Context, tenantID uuid.UUID) (*integration.ProgressSummary, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.ProgressSummary), args.Error(1)
}

// MockAdapter implements integration.PlatformAdapter for testing
type MockAdapter struct {
	mock.Mock
	code integration.PlatformCode
}

func (m *MockAdapter) PlatformCode() integration.PlatformCode {
	return m.code
}

func (m *MockAdapter) ValidateCredentials(ctx context.Context, creds integration.Credentials) (bool, error) {
	args := m.Called(ctx, creds)
	return args.Bool(0), args.Error(1)
}

func (m *MockAdapter) FetchEnrollments(ctx context.Context, creds integration.Credentials) ([]integration.RemoteEnrollment, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]integration.RemoteEnrollment), args.Error(1)
}

func (m *MockAdapter) FetchProgress(ctx context.Context, creds integration.Credentials) ([]integration.RemoteProgress, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]integration.RemoteProgress), args.Error(1)
}

// MockRegistry implements integration.AdapterRegistry for testing
type MockRegistry struct {
	mock.Mock
}

func (m *MockRegistry) GetAdapter(code integration.PlatformCode) (integration.PlatformAdapter, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(integration.PlatformAdapter), args.Error(1)
}

func (m *MockRegistry) ListAdapters() []integration.PlatformAdapter {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]integration.PlatformAdapter)
}

// MockUserResolver implements integration.UserResolver for testing
type MockUserResolver struct {
	mock.Mock
}

func (m *MockUserResolver) ResolveByEmail(ctx context.Context, tenantID uuid.UUID, email string) (uuid.UUID, error) {
	args := m.Called(ctx, tenantID, email)
	return args.Get(0).(uuid.UUID), args.Error(1)
}
