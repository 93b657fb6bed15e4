package integration

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/lms/backend/internal/domain/integration"
)

// ---------------------------------------------------------------------------
// Mocks
// ---------------------------------------------------------------------------

type MockPlatformConfigRepository struct {
	mock.Mock
}

func (m *MockPlatformConfigRepository) FindByID(ctx context.Context, id uuid.UUID) (*integration.PlatformConfig, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.PlatformConfig), args.Error(1)
}

func (m *MockPlatformConfigRepository) FindByTenantAndPlatform(ctx context.Context, tenantID uuid.UUID, code integration.PlatformCode) (*integration.PlatformConfig, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.PlatformConfig), args.Error(1)
}

func (m *MockPlatformConfigRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]integration.PlatformConfig, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]integration.PlatformConfig), args.Error(1)
}

func (m *MockPlatformConfigRepository) FindEnabledForTenant(ctx context.Context, tenantID uuid.UUID) ([]integration.PlatformConfig, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]integration.PlatformConfig), args.Error(1)
}

func (m *MockPlatformConfigRepository) Save(ctx context.Context, config *integration.PlatformConfig) error {
	args := m.Called(ctx, config)
	return args.Error(0)
}

func (m *MockPlatformConfigRepository) TryBeginSync(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockPlatformConfigRepository) UpdateSyncStatus(ctx context.Context, id uuid.UUID, status integration.SyncStatus, errorMessage string) error {
	args := m.Called(ctx, id, status, errorMessage)
	return args.Error(0)
}

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
		return nil, 0, args.Error(2)
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

type MockPlatformAdapter struct {
	mock.Mock
	code integration.PlatformCode
}

func (m *MockPlatformAdapter) PlatformCode() integration.PlatformCode {
	return m.code
}

func (m *MockPlatformAdapter) ValidateCredentials(ctx context.Context, creds integration.Credentials) (bool, error) {
	args := m.Called(ctx, creds)
	return args.Bool(0), args.Error(1)
}

func (m *MockPlatformAdapter) FetchEnrollments(ctx context.Context, creds integration.Credentials) ([]integration.RemoteEnrollment, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]integration.RemoteEnrollment), args.Error(1)
}

func (m *MockPlatformAdapter) FetchProgress(ctx context.Context, creds integration.Credentials) ([]integration.RemoteProgress, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]integration.RemoteProgress), args.Error(1)
}

type MockAdapterRegistry struct {
	mock.Mock
}

func (m *MockAdapterRegistry) GetAdapter(code integration.PlatformCode) (integration.PlatformAdapter, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(integration.PlatformAdapter), args.Error(1)
}

func (m *MockAdapterRegistry) ListAdapters() []integration.PlatformAdapter {
	args := m.Called()
	return args.Get(0).([]integration.PlatformAdapter)
}

type MockUserResolver struct {
	mock.Mock
}

func (m *MockUserResolver) ResolveByEmail(ctx context.Context, tenantID uuid.UUID, email string) (uuid.UUID, error) {
	args := m.Called(ctx, tenantID, email)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

type MockSummaryCache struct {
	mock.Mock
}

func (m *MockSummaryCache) Get(ctx context.Context, tenantID uuid.UUID) (*integration.ProgressSummary, bool) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*integration.ProgressSummary), args.Bool(1)
}

func (m *MockSummaryCache) Set(ctx context.Context, tenantID uuid.UUID, summary *integration.ProgressSummary) {
	m.Called(ctx, tenantID, summary)
}

func (m *MockSummaryCache) Invalidate(ctx context.Context, tenantID uuid.UUID) {
	m.Called(ctx, tenantID)
}
