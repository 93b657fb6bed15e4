package integration

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/lms/backend/internal/domain/integration"
)

func newConfigFixture() (*MockPlatformConfigRepository, *MockAdapterRegistry, *ConfigService) {
	configRepo := new(MockPlatformConfigRepository)
	registry := new(MockAdapterRegistry)
	return configRepo, registry, NewConfigService(configRepo, registry, nil)
}

func TestUpsertConfig_CreatesWithDefaults(t *testing.T) {
	configRepo, registry, svc := newConfigFixture()
	tenantID := uuid.New()
	adapter := &MockPlatformAdapter{code: integration.PlatformCodeCoursera}

	registry.On("GetAdapter", integration.PlatformCodeCoursera).Return(adapter, nil)
	configRepo.On("FindByTenantAndPlatform", mock.Anything, tenantID, integration.PlatformCodeCoursera).
		Return(nil, integration.ErrConfigNotFound)
	configRepo.On("Save", mock.Anything, mock.MatchedBy(func(cfg *integration.PlatformConfig) bool {
		return cfg.TenantID == tenantID &&
			cfg.Enabled &&
			cfg.SyncFrequencyMinutes == 60 &&
			cfg.LastSyncStatus == integration.SyncStatusIdle
	})).Return(nil)

	view, err := svc.UpsertConfig(context.Background(), tenantID, UpsertConfigInput{
		PlatformCode: "COURSERA",
		Credentials:  map[string]string{"api_key": "k"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "COURSERA", view.PlatformCode)
	assert.True(t, view.Enabled)
	assert.Equal(t, 60, view.SyncFrequencyMinutes)
	// credentials never leave the service, only key names do
	assert.Equal(t, []string{"api_key"}, view.CredentialKeys)
	configRepo.AssertExpectations(t)
}

func TestUpsertConfig_CreateRequiresCredentials(t *testing.T) {
	configRepo, registry, svc := newConfigFixture()
	tenantID := uuid.New()
	adapter := &MockPlatformAdapter{code: integration.PlatformCodeUdemy}

	registry.On("GetAdapter", integration.PlatformCodeUdemy).Return(adapter, nil)
	configRepo.On("FindByTenantAndPlatform", mock.Anything, tenantID, integration.PlatformCodeUdemy).
		Return(nil, integration.ErrConfigNotFound)

	_, err := svc.UpsertConfig(context.Background(), tenantID, UpsertConfigInput{PlatformCode: "UDEMY"})

	assert.ErrorIs(t, err, integration.ErrMissingCredentials)
	configRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUpsertConfig_UpdateMergesOnlyProvidedFields(t *testing.T) {
	configRepo, registry, svc := newConfigFixture()
	tenantID := uuid.New()
	adapter := &MockPlatformAdapter{code: integration.PlatformCodePluralsight}
	existing, _ := integration.NewPlatformConfig(tenantID, integration.PlatformCodePluralsight,
		integration.Credentials{"api_key": "old"}, true, 120)

	registry.On("GetAdapter", integration.PlatformCodePluralsight).Return(adapter, nil)
	configRepo.On("FindByTenantAndPlatform", mock.Anything, tenantID, integration.PlatformCodePluralsight).
		Return(existing, nil)
	configRepo.On("Save", mock.Anything, existing).Return(nil)

	// credential rotation leaves enabled and cadence untouched
	view, err := svc.UpsertConfig(context.Background(), tenantID, UpsertConfigInput{
		PlatformCode: "PLURALSIGHT",
		Credentials:  map[string]string{"api_key": "rotated"},
	})

	assert.NoError(t, err)
	assert.True(t, view.Enabled)
	assert.Equal(t, 120, view.SyncFrequencyMinutes)
	assert.Equal(t, "rotated", existing.Credentials.Get("api_key"))
}

func TestUpsertConfig_UnknownPlatform(t *testing.T) {
	_, _, svc := newConfigFixture()

	_, err := svc.UpsertConfig(context.Background(), uuid.New(), UpsertConfigInput{
		PlatformCode: "LINKEDIN",
		Credentials:  map[string]string{"api_key": "k"},
	})

	assert.ErrorIs(t, err, integration.ErrUnknownPlatform)
}

func TestUpsertConfig_InvalidFrequencyRejected(t *testing.T) {
	configRepo, registry, svc := newConfigFixture()
	tenantID := uuid.New()
	adapter := &MockPlatformAdapter{code: integration.PlatformCodeCoursera}
	freq := 5

	registry.On("GetAdapter", integration.PlatformCodeCoursera).Return(adapter, nil)
	configRepo.On("FindByTenantAndPlatform", mock.Anything, tenantID, integration.PlatformCodeCoursera).
		Return(nil, integration.ErrConfigNotFound)

	_, err := svc.UpsertConfig(context.Background(), tenantID, UpsertConfigInput{
		PlatformCode:         "COURSERA",
		Credentials:          map[string]string{"api_key": "k"},
		SyncFrequencyMinutes: &freq,
	})

	assert.ErrorIs(t, err, integration.ErrInvalidSyncFrequency)
}

func TestSetEnabled_DisableKeepsCredentials(t *testing.T) {
	configRepo, _, svc := newConfigFixture()
	tenantID := uuid.New()
	existing, _ := integration.NewPlatformConfig(tenantID, integration.PlatformCodeUdemy,
		integration.Credentials{"client_id": "x"}, true, 60)

	configRepo.On("FindByTenantAndPlatform", mock.Anything, tenantID, integration.PlatformCodeUdemy).
		Return(existing, nil)
	configRepo.On("Save", mock.Anything, existing).Return(nil)

	view, err := svc.SetEnabled(context.Background(), tenantID, integration.PlatformCodeUdemy, false)

	assert.NoError(t, err)
	assert.False(t, view.Enabled)
	assert.Equal(t, []string{"client_id"}, view.CredentialKeys)
}

func TestGetConfig_NotConfigured(t *testing.T) {
	configRepo, _, svc := newConfigFixture()
	tenantID := uuid.New()

	configRepo.On("FindByTenantAndPlatform", mock.Anything, tenantID, integration.PlatformCodeCoursera).
		Return(nil, integration.ErrConfigNotFound)

	_, err := svc.GetConfig(context.Background(), tenantID, integration.PlatformCodeCoursera)

	assert.ErrorIs(t, err, integration.ErrConfigNotFound)
}

func TestListConfigs(t *testing.T) {
	configRepo, _, svc := newConfigFixture()
	tenantID := uuid.New()
	a, _ := integration.NewPlatformConfig(tenantID, integration.PlatformCodeCoursera, integration.Credentials{"k": "v"}, true, 60)
	b, _ := integration.NewPlatformConfig(tenantID, integration.PlatformCodeUdemy, integration.Credentials{"k": "v"}, false, 240)

	configRepo.On("FindAllForTenant", mock.Anything, tenantID).
		Return([]integration.PlatformConfig{*a, *b}, nil)

	views, err := svc.ListConfigs(context.Background(), tenantID)

	assert.NoError(t, err)
	assert.Len(t, views, 2)
	assert.Equal(t, "Coursera", views[0].DisplayName)
	assert.False(t, views[1].Enabled)
}
