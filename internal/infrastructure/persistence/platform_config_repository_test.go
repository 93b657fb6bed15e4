package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lms/backend/internal/domain/integration"
	"github.com/lms/backend/internal/infrastructure/persistence/models"
)

func setupIntegrationTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.PlatformConfigModel{},
		&models.ExternalEnrollmentModel{},
		&models.ExternalProgressRecordModel{},
		&models.UserModel{},
	)
	require.NoError(t, err)

	return db
}

func mustNewConfig(t *testing.T, tenantID uuid.UUID, code integration.PlatformCode) *integration.PlatformConfig {
	cfg, err := integration.NewPlatformConfig(tenantID, code, integration.Credentials{"api_key": "k"}, true, 60)
	require.NoError(t, err)
	return cfg
}

func TestGormPlatformConfigRepository_SaveAndFind(t *testing.T) {
	repo := NewGormPlatformConfigRepository(setupIntegrationTestDB(t))
	ctx := context.Background()
	tenantID := uuid.New()
	cfg := mustNewConfig(t, tenantID, integration.PlatformCodeCoursera)

	require.NoError(t, repo.Save(ctx, cfg))

	found, err := repo.FindByID(ctx, cfg.ID)
	require.NoError(t, err)
	assert.Equal(t, cfg.ID, found.ID)
	assert.Equal(t, integration.PlatformCodeCoursera, found.PlatformCode)
	// credentials survive the JSON round trip
	assert.Equal(t, "k", found.Credentials.Get("api_key"))
	assert.Equal(t, integration.SyncStatusIdle, found.LastSyncStatus)

	byPair, err := repo.FindByTenantAndPlatform(ctx, tenantID, integration.PlatformCodeCoursera)
	require.NoError(t, err)
	assert.Equal(t, cfg.ID, byPair.ID)
}

func TestGormPlatformConfigRepository_FindByID_NotFound(t *testing.T) {
	repo := NewGormPlatformConfigRepository(setupIntegrationTestDB(t))

	_, err := repo.FindByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, integration.ErrConfigNotFound)
}

func TestGormPlatformConfigRepository_SaveUpdatesInPlace(t *testing.T) {
	repo := NewGormPlatformConfigRepository(setupIntegrationTestDB(t))
	ctx := context.Background()
	tenantID := uuid.New()
	cfg := mustNewConfig(t, tenantID, integration.PlatformCodeUdemy)
	require.NoError(t, repo.Save(ctx, cfg))

	cfg.UpdateCredentials(integration.Credentials{"api_key": "rotated"})
	require.NoError(t, cfg.SetSyncFrequency(240))
	require.NoError(t, repo.Save(ctx, cfg))

	all, err := repo.FindAllForTenant(ctx, tenantID)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "rotated", all[0].Credentials.Get("api_key"))
	assert.Equal(t, 240, all[0].SyncFrequencyMinutes)
}

func TestGormPlatformConfigRepository_FindEnabledForTenant(t *testing.T) {
	repo := NewGormPlatformConfigRepository(setupIntegrationTestDB(t))
	ctx := context.Background()
	tenantID := uuid.New()

	enabled := mustNewConfig(t, tenantID, integration.PlatformCodeCoursera)
	disabled := mustNewConfig(t, tenantID, integration.PlatformCodeUdemy)
	disabled.SetEnabled(false)
	other := mustNewConfig(t, uuid.New(), integration.PlatformCodePluralsight)

	require.NoError(t, repo.Save(ctx, enabled))
	require.NoError(t, repo.Save(ctx, disabled))
	require.NoError(t, repo.Save(ctx, other))

	configs, err := repo.FindEnabledForTenant(ctx, tenantID)
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.Equal(t, integration.PlatformCodeCoursera, configs[0].PlatformCode)
}

func TestGormPlatformConfigRepository_TryBeginSync(t *testing.T) {
	repo := NewGormPlatformConfigRepository(setupIntegrationTestDB(t))
	ctx := context.Background()
	cfg := mustNewConfig(t, uuid.New(), integration.PlatformCodeCoursera)
	require.NoError(t, repo.Save(ctx, cfg))

	acquired, err := repo.TryBeginSync(ctx, cfg.ID)
	require.NoError(t, err)
	assert.True(t, acquired)

	// second attempt loses while the first holds the lock
	acquired, err = repo.TryBeginSync(ctx, cfg.ID)
	require.NoError(t, err)
	assert.False(t, acquired)

	// terminal status releases the lock
	require.NoError(t, repo.UpdateSyncStatus(ctx, cfg.ID, integration.SyncStatusSuccess, ""))

	acquired, err = repo.TryBeginSync(ctx, cfg.ID)
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestGormPlatformConfigRepository_TryBeginSync_MissingConfig(t *testing.T) {
	repo := NewGormPlatformConfigRepository(setupIntegrationTestDB(t))

	_, err := repo.TryBeginSync(context.Background(), uuid.New())

	assert.ErrorIs(t, err, integration.ErrConfigNotFound)
}

func TestGormPlatformConfigRepository_UpdateSyncStatus(t *testing.T) {
	repo := NewGormPlatformConfigRepository(setupIntegrationTestDB(t))
	ctx := context.Background()
	cfg := mustNewConfig(t, uuid.New(), integration.PlatformCodePluralsight)
	require.NoError(t, repo.Save(ctx, cfg))

	require.NoError(t, repo.UpdateSyncStatus(ctx, cfg.ID, integration.SyncStatusError, "gateway timeout"))

	found, err := repo.FindByID(ctx, cfg.ID)
	require.NoError(t, err)
	assert.Equal(t, integration.SyncStatusError, found.LastSyncStatus)
	assert.Equal(t, "gateway timeout", found.LastSyncError)
	require.NotNil(t, found.LastSyncedAt)
}
