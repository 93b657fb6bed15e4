package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lms/backend/internal/domain/integration"
	"github.com/lms/backend/internal/infrastructure/persistence/models"
)

// GormPlatformConfigRepository implements PlatformConfigRepository using GORM
type GormPlatformConfigRepository struct {
	db *gorm.DB
}

// NewGormPlatformConfigRepository creates a new GormPlatformConfigRepository
func NewGormPlatformConfigRepository(db *gorm.DB) *GormPlatformConfigRepository {
	return &GormPlatformConfigRepository{db: db}
}

// FindByID finds a config by its ID
func (r *GormPlatformConfigRepository) FindByID(ctx context.Context, id uuid.UUID) (*integration.PlatformConfig, error) {
	var model models.PlatformConfigModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, integration.ErrConfigNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTenantAndPlatform finds the single config for a tenant/platform pair
func (r *GormPlatformConfigRepository) FindByTenantAndPlatform(ctx context.Context, tenantID uuid.UUID, code integration.PlatformCode) (*integration.PlatformConfig, error) {
	var model models.PlatformConfigModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND platform_code = ?", tenantID, code).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, integration.ErrConfigNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant returns every config a tenant has saved
func (r *GormPlatformConfigRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]integration.PlatformConfig, error) {
	var configModels []models.PlatformConfigModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("platform_code ASC").
		Find(&configModels).Error; err != nil {
		return nil, err
	}

	configs := make([]integration.PlatformConfig, len(configModels))
	for i, model := range configModels {
		configs[i] = *model.ToDomain()
	}
	return configs, nil
}

// FindEnabledForTenant returns only configs with Enabled=true
func (r *GormPlatformConfigRepository) FindEnabledForTenant(ctx context.Context, tenantID uuid.UUID) ([]integration.PlatformConfig, error) {
	var configModels []models.PlatformConfigModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND enabled = ?", tenantID, true).
		Order("platform_code ASC").
		Find(&configModels).Error; err != nil {
		return nil, err
	}

	configs := make([]integration.PlatformConfig, len(configModels))
	for i, model := range configModels {
		configs[i] = *model.ToDomain()
	}
	return configs, nil
}

// Save creates or updates a config. The unique (tenant_id, platform_code)
// index backs the one-config-per-pair invariant.
func (r *GormPlatformConfigRepository) Save(ctx context.Context, config *integration.PlatformConfig) error {
	model := models.PlatformConfigModelFromDomain(config)
	return r.db.WithContext(ctx).Save(model).Error
}

// TryBeginSync atomically transitions the config into syncing. The
// conditional UPDATE is the whole concurrency guard: only one caller can
// flip a non-syncing row, everyone else sees zero rows affected.
func (r *GormPlatformConfigRepository) TryBeginSync(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.PlatformConfigModel{}).
		Where("id = ? AND last_sync_status <> ?", id, integration.SyncStatusSyncing).
		Updates(map[string]any{
			"last_sync_status": integration.SyncStatusSyncing,
			"last_sync_error":  "",
			"updated_at":       time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		// Either the row does not exist or it is already syncing;
		// disambiguate so a missing config is not mistaken for a lock.
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.PlatformConfigModel{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return false, err
		}
		if count == 0 {
			return false, integration.ErrConfigNotFound
		}
		return false, nil
	}
	return true, nil
}

// UpdateSyncStatus writes the terminal status of a finished sync attempt
func (r *GormPlatformConfigRepository) UpdateSyncStatus(ctx context.Context, id uuid.UUID, status integration.SyncStatus, errorMessage string) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&models.PlatformConfigModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"last_sync_status": status,
			"last_sync_error":  errorMessage,
			"last_synced_at":   now,
			"updated_at":       now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return integration.ErrConfigNotFound
	}
	return nil
}

// Ensure GormPlatformConfigRepository implements PlatformConfigRepository
var _ integration.PlatformConfigRepository = (*GormPlatformConfigRepository)(nil)
