package integration

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lms/backend/internal/domain/integration"
)

// Creation defaults when the input leaves the fields unset.
const (
	defaultSyncFrequencyMinutes = 60
	defaultEnabled              = true
)

// ConfigService manages per-tenant platform configurations.
type ConfigService struct {
	configRepo integration.PlatformConfigRepository
	registry   integration.AdapterRegistry
	logger     *zap.Logger
}

// NewConfigService creates a ConfigService.
func NewConfigService(configRepo integration.PlatformConfigRepository, registry integration.AdapterRegistry, logger *zap.Logger) *ConfigService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConfigService{configRepo: configRepo, registry: registry, logger: logger}
}

// UpsertConfig creates or updates the tenant's config for one platform.
// A tenant has at most one config per platform; updates merge only the
// fields the input carries, so a credential rotation does not reset the
// sync cadence and vice versa.
func (s *ConfigService) UpsertConfig(ctx context.Context, tenantID uuid.UUID, in UpsertConfigInput) (*ConfigView, error) {
	code := integration.PlatformCode(in.PlatformCode)
	if !code.IsValid() {
		return nil, fmt.Errorf("%w: %q", integration.ErrUnknownPlatform, in.PlatformCode)
	}
	// The registry is the source of truth for which platforms are wired.
	if _, err := s.registry.GetAdapter(code); err != nil {
		return nil, err
	}

	cfg, err := s.configRepo.FindByTenantAndPlatform(ctx, tenantID, code)
	switch {
	case errors.Is(err, integration.ErrConfigNotFound):
		cfg, err = s.createConfig(tenantID, code, in)
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		if err := s.applyUpdate(cfg, in); err != nil {
			return nil, err
		}
	}

	if err := s.configRepo.Save(ctx, cfg); err != nil {
		return nil, err
	}

	s.logger.Info("platform config upserted",
		zap.String("tenant_id", tenantID.String()),
		zap.String("platform_code", code.String()),
		zap.Bool("enabled", cfg.Enabled),
	)
	view := NewConfigView(cfg)
	return &view, nil
}

func (s *ConfigService) createConfig(tenantID uuid.UUID, code integration.PlatformCode, in UpsertConfigInput) (*integration.PlatformConfig, error) {
	if len(in.Credentials) == 0 {
		return nil, integration.ErrMissingCredentials
	}
	enabled := defaultEnabled
	if in.Enabled != nil {
		enabled = *in.Enabled
	}
	freq := defaultSyncFrequencyMinutes
	if in.SyncFrequencyMinutes != nil {
		freq = *in.SyncFrequencyMinutes
	}
	return integration.NewPlatformConfig(tenantID, code, integration.Credentials(in.Credentials), enabled, freq)
}

func (s *ConfigService) applyUpdate(cfg *integration.PlatformConfig, in UpsertConfigInput) error {
	if in.Credentials != nil {
		if len(in.Credentials) == 0 {
			return integration.ErrMissingCredentials
		}
		cfg.UpdateCredentials(integration.Credentials(in.Credentials))
	}
	if in.Enabled != nil {
		cfg.SetEnabled(*in.Enabled)
	}
	if in.SyncFrequencyMinutes != nil {
		if err := cfg.SetSyncFrequency(*in.SyncFrequencyMinutes); err != nil {
			return err
		}
	}
	return nil
}

// GetConfig returns the tenant's config for one platform.
func (s *ConfigService) GetConfig(ctx context.Context, tenantID uuid.UUID, code integration.PlatformCode) (*ConfigView, error) {
	if !code.IsValid() {
		return nil, fmt.Errorf("%w: %q", integration.ErrUnknownPlatform, code)
	}
	cfg, err := s.configRepo.FindByTenantAndPlatform(ctx, tenantID, code)
	if err != nil {
		return nil, err
	}
	view := NewConfigView(cfg)
	return &view, nil
}

// ListConfigs returns every config of the tenant, configured or not
// enabled alike. Platforms with no stored config are simply absent.
func (s *ConfigService) ListConfigs(ctx context.Context, tenantID uuid.UUID) ([]ConfigView, error) {
	configs, err := s.configRepo.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	views := make([]ConfigView, 0, len(configs))
	for i := range configs {
		views = append(views, NewConfigView(&configs[i]))
	}
	return views, nil
}

// SetEnabled toggles a platform on or off without touching anything
// else. Disabling does not delete credentials or history.
func (s *ConfigService) SetEnabled(ctx context.Context, tenantID uuid.UUID, code integration.PlatformCode, enabled bool) (*ConfigView, error) {
	if !code.IsValid() {
		return nil, fmt.Errorf("%w: %q", integration.ErrUnknownPlatform, code)
	}
	cfg, err := s.configRepo.FindByTenantAndPlatform(ctx, tenantID, code)
	if err != nil {
		return nil, err
	}
	cfg.SetEnabled(enabled)
	if err := s.configRepo.Save(ctx, cfg); err != nil {
		return nil, err
	}
	view := NewConfigView(cfg)
	return &view, nil
}
