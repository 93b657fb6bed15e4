package integration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lms/backend/internal/domain/integration"
)

// fetchRetryDelay is the single bounded backoff applied before the one
// retry of a failed fetch phase.
const fetchRetryDelay = 2 * time.Second

// SyncMetrics records sync telemetry. Implemented by the telemetry
// package; a nil recorder disables recording.
type SyncMetrics interface {
	RecordSyncStarted(ctx context.Context, code integration.PlatformCode)
	RecordSyncCompleted(ctx context.Context, result *integration.SyncResult)
}

// SummaryCache caches a tenant's progress summary between syncs.
type SummaryCache interface {
	Get(ctx context.Context, tenantID uuid.UUID) (*integration.ProgressSummary, bool)
	Set(ctx context.Context, tenantID uuid.UUID, summary *integration.ProgressSummary)
	Invalidate(ctx context.Context, tenantID uuid.UUID)
}

// SyncService drives single-platform syncs and the fan-out across every
// enabled platform of a tenant.
type SyncService struct {
	configRepo   integration.PlatformConfigRepository
	progressRepo integration.ProgressRepository
	registry     integration.AdapterRegistry
	resolver     integration.UserResolver
	cache        SummaryCache
	metrics      SyncMetrics
	logger       *zap.Logger

	// retryDelay is overridable in tests
	retryDelay time.Duration
	// runTimeout caps one sync run when positive
	runTimeout time.Duration
}

// NewSyncService creates a SyncService. cache and metrics may be nil.
func NewSyncService(
	configRepo integration.PlatformConfigRepository,
	progressRepo integration.ProgressRepository,
	registry integration.AdapterRegistry,
	resolver integration.UserResolver,
	cache SummaryCache,
	metrics SyncMetrics,
	logger *zap.Logger,
) *SyncService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncService{
		configRepo:   configRepo,
		progressRepo: progressRepo,
		registry:     registry,
		resolver:     resolver,
		cache:        cache,
		metrics:      metrics,
		logger:       logger,
		retryDelay:   fetchRetryDelay,
	}
}

// SetSyncTuning overrides the fetch retry delay and the per-run timeout.
// Zero values keep the current settings.
func (s *SyncService) SetSyncTuning(retryDelay, runTimeout time.Duration) {
	if retryDelay > 0 {
		s.retryDelay = retryDelay
	}
	if runTimeout > 0 {
		s.runTimeout = runTimeout
	}
}

// ---------------------------------------------------------------------------
// Single-platform sync
// ---------------------------------------------------------------------------

// SyncPlatform runs a full sync for one config: credential validation,
// fetch (with one bounded retry on transport failure), normalization and
// sequential idempotent upserts. Per-row failures are collected into the
// result and never abort the run; the terminal config status is written
// before returning. The returned SyncResult is non-nil whenever the
// config itself was found, including on terminal failure.
func (s *SyncService) SyncPlatform(ctx context.Context, tenantID, configID uuid.UUID) (*integration.SyncResult, error) {
	cfg, adapter, err := s.loadConfigForSync(ctx, tenantID, configID)
	if err != nil {
		return nil, err
	}

	return s.beginSync(ctx, cfg, adapter, true)
}

// SyncPlatformChecked revalidates the stored credentials before spending
// any fetch quota or taking the sync lock. On a validation failure the
// config's sync health is updated exactly as a failed sync would. A
// passing check carries into the run, so the vendor sees one auth call.
func (s *SyncService) SyncPlatformChecked(ctx context.Context, tenantID, configID uuid.UUID) (*integration.SyncResult, error) {
	cfg, adapter, err := s.loadConfigForSync(ctx, tenantID, configID)
	if err != nil {
		return nil, err
	}

	valid, err := adapter.ValidateCredentials(ctx, cfg.Credentials)
	if err != nil {
		if isCancelled(ctx, err) {
			return nil, ctx.Err()
		}
		if stErr := s.configRepo.UpdateSyncStatus(ctx, cfg.ID, integration.SyncStatusError, err.Error()); stErr != nil {
			s.logger.Error("failed to record validation transport error", zap.Error(stErr))
		}
		return nil, fmt.Errorf("%w: %v", integration.ErrPlatformUnavailable, err)
	}
	if !valid {
		if stErr := s.configRepo.UpdateSyncStatus(ctx, cfg.ID, integration.SyncStatusError, "invalid credentials"); stErr != nil {
			s.logger.Error("failed to record invalid credentials", zap.Error(stErr))
		}
		return nil, integration.ErrInvalidCredentials
	}

	return s.beginSync(ctx, cfg, adapter, false)
}

// beginSync takes the syncing lock and runs the sync body. validate
// controls the in-run credential gate; the checked entry point has
// already validated and skips it.
func (s *SyncService) beginSync(ctx context.Context, cfg *integration.PlatformConfig, adapter integration.PlatformAdapter, validate bool) (*integration.SyncResult, error) {
	acquired, err := s.configRepo.TryBeginSync(ctx, cfg.ID)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, integration.ErrSyncInProgress
	}

	return s.runSync(ctx, cfg, adapter, validate)
}

// loadConfigForSync loads the config with tenant isolation and resolves
// its adapter. Cross-tenant access is a hard ErrConfigNotFound, never a
// filtered empty result.
func (s *SyncService) loadConfigForSync(ctx context.Context, tenantID, configID uuid.UUID) (*integration.PlatformConfig, integration.PlatformAdapter, error) {
	cfg, err := s.configRepo.FindByID(ctx, configID)
	if err != nil {
		return nil, nil, err
	}
	if cfg.TenantID != tenantID {
		return nil, nil, integration.ErrConfigNotFound
	}
	if !cfg.Enabled {
		return nil, nil, integration.ErrPlatformDisabled
	}

	adapter, err := s.registry.GetAdapter(cfg.PlatformCode)
	if err != nil {
		return nil, nil, err
	}
	return cfg, adapter, nil
}

// runSync executes the sync body. The caller has already taken the
// syncing lock; runSync always writes a terminal status before returning.
func (s *SyncService) runSync(ctx context.Context, cfg *integration.PlatformConfig, adapter integration.PlatformAdapter, validate bool) (*integration.SyncResult, error) {
	if s.runTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.runTimeout)
		defer cancel()
	}

	started := time.Now()
	result := integration.NewSyncResult(cfg.PlatformCode)

	log := s.logger.With(
		zap.String("tenant_id", cfg.TenantID.String()),
		zap.String("platform_code", cfg.PlatformCode.String()),
		zap.String("config_id", cfg.ID.String()),
	)
	log.Info("platform sync started")
	if s.metrics != nil {
		s.metrics.RecordSyncStarted(ctx, cfg.PlatformCode)
	}

	fail := func(status integration.SyncStatus, msg string, cause error) (*integration.SyncResult, error) {
		result.Complete(status, started)
		// The status write releases the syncing lock, so it must run even
		// when the request context is already cancelled.
		if stErr := s.configRepo.UpdateSyncStatus(context.WithoutCancel(ctx), cfg.ID, status, msg); stErr != nil {
			log.Error("failed to write terminal sync status", zap.Error(stErr))
		}
		if s.metrics != nil {
			s.metrics.RecordSyncCompleted(ctx, result)
		}
		log.Warn("platform sync aborted", zap.String("status", status.String()), zap.Error(cause))
		return result, cause
	}

	// Step 1: credential gate. A false return is invalid credentials and
	// never triggers a fetch; a transport error is terminal here.
	if validate {
		valid, err := adapter.ValidateCredentials(ctx, cfg.Credentials)
		if err != nil {
			if isCancelled(ctx, err) {
				return fail(integration.SyncStatusCancelled, "sync cancelled", ctx.Err())
			}
			return fail(integration.SyncStatusError, err.Error(), fmt.Errorf("%w: %v", integration.ErrPlatformUnavailable, err))
		}
		if !valid {
			return fail(integration.SyncStatusError, "invalid credentials", integration.ErrInvalidCredentials)
		}
	}

	// Step 2: fetch phase, one bounded retry on transport failure.
	rawEnrollments, err := fetchWithRetry(ctx, s.retryDelay, func(ctx context.Context) ([]integration.RemoteEnrollment, error) {
		return adapter.FetchEnrollments(ctx, cfg.Credentials)
	})
	if err != nil {
		if isCancelled(ctx, err) {
			return fail(integration.SyncStatusCancelled, "sync cancelled", ctx.Err())
		}
		return fail(integration.SyncStatusError, err.Error(), fmt.Errorf("%w: %v", integration.ErrPlatformUnavailable, err))
	}
	rawProgress, err := fetchWithRetry(ctx, s.retryDelay, func(ctx context.Context) ([]integration.RemoteProgress, error) {
		return adapter.FetchProgress(ctx, cfg.Credentials)
	})
	if err != nil {
		if isCancelled(ctx, err) {
			return fail(integration.SyncStatusCancelled, "sync cancelled", ctx.Err())
		}
		return fail(integration.SyncStatusError, err.Error(), fmt.Errorf("%w: %v", integration.ErrPlatformUnavailable, err))
	}

	// Step 3: normalization. Unresolved identities and malformed rows are
	// counted and reported, never fatal.
	normalized := integration.NormalizeRemoteData(ctx, cfg.TenantID, cfg.PlatformCode, rawEnrollments, rawProgress, s.resolver)
	for _, msg := range normalized.Errors {
		result.AddError(msg)
	}

	// Step 4: sequential upserts, enrollments before progress. Row errors
	// are collected; remaining rows still process.
	cancelled := false
	for i := range normalized.Enrollments {
		if ctx.Err() != nil {
			cancelled = true
			break
		}
		if err := s.progressRepo.UpsertEnrollment(ctx, &normalized.Enrollments[i]); err != nil {
			result.AddError(fmt.Sprintf("enrollment %s/%s: %v", normalized.Enrollments[i].RemoteCourseID, normalized.Enrollments[i].UserID, err))
			continue
		}
		result.EnrollmentsSynced++
	}
	if !cancelled {
		for i := range normalized.Progress {
			if ctx.Err() != nil {
				cancelled = true
				break
			}
			if err := s.progressRepo.UpsertProgress(ctx, &normalized.Progress[i]); err != nil {
				result.AddError(fmt.Sprintf("progress %s/%s: %v", normalized.Progress[i].RemoteCourseID, normalized.Progress[i].UserID, err))
				continue
			}
			result.ProgressSynced++
		}
	}

	if cancelled {
		// Already-upserted rows stay committed; the result reports only
		// what completed.
		result.Complete(integration.SyncStatusCancelled, started)
		if stErr := s.configRepo.UpdateSyncStatus(context.WithoutCancel(ctx), cfg.ID, integration.SyncStatusCancelled, "sync cancelled"); stErr != nil {
			log.Error("failed to write cancelled sync status", zap.Error(stErr))
		}
		if s.metrics != nil {
			s.metrics.RecordSyncCompleted(ctx, result)
		}
		log.Warn("platform sync cancelled",
			zap.Int("enrollments_synced", result.EnrollmentsSynced),
			zap.Int("progress_synced", result.ProgressSynced),
		)
		return result, ctx.Err()
	}

	// Step 5: terminal status. Row errors do not demote a completed fetch
	// phase: the sync is a success with reported skips.
	result.Complete(integration.SyncStatusSuccess, started)
	if stErr := s.configRepo.UpdateSyncStatus(ctx, cfg.ID, integration.SyncStatusSuccess, ""); stErr != nil {
		log.Error("failed to write terminal sync status", zap.Error(stErr))
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, cfg.TenantID)
	}
	if s.metrics != nil {
		s.metrics.RecordSyncCompleted(ctx, result)
	}

	log.Info("platform sync completed",
		zap.Int("enrollments_synced", result.EnrollmentsSynced),
		zap.Int("progress_synced", result.ProgressSynced),
		zap.Int("error_count", result.ErrorCount),
		zap.Int("unresolved_users", normalized.UnresolvedCount),
		zap.Duration("duration", result.Duration),
	)
	return result, nil
}

// TestCredentials validates a platform's credentials without syncing.
// When creds is nil the stored credentials are used.
func (s *SyncService) TestCredentials(ctx context.Context, tenantID uuid.UUID, code integration.PlatformCode, creds integration.Credentials) (bool, error) {
	adapter, err := s.registry.GetAdapter(code)
	if err != nil {
		return false, err
	}
	if creds == nil {
		cfg, err := s.configRepo.FindByTenantAndPlatform(ctx, tenantID, code)
		if err != nil {
			return false, err
		}
		creds = cfg.Credentials
	}
	return adapter.ValidateCredentials(ctx, creds)
}

// ---------------------------------------------------------------------------
// Fan-out
// ---------------------------------------------------------------------------

// SyncAllPlatforms syncs every enabled config of a tenant concurrently
// and isolates failures per platform: one platform's terminal failure
// never aborts the others. Results come back in stored-config order, one
// per enabled config. Disabled platforms are absent from the result.
func (s *SyncService) SyncAllPlatforms(ctx context.Context, tenantID uuid.UUID) ([]integration.SyncResult, error) {
	configs, err := s.configRepo.FindEnabledForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if len(configs) == 0 {
		return []integration.SyncResult{}, nil
	}

	results := make([]integration.SyncResult, len(configs))
	done := make(chan int, len(configs))

	// Concurrency is naturally bounded by the closed platform enum: a
	// tenant has at most one enabled config per platform.
	for i := range configs {
		go func(i int) {
			defer func() { done <- i }()
			cfg := configs[i]
			res, err := s.SyncPlatform(ctx, tenantID, cfg.ID)
			if res == nil {
				res = integration.NewSyncResult(cfg.PlatformCode)
				res.Status = integration.SyncStatusError
			}
			if err != nil && !errors.Is(err, context.Canceled) {
				res.AddError(err.Error())
			}
			results[i] = *res
		}(i)
	}
	for range configs {
		<-done
	}

	return results, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// fetchWithRetry runs fn, retrying exactly once after a short delay when
// the first attempt fails for a reason other than cancellation.
func fetchWithRetry[T any](ctx context.Context, delay time.Duration, fn func(context.Context) ([]T, error)) ([]T, error) {
	rows, err := fn(ctx)
	if err == nil {
		return rows, nil
	}
	if isCancelled(ctx, err) {
		return nil, err
	}

	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return fn(ctx)
}

func isCancelled(ctx context.Context, err error) bool {
	return ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
