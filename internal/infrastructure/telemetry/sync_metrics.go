// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/lms/backend/internal/domain/integration"
)

// ErrMeterNil is returned when a nil meter is passed to a metrics constructor.
var ErrMeterNil = errors.New("telemetry: meter is nil")

// SyncMetrics tracks platform sync activity: run counts by outcome,
// records written, and run duration. It satisfies the recorder interface
// the sync service accepts.
type SyncMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	syncStartedTotal   *Counter
	syncCompletedTotal *Counter
	recordsSyncedTotal *Counter
	rowErrorsTotal     *Counter
	syncDuration       *Histogram
}

// SyncMetricsConfig holds configuration for sync metrics.
type SyncMetricsConfig struct {
	Meter  metric.Meter
	Logger *zap.Logger
}

// NewSyncMetrics creates a new SyncMetrics instance.
func NewSyncMetrics(cfg SyncMetricsConfig) (*SyncMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	sm := &SyncMetrics{
		meter:  cfg.Meter,
		logger: logger,
	}

	var err error

	sm.syncStartedTotal, err = NewCounter(
		cfg.Meter,
		"lms_sync_started_total",
		"Total number of sync runs started",
		"{runs}",
	)
	if err != nil {
		return nil, err
	}

	sm.syncCompletedTotal, err = NewCounter(
		cfg.Meter,
		"lms_sync_completed_total",
		"Total number of sync runs completed, by terminal status",
		"{runs}",
	)
	if err != nil {
		return nil, err
	}

	sm.recordsSyncedTotal, err = NewCounter(
		cfg.Meter,
		"lms_sync_records_total",
		"Total enrollment and progress records written by sync runs",
		"{records}",
	)
	if err != nil {
		return nil, err
	}

	sm.rowErrorsTotal, err = NewCounter(
		cfg.Meter,
		"lms_sync_row_errors_total",
		"Total per-record failures skipped during sync runs",
		"{records}",
	)
	if err != nil {
		return nil, err
	}

	sm.syncDuration, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "lms_sync_duration_seconds",
		Description: "Duration of sync runs",
		Unit:        "s",
		Boundaries:  SyncDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	return sm, nil
}

// RecordSyncStarted increments the started counter for a platform.
func (sm *SyncMetrics) RecordSyncStarted(ctx context.Context, code integration.PlatformCode) {
	sm.syncStartedTotal.Inc(ctx, AttrPlatformCode.String(code.String()))
}

// RecordSyncCompleted records the outcome of a finished sync run.
func (sm *SyncMetrics) RecordSyncCompleted(ctx context.Context, result *integration.SyncResult) {
	if result == nil {
		return
	}

	attrs := []attribute.KeyValue{
		AttrPlatformCode.String(result.PlatformCode.String()),
		AttrSyncStatus.String(string(result.Status)),
	}

	sm.syncCompletedTotal.Inc(ctx, attrs...)
	sm.syncDuration.RecordDuration(ctx, result.Duration, attrs...)

	records := int64(result.EnrollmentsSynced + result.ProgressSynced)
	if records > 0 {
		sm.recordsSyncedTotal.Add(ctx, records, AttrPlatformCode.String(result.PlatformCode.String()))
	}
	if result.ErrorCount > 0 {
		sm.rowErrorsTotal.Add(ctx, int64(result.ErrorCount), AttrPlatformCode.String(result.PlatformCode.String()))
	}
}
