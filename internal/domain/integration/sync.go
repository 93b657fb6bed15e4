package integration

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// SyncStatus
// ---------------------------------------------------------------------------

// SyncStatus is the lifecycle state of a platform config's last sync.
// "syncing" doubles as the concurrency lock: a config already in syncing
// state rejects new sync attempts instead of double-running.
type SyncStatus string

const (
	// SyncStatusIdle indicates the config has never been synced
	SyncStatusIdle SyncStatus = "idle"
	// SyncStatusSyncing indicates a sync is currently running
	SyncStatusSyncing SyncStatus = "syncing"
	// SyncStatusSuccess indicates the last sync completed its fetch phase
	SyncStatusSuccess SyncStatus = "success"
	// SyncStatusError indicates the last sync failed before or during fetch
	SyncStatusError SyncStatus = "error"
	// SyncStatusCancelled indicates the last sync was cancelled mid-flight
	SyncStatusCancelled SyncStatus = "cancelled"
)

// IsValid returns true if the status is valid
func (s SyncStatus) IsValid() bool {
	switch s {
	case SyncStatusIdle, SyncStatusSyncing, SyncStatusSuccess, SyncStatusError, SyncStatusCancelled:
		return true
	default:
		return false
	}
}

// String returns the string representation of SyncStatus
func (s SyncStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the status allows a new sync to start.
func (s SyncStatus) IsTerminal() bool {
	return s != SyncStatusSyncing
}

// ---------------------------------------------------------------------------
// ProgressStatus
// ---------------------------------------------------------------------------

// ProgressStatus is the canonical course progress state. Vendor status
// strings are folded into this set by the normalizer.
type ProgressStatus string

const (
	ProgressStatusNotStarted ProgressStatus = "not_started"
	ProgressStatusInProgress ProgressStatus = "in_progress"
	ProgressStatusCompleted  ProgressStatus = "completed"
)

// IsValid returns true if the status is valid
func (s ProgressStatus) IsValid() bool {
	switch s {
	case ProgressStatusNotStarted, ProgressStatusInProgress, ProgressStatusCompleted:
		return true
	default:
		return false
	}
}

// String returns the string representation of ProgressStatus
func (s ProgressStatus) String() string {
	return string(s)
}

// ---------------------------------------------------------------------------
// PlatformConfig
// ---------------------------------------------------------------------------

// Sync frequency bounds in minutes.
const (
	MinSyncFrequencyMinutes = 15
	MaxSyncFrequencyMinutes = 1440
)

// PlatformConfig holds one tenant's connection to one external platform.
// At most one config exists per (tenant, platform) pair; saving again
// updates the existing row. Configs are never hard-deleted, disabling
// sets Enabled to false.
type PlatformConfig struct {
	ID       uuid.UUID
	TenantID uuid.UUID
	// PlatformCode identifies which vendor this config connects to
	PlatformCode PlatformCode
	// Credentials is the opaque secret map passed to the adapter
	Credentials Credentials
	// Enabled gates participation in syncs and fan-out
	Enabled bool
	// SyncFrequencyMinutes is advisory cadence for an external scheduler,
	// bounded to [15, 1440]. The engine itself never loops.
	SyncFrequencyMinutes int
	// LastSyncStatus is the terminal state of the most recent sync attempt
	LastSyncStatus SyncStatus
	// LastSyncError holds the terminal error message, empty on success
	LastSyncError string
	// LastSyncedAt is when the most recent sync attempt finished
	LastSyncedAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewPlatformConfig creates a config for a tenant/platform pair.
func NewPlatformConfig(tenantID uuid.UUID, code PlatformCode, creds Credentials, enabled bool, frequencyMinutes int) (*PlatformConfig, error) {
	if tenantID == uuid.Nil {
		return nil, ErrInvalidTenantID
	}
	if !code.IsValid() {
		return nil, ErrUnknownPlatform
	}
	if frequencyMinutes < MinSyncFrequencyMinutes || frequencyMinutes > MaxSyncFrequencyMinutes {
		return nil, ErrInvalidSyncFrequency
	}
	now := time.Now()
	return &PlatformConfig{
		ID:                   uuid.New(),
		TenantID:             tenantID,
		PlatformCode:         code,
		Credentials:          creds,
		Enabled:              enabled,
		SyncFrequencyMinutes: frequencyMinutes,
		LastSyncStatus:       SyncStatusIdle,
		CreatedAt:            now,
		UpdatedAt:            now,
	}, nil
}

// UpdateCredentials replaces the stored credential map.
func (c *PlatformConfig) UpdateCredentials(creds Credentials) {
	c.Credentials = creds
	c.UpdatedAt = time.Now()
}

// SetEnabled flips the enabled flag. Disabling is the soft-delete.
func (c *PlatformConfig) SetEnabled(enabled bool) {
	c.Enabled = enabled
	c.UpdatedAt = time.Now()
}

// SetSyncFrequency updates the advisory cadence, enforcing the bounds.
func (c *PlatformConfig) SetSyncFrequency(minutes int) error {
	if minutes < MinSyncFrequencyMinutes || minutes > MaxSyncFrequencyMinutes {
		return ErrInvalidSyncFrequency
	}
	c.SyncFrequencyMinutes = minutes
	c.UpdatedAt = time.Now()
	return nil
}

// ---------------------------------------------------------------------------
// Normalized records
// ---------------------------------------------------------------------------

// ExternalEnrollment is one user's enrollment in one remote course,
// normalized from a vendor payload. Upserts are keyed by
// (tenant, platform, remote course, user) so re-syncing unchanged remote
// state never creates duplicate rows.
type ExternalEnrollment struct {
	ID             uuid.UUID
	TenantID       uuid.UUID
	PlatformCode   PlatformCode
	RemoteCourseID string
	UserID         uuid.UUID
	EnrolledAt     time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ExternalProgressRecord is one user's progress in one remote course.
// Same idempotent upsert key as ExternalEnrollment. Mutated only by sync,
// read-only to the rest of the system.
type ExternalProgressRecord struct {
	ID             uuid.UUID
	TenantID       uuid.UUID
	PlatformCode   PlatformCode
	UserID         uuid.UUID
	RemoteCourseID string
	CourseTitle    string
	// ProgressPercent is clamped to [0, 100]
	ProgressPercent decimal.Decimal
	Status          ProgressStatus
	LastActivityAt  *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ---------------------------------------------------------------------------
// SyncResult
// ---------------------------------------------------------------------------

// MaxSyncResultErrors bounds the per-record error sample carried in a
// SyncResult. Errors beyond the bound are counted but not retained.
const MaxSyncResultErrors = 25

// SyncResult reports one platform sync. It is ephemeral, never persisted.
type SyncResult struct {
	PlatformCode      PlatformCode  `json:"platform_code"`
	Status            SyncStatus    `json:"status"`
	EnrollmentsSynced int           `json:"enrollments_synced"`
	ProgressSynced    int           `json:"progress_synced"`
	Errors            []string      `json:"errors"`
	ErrorCount        int           `json:"error_count"`
	Duration          time.Duration `json:"duration_ms"`
}

// NewSyncResult creates an empty result for a platform.
func NewSyncResult(code PlatformCode) *SyncResult {
	return &SyncResult{
		PlatformCode: code,
		Status:       SyncStatusSyncing,
		Errors:       make([]string, 0),
	}
}

// AddError appends a per-record error, keeping the ordered sample bounded.
func (r *SyncResult) AddError(msg string) {
	r.ErrorCount++
	if len(r.Errors) < MaxSyncResultErrors {
		r.Errors = append(r.Errors, msg)
	}
}

// Complete marks the result with its terminal status and duration.
func (r *SyncResult) Complete(status SyncStatus, started time.Time) {
	r.Status = status
	r.Duration = time.Since(started)
}

// SyncSummary aggregates a fan-out run for callers that want one line of
// totals alongside the per-platform detail.
type SyncSummary struct {
	TotalEnrollments int          `json:"total_enrollments"`
	TotalProgress    int          `json:"total_progress"`
	TotalErrors      int          `json:"total_errors"`
	Results          []SyncResult `json:"results"`
}

// Summarize folds per-platform results into totals.
func Summarize(results []SyncResult) SyncSummary {
	s := SyncSummary{Results: results}
	for _, r := range results {
		s.TotalEnrollments += r.EnrollmentsSynced
		s.TotalProgress += r.ProgressSynced
		s.TotalErrors += r.ErrorCount
	}
	return s
}
