package integration

import (
	"time"

	"github.com/google/uuid"

	"github.com/lms/backend/internal/domain/integration"
)

// UpsertConfigInput carries a create-or-update request for a platform
// config. Nil pointer fields keep the stored value on update; on create
// they take the documented defaults.
type UpsertConfigInput struct {
	PlatformCode         string            `json:"platform_code"`
	Credentials          map[string]string `json:"credentials"`
	Enabled              *bool             `json:"enabled"`
	SyncFrequencyMinutes *int              `json:"sync_frequency_minutes"`
}

// ConfigView is the outward representation of a platform config.
// Credentials never leave the service; only their key names do.
type ConfigView struct {
	ID                   uuid.UUID  `json:"id"`
	PlatformCode         string     `json:"platform_code"`
	DisplayName          string     `json:"display_name"`
	Enabled              bool       `json:"enabled"`
	SyncFrequencyMinutes int        `json:"sync_frequency_minutes"`
	CredentialKeys       []string   `json:"credential_keys"`
	LastSyncedAt         *time.Time `json:"last_synced_at,omitempty"`
	LastSyncStatus       string     `json:"last_sync_status"`
	LastSyncError        string     `json:"last_sync_error,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// NewConfigView maps a domain config into its view.
func NewConfigView(cfg *integration.PlatformConfig) ConfigView {
	keys := make([]string, 0, len(cfg.Credentials))
	for k := range cfg.Credentials {
		keys = append(keys, k)
	}
	return ConfigView{
		ID:                   cfg.ID,
		PlatformCode:         cfg.PlatformCode.String(),
		DisplayName:          cfg.PlatformCode.DisplayName(),
		Enabled:              cfg.Enabled,
		SyncFrequencyMinutes: cfg.SyncFrequencyMinutes,
		CredentialKeys:       keys,
		LastSyncedAt:         cfg.LastSyncedAt,
		LastSyncStatus:       cfg.LastSyncStatus.String(),
		LastSyncError:        cfg.LastSyncError,
		CreatedAt:            cfg.CreatedAt,
		UpdatedAt:            cfg.UpdatedAt,
	}
}

// SyncResultView is the outward representation of one sync run.
type SyncResultView struct {
	PlatformCode      string   `json:"platform_code"`
	Status            string   `json:"status"`
	EnrollmentsSynced int      `json:"enrollments_synced"`
	ProgressSynced    int      `json:"progress_synced"`
	ErrorCount        int      `json:"error_count"`
	Errors            []string `json:"errors,omitempty"`
	DurationMS        int64    `json:"duration_ms"`
}

// NewSyncResultView maps a domain sync result into its view.
func NewSyncResultView(r *integration.SyncResult) SyncResultView {
	return SyncResultView{
		PlatformCode:      r.PlatformCode.String(),
		Status:            r.Status.String(),
		EnrollmentsSynced: r.EnrollmentsSynced,
		ProgressSynced:    r.ProgressSynced,
		ErrorCount:        r.ErrorCount,
		Errors:            r.Errors,
		DurationMS:        r.Duration.Milliseconds(),
	}
}

// SyncSummaryView aggregates a fan-out run across platforms.
type SyncSummaryView struct {
	TotalEnrollments int              `json:"total_enrollments"`
	TotalProgress    int              `json:"total_progress"`
	TotalErrors      int              `json:"total_errors"`
	Results          []SyncResultView `json:"results"`
}

// NewSyncSummaryView maps a fan-out summary into its view.
func NewSyncSummaryView(s integration.SyncSummary) SyncSummaryView {
	views := make([]SyncResultView, 0, len(s.Results))
	for i := range s.Results {
		views = append(views, NewSyncResultView(&s.Results[i]))
	}
	return SyncSummaryView{
		TotalEnrollments: s.TotalEnrollments,
		TotalProgress:    s.TotalProgress,
		TotalErrors:      s.TotalErrors,
		Results:          views,
	}
}

// ProgressRecordView is the outward representation of one normalized
// progress row.
type ProgressRecordView struct {
	ID              uuid.UUID  `json:"id"`
	PlatformCode    string     `json:"platform_code"`
	UserID          uuid.UUID  `json:"user_id"`
	RemoteCourseID  string     `json:"remote_course_id"`
	CourseTitle     string     `json:"course_title"`
	ProgressPercent string     `json:"progress_percent"`
	Status          string     `json:"status"`
	LastActivityAt  *time.Time `json:"last_activity_at,omitempty"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// NewProgressRecordView maps a domain progress record into its view.
func NewProgressRecordView(r *integration.ExternalProgressRecord) ProgressRecordView {
	return ProgressRecordView{
		ID:              r.ID,
		PlatformCode:    r.PlatformCode.String(),
		UserID:          r.UserID,
		RemoteCourseID:  r.RemoteCourseID,
		CourseTitle:     r.CourseTitle,
		ProgressPercent: r.ProgressPercent.String(),
		Status:          r.Status.String(),
		LastActivityAt:  r.LastActivityAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
