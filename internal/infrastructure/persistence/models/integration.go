package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lms/backend/internal/domain/integration"
)

// ---------------------------------------------------------------------------
// PlatformConfigModel
// ---------------------------------------------------------------------------

// PlatformConfigModel is the persistence model for the PlatformConfig
// domain entity. The (tenant_id, platform_code) unique index enforces the
// one-config-per-pair invariant at the storage layer.
type PlatformConfigModel struct {
	ID                   uuid.UUID                `gorm:"type:uuid;primary_key"`
	TenantID             uuid.UUID                `gorm:"type:uuid;not null;uniqueIndex:idx_platform_config_tenant_platform,priority:1"`
	PlatformCode         integration.PlatformCode `gorm:"type:varchar(20);not null;uniqueIndex:idx_platform_config_tenant_platform,priority:2"`
	CredentialsJSON      string                   `gorm:"type:jsonb;column:credentials"`
	Enabled              bool                     `gorm:"not null;default:true;index"`
	SyncFrequencyMinutes int                      `gorm:"not null;default:60"`
	LastSyncStatus       integration.SyncStatus   `gorm:"type:varchar(20);not null;default:'idle'"`
	LastSyncError        string                   `gorm:"type:text"`
	LastSyncedAt         *time.Time               `gorm:"index"`
	CreatedAt            time.Time                `gorm:"not null"`
	UpdatedAt            time.Time                `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PlatformConfigModel) TableName() string {
	return "platform_configs"
}

// ToDomain converts the persistence model to a domain PlatformConfig entity.
func (m *PlatformConfigModel) ToDomain() *integration.PlatformConfig {
	cfg := &integration.PlatformConfig{
		ID:                   m.ID,
		TenantID:             m.TenantID,
		PlatformCode:         m.PlatformCode,
		Credentials:          integration.Credentials{},
		Enabled:              m.Enabled,
		SyncFrequencyMinutes: m.SyncFrequencyMinutes,
		LastSyncStatus:       m.LastSyncStatus,
		LastSyncError:        m.LastSyncError,
		LastSyncedAt:         m.LastSyncedAt,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}

	if m.CredentialsJSON != "" {
		var creds integration.Credentials
		if err := json.Unmarshal([]byte(m.CredentialsJSON), &creds); err == nil {
			cfg.Credentials = creds
		}
	}

	return cfg
}

// FromDomain populates the persistence model from a domain PlatformConfig entity.
func (m *PlatformConfigModel) FromDomain(cfg *integration.PlatformConfig) {
	m.ID = cfg.ID
	m.TenantID = cfg.TenantID
	m.PlatformCode = cfg.PlatformCode
	m.Enabled = cfg.Enabled
	m.SyncFrequencyMinutes = cfg.SyncFrequencyMinutes
	m.LastSyncStatus = cfg.LastSyncStatus
	m.LastSyncError = cfg.LastSyncError
	m.LastSyncedAt = cfg.LastSyncedAt
	m.CreatedAt = cfg.CreatedAt
	m.UpdatedAt = cfg.UpdatedAt

	if len(cfg.Credentials) > 0 {
		if jsonBytes, err := json.Marshal(cfg.Credentials); err == nil {
			m.CredentialsJSON = string(jsonBytes)
		}
	} else {
		m.CredentialsJSON = "{}"
	}
}

// PlatformConfigModelFromDomain creates a new persistence model from a domain PlatformConfig entity.
func PlatformConfigModelFromDomain(cfg *integration.PlatformConfig) *PlatformConfigModel {
	m := &PlatformConfigModel{}
	m.FromDomain(cfg)
	return m
}

// ---------------------------------------------------------------------------
// ExternalEnrollmentModel
// ---------------------------------------------------------------------------

// ExternalEnrollmentModel is the persistence model for ExternalEnrollment.
// The composite unique index is the idempotent upsert key: re-syncing
// unchanged remote state updates in place instead of duplicating rows.
type ExternalEnrollmentModel struct {
	ID             uuid.UUID                `gorm:"type:uuid;primary_key"`
	TenantID       uuid.UUID                `gorm:"type:uuid;not null;uniqueIndex:idx_ext_enrollment_key,priority:1"`
	PlatformCode   integration.PlatformCode `gorm:"type:varchar(20);not null;uniqueIndex:idx_ext_enrollment_key,priority:2"`
	RemoteCourseID string                   `gorm:"type:varchar(100);not null;uniqueIndex:idx_ext_enrollment_key,priority:3"`
	UserID         uuid.UUID                `gorm:"type:uuid;not null;uniqueIndex:idx_ext_enrollment_key,priority:4;index:idx_ext_enrollment_user"`
	EnrolledAt     time.Time                `gorm:"not null"`
	CreatedAt      time.Time                `gorm:"not null"`
	UpdatedAt      time.Time                `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ExternalEnrollmentModel) TableName() string {
	return "external_enrollments"
}

// ToDomain converts the persistence model to a domain ExternalEnrollment.
func (m *ExternalEnrollmentModel) ToDomain() *integration.ExternalEnrollment {
	return &integration.ExternalEnrollment{
		ID:             m.ID,
		TenantID:       m.TenantID,
		PlatformCode:   m.PlatformCode,
		RemoteCourseID: m.RemoteCourseID,
		UserID:         m.UserID,
		EnrolledAt:     m.EnrolledAt,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// ExternalEnrollmentModelFromDomain creates a persistence model from a domain ExternalEnrollment.
func ExternalEnrollmentModelFromDomain(e *integration.ExternalEnrollment) *ExternalEnrollmentModel {
	return &ExternalEnrollmentModel{
		ID:             e.ID,
		TenantID:       e.TenantID,
		PlatformCode:   e.PlatformCode,
		RemoteCourseID: e.RemoteCourseID,
		UserID:         e.UserID,
		EnrolledAt:     e.EnrolledAt,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

// ---------------------------------------------------------------------------
// ExternalProgressRecordModel
// ---------------------------------------------------------------------------

// ExternalProgressRecordModel is the persistence model for
// ExternalProgressRecord, sharing the upsert key shape of enrollments.
type ExternalProgressRecordModel struct {
	ID              uuid.UUID                  `gorm:"type:uuid;primary_key"`
	TenantID        uuid.UUID                  `gorm:"type:uuid;not null;uniqueIndex:idx_ext_progress_key,priority:1"`
	PlatformCode    integration.PlatformCode   `gorm:"type:varchar(20);not null;uniqueIndex:idx_ext_progress_key,priority:2"`
	RemoteCourseID  string                     `gorm:"type:varchar(100);not null;uniqueIndex:idx_ext_progress_key,priority:3"`
	UserID          uuid.UUID                  `gorm:"type:uuid;not null;uniqueIndex:idx_ext_progress_key,priority:4;index:idx_ext_progress_user"`
	CourseTitle     string                     `gorm:"type:varchar(255)"`
	ProgressPercent decimal.Decimal            `gorm:"type:decimal(5,2);not null;default:0"`
	Status          integration.ProgressStatus `gorm:"type:varchar(20);not null;index"`
	LastActivityAt  *time.Time
	CreatedAt       time.Time                  `gorm:"not null"`
	UpdatedAt       time.Time                  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ExternalProgressRecordModel) TableName() string {
	return "external_progress_records"
}

// ToDomain converts the persistence model to a domain ExternalProgressRecord.
func (m *ExternalProgressRecordModel) ToDomain() *integration.ExternalProgressRecord {
	return &integration.ExternalProgressRecord{
		ID:              m.ID,
		TenantID:        m.TenantID,
		PlatformCode:    m.PlatformCode,
		UserID:          m.UserID,
		RemoteCourseID:  m.RemoteCourseID,
		CourseTitle:     m.CourseTitle,
		ProgressPercent: m.ProgressPercent,
		Status:          m.Status,
		LastActivityAt:  m.LastActivityAt,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// ExternalProgressRecordModelFromDomain creates a persistence model from a domain ExternalProgressRecord.
func ExternalProgressRecordModelFromDomain(p *integration.ExternalProgressRecord) *ExternalProgressRecordModel {
	return &ExternalProgressRecordModel{
		ID:              p.ID,
		TenantID:        p.TenantID,
		PlatformCode:    p.PlatformCode,
		RemoteCourseID:  p.RemoteCourseID,
		UserID:          p.UserID,
		CourseTitle:     p.CourseTitle,
		ProgressPercent: p.ProgressPercent,
		Status:          p.Status,
		LastActivityAt:  p.LastActivityAt,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
