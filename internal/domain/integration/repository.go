package integration

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// PlatformConfigRepository
// ---------------------------------------------------------------------------

// PlatformConfigRepository persists per-tenant platform configurations.
type PlatformConfigRepository interface {
	// FindByID finds a config by its ID, or ErrConfigNotFound
	FindByID(ctx context.Context, id uuid.UUID) (*PlatformConfig, error)

	// FindByTenantAndPlatform finds the single config for a pair,
	// or ErrConfigNotFound
	FindByTenantAndPlatform(ctx context.Context, tenantID uuid.UUID, code PlatformCode) (*PlatformConfig, error)

	// FindAllForTenant returns every config a tenant has saved
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]PlatformConfig, error)

	// FindEnabledForTenant returns only configs with Enabled=true
	FindEnabledForTenant(ctx context.Context, tenantID uuid.UUID) ([]PlatformConfig, error)

	// Save creates or updates a config. The (tenant, platform) uniqueness
	// invariant is enforced here: saving an existing pair updates in place.
	Save(ctx context.Context, config *PlatformConfig) error

	// TryBeginSync atomically transitions the config from any terminal
	// status to syncing. It returns false when the config is already
	// syncing, which callers surface as ErrSyncInProgress.
	TryBeginSync(ctx context.Context, id uuid.UUID) (bool, error)

	// UpdateSyncStatus writes the terminal status, error message and
	// last-synced timestamp of a finished sync attempt.
	UpdateSyncStatus(ctx context.Context, id uuid.UUID, status SyncStatus, errorMessage string) error
}

// ---------------------------------------------------------------------------
// ProgressRepository
// ---------------------------------------------------------------------------

// ProgressFilter narrows progress listings.
type ProgressFilter struct {
	// PlatformCode filters by platform (optional)
	PlatformCode *PlatformCode
	// UserID filters by resolved local user (optional)
	UserID *uuid.UUID
	// Status filters by canonical progress status (optional)
	Status *ProgressStatus
	Limit  int
	Offset int
}

// PlatformProgressCount is one platform's share of a tenant's records.
type PlatformProgressCount struct {
	PlatformCode PlatformCode `json:"platform_code"`
	Count        int64        `json:"count"`
}

// ProgressSummary aggregates a tenant's normalized progress for dashboards.
type ProgressSummary struct {
	TotalCourses     int64                   `json:"total_courses"`
	CompletedCourses int64                   `json:"completed_courses"`
	CompletionRate   decimal.Decimal         `json:"completion_rate"`
	PerPlatform      []PlatformProgressCount `json:"per_platform"`
	MostActive       PlatformCode            `json:"most_active_platform"`
}

// ProgressRepository persists normalized enrollment and progress rows.
// All writes are individually atomic upserts keyed by
// (tenant, platform, remote course, user).
type ProgressRepository interface {
	// UpsertEnrollment inserts or updates one enrollment row
	UpsertEnrollment(ctx context.Context, e *ExternalEnrollment) error

	// UpsertProgress inserts or updates one progress row
	UpsertProgress(ctx context.Context, p *ExternalProgressRecord) error

	// ListProgress returns a tenant's progress rows with filters and the
	// unpaginated total
	ListProgress(ctx context.Context, tenantID uuid.UUID, filter ProgressFilter) ([]ExternalProgressRecord, int64, error)

	// CountEnrollments returns the tenant's enrollment row count for a
	// platform, used by idempotence checks and the system handler
	CountEnrollments(ctx context.Context, tenantID uuid.UUID, code PlatformCode) (int64, error)

	// Summary computes dashboard aggregates over a tenant's records
	Summary(ctx context.Context, tenantID uuid.UUID) (*ProgressSummary, error)
}

// ---------------------------------------------------------------------------
// UserResolver
// ---------------------------------------------------------------------------

// UserResolver maps a remote learner identity to a local user. The profile
// store behind it is owned elsewhere; the sync engine only consumes it.
type UserResolver interface {
	// ResolveByEmail returns the local user ID for an email within a
	// tenant, or ErrUserNotFound
	ResolveByEmail(ctx context.Context, tenantID uuid.UUID, email string) (uuid.UUID, error)
}
