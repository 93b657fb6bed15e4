package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lms/backend/internal/domain/integration"
	"github.com/lms/backend/internal/infrastructure/persistence/models"
)

// progressUpsertKey is the conflict target shared by enrollment and
// progress upserts.
var progressUpsertKey = []clause.Column{
	{Name: "tenant_id"},
	{Name: "platform_code"},
	{Name: "remote_course_id"},
	{Name: "user_id"},
}

// GormProgressRepository implements ProgressRepository using GORM
type GormProgressRepository struct {
	db *gorm.DB
}

// NewGormProgressRepository creates a new GormProgressRepository
func NewGormProgressRepository(db *gorm.DB) *GormProgressRepository {
	return &GormProgressRepository{db: db}
}

// ---------------------------------------------------------------------------
// Upserts
// ---------------------------------------------------------------------------

// UpsertEnrollment inserts or updates one enrollment row keyed by
// (tenant, platform, remote course, user).
func (r *GormProgressRepository) UpsertEnrollment(ctx context.Context, e *integration.ExternalEnrollment) error {
	model := models.ExternalEnrollmentModelFromDomain(e)
	now := time.Now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
	}
	model.UpdatedAt = now

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   progressUpsertKey,
			DoUpdates: clause.AssignmentColumns([]string{"enrolled_at", "updated_at"}),
		}).
		Create(model).Error
}

// UpsertProgress inserts or updates one progress row, same key as
// enrollments.
func (r *GormProgressRepository) UpsertProgress(ctx context.Context, p *integration.ExternalProgressRecord) error {
	model := models.ExternalProgressRecordModelFromDomain(p)
	now := time.Now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
	}
	model.UpdatedAt = now

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: progressUpsertKey,
			DoUpdates: clause.AssignmentColumns([]string{
				"course_title", "progress_percent", "status", "last_activity_at", "updated_at",
			}),
		}).
		Create(model).Error
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

// ListProgress returns a tenant's progress rows with filters and the
// unpaginated total
func (r *GormProgressRepository) ListProgress(ctx context.Context, tenantID uuid.UUID, filter integration.ProgressFilter) ([]integration.ExternalProgressRecord, int64, error) {
	var total int64
	countQuery := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.ExternalProgressRecordModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.ExternalProgressRecordModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)
	var recordModels []models.ExternalProgressRecordModel
	if err := listQuery.
		Order("updated_at DESC, remote_course_id ASC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&recordModels).Error; err != nil {
		return nil, 0, err
	}

	records := make([]integration.ExternalProgressRecord, len(recordModels))
	for i, model := range recordModels {
		records[i] = *model.ToDomain()
	}
	return records, total, nil
}

// CountEnrollments returns the tenant's enrollment row count for a platform
func (r *GormProgressRepository) CountEnrollments(ctx context.Context, tenantID uuid.UUID, code integration.PlatformCode) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ExternalEnrollmentModel{}).
		Where("tenant_id = ? AND platform_code = ?", tenantID, code).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Summary computes dashboard aggregates over a tenant's progress records
func (r *GormProgressRepository) Summary(ctx context.Context, tenantID uuid.UUID) (*integration.ProgressSummary, error) {
	summary := &integration.ProgressSummary{
		CompletionRate: decimal.Zero,
		PerPlatform:    make([]integration.PlatformProgressCount, 0),
	}

	base := r.db.WithContext(ctx).
		Model(&models.ExternalProgressRecordModel{}).
		Where("tenant_id = ?", tenantID)

	if err := base.Session(&gorm.Session{}).Count(&summary.TotalCourses).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).
		Where("status = ?", integration.ProgressStatusCompleted).
		Count(&summary.CompletedCourses).Error; err != nil {
		return nil, err
	}

	type platformRow struct {
		PlatformCode integration.PlatformCode
		Count        int64
	}
	var rows []platformRow
	if err := base.Session(&gorm.Session{}).
		Select("platform_code, COUNT(*) AS count").
		Group("platform_code").
		Order("count DESC, platform_code ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for i, row := range rows {
		summary.PerPlatform = append(summary.PerPlatform, integration.PlatformProgressCount{
			PlatformCode: row.PlatformCode,
			Count:        row.Count,
		})
		if i == 0 {
			summary.MostActive = row.PlatformCode
		}
	}

	if summary.TotalCourses > 0 {
		summary.CompletionRate = decimal.NewFromInt(summary.CompletedCourses).
			Div(decimal.NewFromInt(summary.TotalCourses)).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	return summary, nil
}

// ---------------------------------------------------------------------------
// Filter helpers
// ---------------------------------------------------------------------------

// applyFilter applies filter options to the query
func (r *GormProgressRepository) applyFilter(query *gorm.DB, filter integration.ProgressFilter) *gorm.DB {
	if filter.PlatformCode != nil && filter.PlatformCode.IsValid() {
		query = query.Where("platform_code = ?", *filter.PlatformCode)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != nil && filter.Status.IsValid() {
		query = query.Where("status = ?", *filter.Status)
	}
	return query
}

// Ensure GormProgressRepository implements ProgressRepository
var _ integration.ProgressRepository = (*GormProgressRepository)(nil)
