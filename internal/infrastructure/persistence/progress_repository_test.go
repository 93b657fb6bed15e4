package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lms/backend/internal/domain/integration"
)

func newEnrollment(tenantID, userID uuid.UUID, code integration.PlatformCode, courseID string) *integration.ExternalEnrollment {
	return &integration.ExternalEnrollment{
		ID:             uuid.New(),
		TenantID:       tenantID,
		PlatformCode:   code,
		RemoteCourseID: courseID,
		UserID:         userID,
		EnrolledAt:     time.Now().Add(-24 * time.Hour),
	}
}

func newProgressRecord(tenantID, userID uuid.UUID, code integration.PlatformCode, courseID string, pct int64, status integration.ProgressStatus) *integration.ExternalProgressRecord {
	return &integration.ExternalProgressRecord{
		ID:              uuid.New(),
		TenantID:        tenantID,
		PlatformCode:    code,
		UserID:          userID,
		RemoteCourseID:  courseID,
		CourseTitle:     "Course " + courseID,
		ProgressPercent: decimal.NewFromInt(pct),
		Status:          status,
	}
}

func TestGormProgressRepository_UpsertEnrollment_Idempotent(t *testing.T) {
	repo := NewGormProgressRepository(setupIntegrationTestDB(t))
	ctx := context.Background()
	tenantID := uuid.New()
	userID := uuid.New()

	first := newEnrollment(tenantID, userID, integration.PlatformCodeCoursera, "go-101")
	require.NoError(t, repo.UpsertEnrollment(ctx, first))

	// same key, later enrollment date; must update, not duplicate
	second := newEnrollment(tenantID, userID, integration.PlatformCodeCoursera, "go-101")
	second.EnrolledAt = time.Now()
	require.NoError(t, repo.UpsertEnrollment(ctx, second))

	count, err := repo.CountEnrollments(ctx, tenantID, integration.PlatformCodeCoursera)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGormProgressRepository_UpsertProgress_UpdatesInPlace(t *testing.T) {
	repo := NewGormProgressRepository(setupIntegrationTestDB(t))
	ctx := context.Background()
	tenantID := uuid.New()
	userID := uuid.New()

	require.NoError(t, repo.UpsertProgress(ctx,
		newProgressRecord(tenantID, userID, integration.PlatformCodeUdemy, "u-1", 40, integration.ProgressStatusInProgress)))
	require.NoError(t, repo.UpsertProgress(ctx,
		newProgressRecord(tenantID, userID, integration.PlatformCodeUdemy, "u-1", 100, integration.ProgressStatusCompleted)))

	records, total, err := repo.ListProgress(ctx, tenantID, integration.ProgressFilter{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, records, 1)
	assert.Equal(t, integration.ProgressStatusCompleted, records[0].Status)
	assert.True(t, records[0].ProgressPercent.Equal(decimal.NewFromInt(100)))
}

func TestGormProgressRepository_ListProgress_Filters(t *testing.T) {
	repo := NewGormProgressRepository(setupIntegrationTestDB(t))
	ctx := context.Background()
	tenantID := uuid.New()
	alice := uuid.New()
	bob := uuid.New()

	seed := []*integration.ExternalProgressRecord{
		newProgressRecord(tenantID, alice, integration.PlatformCodeCoursera, "c-1", 100, integration.ProgressStatusCompleted),
		newProgressRecord(tenantID, alice, integration.PlatformCodeUdemy, "u-1", 10, integration.ProgressStatusInProgress),
		newProgressRecord(tenantID, bob, integration.PlatformCodeUdemy, "u-2", 0, integration.ProgressStatusNotStarted),
		newProgressRecord(uuid.New(), alice, integration.PlatformCodeUdemy, "u-3", 50, integration.ProgressStatusInProgress),
	}
	for _, rec := range seed {
		require.NoError(t, repo.UpsertProgress(ctx, rec))
	}

	// tenant isolation
	_, total, err := repo.ListProgress(ctx, tenantID, integration.ProgressFilter{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	// platform filter
	udemy := integration.PlatformCodeUdemy
	records, total, err := repo.ListProgress(ctx, tenantID, integration.ProgressFilter{PlatformCode: &udemy, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, records, 2)

	// user filter
	records, _, err = repo.ListProgress(ctx, tenantID, integration.ProgressFilter{UserID: &bob, Limit: 10})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "u-2", records[0].RemoteCourseID)

	// status filter
	completed := integration.ProgressStatusCompleted
	records, _, err = repo.ListProgress(ctx, tenantID, integration.ProgressFilter{Status: &completed, Limit: 10})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "c-1", records[0].RemoteCourseID)

	// pagination keeps the unpaged total
	records, total, err = repo.ListProgress(ctx, tenantID, integration.ProgressFilter{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, records, 2)
}

func TestGormProgressRepository_Summary(t *testing.T) {
	repo := NewGormProgressRepository(setupIntegrationTestDB(t))
	ctx := context.Background()
	tenantID := uuid.New()
	alice := uuid.New()

	seed := []*integration.ExternalProgressRecord{
		newProgressRecord(tenantID, alice, integration.PlatformCodeUdemy, "u-1", 100, integration.ProgressStatusCompleted),
		newProgressRecord(tenantID, alice, integration.PlatformCodeUdemy, "u-2", 20, integration.ProgressStatusInProgress),
		newProgressRecord(tenantID, alice, integration.PlatformCodeCoursera, "c-1", 100, integration.ProgressStatusCompleted),
		newProgressRecord(tenantID, alice, integration.PlatformCodeUdemy, "u-3", 0, integration.ProgressStatusNotStarted),
	}
	for _, rec := range seed {
		require.NoError(t, repo.UpsertProgress(ctx, rec))
	}

	summary, err := repo.Summary(ctx, tenantID)
	require.NoError(t, err)

	assert.Equal(t, int64(4), summary.TotalCourses)
	assert.Equal(t, int64(2), summary.CompletedCourses)
	assert.Equal(t, "50", summary.CompletionRate.String())
	assert.Equal(t, integration.PlatformCodeUdemy, summary.MostActive)
	require.Len(t, summary.PerPlatform, 2)
	assert.Equal(t, integration.PlatformCodeUdemy, summary.PerPlatform[0].PlatformCode)
	assert.Equal(t, int64(3), summary.PerPlatform[0].Count)
}

func TestGormProgressRepository_Summary_Empty(t *testing.T) {
	repo := NewGormProgressRepository(setupIntegrationTestDB(t))

	summary, err := repo.Summary(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Zero(t, summary.TotalCourses)
	assert.True(t, summary.CompletionRate.IsZero())
	assert.Empty(t, summary.PerPlatform)
	assert.Empty(t, summary.MostActive)
}
