package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appintegration "github.com/lms/backend/internal/application/integration"
	"github.com/lms/backend/internal/domain/integration"
	"github.com/lms/backend/internal/interfaces/http/middleware"
)

type progressHandlerFixture struct {
	progressRepo *MockProgressRepository
	router       *gin.Engine
	tenantID     uuid.UUID
}

func newProgressFixture(t *testing.T) *progressHandlerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &progressHandlerFixture{
		progressRepo: new(MockProgressRepository),
		tenantID:     uuid.New(),
	}

	service := appintegration.NewProgressService(f.progressRepo, nil, zap.NewNop())
	h := NewProgressHandler(service, zap.NewNop())

	f.router = gin.New()
	f.router.Use(func(c *gin.Context) {
		c.Set(middleware.TenantIDKey, f.tenantID.String())
		c.Next()
	})
	f.router.GET("/api/v1/progress", h.ListProgress)
	f.router.GET("/api/v1/progress/summary", h.GetSummary)

	return f
}

func TestProgressHandler_ListProgress(t *testing.T) {
	f := newProgressFixture(t)

	records := []integration.ExternalProgressRecord{
		{
			ID:              uuid.New(),
			TenantID:        f.tenantID,
			PlatformCode:    integration.PlatformCodeCoursera,
			UserID:          uuid.New(),
			RemoteCourseID:  "c-1",
			CourseTitle:     "Go Basics",
			ProgressPercent: decimal.NewFromInt(75),
			Status:          integration.ProgressStatusInProgress,
		},
	}
	f.progressRepo.On("ListProgress", mock.Anything, f.tenantID,
		mock.MatchedBy(func(filter integration.ProgressFilter) bool {
			return filter.Limit == 50 && filter.Offset == 0 && filter.PlatformCode == nil
		})).Return(records, int64(1), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/progress", nil)
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Go Basics")
	assert.Contains(t, w.Body.String(), `"total":1`)
	assert.Contains(t, w.Body.String(), `"limit":50`)
}

func TestProgressHandler_ListProgress_PlatformFilter(t *testing.T) {
	f := newProgressFixture(t)

	f.progressRepo.On("ListProgress", mock.Anything, f.tenantID,
		mock.MatchedBy(func(filter integration.ProgressFilter) bool {
			return filter.PlatformCode != nil && *filter.PlatformCode == integration.PlatformCodeUdemy
		})).Return([]integration.ExternalProgressRecord{}, int64(0), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/progress?platform=udemy", nil)
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	f.progressRepo.AssertExpectations(t)
}

func TestProgressHandler_ListProgress_InvalidPlatform(t *testing.T) {
	f := newProgressFixture(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/progress?platform=linkedin", nil)
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_VALIDATION")
	f.progressRepo.AssertNotCalled(t, "ListProgress", mock.Anything, mock.Anything, mock.Anything)
}

func TestProgressHandler_ListProgress_InvalidStatus(t *testing.T) {
	f := newProgressFixture(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/progress?status=finished", nil)
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_VALIDATION")
}

func TestProgressHandler_GetSummary(t *testing.T) {
	f := newProgressFixture(t)

	summary := &integration.ProgressSummary{
		TotalCourses:     10,
		CompletedCourses: 4,
		CompletionRate:   decimal.NewFromInt(40),
		PerPlatform: []integration.PlatformProgressCount{
			{PlatformCode: integration.PlatformCodeCoursera, Count: 6},
			{PlatformCode: integration.PlatformCodeUdemy, Count: 4},
		},
		MostActive: integration.PlatformCodeCoursera,
	}
	f.progressRepo.On("Summary", mock.Anything, f.tenantID).Return(summary, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/progress/summary", nil)
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data integration.ProgressSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(10), resp.Data.TotalCourses)
	assert.Equal(t, integration.PlatformCodeCoursera, resp.Data.MostActive)
}

func TestProgressHandler_NoTenant(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := new(MockProgressRepository)
	service := appintegration.NewProgressService(repo, nil, zap.NewNop())
	h := NewProgressHandler(service, zap.NewNop())

	router := gin.New()
	router.GET("/api/v1/progress", h.ListProgress)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/progress", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
