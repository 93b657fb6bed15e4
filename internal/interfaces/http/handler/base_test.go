package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/lms/backend/internal/domain/integration"
	"github.com/lms/backend/internal/domain/shared"
)

func TestBaseHandler_HandleError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "config not found",
			err:        integration.ErrConfigNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "ERR_NOT_FOUND",
		},
		{
			name:       "wrapped sentinel",
			err:        fmt.Errorf("%w: %q", integration.ErrUnknownPlatform, "LINKEDIN"),
			wantStatus: http.StatusNotFound,
			wantCode:   "ERR_UNKNOWN_PLATFORM",
		},
		{
			name:       "sync in progress",
			err:        integration.ErrSyncInProgress,
			wantStatus: http.StatusConflict,
			wantCode:   "ERR_SYNC_IN_PROGRESS",
		},
		{
			name:       "platform disabled",
			err:        integration.ErrPlatformDisabled,
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "ERR_PLATFORM_DISABLED",
		},
		{
			name:       "platform unavailable",
			err:        fmt.Errorf("%w: connection refused", integration.ErrPlatformUnavailable),
			wantStatus: http.StatusBadGateway,
			wantCode:   "ERR_PLATFORM_UNAVAILABLE",
		},
		{
			name:       "domain error",
			err:        shared.ErrAlreadyExists,
			wantStatus: http.StatusConflict,
			wantCode:   "ERR_ALREADY_EXISTS",
		},
		{
			name:       "unknown error is internal",
			err:        errors.New("pq: connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "ERR_INTERNAL",
		},
	}

	h := &BaseHandler{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			h.HandleError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantCode)
			// Raw driver errors must never reach the client
			assert.NotContains(t, w.Body.String(), "pq:")
		})
	}
}

func TestBaseHandler_HandleError_Nil(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h := &BaseHandler{}
	h.HandleError(c, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}
