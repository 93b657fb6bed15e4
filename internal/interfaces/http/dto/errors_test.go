package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		code string
		want int
	}{
		{name: "not found", code: ErrCodeNotFound, want: http.StatusNotFound},
		{name: "validation", code: ErrCodeValidationFailed, want: http.StatusBadRequest},
		{name: "unauthorized", code: ErrCodeUnauthorized, want: http.StatusUnauthorized},
		{name: "conflict", code: ErrCodeConflict, want: http.StatusConflict},
		{name: "unknown platform", code: ErrCodeUnknownPlatform, want: http.StatusNotFound},
		{name: "platform disabled", code: ErrCodePlatformDisabled, want: http.StatusUnprocessableEntity},
		{name: "invalid credentials", code: ErrCodeInvalidCredentials, want: http.StatusUnprocessableEntity},
		{name: "sync in progress", code: ErrCodeSyncInProgress, want: http.StatusConflict},
		{name: "platform unavailable", code: ErrCodePlatformUnavailable, want: http.StatusBadGateway},
		{name: "invalid response", code: ErrCodeInvalidResponse, want: http.StatusBadGateway},
		{name: "unmapped code falls back to 500", code: "ERR_SOMETHING_NEW", want: http.StatusInternalServerError},
		{name: "empty code falls back to 500", code: "", want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

func TestNewSuccessResponse(t *testing.T) {
	resp := NewSuccessResponse(map[string]string{"key": "value"})

	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Data)
	assert.Nil(t, resp.Error)
	assert.Nil(t, resp.Meta)
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{"a", "b"}, Meta{Total: 42, Limit: 50, Offset: 0})

	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Meta)
	assert.Equal(t, int64(42), resp.Meta.Total)
	assert.Equal(t, 50, resp.Meta.Limit)
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse(ErrCodeNotFound, "platform config not found")

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "platform config not found", resp.Error.Message)
	assert.Empty(t, resp.Error.RequestID)
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeInternalError, "boom", "req-123")

	assert.False(t, resp.Success)
	assert.Equal(t, "req-123", resp.Error.RequestID)
}

func TestNewValidationErrorResponse(t *testing.T) {
	details := []ValidationDetail{
		{Field: "sync_frequency", Message: "must be one of manual, daily, weekly"},
	}
	resp := NewValidationErrorResponse("validation failed", "req-456", details)

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeValidationFailed, resp.Error.Code)
	assert.Equal(t, "req-456", resp.Error.RequestID)
	assert.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "sync_frequency", resp.Error.Details[0].Field)
}
