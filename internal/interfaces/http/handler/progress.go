package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appintegration "github.com/lms/backend/internal/application/integration"
	"github.com/lms/backend/internal/domain/integration"
	"github.com/lms/backend/internal/interfaces/http/dto"
)

// ProgressHandler serves normalized progress listings and the tenant
// dashboard summary.
type ProgressHandler struct {
	BaseHandler
	progressService *appintegration.ProgressService
	logger          *zap.Logger
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(progressService *appintegration.ProgressService, logger *zap.Logger) *ProgressHandler {
	return &ProgressHandler{
		progressService: progressService,
		logger:          logger,
	}
}

// listProgressRequest holds the query parameters for progress listings.
type listProgressRequest struct {
	dto.ListRequest
	Platform string `form:"platform"`
	UserID   string `form:"user_id" binding:"omitempty,uuid"`
	Status   string `form:"status"`
}

// buildFilter converts the wire request into a domain filter. Invalid
// enum values are rejected rather than ignored so callers notice typos.
func (r listProgressRequest) buildFilter() (integration.ProgressFilter, []dto.ValidationDetail) {
	filter := integration.ProgressFilter{
		Limit:  r.Limit,
		Offset: r.Offset,
	}
	var details []dto.ValidationDetail

	if r.Platform != "" {
		code := integration.PlatformCode(strings.ToUpper(r.Platform))
		if !code.IsValid() {
			details = append(details, dto.ValidationDetail{
				Field:   "platform",
				Message: "must be one of COURSERA, PLURALSIGHT, UDEMY",
			})
		} else {
			filter.PlatformCode = &code
		}
	}

	if r.UserID != "" {
		userID, err := uuid.Parse(r.UserID)
		if err != nil {
			details = append(details, dto.ValidationDetail{
				Field:   "user_id",
				Message: "must be a valid UUID",
			})
		} else {
			filter.UserID = &userID
		}
	}

	if r.Status != "" {
		status := integration.ProgressStatus(strings.ToLower(r.Status))
		if !status.IsValid() {
			details = append(details, dto.ValidationDetail{
				Field:   "status",
				Message: "must be one of not_started, in_progress, completed",
			})
		} else {
			filter.Status = &status
		}
	}

	return filter, details
}

// ListProgress returns the tenant's normalized progress rows.
// GET /api/v1/progress
func (h *ProgressHandler) ListProgress(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	var req listProgressRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	filter, details := req.buildFilter()
	if len(details) > 0 {
		h.ValidationError(c, details)
		return
	}

	records, total, err := h.progressService.ListProgress(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	views := make([]appintegration.ProgressRecordView, 0, len(records))
	for i := range records {
		views = append(views, appintegration.NewProgressRecordView(&records[i]))
	}

	h.SuccessWithMeta(c, views, dto.Meta{
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}

// GetSummary returns the tenant's aggregated progress dashboard.
// GET /api/v1/progress/summary
func (h *ProgressHandler) GetSummary(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	summary, err := h.progressService.Summary(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}
