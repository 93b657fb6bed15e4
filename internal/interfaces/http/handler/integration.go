package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appintegration "github.com/lms/backend/internal/application/integration"
	"github.com/lms/backend/internal/domain/integration"
	"github.com/lms/backend/internal/interfaces/http/dto"
)

// IntegrationHandler serves platform config management and sync triggers.
type IntegrationHandler struct {
	BaseHandler
	configService *appintegration.ConfigService
	syncService   *appintegration.SyncService
	logger        *zap.Logger
}

// NewIntegrationHandler creates a new integration handler
func NewIntegrationHandler(
	configService *appintegration.ConfigService,
	syncService *appintegration.SyncService,
	logger *zap.Logger,
) *IntegrationHandler {
	return &IntegrationHandler{
		configService: configService,
		syncService:   syncService,
		logger:        logger,
	}
}

// platformCodeParam parses the :code path parameter. Codes are accepted
// case-insensitively on the wire but canonical uppercase internally.
func platformCodeParam(c *gin.Context) (integration.PlatformCode, error) {
	code := integration.PlatformCode(strings.ToUpper(c.Param("code")))
	if !code.IsValid() {
		return "", integration.ErrUnknownPlatform
	}
	return code, nil
}

// ListPlatforms returns all platform configs of the tenant.
// GET /api/v1/platforms
func (h *IntegrationHandler) ListPlatforms(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	views, err := h.configService.ListConfigs(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, views)
}

// GetPlatform returns one platform config.
// GET /api/v1/platforms/:code
func (h *IntegrationHandler) GetPlatform(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	code, err := platformCodeParam(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	view, err := h.configService.GetConfig(c.Request.Context(), tenantID, code)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, view)
}

// UpsertPlatform creates or updates the tenant's config for a platform.
// PUT /api/v1/platforms/:code
func (h *IntegrationHandler) UpsertPlatform(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	code, err := platformCodeParam(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var in appintegration.UpsertConfigInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	// The path parameter wins over whatever the body claims
	in.PlatformCode = code.String()

	view, err := h.configService.UpsertConfig(c.Request.Context(), tenantID, in)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, view)
}

// enableRequest toggles sync for a platform config.
type enableRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// SetPlatformEnabled enables or disables sync for a platform.
// PATCH /api/v1/platforms/:code/enabled
func (h *IntegrationHandler) SetPlatformEnabled(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	code, err := platformCodeParam(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req enableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, []dto.ValidationDetail{
			{Field: "enabled", Message: "enabled is required and must be a boolean"},
		})
		return
	}

	view, err := h.configService.SetEnabled(c.Request.Context(), tenantID, code, *req.Enabled)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, view)
}

// testCredentialsRequest optionally carries credentials to validate in
// place of the stored ones.
type testCredentialsRequest struct {
	Credentials map[string]string `json:"credentials"`
}

// testCredentialsResponse reports a validation outcome.
type testCredentialsResponse struct {
	Valid bool `json:"valid"`
}

// TestCredentials validates submitted or stored platform credentials
// without starting a sync.
// POST /api/v1/platforms/:code/test-credentials
func (h *IntegrationHandler) TestCredentials(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	code, err := platformCodeParam(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req testCredentialsRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, "Invalid request body: "+err.Error())
			return
		}
	}

	var creds integration.Credentials
	if len(req.Credentials) > 0 {
		creds = integration.Credentials(req.Credentials)
	}

	valid, err := h.syncService.TestCredentials(c.Request.Context(), tenantID, code, creds)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, testCredentialsResponse{Valid: valid})
}

// SyncPlatform triggers a sync run for one platform. The stored
// credentials are revalidated before the run starts.
// POST /api/v1/platforms/:code/sync
func (h *IntegrationHandler) SyncPlatform(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	code, err := platformCodeParam(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	view, err := h.configService.GetConfig(c.Request.Context(), tenantID, code)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	result, err := h.syncService.SyncPlatformChecked(c.Request.Context(), tenantID, view.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, appintegration.NewSyncResultView(result))
}

// SyncAll triggers a concurrent sync of every enabled platform. One
// platform's failure never aborts the others; each outcome is reported
// in its own result entry.
// POST /api/v1/sync
func (h *IntegrationHandler) SyncAll(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	results, err := h.syncService.SyncAllPlatforms(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	summary := integration.Summarize(results)
	h.Success(c, appintegration.NewSyncSummaryView(summary))
}
