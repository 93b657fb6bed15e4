// Package router wires the HTTP handlers onto the gin engine.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/lms/backend/internal/interfaces/http/handler"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
		registrars: make([]RouteRegistrar, 0),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register adds a RouteRegistrar to be registered later
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)

	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// ---------------------------------------------------------------------------
// Route registrars
// ---------------------------------------------------------------------------

// IntegrationRoutes registers the platform config and sync endpoints.
type IntegrationRoutes struct {
	Handler *handler.IntegrationHandler
}

// RegisterRoutes implements RouteRegistrar.
func (r IntegrationRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	platforms := rg.Group("/platforms")
	{
		platforms.GET("", r.Handler.ListPlatforms)
		platforms.GET("/:code", r.Handler.GetPlatform)
		platforms.PUT("/:code", r.Handler.UpsertPlatform)
		platforms.PATCH("/:code/enabled", r.Handler.SetPlatformEnabled)
		platforms.POST("/:code/test-credentials", r.Handler.TestCredentials)
		platforms.POST("/:code/sync", r.Handler.SyncPlatform)
	}
	rg.POST("/sync", r.Handler.SyncAll)
}

// ProgressRoutes registers the normalized progress endpoints.
type ProgressRoutes struct {
	Handler *handler.ProgressHandler
}

// RegisterRoutes implements RouteRegistrar.
func (r ProgressRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	progress := rg.Group("/progress")
	{
		progress.GET("", r.Handler.ListProgress)
		progress.GET("/summary", r.Handler.GetSummary)
	}
}

// SystemRoutes registers the system endpoints. The health probes live at
// the engine root, outside the versioned API group.
type SystemRoutes struct {
	Handler *handler.SystemHandler
	Engine  *gin.Engine
}

// RegisterRoutes implements RouteRegistrar.
func (r SystemRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	system := rg.Group("/system")
	{
		system.GET("/info", r.Handler.GetSystemInfo)
		system.GET("/ping", r.Handler.Ping)
	}

	if r.Engine != nil {
		r.Engine.GET("/health", r.Handler.Health)
		r.Engine.GET("/ready", r.Handler.Ready)
	}
}
