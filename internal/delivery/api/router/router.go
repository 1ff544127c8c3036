// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"saasadmin/config"
	"saasadmin/internal/delivery/api/middleware"
	"saasadmin/internal/delivery/api/router/handler"
	"saasadmin/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds dependencies for the router, injected by Fx.
type RouterParams struct {
	fx.In

	AuthHandler      *handler.AuthHandler
	DirectoryHandler *handler.DirectoryHandler
	UserHandler      *handler.UserHandler
	TenantHandler    *handler.TenantHandler
	StatusHandler    *handler.StatusHandler
	AuthMiddleware   *middleware.AuthMiddleware
	Metrics          *metrics.Recorder
	Config           *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler      *handler.AuthHandler
	directoryHandler *handler.DirectoryHandler
	userHandler      *handler.UserHandler
	tenantHandler    *handler.TenantHandler
	statusHandler    *handler.StatusHandler
	authMiddleware   *middleware.AuthMiddleware
	metrics          *metrics.Recorder
	config           *config.Config
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:      params.AuthHandler,
		directoryHandler: params.DirectoryHandler,
		userHandler:      params.UserHandler,
		tenantHandler:    params.TenantHandler,
		statusHandler:    params.StatusHandler,
		authMiddleware:   params.AuthMiddleware,
		metrics:          params.Metrics,
		config:           params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	auth := r.authMiddleware

	e.GET("/health", handler.HealthCheck)
	e.GET("/status", r.statusHandler.Status, auth.OptionalAuthenticate)

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/refresh", r.authHandler.Refresh)
		authGroup.POST("/logout", r.authHandler.Logout, auth.Authenticate)
		authGroup.GET("/me", r.authHandler.Me, auth.Authenticate)
		authGroup.POST("/change-password", r.authHandler.ChangePassword, auth.Authenticate)
		authGroup.POST("/register", r.userHandler.Register, auth.Authenticate, auth.RequirePermission("users", "create"))
	}

	// Static segments win over :id in echo, so /stats/overview never reaches GetUser.
	usersGroup := e.Group("/users", auth.Authenticate)
	{
		usersGroup.GET("", r.directoryHandler.ListUsers, auth.RequirePermission("users", "read"))
		usersGroup.GET("/stats/overview", r.directoryHandler.UserStats, auth.RequirePermission("users", "read"))
		usersGroup.GET("/:id", r.directoryHandler.GetUser, auth.RequirePermission("users", "read"))
		usersGroup.PUT("/:id", r.userHandler.UpdateUser, auth.RequirePermission("users", "update"))
		usersGroup.DELETE("/:id", r.userHandler.DeleteUser, auth.RequirePermission("users", "delete"))
	}

	// Permission first, then tenant membership; both must pass.
	tenantsGroup := e.Group("/tenants", auth.Authenticate)
	{
		tenantsGroup.GET("", r.directoryHandler.ListTenants, auth.RequirePermission("tenants", "read"))
		tenantsGroup.POST("", r.tenantHandler.CreateTenant, auth.RequirePermission("tenants", "create"))
		tenantsGroup.GET("/stats/overview", r.directoryHandler.TenantStats, auth.RequirePermission("tenants", "read"))
		tenantsGroup.GET("/:tenantId", r.directoryHandler.GetTenant,
			auth.RequirePermission("tenants", "read"),
			auth.RequireTenantAccess("tenantId"),
		)
		tenantsGroup.PUT("/:tenantId", r.tenantHandler.UpdateTenant,
			auth.RequirePermission("tenants", "update"),
			auth.RequireTenantAccess("tenantId"),
		)
		tenantsGroup.DELETE("/:tenantId", r.tenantHandler.DeleteTenant,
			auth.RequirePermission("tenants", "delete"),
			auth.RequireTenantAccess("tenantId"),
		)
		tenantsGroup.GET("/:tenantId/users", r.directoryHandler.ListTenantUsers,
			auth.RequirePermission("users", "read"),
			auth.RequireTenantAccess("tenantId"),
		)
	}
}

// RegisterMetricsRoute exposes the Prometheus registry when metrics are enabled.
func (r *router) RegisterMetricsRoute(e *echo.Echo) {
	if r.config.Metrics == nil || !r.config.Metrics.Enabled || r.metrics == nil {
		return
	}

	e.GET("/metrics", echo.WrapHandler(r.metrics.Handler()))
}
