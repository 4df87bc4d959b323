package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"booking-platform/internal/config"
	"booking-platform/internal/domain"
	"booking-platform/internal/metrics"
	"booking-platform/internal/service"
	"booking-platform/pkg/logger"
)

// Services bundles the application services the router exposes
type Services struct {
	Users    service.UserService
	Sessions service.SessionService
	Vehicles service.VehicleService
	Bookings service.BookingService
	Pricing  service.PricingService
	Blog     service.BlogService
	Settings service.SystemConfigService
}

// NewRouter configures the Gin router with middleware and routes
func NewRouter(cfg *config.Config, svc Services, admin *AdminHandler, m *metrics.Metrics, log *logger.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(log, m))
	router.Use(CORSMiddleware(cfg))
	router.Use(SecurityHeadersMiddleware())
	router.Use(TimeoutMiddleware(cfg.RequestTimeout))

	// Health and metrics stay outside the rate limit so probes never get 429
	router.GET("/health", admin.Health)
	if cfg.MetricsEnabled && m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	users := NewUserHandler(svc.Users, log)
	sessions := NewSessionHandler(svc.Sessions, log)
	vehicles := NewVehicleHandler(svc.Vehicles, log)
	bookings := NewBookingHandler(svc.Bookings, log)
	content := NewContentHandler(svc.Pricing, svc.Blog, svc.Settings, log)

	limiter := NewRateLimiter(admin.cache, cfg.RateLimitPerMinute, log)
	auth := SessionAuthMiddleware(svc.Sessions, log)

	v1 := router.Group("/api/v1")
	v1.Use(limiter.Middleware())
	{
		// Public catalogue
		v1.GET("/users/:id", users.GetUser)
		v1.GET("/users/:id/profile", users.GetProfile)
		v1.GET("/vehicles/available", vehicles.ListAvailable)
		v1.GET("/vehicles/:id", vehicles.Get)
		v1.GET("/pricing", content.PricingRules)
		v1.GET("/blog", content.ListPosts)
		v1.GET("/blog/:slug", content.GetPost)
		v1.GET("/config", content.GetConfig)

		v1.POST("/sessions", sessions.Create)

		authed := v1.Group("", auth)
		{
			authed.GET("/sessions/current", sessions.Current)
			authed.DELETE("/sessions/current", sessions.Revoke)

			authed.PUT("/users/:id/profile", users.UpdateProfile)
			authed.GET("/users/:id/bookings", users.ListBookings)

			authed.POST("/bookings", bookings.Create)
			authed.GET("/bookings/:id", bookings.Get)
			authed.PATCH("/bookings/:id/status", RequireRole(domain.RoleDriver, domain.RoleAdmin), bookings.UpdateStatus)

			fleet := authed.Group("/vehicles", RequireRole(domain.RoleDriver, domain.RoleAdmin))
			fleet.POST("", vehicles.Create)
			fleet.PUT("/:id", vehicles.Update)
			fleet.PATCH("/:id/availability", vehicles.SetAvailability)

			authed.PUT("/blog", RequireRole(domain.RoleEditor, domain.RoleAdmin), content.SavePost)
		}
	}

	ops := router.Group("/admin", AdminAuthMiddleware(cfg.AdminToken))
	{
		ops.GET("/cache/status", admin.CacheStatus)
		ops.DELETE("/cache/keys/:key", admin.DeleteKey)
		ops.POST("/cache/invalidate", admin.Invalidate)
		ops.POST("/cache/flush", admin.Flush)
		ops.POST("/sessions/purge", admin.PurgeSessions)
		ops.PUT("/pricing", content.ReplacePricingRules)
		ops.PUT("/config", content.UpdateConfig)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "endpoint not found",
		})
	})

	return router
}
