package main

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/seanlynch0199/MMIS6191-Roses-CloversProperties/internal/handler"
	"github.com/seanlynch0199/MMIS6191-Roses-CloversProperties/internal/middleware"
	"github.com/seanlynch0199/MMIS6191-Roses-CloversProperties/internal/repository"
	"github.com/seanlynch0199/MMIS6191-Roses-CloversProperties/pkg/config"
	"github.com/seanlynch0199/MMIS6191-Roses-CloversProperties/pkg/database"
	"github.com/seanlynch0199/MMIS6191-Roses-CloversProperties/pkg/logger"
	"github.com/seanlynch0199/MMIS6191-Roses-CloversProperties/pkg/token"
	"github.com/seanlynch0199/MMIS6191-Roses-CloversProperties/prometheus"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting properties service...", cfg.LogConfig()...)

	// Initialize database
	if err := database.InitDB(cfg); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	db := database.GetDB()
	propertyRepo := repository.NewPropertyRepository(db)
	tenantRepo := repository.NewTenantRepository(db)
	leaseRepo := repository.NewLeaseRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	// Roll lease statuses forward before serving traffic
	if err := leaseRepo.RefreshStatuses(context.Background()); err != nil {
		log.Error("Failed to refresh lease statuses", zap.Error(err))
	}

	// Token store for admin sessions, swept hourly so abandoned tokens get
	// evicted without ever being presented again
	tokenStore := token.NewStore(cfg.Auth.TokenTTL)
	go func() {
		for range time.Tick(time.Hour) {
			if removed := tokenStore.PurgeExpired(); removed > 0 {
				log.Info("Purged expired admin tokens", zap.Int("removed", removed))
			}
			prometheus.SetActiveTokens(tokenStore.Len())
		}
	}()

	authHandler := handler.NewAuthHandler(tokenStore, cfg.Auth)
	propertyHandler := handler.NewPropertyHandler(propertyRepo)
	tenantHandler := handler.NewTenantHandler(tenantRepo)
	leaseHandler := handler.NewLeaseHandler(leaseRepo)
	dashboardHandler := handler.NewDashboardHandler(statsRepo)

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
		MaxAge:       86400,
	}))
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)
	e.GET("/api/properties", propertyHandler.List)
	e.GET("/api/properties/:id", propertyHandler.Get)

	// Login is throttled so the shared secret cannot be brute forced
	loginLimiter := echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
			Rate:  rate.Limit(cfg.Auth.LoginRatePerSec),
			Burst: cfg.Auth.LoginBurst,
		}),
	})
	e.POST("/api/admin/login", authHandler.Login, loginLimiter)

	// Admin routes - all require a valid bearer token
	admin := e.Group("/api/admin")
	admin.Use(middleware.TokenAuth(tokenStore))

	admin.POST("/logout", authHandler.Logout)
	admin.GET("/me", authHandler.Me)
	admin.GET("/dashboard/stats", dashboardHandler.Stats)

	admin.GET("/properties", propertyHandler.List)
	admin.POST("/properties", propertyHandler.Create)
	admin.GET("/properties/:id", propertyHandler.Get)
	admin.PUT("/properties/:id", propertyHandler.Update)
	admin.DELETE("/properties/:id", propertyHandler.Delete)

	admin.GET("/tenants", tenantHandler.List)
	admin.POST("/tenants", tenantHandler.Create)
	admin.GET("/tenants/:id", tenantHandler.Get)
	admin.PUT("/tenants/:id", tenantHandler.Update)
	admin.DELETE("/tenants/:id", tenantHandler.Delete)

	admin.GET("/leases", leaseHandler.List)
	admin.POST("/leases", leaseHandler.Create)
	admin.GET("/leases/:id", leaseHandler.Get)
	admin.PUT("/leases/:id", leaseHandler.Update)
	admin.DELETE("/leases/:id", leaseHandler.Delete)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
