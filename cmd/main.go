package main

import (
	"workspace-service/internal/handler"
	"workspace-service/internal/middleware"
	"workspace-service/internal/model"
	"workspace-service/internal/repository"
	"workspace-service/internal/tenant"
	"workspace-service/pkg/config"
	"workspace-service/pkg/database"
	"workspace-service/pkg/jwtutil"
	"workspace-service/pkg/logger"
	"workspace-service/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load("workspace-service")
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	if err := logger.Init(cfg); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	log.Info("Starting workspace service...", cfg.LogConfig()...)

	// Initialize database
	if err := database.InitDB(cfg); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Stores and directory
	db := database.GetDB()
	users := repository.NewGormUserStore(db)
	posts := repository.NewGormPostStore(db)
	tenants := repository.NewGormTenantStore(db)
	directory := tenant.NewDirectory(tenants, tenant.DefaultSeeds(), log)

	// Credential codec
	tokens := jwtutil.NewJWTUtil(&cfg.JWT)
	log.Info("JWT utility initialized", zap.Duration("token_ttl", cfg.JWT.ExpiresIn))

	h := handler.New(users, posts, directory, tokens, cfg)

	// Initialize Echo framework
	e := echo.New()
	e.HideBanner = true

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowHeaders:     []string{echo.HeaderAuthorization, echo.HeaderContentType, middleware.TenantHeader},
		AllowCredentials: true,
	}))
	e.Use(middleware.RequestID())
	e.Use(logger.Middleware())
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	// Per-request gate order: Auth -> ResolveTenant -> RequireRoles -> handler

	// User routes
	user := e.Group("/api/user")
	user.POST("/register", h.Register)
	user.POST("/login", h.Login)
	user.GET("/me", h.Me, middleware.Auth(tokens))
	user.PUT("/role", h.UpdateRole,
		middleware.Auth(tokens),
		middleware.ResolveTenant(directory),
		middleware.RequireRoles(model.RoleAdmin))

	// Tenant-scoped posts - tenant named in the path, cross-checked
	// against the token claim
	tenantPosts := e.Group("/api/tenants/:tenantId/posts",
		middleware.Auth(tokens),
		middleware.ResolveTenant(directory))
	tenantPosts.GET("", h.ListPosts,
		middleware.RequireRoles(model.RoleViewer, model.RoleEditor, model.RoleAdmin))
	tenantPosts.POST("", h.CreatePost,
		middleware.RequireRoles(model.RoleEditor, model.RoleAdmin))
	tenantPosts.DELETE("/:id", h.DeletePost,
		middleware.RequireRoles(model.RoleAdmin))

	// Admin settings - tenant from x-tenant-id header or token claim
	admin := e.Group("/api/admin",
		middleware.Auth(tokens),
		middleware.ResolveTenant(directory),
		middleware.RequireRoles(model.RoleAdmin))
	admin.GET("/settings", h.GetSettings)
	admin.PUT("/settings", h.UpdateSettings)

	// Start server
	log.Info("Starting server", zap.String("port", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
