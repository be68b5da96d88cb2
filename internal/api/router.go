package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/cryptotrack/portfolio-api/docs"
	"github.com/cryptotrack/portfolio-api/internal/api/handler"
	"github.com/cryptotrack/portfolio-api/internal/api/middleware"
	"github.com/cryptotrack/portfolio-api/internal/core/domain"
	"github.com/cryptotrack/portfolio-api/internal/core/service"
	"github.com/cryptotrack/portfolio-api/internal/infrastructure/config"
	mongodb "github.com/cryptotrack/portfolio-api/internal/infrastructure/db/mongo"
	redisdb "github.com/cryptotrack/portfolio-api/internal/infrastructure/db/redis"
	"github.com/cryptotrack/portfolio-api/internal/infrastructure/marketdata"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("cryptotrack"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	assetRepo := mongodb.NewAssetRepository(db)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, log)
	assetService := service.NewAssetService(assetRepo, userRepo, log)
	adminService := service.NewAdminService(userRepo, log)
	priceService := service.NewPriceService(
		marketdata.NewCoinGecko(cfg.Prices.APIKey),
		redisdb.NewPriceCache(rdb),
		log,
	)

	authHandler := handler.NewAuthHandler(authService)
	assetHandler := handler.NewAssetHandler(assetService)
	adminHandler := handler.NewAdminHandler(adminService)
	priceHandler := handler.NewPriceHandler(priceService)

	authRequired := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Asset routes (authenticated) ---
	assets := e.Group("/assets", authRequired)
	assets.GET("", assetHandler.List)
	assets.POST("", assetHandler.Create)
	assets.PUT("/:id", assetHandler.Update)
	assets.DELETE("/:id", assetHandler.Delete)

	// --- Admin routes ---
	// AdminAuth, not Auth: every failure on this surface is a 403, even a
	// tokenless request.
	admin := e.Group("/admin", middleware.AdminAuth(cfg.JWTSecret), adminOnly)
	admin.GET("/users", adminHandler.ListUsers)
	admin.PUT("/users/:id", adminHandler.UpdateRole)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)

	// --- Price proxy (no auth) ---
	e.GET("/prices", priceHandler.Get)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
