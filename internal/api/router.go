package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/skycast/weather-api/docs"
	"github.com/skycast/weather-api/internal/api/handler"
	"github.com/skycast/weather-api/internal/api/middleware"
	"github.com/skycast/weather-api/internal/core/domain"
	"github.com/skycast/weather-api/internal/core/service"
	"github.com/skycast/weather-api/internal/core/token"
	"github.com/skycast/weather-api/internal/infrastructure/config"
	mongodb "github.com/skycast/weather-api/internal/infrastructure/db/mongo"
	redisdb "github.com/skycast/weather-api/internal/infrastructure/db/redis"
	"github.com/skycast/weather-api/internal/infrastructure/weather"
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
	e.Use(echoprometheus.NewMiddleware("weather_api"))

	// --- Dependencies ---
	issuer := token.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)

	userRepo := mongodb.NewUserRepository(db)
	queryRepo := mongodb.NewQueryRepository(db)
	cache := redisdb.NewWeatherCache(rdb, log)
	provider := weather.NewOpenWeatherClient(cfg.Weather.BaseURL, cfg.Weather.APIKey)

	authService := service.NewAuthService(userRepo, issuer, log)
	userService := service.NewUserService(userRepo, log)
	weatherService := service.NewWeatherService(cache, provider, queryRepo, userRepo, cfg.Weather.CacheTTL, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	weatherHandler := handler.NewWeatherHandler(weatherService)

	authed := middleware.Auth(issuer)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	anyRole := middleware.RBAC(domain.RoleAdmin, domain.RoleUser)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register, authed, adminOnly)
	auth.POST("/login", authHandler.Login)

	// --- User management (admin only) ---
	users := e.Group("/api/users", authed, adminOnly)
	users.GET("", userHandler.List)
	users.PUT("/:id", userHandler.UpdateRole)
	users.DELETE("/:id", userHandler.Delete)

	// --- Weather ---
	wx := e.Group("/api/weather")
	wx.GET("/my", weatherHandler.MyQueries, authed, anyRole)
	wx.GET("/all", weatherHandler.AllQueries, authed, adminOnly)
	wx.GET("/:city", weatherHandler.GetByCity, authed)

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
