package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/Dominic-Taylor-Dev/eagle-bank-api/docs"
	"github.com/Dominic-Taylor-Dev/eagle-bank-api/internal/api/handler"
	"github.com/Dominic-Taylor-Dev/eagle-bank-api/internal/api/middleware"
	"github.com/Dominic-Taylor-Dev/eagle-bank-api/internal/auth"
	"github.com/Dominic-Taylor-Dev/eagle-bank-api/internal/core/ports"
	"github.com/Dominic-Taylor-Dev/eagle-bank-api/internal/core/service"
	mongostore "github.com/Dominic-Taylor-Dev/eagle-bank-api/internal/infrastructure/db/mongo"
	redisstore "github.com/Dominic-Taylor-Dev/eagle-bank-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, codec *auth.TokenCodec, hasher ports.PasswordHasher, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("eaglebank"))
	e.Use(middleware.Authenticate(codec))

	// --- Dependencies ---
	userRepo := mongostore.NewUserRepository(db)
	userCache := redisstore.NewUserCache(rdb)
	authService := service.NewAuthService(userRepo, hasher, codec, log)
	userService := service.NewUserService(userRepo, userCache, hasher, log)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)

	// --- Auth routes ---
	e.POST("/v1/auth/login", authHandler.Login)

	// --- User routes ---
	e.POST("/v1/users", userHandler.Create)
	e.GET("/v1/users/:userId", userHandler.Get, middleware.RequireIdentity())

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
