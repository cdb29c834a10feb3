package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/saariz/identity-service/internal/api/handler"
	"github.com/saariz/identity-service/internal/api/middleware"
	"github.com/saariz/identity-service/internal/core/domain"
	"github.com/saariz/identity-service/internal/core/ports"
	"github.com/saariz/identity-service/internal/core/service"
	"github.com/saariz/identity-service/internal/core/token"
	"github.com/saariz/identity-service/internal/infrastructure/config"
	mongodb "github.com/saariz/identity-service/internal/infrastructure/db/mongo"
	redisdb "github.com/saariz/identity-service/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger, audit ports.AuditRecorder) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("identity"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)
	throttle := redisdb.NewLoginThrottle(rdb, cfg.Throttle.MaxFailures, cfg.Throttle.Window)
	issuer := token.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	verifier := token.NewVerifier(cfg.JWTSecret)

	authService := service.NewAuthService(userRepo, roleRepo, issuer, log,
		service.WithLoginThrottle(throttle),
		service.WithAuditRecorder(audit),
	)
	authHandler := handler.NewAuthHandler(authService)
	authTestHandler := handler.NewAuthTestHandler()
	requireAuth := middleware.Auth(verifier)

	// --- Auth routes ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)

	// --- Token-gated probe routes ---
	authTest := e.Group("/api/authtest", requireAuth)
	authTest.GET("", authTestHandler.Authenticated)
	authTest.GET("/:id", authTestHandler.AdminOnly, middleware.RBAC(domain.RoleAdmin))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
