package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/VGabriel45/VetDbAdministratorBackend/internal/api/handler"
	"github.com/VGabriel45/VetDbAdministratorBackend/internal/api/middleware"
	"github.com/VGabriel45/VetDbAdministratorBackend/internal/core/domain"
	"github.com/VGabriel45/VetDbAdministratorBackend/internal/core/service"
	"github.com/VGabriel45/VetDbAdministratorBackend/internal/infrastructure/config"
	mongorepo "github.com/VGabriel45/VetDbAdministratorBackend/internal/infrastructure/db/mongo"
	redisinfra "github.com/VGabriel45/VetDbAdministratorBackend/internal/infrastructure/db/redis"
	"github.com/VGabriel45/VetDbAdministratorBackend/internal/infrastructure/email"
	"github.com/VGabriel45/VetDbAdministratorBackend/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client) *echo.Echo {
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("clinic"))

	// --- Dependencies ---
	customerRepo := mongorepo.NewCustomerRepository(db)
	clinicRepo := mongorepo.NewClinicRepository(db)
	roleRepo := mongorepo.NewRoleRepository(db)
	throttle := redisinfra.NewSigninThrottle(rdb, cfg.Signin.MaxAttempts, cfg.Signin.Lockout)
	notifier := email.NewResendNotifier(cfg.Email.ResendAPIKey, cfg.Email.From, log)

	authService := service.NewAuthService(customerRepo, clinicRepo, throttle, log, cfg.JWTSecret, cfg.JWTTTL)
	registrationService := service.NewRegistrationService(customerRepo, clinicRepo, roleRepo, notifier, log)
	customerService := service.NewCustomerService(customerRepo, clinicRepo, log)

	authHandler := handler.NewAuthHandler(authService, registrationService)
	clinicHandler := handler.NewClinicHandler(customerService)

	authMiddleware := middleware.Auth(cfg.JWTSecret)
	staffOnly := middleware.RBAC(string(domain.RoleAdmin), string(domain.RoleModerator))

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/signin", authHandler.SignIn)
	auth.POST("/clinic/signup", authHandler.SignupClinic)
	auth.POST("/clinic/:clinicId/signupCustomer", authHandler.SignupCustomer)
	auth.GET("/me", authHandler.Me, authMiddleware)

	// --- Clinic routes (staff only) ---
	clinic := e.Group("/api/clinic", authMiddleware, staffOnly)
	clinic.GET("/:clinicId/customers", clinicHandler.ListCustomers)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
