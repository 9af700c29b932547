package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/dormitory/internal/app/controllers"
	appMigrations "github.com/yigit/dormitory/internal/app/migrations"
	appRepos "github.com/yigit/dormitory/internal/app/repositories"
	appRoutes "github.com/yigit/dormitory/internal/app/routes"
	appServices "github.com/yigit/dormitory/internal/app/services"
	"github.com/yigit/dormitory/internal/config"
	"github.com/yigit/dormitory/internal/db"
	appMiddleware "github.com/yigit/dormitory/internal/middleware"
	pkgAuth "github.com/yigit/dormitory/internal/pkg/auth"
	"github.com/yigit/dormitory/internal/pkg/helpers"
	"github.com/yigit/dormitory/internal/pkg/logger"
	"github.com/yigit/dormitory/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Store             *db.DB
	Repos             *appRepos.Repositories
	Services          *appServices.Services
	Hasher            *pkgAuth.PasswordHasher
	JWTService        *pkgAuth.JWTService
	AuthMiddleware    *appMiddleware.AuthMiddleware
	AuthController    *appControllers.AuthController
	StudentController *appControllers.StudentController
	RoomController    *appControllers.RoomController
	StayController    *appControllers.StayController
	FinanceController *appControllers.FinanceController
	HealthController  *appControllers.HealthController
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := logger.Configure(logger.FromSettings(cfg.Logging.Level, cfg.Logging.Format))
	lgr.Debug().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// Migrate brings the configured store up to the embedded schema version
func Migrate(cfg *config.Config, lgr zerolog.Logger) error {
	lgr.Info().Str("driver", cfg.Database.Driver).Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(cfg.Database, lgr).Up(); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}
	return nil
}

// SetupDatabase runs migrations and opens the store.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.DB, error) {
	if err := Migrate(cfg, lgr); err != nil {
		return nil, err
	}

	lgr.Info().Msg("Establishing database connection...")
	store, err := db.Open(ctx, cfg.Database)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Str("dialect", string(store.Dialect)).Msg("Database connection successfully established.")
	return store, nil
}

// BuildDependencies initializes application repositories, services, and controllers,
// then makes sure the default admin exists.
func BuildDependencies(ctx context.Context, cfg *config.Config, store *db.DB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Store: store, Logger: lgr}

	hasher, err := pkgAuth.NewPasswordHasher(cfg.Auth.PasswordScheme)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize password hasher: %w", err)
	}
	deps.Hasher = hasher

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 8*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.Repos = appRepos.NewRepositories(store)
	deps.Services = appServices.NewServices(store, deps.Repos, deps.Hasher, deps.JWTService, lgr)

	if _, err := seed.EnsureDefaultAdmin(ctx, deps.Repos.UserRepository, deps.Hasher, cfg.Auth.DefaultAdminPassword, lgr); err != nil {
		return nil, fmt.Errorf("failed to seed default admin: %w", err)
	}

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.Services.Auth, logger.Component("auth_controller"))
	deps.StudentController = appControllers.NewStudentController(deps.Services.Students, deps.Services.Billing)
	deps.RoomController = appControllers.NewRoomController(deps.Services.Occupancy)
	deps.StayController = appControllers.NewStayController(deps.Services.Occupancy)
	deps.FinanceController = appControllers.NewFinanceController(deps.Services.Billing)
	deps.HealthController = appControllers.NewHealthController(store)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	switch strings.ToLower(cfg.Server.Mode) {
	case "production", "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	lgr.Debug().Str("mode", gin.Mode()).Msg("Gin mode set")

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(lgr.With().Str("component", "http").Logger()))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.StudentController,
		deps.RoomController,
		deps.StayController,
		deps.FinanceController,
		deps.HealthController,
		deps.AuthMiddleware,
	)

	return router
}
