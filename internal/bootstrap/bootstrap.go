// Package bootstrap assembles the application from its parts
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/internhub/backend/internal/app/controllers"
	"github.com/internhub/backend/internal/app/migrations"
	"github.com/internhub/backend/internal/app/repositories"
	"github.com/internhub/backend/internal/app/routes"
	"github.com/internhub/backend/internal/app/services"
	"github.com/internhub/backend/internal/config"
	"github.com/internhub/backend/internal/db"
	"github.com/internhub/backend/internal/middleware"
	pkgAuth "github.com/internhub/backend/internal/pkg/auth"
	"github.com/internhub/backend/internal/pkg/filestorage"
	"github.com/internhub/backend/internal/pkg/logger"
	"github.com/internhub/backend/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *repositories.Repositories
	Services       *services.Services
	Controllers    *routes.Controllers
	AuthMiddleware *middleware.AuthMiddleware
	JWTService     *pkgAuth.JWTService
	FileStorage    *filestorage.LocalStorage
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := migrations.NewMigrator(dbPool, lgr)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.ApplyDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Seeding failure should not block startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes repositories, services, controllers and
// middleware.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = repositories.NewRepositories(dbPool)

	// The download base URL must match the signed-file route
	baseURL := "http://localhost:" + cfg.Server.Port + "/api/v1"
	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL, cfg.Storage.SigningKey)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  cfg.GetAccessTokenExpiration(),
		RefreshTokenExp: cfg.GetRefreshTokenExpiration(),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.Services = services.NewServices(cfg, dbPool, deps.Repos, deps.JWTService, deps.FileStorage)
	deps.AuthMiddleware = middleware.NewAuthMiddleware(deps.JWTService)

	deps.Controllers = &routes.Controllers{
		Auth:      controllers.NewAuthController(deps.Services.AuthService, lgr),
		User:      controllers.NewUserController(deps.Services.UserService, lgr),
		File:      controllers.NewFileController(deps.FileStorage, lgr),
		Student:   controllers.NewStudentController(deps.Services.StudentService, lgr),
		Batch:     controllers.NewBatchController(deps.Services.BatchService, lgr),
		Project:   controllers.NewProjectController(deps.Services.ProjectService, lgr),
		Leave:     controllers.NewLeaveController(deps.Services.LeaveService, lgr),
		Query:     controllers.NewQueryController(deps.Services.QueryService, lgr),
		Dashboard: controllers.NewDashboardController(deps.Services.DashboardService, lgr),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics())

	routes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	return router
}
