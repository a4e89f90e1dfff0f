package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/selim/courseshelf/internal/app/controllers"
	appMigrations "github.com/selim/courseshelf/internal/app/migrations"
	appRepos "github.com/selim/courseshelf/internal/app/repositories"
	appRoutes "github.com/selim/courseshelf/internal/app/routes"
	appServices "github.com/selim/courseshelf/internal/app/services"
	"github.com/selim/courseshelf/internal/config"
	"github.com/selim/courseshelf/internal/db"
	appMiddleware "github.com/selim/courseshelf/internal/middleware"
	pkgAuth "github.com/selim/courseshelf/internal/pkg/auth"
	"github.com/selim/courseshelf/internal/pkg/filestorage"
	"github.com/selim/courseshelf/internal/pkg/helpers"
	"github.com/selim/courseshelf/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	CourseService    appServices.CourseService
	NoteService      appServices.NoteService
	CourseController *appControllers.CourseController
	NoteController   *appControllers.NoteController
	AuthMiddleware   *appMiddleware.AuthMiddleware
	Repos            *appRepos.Repositories
	JWTService       *pkgAuth.JWTService
	BlobStore        *filestorage.BucketClient
	Logger           zerolog.Logger
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

// SetupDatabase establishes the database connection and runs migrations.
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
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")
	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	// Blob store talks to the external bucket service over HTTP
	blobStore, err := filestorage.NewBucketClient(filestorage.BucketConfig{
		Endpoint:   cfg.Storage.Endpoint,
		Bucket:     cfg.Storage.Bucket,
		ServiceKey: cfg.Storage.ServiceKey,
		Timeout:    helpers.ParseDuration(cfg.Storage.RequestTimeout, 30*time.Second),
	})
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize blob storage client")
		return nil, fmt.Errorf("failed to initialize blob storage: %w", err)
	}
	deps.BlobStore = blobStore

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey: cfg.JWT.Secret,
		Issuer:    cfg.JWT.Issuer,
	})

	deps.CourseService = appServices.NewCourseService(
		deps.Repos.CourseRepository,
		deps.Repos.NoteRepository,
	)
	deps.NoteService = appServices.NewNoteService(
		deps.Repos.CourseRepository,
		deps.Repos.NoteRepository,
		deps.BlobStore,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.CourseController = appControllers.NewCourseController(deps.CourseService)
	deps.NoteController = appControllers.NewNoteController(deps.NoteService)

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

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Requested-With"}
	router.Use(cors.New(corsConfig))

	appRoutes.SetupRouter(router,
		deps.CourseController,
		deps.NoteController,
		deps.AuthMiddleware,
	)

	return router
}
