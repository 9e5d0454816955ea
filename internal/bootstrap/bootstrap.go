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

	appControllers "github.com/mvidal/agenda/internal/app/controllers"
	appMigrations "github.com/mvidal/agenda/internal/app/migrations"
	appRepos "github.com/mvidal/agenda/internal/app/repositories"
	appRoutes "github.com/mvidal/agenda/internal/app/routes"
	appServices "github.com/mvidal/agenda/internal/app/services"
	"github.com/mvidal/agenda/internal/config"
	"github.com/mvidal/agenda/internal/db"
	appMiddleware "github.com/mvidal/agenda/internal/middleware"
	pkgAuth "github.com/mvidal/agenda/internal/pkg/auth"
	"github.com/mvidal/agenda/internal/pkg/email"
	"github.com/mvidal/agenda/internal/pkg/filestorage"
	"github.com/mvidal/agenda/internal/pkg/helpers"
	"github.com/mvidal/agenda/internal/pkg/logger"
	"github.com/mvidal/agenda/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService          appServices.AuthService
	ClassService         appServices.ClassService
	SubjectService       appServices.SubjectService
	EventService         appServices.EventService
	AssignmentService    appServices.AssignmentService
	AttendanceService    appServices.AttendanceService
	NotificationService  appServices.NotificationService
	AuthController       *appControllers.AuthController
	ClassController      *appControllers.ClassController
	SubjectController    *appControllers.SubjectController
	EventController      *appControllers.EventController
	AssignmentController *appControllers.AssignmentController
	AttendanceController *appControllers.AttendanceController
	MessageController    *appControllers.MessageController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	Logger               zerolog.Logger
	FileStorage          *filestorage.LocalStorage
	Mailer               email.Mailer
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
		dbPool.Close()
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

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Log the error but don't fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 12*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	// Email is optional; an incomplete SMTP section leaves the mailer nil
	// and notifications still create internal messages.
	if cfg.MailEnabled() {
		deps.Mailer = email.NewSMTPMailer(email.MailConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		}, lgr)
		lgr.Info().Str("host", cfg.SMTP.Host).Msg("SMTP mailer configured")
	} else {
		lgr.Info().Msg("SMTP configuration incomplete, email delivery disabled")
	}

	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, lgr)
	deps.ClassService = appServices.NewClassService(deps.Repos.ClassRepository)
	deps.SubjectService = appServices.NewSubjectService(deps.Repos.SubjectRepository)
	deps.EventService = appServices.NewEventService(deps.Repos.EventRepository)
	deps.AssignmentService = appServices.NewAssignmentService(deps.Repos.AssignmentRepository)
	deps.AttendanceService = appServices.NewAttendanceService(deps.Repos.AttendanceRepository)
	deps.NotificationService = appServices.NewNotificationService(deps.Repos.UserRepository, deps.Repos.MessageRepository, deps.Mailer)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, deps.JWTService)
	deps.ClassController = appControllers.NewClassController(deps.ClassService)
	deps.SubjectController = appControllers.NewSubjectController(deps.SubjectService)
	deps.EventController = appControllers.NewEventController(deps.EventService)
	deps.AssignmentController = appControllers.NewAssignmentController(deps.AssignmentService, deps.FileStorage)
	deps.AttendanceController = appControllers.NewAttendanceController(deps.AttendanceService)
	deps.MessageController = appControllers.NewMessageController(deps.NotificationService)

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

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.ClassController,
		deps.SubjectController,
		deps.EventController,
		deps.AssignmentController,
		deps.AttendanceController,
		deps.MessageController,
		deps.AuthMiddleware,
	)

	return router
}
