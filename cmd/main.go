package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/hibiken/asynq"
	_ "github.com/skillpath/certificate-service/docs"
	authMiddleware "github.com/skillpath/certificate-service/internal/auth/middleware"
	"github.com/skillpath/certificate-service/internal/auth/service"
	"github.com/skillpath/certificate-service/internal/config"
	"github.com/skillpath/certificate-service/internal/handlers"
	"github.com/skillpath/certificate-service/internal/logger"
	loggerMiddleware "github.com/skillpath/certificate-service/internal/logger/middleware"
	"github.com/skillpath/certificate-service/internal/metrics"
	"github.com/skillpath/certificate-service/internal/middlewares"
	"github.com/skillpath/certificate-service/internal/models"
	"github.com/skillpath/certificate-service/internal/notifications"
	"github.com/skillpath/certificate-service/internal/repositories"
	"github.com/skillpath/certificate-service/internal/services"
	"github.com/skillpath/certificate-service/internal/tracing"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

// Tokens are issued by the auth service; this service only validates them
const accessTokenExpiry = 15 * time.Minute

// @title SkillPath Certificate API
// @version 1.0
// @description Course progress, certificate issuance and public certificate verification

// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	appLogger, err := logger.Init(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer appLogger.Sync()

	appLogger.Info("Starting Certificate Service API")

	policy := services.Policy{
		CompletionThreshold: cfg.Certificate.CompletionThreshold,
		MinQuizForRequest:   cfg.Certificate.MinQuizForRequest,
		MinQuizForAutoIssue: cfg.Certificate.MinQuizForAutoIssue,
	}
	if err := policy.Validate(); err != nil {
		appLogger.Fatal("Invalid certificate policy", zap.Error(err))
	}

	// Initialize tracing
	shutdownTracing, err := tracing.Setup(context.Background(), cfg.Tracing)
	if err != nil {
		appLogger.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		// Notifications are best effort; issuance keeps working without Redis
		appLogger.Warn("Failed to connect to Redis", zap.Error(err))
	}

	// Create Asynq client
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer asynqClient.Close()

	appMetrics := metrics.New()
	tokenGenerator := service.NewTokenGenerator(cfg.JWT.Secret, accessTokenExpiry)

	// Initialize repositories
	courseRepo := repositories.NewCourseRepository(db)
	lessonRepo := repositories.NewLessonRepository(db)
	historyRepo := repositories.NewLessonUserHistoryRepository(db)
	quizRepo := repositories.NewQuizSubmissionRepository(db)
	certificateRepo := repositories.NewCertificateRepository(db)
	requestRepo := repositories.NewCertificateRequestRepository(db)

	// Initialize services
	progressService := services.NewProgressService(courseRepo, lessonRepo, historyRepo, quizRepo, policy, appLogger)
	certificateService := services.NewCertificateService(
		certificateRepo,
		requestRepo,
		courseRepo,
		progressService,
		policy,
		cfg.Certificate.Validity,
		notifications.NewNotifier(asynqClient, appLogger),
		appMetrics,
		appLogger,
	)
	verificationService := services.NewVerificationService(certificateRepo, appLogger)

	// Initialize handlers
	certificateHandler := handlers.NewCertificateHandler(certificateService, appLogger)
	adminCertificateHandler := handlers.NewAdminCertificateHandler(certificateService, appLogger)
	progressHandler := handlers.NewProgressHandler(progressService, appLogger)
	verificationHandler := handlers.NewVerificationHandler(verificationService, appLogger)
	healthHandler := handlers.NewHealthHandler(map[string]handlers.Pinger{
		"mysql": db,
		"redis": handlers.PingerFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() }),
	}, appLogger)

	auth := authMiddleware.AuthMiddleware(tokenGenerator)
	reviewerOnly := authMiddleware.RequireRoles(models.RoleInstructor, models.RoleAdmin)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middlewares.RequestIDMiddleware)
	r.Use(tracing.Middleware(otel.Tracer("certificate-service")))
	r.Use(appMetrics.Middleware)
	r.Use(loggerMiddleware.LoggerMiddleware(appLogger))
	r.Use(middlewares.RecoveryMiddleware(appLogger))
	r.Use(middlewares.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(cfg.Server.RateLimit, time.Minute))
	r.Use(middlewares.RequestSizeLimitMiddleware(cfg.Server.MaxRequestSize))

	// Operational endpoints
	healthHandler.RegisterRoutes(r)
	r.Handle("/metrics", appMetrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Scope router to /api/v1
	r.Route("/api/v1", func(r chi.Router) {
		verificationHandler.RegisterRoutes(r)
		certificateHandler.RegisterRoutes(r, auth)
		progressHandler.RegisterRoutes(r, auth)
		adminCertificateHandler.RegisterRoutes(r, auth, reviewerOnly)
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := shutdownTracing(ctx); err != nil {
		appLogger.Error("Failed to flush traces", zap.Error(err))
	}

	appLogger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{
		MigrationsTable: "certificate_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		// running from cmd/
		if _, err := os.Stat("../migrations"); err == nil {
			migrationPath = "file://../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(migrationPath, "mysql", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
