package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	pkgvalidator "github.com/skillsync-team/meeting-service/pkg/validator"

	"github.com/skillsync-team/meeting-service/internal/adapter/handler"
	"github.com/skillsync-team/meeting-service/internal/adapter/repository"
	"github.com/skillsync-team/meeting-service/internal/infrastructure/cache"
	"github.com/skillsync-team/meeting-service/internal/infrastructure/database"
	"github.com/skillsync-team/meeting-service/internal/infrastructure/external/mail"
	"github.com/skillsync-team/meeting-service/internal/infrastructure/metrics"
	meetingUsecase "github.com/skillsync-team/meeting-service/internal/usecase/meeting"
	"github.com/skillsync-team/meeting-service/internal/usecase/notification"
	"github.com/skillsync-team/meeting-service/internal/usecase/reminder"
	"github.com/skillsync-team/meeting-service/pkg/config"
)

// @title           SkillSync Meeting Service API
// @version         1.0
// @description     Meeting lifecycle and reminder dispatch for the SkillSync platform

// @BasePath  /v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, handler.UserIDHeader},
	}))

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Run AutoMigrate only when explicitly enabled in config.
	// Production deployments should manage schema via sql-migrate.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		log.Println("🔄 Running GORM AutoMigrate (development only) ...")
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run AutoMigrate: %v", err)
		}
	} else {
		log.Println("🔄 Skipping GORM AutoMigrate; use sql-migrate for schema migrations in CI/CD/production")
	}

	// Initialize Redis for the sweep lease. The service stays up without it:
	// the ledger's conditional updates keep delivery at-most-once regardless.
	log.Println("📦 Connecting to Redis...")
	var lease reminder.Lease
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, sweeps run without the overlap lease", zap.Error(err))
	} else {
		defer redisClient.Close()
		lease = cache.NewSweepLease(redisClient, cfg.Reminder.LeaseTTL, logger)
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	meetingRepo := repository.NewMeetingRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	cancellationRepo := repository.NewCancellationRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize delivery gateway
	log.Println("📧 Initializing mail gateway...")
	mailClient, err := mail.NewClient(&cfg.SMTP, logger)
	if err != nil {
		log.Fatalf("Failed to initialize mail gateway: %v", err)
	}

	// Initialize the notification outbox
	log.Println("📤 Initializing notification outbox...")
	outbox := notification.NewOutbox(mailClient, logger, 256)
	defer outbox.Close()

	// Initialize metrics registry
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	// Initialize meeting service
	log.Println("📅 Initializing meeting service...")
	meetingService := meetingUsecase.NewMeetingService(
		meetingRepo,
		cancellationRepo,
		userRepo,
		outbox,
		cfg.Meeting.LinkBaseURL,
		logger,
	)

	// Initialize reminder sweeper
	log.Println("⏰ Initializing reminder sweeper...")
	sweeper := reminder.NewSweeper(
		meetingRepo,
		ledgerRepo,
		userRepo,
		mailClient,
		lease,
		cfg.Reminder,
		m,
		logger,
	)

	// Initialize handlers
	log.Println("🚀 Initializing handlers...")
	meetingHandler := handler.NewMeetingHandler(meetingService, logger)
	internalHandler := handler.NewInternalHandler(sweeper, meetingService, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, meetingHandler, internalHandler, registry)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
