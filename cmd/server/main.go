package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "ngoforum-backend/internal/api/http"
	"ngoforum-backend/internal/config"
	"ngoforum-backend/internal/logger"
	"ngoforum-backend/internal/repository/postgres"
	"ngoforum-backend/internal/security"
	"ngoforum-backend/internal/service"
	"ngoforum-backend/internal/storage"
	"ngoforum-backend/internal/telemetry"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting NGO Forum backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")
	telemetry.StartDBStatsCollector(db)

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Minute,
	)

	// Initialize Storage Service
	fileStore, err := storage.New(cfg.Storage)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	localStore, _ := fileStore.(storage.LocalStore)
	if localStore != nil {
		logger.Info("Using local file storage", "upload_dir", cfg.Storage.UploadDir)
	}

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.Email)
	services := httpapi.Services{
		Auth:          service.NewAuthService(store.UserRepository, tokenManager),
		Moderation:    service.NewModerationService(store.ModerationRepository, store.OrganizationRepository, emailSvc),
		Organizations: service.NewOrganizationService(store.OrganizationRepository, fileStore),
		Applications:  service.NewApplicationService(store.ApplicationRepository, store.UserRepository, emailSvc, fileStore),
		Payments:      service.NewPaymentService(store.PaymentRepository, emailSvc, fileStore, cfg.Membership),
		Forum:         service.NewForumService(store.ForumRepository, store.OrganizationRepository),
		Events:        service.NewEventService(store.EventRepository, store.OrganizationRepository),
		Postings: service.NewPostingService(
			store.JobRepository,
			store.TrainingRepository,
			store.TenderRepository,
			store.OrganizationRepository,
			fileStore,
		),
		Resources:     service.NewResourceService(store.ResourceRepository, store.FAQRepository, store.OrganizationRepository, fileStore),
		Presence:      service.NewPresenceService(store.PresenceRepository),
		Security:      service.NewSecurityService(store.IncidentRepository, emailSvc, cfg.Security.AlertRecipients),
		Uploads:       service.NewUploadService(fileStore, cfg.Storage.MaxFileSizeMB),
		Pages:         service.NewPageService(store.PageRepository, store.AnnouncementRepository),
		Contact:       service.NewContactService(store.ContactMessageRepository),
		Tokens:        tokenManager,
		LocalStore:    localStore,
		MaxFileSizeMB: cfg.Storage.MaxFileSizeMB,
		Ping:          store.Ping,
	}

	srv := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           httpapi.NewRouter(services),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}
