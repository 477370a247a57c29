package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"

	httpapi "venuebook-backend/internal/api/http"
	"venuebook-backend/internal/config"
	"venuebook-backend/internal/logger"
	"venuebook-backend/internal/repository/postgres"
	"venuebook-backend/internal/security"
	"venuebook-backend/internal/service"
	"venuebook-backend/internal/storage"

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
	logger.Info("Starting VenueBook Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	// Initialize Storage Service
	var storageService storage.StorageInterface
	if cfg.Storage.Type == "" || cfg.Storage.Type == "mock" {
		logger.Info("Using mock storage (local filesystem)", "upload_dir", cfg.Storage.UploadDir)
		mockStorage, err := storage.NewMockStorageService(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
		if err != nil {
			logger.Error("Failed to initialize mock storage", "error", err)
			log.Fatalf("Failed to initialize mock storage: %v", err)
		}
		storageService = mockStorage
	} else {
		logger.Error("Unsupported storage type", "type", cfg.Storage.Type)
		log.Fatalf("Storage type '%s' not yet implemented", cfg.Storage.Type)
	}

	// Initialize Push Channel (optional)
	var pushSender service.PushSender
	if cfg.Push.Enabled {
		pushSender, err = service.NewFCMSender(context.Background(), cfg.Push.CredentialsFile)
		if err != nil {
			logger.Error("Failed to initialize FCM, push disabled", "error", err)
			pushSender = nil
		} else {
			logger.Info("FCM push channel enabled")
		}
	}

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.Email)
	dispatcher := service.NewDispatcher(store.NotificationRepository, store.UserRepository, pushSender)
	publisher := service.NewVenuePublisher(store.VenueRepository)

	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	regSvc := service.NewRegistrationService(store.RegistrationRepository, dispatcher)
	reviewSvc := service.NewReviewService(store.RegistrationRepository, store.UserRepository, publisher, dispatcher, emailSvc)
	noteSvc := service.NewNotificationService(store.NotificationRepository)
	venueSvc := service.NewVenueService(store.VenueRepository)

	// Set up the HTTP server
	router := httpapi.NewRouter(httpapi.RouterDeps{
		Tokens:    tokenManager,
		AuthSvc:   authSvc,
		RegSvc:    regSvc,
		ReviewSvc: reviewSvc,
		NoteSvc:   noteSvc,
		VenueSvc:  venueSvc,
		Store:     storageService,
	})

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("Server stopped", "error", err)
		log.Fatalf("Server stopped: %v", err)
	}
}
