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

	_ "github.com/lib/pq"

	httpapi "carrental-backend/internal/api/http"
	"carrental-backend/internal/config"
	"carrental-backend/internal/jobs"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/repository/jsonfile"
	"carrental-backend/internal/repository/postgres"
	"carrental-backend/internal/scheduler"
	"carrental-backend/internal/security"
	"carrental-backend/internal/service"
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
	logger.InitializeWithFile(cfg.Log.Level, cfg.Log.Format, logger.FileOptions{
		Path:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	})
	logger.Info("Starting Car Rental Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Storage configuration", "type", cfg.Storage.Type)

	ctx := context.Background()

	// Initialize ledger store
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("Failed to open ledger store", "error", err)
		log.Fatalf("Failed to open ledger store: %v", err)
	}
	defer closeStore()

	// Initialize Security
	passwords, err := security.NewPasswordVerifier(cfg.Auth.PasswordScheme)
	if err != nil {
		log.Fatalf("Failed to initialize password verifier: %v", err)
	}
	tokenManager := security.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.AccessTokenExpiry)*time.Minute)

	// Initialize Services
	rentalSystem := service.NewRentalSystem(store, passwords, service.Options{
		AdminSecretCode: cfg.Auth.AdminSecretCode,
		MinYear:         cfg.Inventory.MinYear,
		MaxYear:         cfg.Inventory.MaxYear,
	})
	if err := rentalSystem.Load(ctx); err != nil {
		logger.Error("Failed to load ledger", "error", err)
		log.Fatalf("Failed to load ledger: %v", err)
	}
	created, err := rentalSystem.EnsureDefaultAdmin(ctx, service.RegistrationInput{
		Username:  cfg.Admin.Username,
		Password:  cfg.Admin.Password,
		FirstName: cfg.Admin.FirstName,
		LastName:  cfg.Admin.LastName,
		Email:     cfg.Admin.Email,
		Phone:     cfg.Admin.Phone,
		Address:   cfg.Admin.Address,
	})
	if err != nil {
		logger.Error("Failed to seed default admin", "error", err)
		log.Fatalf("Failed to seed default admin: %v", err)
	}
	if created {
		logger.Warn("Default admin account created; change its password", "username", cfg.Admin.Username)
	}

	var notifier service.Notifier
	if cfg.Email.Provider == "sendgrid" {
		notifier = service.NewSendGridNotifier(cfg.Email.APIKey, cfg.Email.From, cfg.Email.FromName)
	} else {
		notifier = service.NewNoopNotifier()
	}

	// Background jobs
	cronScheduler := scheduler.NewScheduler(jobs.NewJobRunner(rentalSystem, cfg))
	cronScheduler.Start()

	// Set up HTTP server
	server := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           httpapi.NewRouter(rentalSystem, tokenManager, notifier),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	cronScheduler.Stop()
	if err := rentalSystem.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to save ledger on shutdown", "error", err)
		os.Exit(1)
	}
	logger.Info("Ledger saved. Goodbye!")
}

// openStore builds the configured ledger store. The returned func releases it.
func openStore(ctx context.Context, cfg *config.Config) (repository.Store, func(), error) {
	if cfg.Storage.Type != config.StoragePostgres {
		logger.Info("Using JSON file store", "data_dir", cfg.Storage.DataDir)
		store, err := jsonfile.NewStore(cfg.Storage.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}

	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		return nil, nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)
	if err := store.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	return store, func() { db.Close() }, nil
}
