package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

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
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'autosave', 'audit', 'report', 'all')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Car Rental Cronjob Runner...", "log_level", cfg.Log.Level)

	ctx := context.Background()

	store, db, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("Failed to open ledger store", "error", err)
		log.Fatalf("Failed to open ledger store: %v", err)
	}
	if db != nil {
		defer db.Close()
	}

	passwords, err := security.NewPasswordVerifier(cfg.Auth.PasswordScheme)
	if err != nil {
		log.Fatalf("Failed to initialize password verifier: %v", err)
	}

	rentalSystem := service.NewRentalSystem(store, passwords, service.Options{
		AdminSecretCode: cfg.Auth.AdminSecretCode,
		MinYear:         cfg.Inventory.MinYear,
		MaxYear:         cfg.Inventory.MaxYear,
	})
	if err := rentalSystem.Load(ctx); err != nil {
		logger.Error("Failed to load ledger", "error", err)
		log.Fatalf("Failed to load ledger: %v", err)
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(rentalSystem, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// openStore builds the configured ledger store. db is nil for the JSON store.
func openStore(ctx context.Context, cfg *config.Config) (repository.Store, *sql.DB, error) {
	if cfg.Storage.Type != config.StoragePostgres {
		store, err := jsonfile.NewStore(cfg.Storage.DataDir)
		return store, nil, err
	}

	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
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
	return store, db, nil
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "autosave":
		jobRunner.Autosave()
	case "audit":
		jobRunner.AuditAvailability()
	case "report":
		jobRunner.LogReport()
	case "all":
		jobRunner.RunAll()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - autosave\n")
		fmt.Printf("  - audit\n")
		fmt.Printf("  - report\n")
		fmt.Printf("  - all\n")
		os.Exit(1)
	}
}
