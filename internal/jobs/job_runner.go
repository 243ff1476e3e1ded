package jobs

import (
	"context"
	"log/slog"
	"time"

	"carrental-backend/internal/config"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	ledger  service.CarRentalService
	config  *config.Config
	timeout time.Duration
	log     *slog.Logger
}

// NewJobRunner creates a new job runner over the rental ledger
func NewJobRunner(ledger service.CarRentalService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		ledger:  ledger,
		config:  cfg,
		timeout: time.Minute,
		log:     logger.WithService("jobs"),
	}
}

// Config returns the configuration the jobs were built with
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(ctx context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			jr.log.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), jr.timeout)
	defer cancel()

	jr.log.Info("Starting job", "job", jobName)
	jobFunc(ctx)
	jr.log.Info("Job completed", "job", jobName)
}

// RunAll runs every job once (for manual execution)
func (jr *JobRunner) RunAll() {
	jr.AuditAvailability()
	jr.LogReport()
	jr.Autosave()
}
