package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"carrental-backend/internal/config"
	"carrental-backend/internal/jobs"
)

func newTestScheduler(cfg config.SchedulerConfig) *Scheduler {
	return NewScheduler(jobs.NewJobRunner(nil, &config.Config{Scheduler: cfg}))
}

func TestNewScheduler_RegistersConfiguredJobs(t *testing.T) {
	s := newTestScheduler(config.SchedulerConfig{
		Autosave: "0 */5 * * * *",
		Audit:    "0 0 * * * *",
		Report:   "0 0 6 * * *",
	})
	assert.Len(t, s.cron.Entries(), 3)
	assert.True(t, s.IsRunning())
}

func TestNewScheduler_EmptySpecDisablesJob(t *testing.T) {
	s := newTestScheduler(config.SchedulerConfig{Autosave: "0 */5 * * * *"})
	assert.Len(t, s.cron.Entries(), 1)

	s = newTestScheduler(config.SchedulerConfig{})
	assert.False(t, s.IsRunning())
}

func TestNewScheduler_InvalidSpecSkipped(t *testing.T) {
	s := newTestScheduler(config.SchedulerConfig{
		Autosave: "every now and then",
		Report:   "0 0 6 * * *",
	})
	assert.Len(t, s.cron.Entries(), 1)
}

func TestStartStop(t *testing.T) {
	s := newTestScheduler(config.SchedulerConfig{Report: "0 0 6 * * *"})
	s.Start()
	s.Stop()
	assert.True(t, s.IsRunning())
}
