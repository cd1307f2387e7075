package jobs

import (
	"time"

	"ngoforum-backend/internal/config"
	"ngoforum-backend/internal/logger"
	"ngoforum-backend/internal/repository"
	"ngoforum-backend/internal/service"
	"ngoforum-backend/internal/telemetry"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	orgs   repository.OrganizationRepository
	events repository.EventRepository
	email  service.EmailService
	config *config.Config
	now    func() time.Time
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(orgs repository.OrganizationRepository, events repository.EventRepository, email service.EmailService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		orgs:   orgs,
		events: events,
		email:  email,
		config: cfg,
		now:    time.Now,
	}
}

// Config exposes the configuration the scheduler reads cron specs from
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery and records the
// outcome. jobFunc returns the number of rows that failed.
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func() int) {
	start := time.Now()
	outcome := "success"
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
			outcome = "panic"
		}
		telemetry.JobRunsTotal.WithLabelValues(jobName, outcome).Inc()
		telemetry.JobDuration.WithLabelValues(jobName).Observe(time.Since(start).Seconds())
	}()

	logger.Info("Starting job", "job", jobName)
	if failed := jobFunc(); failed > 0 {
		outcome = "partial"
		logger.Warn("Job completed with failures", "job", jobName, "failed", failed)
		return
	}
	logger.Info("Job completed", "job", jobName)
}

// RunAll runs every daily job (for manual execution)
func (jr *JobRunner) RunAll() {
	jr.CheckMemberships()
	jr.SendEventReminders()
}
