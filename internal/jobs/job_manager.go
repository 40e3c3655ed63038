package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
)

// JobManager coordinates the scheduled jobs of the application.
type JobManager struct {
	completionJob *OrderCompletionJob
	purgeJob      *DeliveredPurgeJob
}

// Config carries the schedules and windows for the background jobs.
// PurgeRetention of zero disables the purge job.
type Config struct {
	CompletionSchedule string
	CompletionGrace    time.Duration
	PurgeSchedule      string
	PurgeRetention     time.Duration
}

// NewJobManager creates a job manager with the configured jobs.
func NewJobManager(
	completeHandler commands.CompleteDeliveredOrdersCommandHandler,
	purgeHandler commands.PurgeDeliveredOrdersCommandHandler,
	cfg Config,
	logger *slog.Logger,
) *JobManager {
	jm := &JobManager{
		completionJob: NewOrderCompletionJob(completeHandler, cfg.CompletionSchedule, cfg.CompletionGrace, logger),
	}
	if cfg.PurgeRetention > 0 {
		jm.purgeJob = NewDeliveredPurgeJob(purgeHandler, cfg.PurgeSchedule, cfg.PurgeRetention, logger)
	}
	return jm
}

// StartAll starts all configured jobs.
// If a later job fails to start, the already running ones are stopped.
func (jm *JobManager) StartAll() error {
	if err := jm.completionJob.Start(); err != nil {
		return fmt.Errorf("failed to start order completion job: %w", err)
	}

	if jm.purgeJob != nil {
		if err := jm.purgeJob.Start(); err != nil {
			jm.completionJob.Stop()
			return fmt.Errorf("failed to start delivered purge job: %w", err)
		}
	}

	return nil
}

// StopAll stops all running jobs gracefully.
func (jm *JobManager) StopAll() {
	if jm.purgeJob != nil {
		jm.purgeJob.Stop()
	}
	jm.completionJob.Stop()
}
