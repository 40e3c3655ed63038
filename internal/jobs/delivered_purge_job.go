package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

// DeliveredPurgeJob removes delivered orders older than the retention window.
// Assignment history and ratings are kept, so aggregated courier figures are
// unaffected by a purge.
type DeliveredPurgeJob struct {
	handler   commands.PurgeDeliveredOrdersCommandHandler
	schedule  string
	retention time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewDeliveredPurgeJob creates the purge job. Retention must be positive;
// the composition root skips the job entirely when purging is disabled.
func NewDeliveredPurgeJob(
	handler commands.PurgeDeliveredOrdersCommandHandler,
	schedule string,
	retention time.Duration,
	logger *slog.Logger,
) *DeliveredPurgeJob {
	return &DeliveredPurgeJob{
		handler:   handler,
		schedule:  schedule,
		retention: retention,
		cron:      cron.New(),
		logger:    logger.With("component", "delivered_purge_job"),
	}
}

// Start schedules the job.
func (j *DeliveredPurgeJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		system, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleAdmin)
		if err != nil {
			j.logger.ErrorContext(ctx, "system actor rejected", "error", err)
			return
		}

		cmd, err := commands.NewPurgeDeliveredOrdersCommand(
			system, time.Time{}, time.Time{}, j.retention, true)
		if err != nil {
			j.logger.ErrorContext(ctx, "purge command rejected", "error", err)
			return
		}

		purged, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "delivered purge run failed", "error", err)
			return
		}
		if purged > 0 {
			j.logger.InfoContext(ctx, "delivered orders purged", "count", purged)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "delivered purge job started",
		"schedule", j.schedule, "retention", j.retention.String())
	return nil
}

// Stop stops the job.
func (j *DeliveredPurgeJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "delivered purge job stopped")
}
