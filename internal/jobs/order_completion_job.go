package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OrderCompletionJob periodically promotes delivered orders to completed
// after the grace period has elapsed.
type OrderCompletionJob struct {
	handler     commands.CompleteDeliveredOrdersCommandHandler
	schedule    string
	gracePeriod time.Duration
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewOrderCompletionJob creates the completion job. The schedule is a
// standard five-field cron expression; gracePeriod is how long an order stays
// in delivered before promotion.
func NewOrderCompletionJob(
	handler commands.CompleteDeliveredOrdersCommandHandler,
	schedule string,
	gracePeriod time.Duration,
	logger *slog.Logger,
) *OrderCompletionJob {
	return &OrderCompletionJob{
		handler:     handler,
		schedule:    schedule,
		gracePeriod: gracePeriod,
		cron:        cron.New(),
		logger:      logger.With("component", "order_completion_job"),
	}
}

// Start schedules the job.
func (j *OrderCompletionJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		cmd, err := commands.NewCompleteDeliveredOrdersCommand(j.gracePeriod)
		if err != nil {
			j.logger.ErrorContext(ctx, "completion command rejected", "error", err)
			return
		}

		completed, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "order completion run failed", "error", err)
			return
		}
		if completed > 0 {
			j.logger.InfoContext(ctx, "orders completed", "count", completed)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "order completion job started",
		"schedule", j.schedule, "grace_period", j.gracePeriod.String())
	return nil
}

// Stop stops the job.
func (j *OrderCompletionJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "order completion job stopped")
}
