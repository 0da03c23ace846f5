package jobs

import (
	"context"
	"log/slog"

	"marketplace/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DeliveryConfirmationJob periodically confirms delivery of sub-orders that
// have sat in Shipped past the auto-confirm deadline.
type DeliveryConfirmationJob struct {
	handler  commands.ConfirmOverdueDeliveriesCommandHandler
	cronSpec string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewDeliveryConfirmationJob creates the confirmation job. cronSpec is a
// standard five-field cron expression.
func NewDeliveryConfirmationJob(
	handler commands.ConfirmOverdueDeliveriesCommandHandler,
	cronSpec string,
	logger *slog.Logger,
) *DeliveryConfirmationJob {
	return &DeliveryConfirmationJob{
		handler:  handler,
		cronSpec: cronSpec,
		cron:     cron.New(),
		logger:   logger.With("component", "delivery_confirmation_job"),
	}
}

// Start schedules the job on its cron expression.
func (j *DeliveryConfirmationJob) Start() error {
	_, err := j.cron.AddFunc(j.cronSpec, func() {
		ctx := context.Background()
		cmd := commands.NewConfirmOverdueDeliveriesCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "delivery confirmation job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(),
		"delivery confirmation job started", "schedule", j.cronSpec)
	return nil
}

// Stop stops the job.
func (j *DeliveryConfirmationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "delivery confirmation job stopped")
}
