package jobs

import (
	"fmt"
	"log/slog"

	"marketplace/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	deliveryConfirmationJob *DeliveryConfirmationJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	confirmHandler commands.ConfirmOverdueDeliveriesCommandHandler,
	confirmCronSpec string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		deliveryConfirmationJob: NewDeliveryConfirmationJob(confirmHandler, confirmCronSpec, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.deliveryConfirmationJob.Start(); err != nil {
		return fmt.Errorf("failed to start delivery confirmation job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.deliveryConfirmationJob.Stop()
}
