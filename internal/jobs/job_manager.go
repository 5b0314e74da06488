package jobs

import (
	"fmt"
	"log/slog"

	"deliveryops/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	pendingDeliveriesJob *PendingDeliveriesJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(orders ports.OrderRepository, logger *slog.Logger) *JobManager {
	return &JobManager{
		pendingDeliveriesJob: NewPendingDeliveriesJob(orders, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.pendingDeliveriesJob.Start(); err != nil {
		return fmt.Errorf("failed to start pending deliveries job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.pendingDeliveriesJob.Stop()
}
