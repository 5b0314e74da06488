package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"deliveryops/internal/core/ports"
)

// PendingDeliveriesJob periodically reports the backlog of orders still
// awaiting a delivery outcome. Runs every minute and only observes: the
// workflow itself is driven by incoming tool calls, never by this job.
type PendingDeliveriesJob struct {
	orders ports.OrderRepository
	cron   *cron.Cron
	logger *slog.Logger
}

// NewPendingDeliveriesJob creates a job watching the deliverable backlog.
func NewPendingDeliveriesJob(orders ports.OrderRepository, logger *slog.Logger) *PendingDeliveriesJob {
	return &PendingDeliveriesJob{
		orders: orders,
		cron:   cron.New(),
		logger: logger.With("component", "pending_deliveries_job"),
	}
}

// Start begins the pending deliveries job to run every minute.
func (j *PendingDeliveriesJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		orders, err := j.orders.GetAllInDeliverableStates(ctx)
		if err != nil {
			j.logger.ErrorContext(ctx, "Pending deliveries job failed", "error", err)
			return
		}

		byStatus := make(map[string]int, len(orders))
		for _, aggregate := range orders {
			byStatus[aggregate.Status().String()]++
		}

		j.logger.InfoContext(ctx, "Delivery backlog",
			"pending_total", len(orders),
			"by_status", byStatus,
		)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pending deliveries job started (running every minute)")
	return nil
}

// Stop stops the pending deliveries job.
func (j *PendingDeliveriesJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Pending deliveries job stopped")
}
