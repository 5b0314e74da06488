// Package jobs provides scheduled background tasks for the delivery
// operations service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations the service needs.
//
// # Available Jobs
//
// 1. PendingDeliveriesJob - Runs every minute and logs the backlog of
// orders still in a deliverable state, broken down by status.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(orderRepository, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The backlog job only observes the order store; failures are logged and
// the next tick retries from scratch.
package jobs
