// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the warehouse service.
//
// # Available Jobs
//
// 1. ShipmentAutoCloserJob - Periodically closes shipment requests whose delivery
// date has passed and completes the orders linked to them
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(closeExpiredHandler, intervalSeconds, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The auto-closer runs on a fixed interval configured in seconds. Each tick
// performs one sweep inside a single transaction, so overlapping ticks never
// double-close a request.
//
// # Error Handling
//
// Sweep failures are logged and never propagated: the next tick retries the
// same expired requests because only a committed sweep marks them shipped.
package jobs
