// Package jobs provides scheduled background tasks for the fulfillment core.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. DeliveryConfirmationJob - Confirms sub-orders that have been in Shipped
// longer than the configured number of days, so the return window can start.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(confirmHandler, cronSpec, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The confirmation job runs on a configurable cron expression, typically a
// few times a day. Overdue confirmation is not latency sensitive.
package jobs
