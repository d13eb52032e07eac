// Package jobs provides scheduled background tasks for the home-office service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. SalesReportJob - Logs the sales summary of a trailing window on a schedule
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(salesSummaryHandler, "0 0 * * * *", time.Hour, logger)
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
// Schedules use six fields with seconds first. The sales report defaults to the top of
// every hour and covers the hour before it fires.
//
// # Error Handling
//
// - Report failures are logged and the next run proceeds normally
// - An invalid schedule fails StartAll
package jobs
