// Package jobs provides scheduled background tasks for the logistics service.
//
// Jobs use github.com/robfig/cron/v3 with the seconds field enabled and
// skip a tick while the previous run is still in progress.
//
// # Available Jobs
//
// 1. PartialBatchReconciliationJob - completes partial COD batches whose
// mismatched records have all been adjusted
//
// # Usage
//
//	job := jobs.NewPartialBatchReconciliationJob(handler, cfg.Jobs.PartialBatchSchedule, time.Minute, logger)
//	jobManager := jobs.NewJobManager(job)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed pass is logged and retried on the next tick. Failed job starts
// stop any already running jobs.
package jobs
